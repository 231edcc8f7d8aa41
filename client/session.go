package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
)

// Session is the durable client-side state: the auth token, the signed-in
// user, and the last cart total written after a mutation.
type Session interface {
	Token() string
	SetToken(token string) error
	UserID() int64
	SetUserID(id int64) error
	Total() decimal.Decimal
	SetTotal(total decimal.Decimal) error
	Clear() error
}

// MemorySession keeps session state in process memory.
type MemorySession struct {
	mu     sync.RWMutex
	token  string
	userID int64
	total  decimal.Decimal
}

// NewMemorySession returns an empty in-memory session.
func NewMemorySession() *MemorySession {
	return &MemorySession{}
}

func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemorySession) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemorySession) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *MemorySession) SetUserID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = id
	return nil
}

func (s *MemorySession) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

func (s *MemorySession) SetTotal(total decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = total
	return nil
}

func (s *MemorySession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.userID = 0
	s.total = decimal.Zero
	return nil
}

// fileSessionState is the on-disk shape. The keys match what the browser
// stored in localStorage.
type fileSessionState struct {
	AuthToken string `json:"authToken"`
	UserID    int64  `json:"user_id"`
	Total     string `json:"total"`
}

// FileSession persists session state as a small JSON file so separate
// invocations share one sign-in.
type FileSession struct {
	mu   sync.Mutex
	path string
}

// NewFileSession opens (or will create) the session file at path.
func NewFileSession(path string) (*FileSession, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileSession{path: path}, nil
}

func (s *FileSession) load() fileSessionState {
	var state fileSessionState
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return state
	}
	_ = json.Unmarshal(raw, &state)
	return state
}

func (s *FileSession) save(state fileSessionState) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *FileSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().AuthToken
}

func (s *FileSession) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load()
	state.AuthToken = token
	return s.save(state)
}

func (s *FileSession) UserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().UserID
}

func (s *FileSession) SetUserID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load()
	state.UserID = id
	return s.save(state)
}

func (s *FileSession) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw := s.load().Total
	if raw == "" {
		return decimal.Zero
	}
	total, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return total
}

func (s *FileSession) SetTotal(total decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.load()
	state.Total = total.StringFixed(2)
	return s.save(state)
}

func (s *FileSession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(fileSessionState{})
}
