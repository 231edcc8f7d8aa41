package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/classmart/classmart-backend/pkg/config"
	redisclient "github.com/classmart/classmart-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

// ErrSessionNotFound signals a missing or revoked session.
var ErrSessionNotFound = errors.New("session not found")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(tokenID string) string
}

// Manager tracks which issued tokens still map to a live server-side session.
// A logout revokes the session, so a stolen but unexpired JWT stops working.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Checker exposes the read-only surface needed by middleware.
type Checker interface {
	HasSession(ctx context.Context, tokenID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	accessTTL := time.Duration(cfg.ExpirationMinutes) * time.Minute
	if ttl < accessTTL {
		return nil, fmt.Errorf("session ttl (%s) must cover access token ttl (%s)", ttl, accessTTL)
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// NewManagerWithStore wires a manager to an arbitrary backing store. Callers
// that hold a Redis client should use NewManager; this variant exists for
// tests and embedded setups.
func NewManagerWithStore(store sessionStore, keyer sessionKeyer, ttl time.Duration) (*Manager, error) {
	if store == nil || keyer == nil {
		return nil, fmt.Errorf("session store and keyer are required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: store, keyer: keyer, ttl: ttl}, nil
}

// Create registers a session for the supplied token ID.
func (m *Manager) Create(ctx context.Context, tokenID string, userID int64) error {
	if strings.TrimSpace(tokenID) == "" {
		return fmt.Errorf("token id is required")
	}
	return m.store.Set(ctx, m.keyer.SessionKey(tokenID), fmt.Sprintf("%d", userID), m.ttl)
}

// Revoke deletes the session tied to the token ID.
func (m *Manager) Revoke(ctx context.Context, tokenID string) error {
	if strings.TrimSpace(tokenID) == "" {
		return fmt.Errorf("token id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(tokenID))
}

// HasSession reports whether the token ID still has an active session.
func (m *Manager) HasSession(ctx context.Context, tokenID string) (bool, error) {
	if strings.TrimSpace(tokenID) == "" {
		return false, fmt.Errorf("token id is required")
	}
	if _, err := m.store.Get(ctx, m.keyer.SessionKey(tokenID)); err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewTokenID produces a stable identifier used as the JWT jti/Redis key.
func NewTokenID() string {
	return uuid.NewString()
}
