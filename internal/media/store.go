package media

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/classmart/classmart-backend/pkg/config"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var allowedImageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Store persists uploaded product photos on local disk and serves them from a
// public path prefix.
type Store struct {
	uploadDir  string
	publicPath string
	maxBytes   int64
}

// NewStore builds a disk-backed media store from the media configuration.
func NewStore(cfg config.MediaConfig) (*Store, error) {
	if cfg.UploadDir == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", cfg.UploadDir, err)
	}
	publicPath := cfg.PublicPath
	if publicPath == "" {
		publicPath = "/media"
	}
	return &Store{
		uploadDir:  cfg.UploadDir,
		publicPath: strings.TrimRight(publicPath, "/"),
		maxBytes:   int64(cfg.MaxUploadMB) * 1024 * 1024,
	}, nil
}

// SaveProductPhoto sniffs the payload, rejects non-image content, and writes
// the file under a generated name. It returns the public URL path.
func (s *Store) SaveProductPhoto(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "photo payload is empty")
	}
	if int64(len(data)) > s.maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "photo exceeds the maximum upload size")
	}

	detected := mimetype.Detect(data)
	ext, ok := allowedImageTypes[detected.String()]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "photo must be a PNG, JPEG, WebP, or GIF image").
			WithDetails(map[string]any{"detected": detected.String(), "filename": filename})
	}

	name := uuid.NewString() + ext
	fullpath := filepath.Join(s.uploadDir, name)
	if err := os.WriteFile(fullpath, data, 0o644); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write photo")
	}
	return path.Join(s.publicPath, name), nil
}

// Remove deletes a stored photo given its public URL path. Unknown paths are
// ignored so callers can pass through values that never resolved to a file.
func (s *Store) Remove(publicURL string) error {
	name := path.Base(strings.TrimSpace(publicURL))
	if name == "" || name == "." || name == "/" {
		return nil
	}
	fullpath := filepath.Join(s.uploadDir, name)
	if err := os.Remove(fullpath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove photo %q: %w", name, err)
	}
	return nil
}

// Dir returns the directory photos are written to, for static file serving.
func (s *Store) Dir() string { return s.uploadDir }

// PublicPath returns the URL prefix photos are served from.
func (s *Store) PublicPath() string { return s.publicPath }
