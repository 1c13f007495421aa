// Package storage persists uploaded images on the local filesystem.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStore writes uploads beneath a single configured directory. Stored
// names embed the owning user id, a timestamp and a random suffix so
// concurrent uploads of equally named files can never overwrite each other.
type LocalStore struct {
	dir string
	now func() time.Time
}

// New creates the upload directory if needed and returns the store.
func New(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, now: time.Now}, nil
}

// Save writes the upload and returns its stored path.
func (s *LocalStore) Save(_ context.Context, userID int64, filename string, data []byte) (string, error) {
	name := fmt.Sprintf("%d_%s_%s%s",
		userID,
		s.now().UTC().Format("20060102_150405"),
		uuid.NewString()[:8],
		sanitizeExt(filename),
	)

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

// sanitizeExt keeps only a plain lowercase extension from the client-supplied
// filename; everything else about that name is untrusted and discarded.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
