package cartstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/farmstore/backend/internal/domain/cart"
)

// FileStore persists session carts as JSON files, one per session.
// Intended for single-instance deployments without Redis.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed cart store rooted at dir
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cart directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Storage returns the cart slot for one session
func (s *FileStore) Storage(sessionID string) cart.Storage {
	return &fileSlot{path: filepath.Join(s.dir, sessionID+".json")}
}

type fileSlot struct {
	path string
}

func (f *fileSlot) Load(ctx context.Context) ([]cart.Line, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cart slot: %w", err)
	}
	return decodeSlot(data)
}

func (f *fileSlot) Save(ctx context.Context, lines []cart.Line) error {
	data, err := encodeSlot(lines)
	if err != nil {
		return err
	}

	// Write-then-rename so a crash mid-write never leaves a torn slot
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to save cart slot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to save cart slot: %w", err)
	}
	return nil
}
