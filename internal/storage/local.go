package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"teslo-shop/internal/domain"
)

// LocalStore keeps images in a directory on disk
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Save(ctx context.Context, name, contentType string, body io.Reader) error {
	name, ok := CleanName(name)
	if !ok {
		return fmt.Errorf("%w: invalid file name", domain.ErrValidationFailed)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return f.Sync()
}

func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	name, ok := CleanName(name)
	if !ok {
		return nil, "", fmt.Errorf("%w: no product found with image %s", domain.ErrNotFound, name)
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: no product found with image %s", domain.ErrNotFound, name)
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f, contentType, nil
}
