package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"teslo-shop/internal/config"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrUnsupportedType is returned for uploads that are not jpg, jpeg, png or gif images
var ErrUnsupportedType = errors.New("file is not an image")

var allowedExtensions = map[string]string{
	"image/jpeg": ".jpeg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// ImageStore persists uploaded product images
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, body io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
}

// New returns the store selected by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStore(cfg.LocalDir), nil
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// DetectImage sniffs the content of r and returns its mime type and a generated
// file name. r is rewound before returning.
func DetectImage(r io.ReadSeeker) (contentType, name string, err error) {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", "", fmt.Errorf("failed to detect file type: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	ext, ok := allowedExtensions[mt.String()]
	if !ok {
		return "", "", ErrUnsupportedType
	}
	return mt.String(), uuid.NewString() + ext, nil
}

// CleanName rejects names that could escape the storage root
func CleanName(name string) (string, bool) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", false
	}
	return path.Base(name), true
}
