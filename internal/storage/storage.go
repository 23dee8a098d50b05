package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file at the given path
	Save(ctx context.Context, path string, reader io.Reader) error

	// Get retrieves a file from the given path
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if a file exists at the given path
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns a public URL for the file
	GetURL(ctx context.Context, path string) (string, error)
}

// Config holds storage configuration
type Config struct {
	BasePath string // root directory for stored files
	BaseURL  string // public URL base
}

// UniqueName prefixes the original filename with the current unix
// millisecond timestamp so repeated uploads never collide.
func UniqueName(filename string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(filename))
}
