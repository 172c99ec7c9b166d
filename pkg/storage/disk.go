// Package storage is the filesystem abstraction behind product banners.
//
// Two drivers are available:
//   - "local"  local filesystem (default), served back under /files
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	m, _ := storage.NewManager(ctx, storage.FromEnv())
//	_ = m.Default().Put(ctx, "a1b2-pizza.png", file)
//	url := m.Default().URL("a1b2-pizza.png")
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Get when path does not exist.
var ErrNotFound = errors.New("storage: file not found")

// Disk is the driver interface.
type Disk interface {
	// Put writes r to path, creating parent directories as needed.
	Put(ctx context.Context, path string, r io.Reader) error

	// Get opens the file at path. Caller must close it.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
