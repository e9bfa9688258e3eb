// Package storage is the write target of the raw batch archive.
//
// Two drivers are available:
//   - "local"  local filesystem (default)
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	disk, err := storage.New(ctx, storage.Options{Driver: "s3", S3: s3opts})
//	err = disk.Put(ctx, "batches/2024/03/01/<id>.json", body)
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get for a missing path.
var ErrNotFound = errors.New("storage: not found")

// Disk is the driver interface. Paths are slash separated and relative.
type Disk interface {
	// Put writes content to path, replacing what was there.
	Put(ctx context.Context, path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(ctx context.Context, path string) error

	// AllFiles lists all files under directory, recursively.
	AllFiles(ctx context.Context, directory string) ([]string, error)
}

// Options selects and configures a driver.
type Options struct {
	Driver    string // "local" | "s3"
	LocalRoot string
	S3        S3Options
}

// New builds the disk named by opts.Driver.
func New(ctx context.Context, opts Options) (Disk, error) {
	switch opts.Driver {
	case "", "local":
		return NewLocal(opts.LocalRoot)
	case "s3":
		return NewS3(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("storage: unsupported disk %q (supported: local, s3)", opts.Driver)
	}
}
