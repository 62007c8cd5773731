package fsx

import (
	"context"
	"io"
	"time"
)

// FileSystem abstracts the media store used for resumes and logos.
// Paths are opaque keys; Join builds them from segments.
type FileSystem interface {
	Join(segments ...string) string

	WriteFile(ctx context.Context, path string, data []byte) error

	WriteFileStream(ctx context.Context, path string, r io.Reader) error

	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)

	DeleteFile(ctx context.Context, path string) error

	// SignedURL returns a time-limited URL granting read access to path.
	SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
