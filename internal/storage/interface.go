package storage

import (
	"context"
	"io"
)

// ObjectStorage is where FAQ attachments and education diagrams live. The
// chat pipeline only resolves public URLs; upload and delete back the admin
// tooling.
type ObjectStorage interface {
	// Upload stores a media object under key
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download streams a stored object
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetURL returns the public URL for a stored object
	GetURL(key string) string

	// Delete removes a stored object
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key
	Exists(ctx context.Context, key string) (bool, error)
}
