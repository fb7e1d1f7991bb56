package adapter

import (
	"context"
	"io"
)

// SampleStore persists reference audio samples for cloned voices. Keys are
// opaque to callers; the Voice record stores whatever Put returns.
type SampleStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// URL returns a time-limited download URL for a stored sample.
	URL(ctx context.Context, key string) (string, error)
}
