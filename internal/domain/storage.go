package domain

import (
	"context"
	"io"
	"time"
)

// BlobStorage is the documents bucket. Keys are composed by the caller as
// "<workspace>/<case>/<epochMillis>-<filename>" so no collision check is
// needed on Put.
type BlobStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// PresignGet mints a time-limited capability URL for the object.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
