package objstore

import (
	"context"
	"io"
)

// Backend is the storage contract every backend type implements.
//
// A backend owns one configured storage location and associates immutable
// byte payloads with string keys. Put replaces any prior payload for the
// key; Delete removes the association so a later Get fails with ErrNotFound.
//
// Backends must be safe for concurrent use. Operations on the same key are
// not serialized by the caller: a backend must guarantee that a reader
// racing a writer observes either the old payload or the new one in full.
type Backend interface {
	// Put stores data as the complete payload for key, replacing any
	// previous payload.
	Put(ctx context.Context, key string, data io.Reader) error

	// Get returns a reader over the payload stored for key, or
	// ErrNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the payload stored for key, or returns ErrNotFound.
	Delete(ctx context.Context, key string) error
}

// closeBackend releases a backend's resources if it has any to release.
func closeBackend(b Backend) error {
	if c, ok := b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
