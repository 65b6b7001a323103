package objstore

import "errors"

var (
	// ErrUnsupportedBackend is returned by New for an unregistered backend type.
	ErrUnsupportedBackend = errors.New("objstore: unsupported backend type")

	// ErrMissingConfig is returned when a required setting is absent.
	// It is wrapped with the name of the missing key.
	ErrMissingConfig = errors.New("objstore: missing required setting")

	// ErrBackendInit is returned when a backend's storage location cannot be used.
	ErrBackendInit = errors.New("objstore: backend initialization failed")

	// ErrInvalidKey is returned for keys that are empty, absolute, contain
	// NUL bytes, or would resolve outside the backend's namespace.
	ErrInvalidKey = errors.New("objstore: invalid key")

	// ErrNotFound is returned when no object exists for a key.
	ErrNotFound = errors.New("objstore: not found")

	// ErrInvalidHandle is returned for handles that were never issued or
	// have been closed.
	ErrInvalidHandle = errors.New("objstore: invalid handle")

	// ErrBufferTooSmall is returned by the boundary when a stored object
	// exceeds the caller's destination buffer.
	ErrBufferTooSmall = errors.New("objstore: buffer too small")

	// ErrHandleExhausted is returned if the handle counter leaves the range
	// representable on the C boundary. Practically unreachable.
	ErrHandleExhausted = errors.New("objstore: handle space exhausted")
)
