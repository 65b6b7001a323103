// Package boundary implements the engine's C call surface in pure Go.
//
// The cgo shim in cmd/objstorelib is a thin translation layer over API so
// the whole contract — return codes, the all-or-nothing buffer copy, the
// per-caller last-error slot — can be exercised without a C compiler.
//
// Every failing call records a message in the calling thread's error slot
// before returning its failure code. Successful calls leave the slot
// untouched, so callers must gate on each call's own return value rather
// than polling LastError.
package boundary

import (
	"bytes"
	"context"
	"io"

	"github.com/aweris/objstore"
)

// Return codes of the C surface. Failure is a single sentinel today; the
// taxonomy in the error messages leaves room to split codes later.
const (
	statusOK   = 0
	statusFail = -1
)

// API is the boundary adapter. The caller argument on each method
// identifies the calling thread and scopes its last-error slot.
type API struct {
	registry *objstore.Registry
	lastErr  errTable
}

// NewAPI returns an adapter over the given registry.
func NewAPI(registry *objstore.Registry) *API {
	return &API{registry: registry}
}

// Open creates a backend of backendType configured from the parallel
// keys/values arrays and returns its handle, or a negative code.
func (a *API) Open(caller uint64, backendType string, keys, values []string) int {
	backend, err := objstore.New(backendType, objstore.SettingsFromPairs(keys, values))
	if err != nil {
		a.lastErr.set(caller, err)
		return statusFail
	}

	handle, err := a.registry.Register(backend)
	if err != nil {
		if c, ok := backend.(io.Closer); ok {
			_ = c.Close()
		}
		a.lastErr.set(caller, err)
		return statusFail
	}
	return int(handle)
}

// Put stores data under key on the backend named by handle.
func (a *API) Put(caller uint64, handle int, key string, data []byte) int {
	backend, release, err := a.registry.Lookup(objstore.Handle(handle))
	if err != nil {
		a.lastErr.set(caller, err)
		return statusFail
	}
	defer release()

	if err := backend.Put(context.Background(), key, bytes.NewReader(data)); err != nil {
		a.lastErr.set(caller, err)
		return statusFail
	}
	return statusOK
}

// Get copies the payload stored under key into dst and returns the payload
// length, which may be less than len(dst).
//
// The copy is all-or-nothing: when the payload exceeds dst the call fails
// with a buffer-too-small error and dst is left untouched, so the caller
// can never mistake a truncated read for a complete one.
func (a *API) Get(caller uint64, handle int, key string, dst []byte) int {
	backend, release, err := a.registry.Lookup(objstore.Handle(handle))
	if err != nil {
		a.lastErr.set(caller, err)
		return statusFail
	}
	defer release()

	rc, err := backend.Get(context.Background(), key)
	if err != nil {
		a.lastErr.set(caller, err)
		return statusFail
	}

	payload, err := io.ReadAll(rc)
	if cerr := rc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		a.lastErr.set(caller, err)
		return statusFail
	}

	if len(payload) > len(dst) {
		a.lastErr.set(caller, newBufferTooSmallError(len(payload), len(dst)))
		return statusFail
	}

	copy(dst, payload)
	return len(payload)
}

// Delete removes the payload stored under key on the backend named by
// handle.
func (a *API) Delete(caller uint64, handle int, key string) int {
	backend, release, err := a.registry.Lookup(objstore.Handle(handle))
	if err != nil {
		a.lastErr.set(caller, err)
		return statusFail
	}
	defer release()

	if err := backend.Delete(context.Background(), key); err != nil {
		a.lastErr.set(caller, err)
		return statusFail
	}
	return statusOK
}

// Close releases the backend named by handle. Best-effort: an unknown
// handle is a no-op and nothing is recorded in the error slot.
func (a *API) Close(handle int) {
	_ = a.registry.Unregister(objstore.Handle(handle))
}

// LastError returns the calling thread's most recent failure message. The
// slot is sticky: reading it does not clear it, and only a newer failure
// from the same thread replaces it.
func (a *API) LastError(caller uint64) (string, bool) {
	return a.lastErr.get(caller)
}

// Version returns the engine version identifier.
func (a *API) Version() string {
	return "objstore v" + objstore.Version
}
