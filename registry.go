package objstore

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// Handle is an opaque identifier naming one open backend in a Registry.
//
// Handles are unique among open backends and never reused while the backend
// they name is open. They are issued monotonically, but callers may rely
// only on uniqueness.
type Handle int

// Registry maps handles to live backends for callers that cannot hold a Go
// reference, such as code on the far side of the C boundary.
//
// Structural changes (Register, Unregister) are mutually exclusive; lookups
// run concurrently with each other. A backend obtained from Lookup stays
// usable until its release function is called, even if the handle is
// unregistered in the meantime: the backend's resources are freed only
// after the last in-flight operation releases it.
type Registry struct {
	mu      sync.RWMutex
	entries map[Handle]*registryEntry
	last    int64
}

type registryEntry struct {
	backend Backend

	// refs counts the registry's own reference plus one per in-flight
	// lookup. The holder that drops it to zero closes the backend.
	refs atomic.Int64
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Handle]*registryEntry)}
}

// Register stores backend and returns a new handle for it. The registry
// owns the backend until Unregister.
func (r *Registry) Register(backend Backend) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Handles cross the C boundary as int, so the usable range ends there.
	if r.last >= math.MaxInt32 {
		return 0, ErrHandleExhausted
	}
	r.last++

	entry := &registryEntry{backend: backend}
	entry.refs.Store(1)
	handle := Handle(r.last)
	r.entries[handle] = entry
	return handle, nil
}

// Lookup returns the backend for handle and a release function the caller
// must invoke exactly once when its operation completes.
func (r *Registry) Lookup(handle Handle) (Backend, func(), error) {
	r.mu.RLock()
	entry, ok := r.entries[handle]
	if ok {
		// Safe: while we hold the read lock the entry is still in the
		// map, so the registry's own reference is alive.
		entry.refs.Add(1)
	}
	r.mu.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidHandle, handle)
	}

	release := func() {
		if entry.refs.Add(-1) == 0 {
			_ = closeBackend(entry.backend)
		}
	}
	return entry.backend, release, nil
}

// Unregister removes handle and releases the backend. New lookups fail
// immediately; in-flight lookups keep the backend alive until they release
// it, and the last one out closes it.
func (r *Registry) Unregister(handle Handle) error {
	r.mu.Lock()
	entry, ok := r.entries[handle]
	if ok {
		delete(r.entries, handle)
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, handle)
	}

	if entry.refs.Add(-1) == 0 {
		return closeBackend(entry.backend)
	}
	return nil
}

// Len returns the number of open handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
