package objstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sourcegraph/conc"
)

// closableBackend records whether the registry released it.
type closableBackend struct {
	mu     sync.Mutex
	closed bool
}

func (c *closableBackend) Put(context.Context, string, io.Reader) error { return nil }
func (c *closableBackend) Get(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}
func (c *closableBackend) Delete(context.Context, string) error { return nil }

func (c *closableBackend) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *closableBackend) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	b := &closableBackend{}

	h, err := r.Register(b)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if h <= 0 {
		t.Fatalf("expected positive handle, got %d", h)
	}

	got, release, err := r.Lookup(h)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.(*closableBackend) != b {
		t.Error("Lookup returned a different backend")
	}
	release()

	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistryHandlesAreUnique(t *testing.T) {
	r := NewRegistry()

	h1, _ := r.Register(&closableBackend{})
	h2, _ := r.Register(&closableBackend{})
	h3, _ := r.Register(&closableBackend{})
	if h1 == h2 || h2 == h3 || h1 == h3 {
		t.Errorf("handles not unique: %d %d %d", h1, h2, h3)
	}

	// Closing a handle must not make its value reappear.
	if err := r.Unregister(h2); err != nil {
		t.Fatal(err)
	}
	h4, _ := r.Register(&closableBackend{})
	if h4 == h1 || h4 == h2 || h4 == h3 {
		t.Errorf("handle %d reused", h4)
	}
}

func TestRegistryInvalidHandles(t *testing.T) {
	r := NewRegistry()

	for _, h := range []Handle{0, 1, 999999, -1} {
		if _, _, err := r.Lookup(h); !errors.Is(err, ErrInvalidHandle) {
			t.Errorf("Lookup(%d): expected ErrInvalidHandle, got %v", h, err)
		}
		if err := r.Unregister(h); !errors.Is(err, ErrInvalidHandle) {
			t.Errorf("Unregister(%d): expected ErrInvalidHandle, got %v", h, err)
		}
	}
}

func TestRegistryUnregisterClosesBackend(t *testing.T) {
	r := NewRegistry()
	b := &closableBackend{}

	h, _ := r.Register(b)
	if err := r.Unregister(h); err != nil {
		t.Fatalf("Unregister: %v", err)
	}
	if !b.isClosed() {
		t.Error("backend not closed on unregister")
	}
	if err := r.Unregister(h); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("second Unregister: expected ErrInvalidHandle, got %v", err)
	}
}

func TestRegistryDefersCloseUntilRelease(t *testing.T) {
	r := NewRegistry()
	b := &closableBackend{}

	h, _ := r.Register(b)

	backend, release, err := r.Lookup(h)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Unregister(h); err != nil {
		t.Fatalf("Unregister: %v", err)
	}

	// The in-flight lookup still holds the backend alive.
	if b.isClosed() {
		t.Fatal("backend closed while a lookup was in flight")
	}
	if err := backend.Put(context.Background(), "k", strings.NewReader("v")); err != nil {
		t.Errorf("in-flight operation failed: %v", err)
	}

	// New lookups must already fail.
	if _, _, err := r.Lookup(h); !errors.Is(err, ErrInvalidHandle) {
		t.Errorf("expected ErrInvalidHandle after unregister, got %v", err)
	}

	release()
	if !b.isClosed() {
		t.Error("backend not closed after last release")
	}
}

func TestRegistryConcurrentRegistration(t *testing.T) {
	r := NewRegistry()

	const goroutines = 16
	const perGoroutine = 50

	handles := make([][]Handle, goroutines)
	var wg conc.WaitGroup
	for i := 0; i < goroutines; i++ {
		i := i // go.mod targets go 1.21: loop vars are per-loop, not per-iteration
		wg.Go(func() {
			for j := 0; j < perGoroutine; j++ {
				h, err := r.Register(&closableBackend{})
				if err != nil {
					t.Errorf("Register: %v", err)
					return
				}
				handles[i] = append(handles[i], h)
			}
		})
	}
	wg.Wait()

	seen := make(map[Handle]bool)
	for _, hs := range handles {
		for _, h := range hs {
			if seen[h] {
				t.Fatalf("handle %d issued twice", h)
			}
			seen[h] = true
		}
	}
	if len(seen) != goroutines*perGoroutine {
		t.Errorf("expected %d handles, got %d", goroutines*perGoroutine, len(seen))
	}
}

func TestRegistryConcurrentLookupAndClose(t *testing.T) {
	r := NewRegistry()
	b := &closableBackend{}
	h, _ := r.Register(b)

	var wg conc.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Go(func() {
			for {
				backend, release, err := r.Lookup(h)
				if err != nil {
					// Handle closed underneath us; that is the contract.
					return
				}
				_ = backend.Put(context.Background(), "k", strings.NewReader("v"))
				release()
			}
		})
	}

	if err := r.Unregister(h); err != nil {
		t.Fatal(err)
	}
	wg.Wait()

	if !b.isClosed() {
		t.Error("backend never closed")
	}
}
