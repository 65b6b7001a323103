package objstore

import (
	"fmt"
	"sync"
)

// Creator constructs a backend from its settings.
type Creator func(settings Settings) (Backend, error)

var (
	creatorsMu sync.RWMutex
	creators   = make(map[string]Creator)
)

// Register makes a backend type available to New. Registering the same type
// twice replaces the earlier creator.
func Register(backendType string, creator Creator) {
	creatorsMu.Lock()
	defer creatorsMu.Unlock()
	creators[backendType] = creator
}

// New creates a backend of the given type.
//
// Returns ErrUnsupportedBackend for unregistered types. Setting validation
// is up to the backend's creator.
func New(backendType string, settings Settings) (Backend, error) {
	creatorsMu.RLock()
	creator, ok := creators[backendType]
	creatorsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backendType)
	}
	return creator(settings)
}

func init() {
	Register("local", newLocal)
}
