package backend

import (
	"sync"

	"github.com/duskforge/render"
)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{Native, Trace}
)

// Register registers a dispatcher factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a dispatcher instance by name.
// Returns nil if the backend is not registered.
func Get(name string) render.Dispatcher {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available dispatcher based on priority.
// Returns nil if no backends are registered.
func Default() render.Dispatcher {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if d := factory(); d != nil {
				return d
			}
		}
	}

	// Fallback: first registered backend that instantiates.
	for _, factory := range backends {
		if d := factory(); d != nil {
			return d
		}
	}

	return nil
}

// MustDefault returns the default dispatcher or panics.
func MustDefault() render.Dispatcher {
	d := Default()
	if d == nil {
		panic("backend: no backend available")
	}
	return d
}
