// Package backend provides the dispatcher registry.
//
// Dispatcher implementations register themselves via Register, usually from
// an init() function, and applications select one by name with Get or let
// Default pick the best available. The registry decouples the render package
// from the concrete backends so that importing a backend package is all it
// takes to make it selectable.
package backend

import (
	"errors"

	"github.com/duskforge/render"
)

// Well-known backend names.
const (
	// Native is the GPU dispatcher backed by a hal device.
	Native = "native"

	// Trace is the recording dispatcher used for tests and debugging.
	Trace = "trace"
)

// Common backend errors.
var (
	// ErrNotAvailable is returned when a requested backend is not available.
	ErrNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Factory creates a new dispatcher instance. A factory may return nil to
// signal that the backend cannot run in the current environment.
type Factory func() render.Dispatcher
