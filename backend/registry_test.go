package backend_test

import (
	"testing"

	"github.com/duskforge/render"
	"github.com/duskforge/render/backend"
	"github.com/duskforge/render/backend/trace"
)

func TestTraceSelfRegisters(t *testing.T) {
	if !backend.IsRegistered(backend.Trace) {
		t.Fatal("trace backend not registered by package import")
	}
	d := backend.Get(backend.Trace)
	if d == nil {
		t.Fatal("Get(trace) = nil")
	}
	if d.Name() != backend.Trace {
		t.Errorf("Name() = %q, want %q", d.Name(), backend.Trace)
	}
}

func TestGetUnknown(t *testing.T) {
	if d := backend.Get("no-such-backend"); d != nil {
		t.Errorf("Get(unknown) = %v, want nil", d)
	}
}

func TestRegisterUnregister(t *testing.T) {
	backend.Register("custom", func() render.Dispatcher { return trace.New() })
	t.Cleanup(func() { backend.Unregister("custom") })

	if !backend.IsRegistered("custom") {
		t.Error("IsRegistered(custom) = false after Register")
	}

	backend.Unregister("custom")
	if backend.IsRegistered("custom") {
		t.Error("IsRegistered(custom) = true after Unregister")
	}
}

func TestAvailableContainsTrace(t *testing.T) {
	found := false
	for _, name := range backend.Available() {
		if name == backend.Trace {
			found = true
		}
	}
	if !found {
		t.Errorf("Available() = %v, want it to contain %q", backend.Available(), backend.Trace)
	}
}

func TestDefaultFallsBackToTrace(t *testing.T) {
	// With no native backend registered, trace is the best available.
	d := backend.Default()
	if d == nil {
		t.Fatal("Default() = nil")
	}
	if d.Name() != backend.Trace {
		t.Errorf("Default().Name() = %q, want %q", d.Name(), backend.Trace)
	}
}

func TestDefaultPrefersHigherPriority(t *testing.T) {
	backend.Register(backend.Native, func() render.Dispatcher { return trace.New() })
	t.Cleanup(func() { backend.Unregister(backend.Native) })

	// A factory registered under the native name wins over trace.
	if d := backend.MustDefault(); d == nil {
		t.Fatal("MustDefault() = nil")
	}
}
