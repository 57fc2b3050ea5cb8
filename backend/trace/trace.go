// Package trace provides a dispatcher that records every backend call
// instead of driving a GPU. It backs the render package's own tests and is
// handy for debugging command encoding: run a frame, then inspect Calls.
package trace

import (
	"sync"

	"github.com/duskforge/render"
	"github.com/duskforge/render/backend"
)

func init() {
	backend.Register(backend.Trace, func() render.Dispatcher {
		return New()
	})
}

// Call is one recorded backend invocation.
type Call struct {
	// Op is the method name, e.g. "CreateVertexBuffer".
	Op string

	// Args are the method arguments in declaration order. Byte slices are
	// copied, so a Call stays valid after the frame is recycled.
	Args []any
}

// Dispatcher records calls in invocation order. It never fails.
//
// Calls may be read from any goroutine; recording happens on the renderer's
// consumer goroutine.
type Dispatcher struct {
	mu    sync.Mutex
	calls []Call

	initialized bool
}

var _ render.Dispatcher = (*Dispatcher)(nil)

// New creates an empty trace dispatcher.
func New() *Dispatcher {
	return &Dispatcher{}
}

// Calls returns a snapshot of all recorded calls.
func (d *Dispatcher) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Call, len(d.calls))
	copy(out, d.calls)
	return out
}

// CallsTo returns the recorded calls with the given op name.
func (d *Dispatcher) CallsTo(op string) []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Call
	for _, c := range d.calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset discards all recorded calls.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

// Initialized reports whether Init has been called without a matching
// Shutdown.
func (d *Dispatcher) Initialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initialized
}

func (d *Dispatcher) record(op string, args ...any) {
	for i, a := range args {
		if b, ok := a.([]byte); ok {
			cp := make([]byte, len(b))
			copy(cp, b)
			args[i] = cp
		}
	}
	d.mu.Lock()
	d.calls = append(d.calls, Call{Op: op, Args: args})
	d.mu.Unlock()
}

func (d *Dispatcher) Name() string { return backend.Trace }

func (d *Dispatcher) Init() error {
	d.record("Init")
	d.mu.Lock()
	d.initialized = true
	d.mu.Unlock()
	return nil
}

func (d *Dispatcher) Shutdown() {
	d.record("Shutdown")
	d.mu.Lock()
	d.initialized = false
	d.mu.Unlock()
}

func (d *Dispatcher) Render(f *render.Frame) error {
	// Deep-copy the draws; the frame aliases the render context.
	draws := make([]render.DrawCall, len(f.Draws))
	copy(draws, f.Draws)
	d.mu.Lock()
	d.calls = append(d.calls, Call{Op: "Render", Args: []any{f.Layers, draws}})
	d.mu.Unlock()
	return nil
}

func (d *Dispatcher) CreateVertexBuffer(id render.VertexBufferID, count uint32, format render.VertexFormat, data []byte) error {
	d.record("CreateVertexBuffer", id, count, format, data)
	return nil
}

func (d *Dispatcher) CreateDynamicVertexBuffer(id render.VertexBufferID, count uint32, format render.VertexFormat) error {
	d.record("CreateDynamicVertexBuffer", id, count, format)
	return nil
}

func (d *Dispatcher) UpdateVertexBuffer(id render.VertexBufferID, offset, count uint32, data []byte) error {
	d.record("UpdateVertexBuffer", id, offset, count, data)
	return nil
}

func (d *Dispatcher) DestroyVertexBuffer(id render.VertexBufferID) {
	d.record("DestroyVertexBuffer", id)
}

func (d *Dispatcher) CreateIndexBuffer(id render.IndexBufferID, count uint32, data []byte) error {
	d.record("CreateIndexBuffer", id, count, data)
	return nil
}

func (d *Dispatcher) CreateDynamicIndexBuffer(id render.IndexBufferID, count uint32) error {
	d.record("CreateDynamicIndexBuffer", id, count)
	return nil
}

func (d *Dispatcher) UpdateIndexBuffer(id render.IndexBufferID, offset, count uint32, data []byte) error {
	d.record("UpdateIndexBuffer", id, offset, count, data)
	return nil
}

func (d *Dispatcher) DestroyIndexBuffer(id render.IndexBufferID) {
	d.record("DestroyIndexBuffer", id)
}

func (d *Dispatcher) CreateTexture(id render.TextureID, width, height uint32, format render.PixelFormat, data []byte) error {
	d.record("CreateTexture", id, width, height, format, data)
	return nil
}

func (d *Dispatcher) UpdateTexture(id render.TextureID, x, y, width, height uint32, data []byte) error {
	d.record("UpdateTexture", id, x, y, width, height, data)
	return nil
}

func (d *Dispatcher) DestroyTexture(id render.TextureID) {
	d.record("DestroyTexture", id)
}

func (d *Dispatcher) CreateShader(id render.ShaderID, stage render.ShaderStage, source string) error {
	d.record("CreateShader", id, stage, source)
	return nil
}

func (d *Dispatcher) DestroyShader(id render.ShaderID) {
	d.record("DestroyShader", id)
}

func (d *Dispatcher) CreateProgram(id render.ProgramID, vertex, fragment render.ShaderID) error {
	d.record("CreateProgram", id, vertex, fragment)
	return nil
}

func (d *Dispatcher) DestroyProgram(id render.ProgramID) {
	d.record("DestroyProgram", id)
}

func (d *Dispatcher) CreateUniform(id render.UniformID, name string, typ render.UniformType, count uint8) error {
	d.record("CreateUniform", id, name, typ, count)
	return nil
}

func (d *Dispatcher) DestroyUniform(id render.UniformID) {
	d.record("DestroyUniform", id)
}

func (d *Dispatcher) UpdateUniform(id render.UniformID, typ render.UniformType, data []byte) {
	d.record("UpdateUniform", id, typ, data)
}
