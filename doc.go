// Package render provides a double-buffered render command queue.
//
// # Overview
//
// render decouples frame building from GPU submission. The application
// (producer) describes a frame's work through the Renderer API without ever
// touching the graphics backend; a dedicated consumer goroutine owned by the
// Renderer replays that work against a backend Dispatcher at its own pace.
// Resources cross the goroutine boundary as opaque handles, never as backend
// pointers, so the not-thread-safe backend is only ever driven from one
// goroutine.
//
// # Quick Start
//
//	import (
//	    "github.com/duskforge/render"
//	    "github.com/duskforge/render/backend/trace"
//	)
//
//	r := render.New(trace.New())
//	r.Init()
//
//	vb, _ := r.CreateVertexBuffer(3, render.VertexFormatPosition, vertices)
//	ib, _ := r.CreateIndexBuffer(3, indices)
//	r.SetVertexBuffer(vb)
//	r.SetIndexBuffer(ib)
//	r.Commit(0)
//	r.Frame()
//
//	r.DestroyIndexBuffer(ib)
//	r.DestroyVertexBuffer(vb)
//	r.Frame()
//	r.Shutdown()
//
// # Architecture
//
// Two RenderContext instances are swapped by reference once per frame: the
// producer encodes into the submit context while the consumer decodes the draw
// context. Frame blocks the producer until the consumer has fully decoded the
// submitted frame, so commands execute exactly once, in encode order, and a
// draw encoded after a create in the same frame always sees the resource
// realized on the backend.
//
// The library is organized into:
//   - Public API: Renderer, Dispatcher, handles, formats, layer state
//   - cmdbuf: the op-discriminated binary command and constant streams
//   - idtable: fixed-capacity handle slot allocators
//   - backend: dispatcher registry plus the trace and native dispatchers
//
// # Concurrency contract
//
// The Renderer API is single-producer: callers must serialize their own access
// to it. There is no cancellation; Frame and the consumer block on each other
// and Shutdown is the only designed way to stop the consumer goroutine.
package render
