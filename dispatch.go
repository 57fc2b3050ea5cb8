package render

import (
	"fmt"

	"github.com/duskforge/render/cmdbuf"
)

// executeCommands decodes the context's command stream and replays it onto
// the dispatcher. Reads mirror the writes in renderer.go exactly; the stream
// is trusted, so an op the switch does not know means the codec itself is
// broken and decoding cannot continue.
//
// Returns false once OpShutdownRenderer has been decoded.
func (r *Renderer) executeCommands(ctx *RenderContext) bool {
	c := ctx.commands
	running := true
	commands := 0

	for {
		op := c.ReadOp()
		if op == cmdbuf.OpEnd {
			break
		}
		commands++

		switch op {
		case cmdbuf.OpInitRenderer:
			if err := r.dispatcher.Init(); err != nil {
				panic(fmt.Sprintf("render: backend init failed: %v", err))
			}
			r.backendReady = true

		case cmdbuf.OpShutdownRenderer:
			if r.backendReady {
				r.dispatcher.Shutdown()
				r.backendReady = false
			}
			running = false

		case cmdbuf.OpCreateVertexBuffer:
			id := VertexBufferID(c.ReadUint16())
			count := c.ReadUint32()
			format := VertexFormat(c.ReadUint8())
			data := c.ReadBytes()
			if err := r.dispatcher.CreateVertexBuffer(id, count, format, data); err != nil {
				panic(fmt.Sprintf("render: backend create vertex buffer %d: %v", id, err))
			}

		case cmdbuf.OpCreateDynamicVertexBuffer:
			id := VertexBufferID(c.ReadUint16())
			count := c.ReadUint32()
			format := VertexFormat(c.ReadUint8())
			if err := r.dispatcher.CreateDynamicVertexBuffer(id, count, format); err != nil {
				panic(fmt.Sprintf("render: backend create dynamic vertex buffer %d: %v", id, err))
			}

		case cmdbuf.OpUpdateVertexBuffer:
			id := VertexBufferID(c.ReadUint16())
			offset := c.ReadUint32()
			count := c.ReadUint32()
			data := c.ReadBytes()
			if err := r.dispatcher.UpdateVertexBuffer(id, offset, count, data); err != nil {
				panic(fmt.Sprintf("render: backend update vertex buffer %d: %v", id, err))
			}

		case cmdbuf.OpDestroyVertexBuffer:
			r.dispatcher.DestroyVertexBuffer(VertexBufferID(c.ReadUint16()))

		case cmdbuf.OpCreateIndexBuffer:
			id := IndexBufferID(c.ReadUint16())
			count := c.ReadUint32()
			data := c.ReadBytes()
			if err := r.dispatcher.CreateIndexBuffer(id, count, data); err != nil {
				panic(fmt.Sprintf("render: backend create index buffer %d: %v", id, err))
			}

		case cmdbuf.OpCreateDynamicIndexBuffer:
			id := IndexBufferID(c.ReadUint16())
			count := c.ReadUint32()
			if err := r.dispatcher.CreateDynamicIndexBuffer(id, count); err != nil {
				panic(fmt.Sprintf("render: backend create dynamic index buffer %d: %v", id, err))
			}

		case cmdbuf.OpUpdateIndexBuffer:
			id := IndexBufferID(c.ReadUint16())
			offset := c.ReadUint32()
			count := c.ReadUint32()
			data := c.ReadBytes()
			if err := r.dispatcher.UpdateIndexBuffer(id, offset, count, data); err != nil {
				panic(fmt.Sprintf("render: backend update index buffer %d: %v", id, err))
			}

		case cmdbuf.OpDestroyIndexBuffer:
			r.dispatcher.DestroyIndexBuffer(IndexBufferID(c.ReadUint16()))

		case cmdbuf.OpCreateTexture:
			id := TextureID(c.ReadUint16())
			width := c.ReadUint32()
			height := c.ReadUint32()
			format := PixelFormat(c.ReadUint32())
			data := c.ReadBytes()
			if err := r.dispatcher.CreateTexture(id, width, height, format, data); err != nil {
				panic(fmt.Sprintf("render: backend create texture %d: %v", id, err))
			}

		case cmdbuf.OpUpdateTexture:
			id := TextureID(c.ReadUint16())
			x := c.ReadUint32()
			y := c.ReadUint32()
			width := c.ReadUint32()
			height := c.ReadUint32()
			data := c.ReadBytes()
			if err := r.dispatcher.UpdateTexture(id, x, y, width, height, data); err != nil {
				panic(fmt.Sprintf("render: backend update texture %d: %v", id, err))
			}

		case cmdbuf.OpDestroyTexture:
			r.dispatcher.DestroyTexture(TextureID(c.ReadUint16()))

		case cmdbuf.OpCreateShader:
			id := ShaderID(c.ReadUint16())
			stage := ShaderStage(c.ReadUint8())
			source := c.ReadString()
			if err := r.dispatcher.CreateShader(id, stage, source); err != nil {
				panic(fmt.Sprintf("render: backend create shader %d: %v", id, err))
			}

		case cmdbuf.OpDestroyShader:
			r.dispatcher.DestroyShader(ShaderID(c.ReadUint16()))

		case cmdbuf.OpCreateProgram:
			id := ProgramID(c.ReadUint16())
			vertex := ShaderID(c.ReadUint16())
			fragment := ShaderID(c.ReadUint16())
			if err := r.dispatcher.CreateProgram(id, vertex, fragment); err != nil {
				panic(fmt.Sprintf("render: backend create program %d: %v", id, err))
			}

		case cmdbuf.OpDestroyProgram:
			r.dispatcher.DestroyProgram(ProgramID(c.ReadUint16()))

		case cmdbuf.OpCreateUniform:
			id := UniformID(c.ReadUint16())
			name := c.ReadString()
			typ := UniformType(c.ReadUint8())
			count := c.ReadUint8()
			if err := r.dispatcher.CreateUniform(id, name, typ, count); err != nil {
				panic(fmt.Sprintf("render: backend create uniform %d (%q): %v", id, name, err))
			}

		case cmdbuf.OpDestroyUniform:
			r.dispatcher.DestroyUniform(UniformID(c.ReadUint16()))

		default:
			panic(fmt.Sprintf("render: unknown op %d in command stream", uint8(op)))
		}
	}

	r.lastCommands = commands
	return running
}

// applyConstants flushes the frame's buffered uniform writes to the backend
// in submission order.
func (r *Renderer) applyConstants(ctx *RenderContext) {
	for {
		typ, id, data, ok := ctx.constants.Read()
		if !ok {
			return
		}
		r.dispatcher.UpdateUniform(UniformID(id), UniformType(typ), data)
	}
}
