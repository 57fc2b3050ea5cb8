package render

// Resource handles
//
// These opaque handles identify live resource slots in the Renderer's id
// tables. A handle is a small integer, not a backend pointer: it is valid
// between a successful create and its matching destroy, and its numeric value
// may be reused by a later create. Callers must not retain handles past
// destroy.

// VertexBufferID is an opaque handle to a vertex buffer.
type VertexBufferID uint16

// IndexBufferID is an opaque handle to an index buffer.
type IndexBufferID uint16

// TextureID is an opaque handle to a texture.
type TextureID uint16

// ShaderID is an opaque handle to a compiled shader stage.
type ShaderID uint16

// ProgramID is an opaque handle to a linked GPU program.
type ProgramID uint16

// UniformID is an opaque handle to a named shader uniform.
type UniformID uint16

// RenderTargetID is an opaque handle to an offscreen render target.
type RenderTargetID uint16
