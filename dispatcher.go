package render

// Dispatcher is the interface for graphics backends. It owns the actual GPU
// objects behind each handle and is the only component allowed to call into
// the graphics device.
//
// Every method is invoked exclusively from the Renderer's consumer goroutine,
// in the exact order the corresponding commands were encoded, so
// implementations need no internal locking for the Renderer's sake. A create
// for a handle always precedes any update, draw reference or destroy for it.
//
// Errors from create and update operations are treated by the Renderer as
// fatal: they indicate backend contract violations (for example a shader that
// fails to compile), not data-dependent runtime conditions.
type Dispatcher interface {
	// Name returns the dispatcher identifier (e.g. "trace", "native").
	Name() string

	// Init initializes the backend. Called once, before any other method,
	// when the InitRenderer command is decoded.
	Init() error

	// Shutdown releases all backend resources. Called once, when the
	// ShutdownRenderer command is decoded; no method is called after it.
	Shutdown()

	// Render draws one decoded frame: per-layer state plus committed draws.
	// The frame is valid only for the duration of the call.
	Render(f *Frame) error

	CreateVertexBuffer(id VertexBufferID, count uint32, format VertexFormat, data []byte) error
	CreateDynamicVertexBuffer(id VertexBufferID, count uint32, format VertexFormat) error
	UpdateVertexBuffer(id VertexBufferID, offset, count uint32, data []byte) error
	DestroyVertexBuffer(id VertexBufferID)

	CreateIndexBuffer(id IndexBufferID, count uint32, data []byte) error
	CreateDynamicIndexBuffer(id IndexBufferID, count uint32) error
	UpdateIndexBuffer(id IndexBufferID, offset, count uint32, data []byte) error
	DestroyIndexBuffer(id IndexBufferID)

	CreateTexture(id TextureID, width, height uint32, format PixelFormat, data []byte) error
	UpdateTexture(id TextureID, x, y, width, height uint32, data []byte) error
	DestroyTexture(id TextureID)

	CreateShader(id ShaderID, stage ShaderStage, source string) error
	DestroyShader(id ShaderID)

	CreateProgram(id ProgramID, vertex, fragment ShaderID) error
	DestroyProgram(id ProgramID)

	CreateUniform(id UniformID, name string, typ UniformType, count uint8) error
	DestroyUniform(id UniformID)
	UpdateUniform(id UniformID, typ UniformType, data []byte)
}
