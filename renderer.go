package render

import (
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/duskforge/render/cmdbuf"
	"github.com/duskforge/render/idtable"
)

// Renderer is the public facade of the command queue. It owns both frame
// contexts, all handle tables and the consumer goroutine.
//
// All methods must be called from a single producer goroutine. Create calls
// allocate a handle synchronously and enqueue the backend work; state-setting
// calls accumulate into the submit-side frame context; Frame hands the
// accumulated frame to the consumer and blocks until it has been executed.
type Renderer struct {
	opts       options
	dispatcher Dispatcher

	contexts [2]*RenderContext
	submit   *RenderContext
	draw     *RenderContext

	// renderMay signals "a frame is ready, render may proceed";
	// frameDone answers "the frame has been executed". Both are
	// one-slot semaphores forming the ping-pong handshake.
	renderMay chan struct{}
	frameDone chan struct{}
	done      chan struct{}

	vertexBuffers *idtable.Table
	indexBuffers  *idtable.Table
	textures      *idtable.Table
	shaders       *idtable.Table
	programs      *idtable.Table
	uniforms      *idtable.Table
	renderTargets *idtable.Table

	// Producer-side lifecycle.
	running bool
	stopped bool
	frames  uint64

	// Consumer-side state, read by the producer only inside the
	// handshake's happens-before window.
	backendReady bool
	lastCommands int
	lastDraws    int
}

// Stats are frame pipeline counters. Read them from the producer goroutine
// between Frame calls.
type Stats struct {
	// Frames is the number of completed Frame handshakes.
	Frames uint64

	// LastCommands is the number of commands decoded in the last frame.
	LastCommands int

	// LastDraws is the number of draw units executed in the last frame.
	LastDraws int
}

// New creates a Renderer driving the given dispatcher. The dispatcher's Init
// is not called until Renderer.Init.
func New(d Dispatcher, opts ...Option) *Renderer {
	if d == nil {
		panic("render: dispatcher is nil")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{
		opts:       o,
		dispatcher: d,
		renderMay:  make(chan struct{}, 1),
		frameDone:  make(chan struct{}, 1),

		vertexBuffers: idtable.New(o.maxVertexBuffers),
		indexBuffers:  idtable.New(o.maxIndexBuffers),
		textures:      idtable.New(o.maxTextures),
		shaders:       idtable.New(o.maxShaders),
		programs:      idtable.New(o.maxPrograms),
		uniforms:      idtable.New(o.maxUniforms),
		renderTargets: idtable.New(o.maxRenderTargets),
	}
	r.contexts[0] = newRenderContext(o.commandCapacity, o.constantCapacity, o.maxDraws)
	r.contexts[1] = newRenderContext(o.commandCapacity, o.constantCapacity, o.maxDraws)
	r.submit = r.contexts[0]
	r.draw = r.contexts[1]
	return r
}

// Stats returns a snapshot of the frame counters.
func (r *Renderer) Stats() Stats {
	return Stats{
		Frames:       r.frames,
		LastCommands: r.lastCommands,
		LastDraws:    r.lastDraws,
	}
}

// ensureRunning guards encode calls against use outside the Init..Shutdown
// window.
func (r *Renderer) ensureRunning() {
	if !r.running {
		panic("render: renderer is not running (call Init first)")
	}
}

// CreateVertexBuffer creates a vertex buffer holding count vertices of the
// given format. data must be exactly count*format.Stride() bytes; the bytes
// are copied into the command stream, so the caller may reuse the slice
// immediately. Returns an error when the vertex buffer table is full.
func (r *Renderer) CreateVertexBuffer(count uint32, format VertexFormat, data []byte) (VertexBufferID, error) {
	r.ensureRunning()
	if len(data) != int(count)*int(format.Stride()) {
		panic(fmt.Sprintf("render: vertex data is %d bytes, want %d (%d vertices of %s)",
			len(data), int(count)*int(format.Stride()), count, format))
	}

	id, err := r.vertexBuffers.Create()
	if err != nil {
		return 0, fmt.Errorf("render: create vertex buffer: %w", err)
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpCreateVertexBuffer)
	c.WriteUint16(id)
	c.WriteUint32(count)
	c.WriteUint8(uint8(format))
	c.WriteBytes(data)
	return VertexBufferID(id), nil
}

// CreateDynamicVertexBuffer allocates storage for count vertices of the given
// format without initial data; fill it with UpdateVertexBuffer.
func (r *Renderer) CreateDynamicVertexBuffer(count uint32, format VertexFormat) (VertexBufferID, error) {
	r.ensureRunning()
	format.Stride() // validates the format

	id, err := r.vertexBuffers.Create()
	if err != nil {
		return 0, fmt.Errorf("render: create dynamic vertex buffer: %w", err)
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpCreateDynamicVertexBuffer)
	c.WriteUint16(id)
	c.WriteUint32(count)
	c.WriteUint8(uint8(format))
	return VertexBufferID(id), nil
}

// UpdateVertexBuffer overwrites count vertices starting at the given vertex
// offset. The data must match the format specified at creation time.
func (r *Renderer) UpdateVertexBuffer(id VertexBufferID, offset, count uint32, data []byte) {
	r.ensureRunning()
	if !r.vertexBuffers.Has(uint16(id)) {
		panic(fmt.Sprintf("render: vertex buffer %d does not exist", id))
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpUpdateVertexBuffer)
	c.WriteUint16(uint16(id))
	c.WriteUint32(offset)
	c.WriteUint32(count)
	c.WriteBytes(data)
}

// DestroyVertexBuffer destroys the given vertex buffer. The handle is freed
// immediately; the backend object goes away when the frame is executed.
func (r *Renderer) DestroyVertexBuffer(id VertexBufferID) {
	r.ensureRunning()
	if !r.vertexBuffers.Has(uint16(id)) {
		panic(fmt.Sprintf("render: vertex buffer %d does not exist", id))
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpDestroyVertexBuffer)
	c.WriteUint16(uint16(id))
	r.vertexBuffers.Destroy(uint16(id))
}

// CreateIndexBuffer creates an index buffer holding count uint16 indices.
// data must be exactly count*IndexSize bytes.
func (r *Renderer) CreateIndexBuffer(count uint32, data []byte) (IndexBufferID, error) {
	r.ensureRunning()
	if len(data) != int(count)*IndexSize {
		panic(fmt.Sprintf("render: index data is %d bytes, want %d (%d indices)",
			len(data), int(count)*IndexSize, count))
	}

	id, err := r.indexBuffers.Create()
	if err != nil {
		return 0, fmt.Errorf("render: create index buffer: %w", err)
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpCreateIndexBuffer)
	c.WriteUint16(id)
	c.WriteUint32(count)
	c.WriteBytes(data)
	return IndexBufferID(id), nil
}

// CreateDynamicIndexBuffer allocates storage for count indices without
// initial data; fill it with UpdateIndexBuffer.
func (r *Renderer) CreateDynamicIndexBuffer(count uint32) (IndexBufferID, error) {
	r.ensureRunning()

	id, err := r.indexBuffers.Create()
	if err != nil {
		return 0, fmt.Errorf("render: create dynamic index buffer: %w", err)
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpCreateDynamicIndexBuffer)
	c.WriteUint16(id)
	c.WriteUint32(count)
	return IndexBufferID(id), nil
}

// UpdateIndexBuffer overwrites count indices starting at the given index
// offset.
func (r *Renderer) UpdateIndexBuffer(id IndexBufferID, offset, count uint32, data []byte) {
	r.ensureRunning()
	if !r.indexBuffers.Has(uint16(id)) {
		panic(fmt.Sprintf("render: index buffer %d does not exist", id))
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpUpdateIndexBuffer)
	c.WriteUint16(uint16(id))
	c.WriteUint32(offset)
	c.WriteUint32(count)
	c.WriteBytes(data)
}

// DestroyIndexBuffer destroys the given index buffer.
func (r *Renderer) DestroyIndexBuffer(id IndexBufferID) {
	r.ensureRunning()
	if !r.indexBuffers.Has(uint16(id)) {
		panic(fmt.Sprintf("render: index buffer %d does not exist", id))
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpDestroyIndexBuffer)
	c.WriteUint16(uint16(id))
	r.indexBuffers.Destroy(uint16(id))
}

// CreateTexture creates a width x height texture of the given pixel format.
// data should contain width*height pixels of that format, or be nil to leave
// the texture uninitialized.
func (r *Renderer) CreateTexture(width, height uint32, format PixelFormat, data []byte) (TextureID, error) {
	r.ensureRunning()

	id, err := r.textures.Create()
	if err != nil {
		return 0, fmt.Errorf("render: create texture: %w", err)
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpCreateTexture)
	c.WriteUint16(id)
	c.WriteUint32(width)
	c.WriteUint32(height)
	c.WriteUint32(uint32(format))
	c.WriteBytes(data)
	return TextureID(id), nil
}

// UpdateTexture overwrites the texture region at x, y of size width x height.
// data should contain width*height pixels of the format specified at creation
// time.
func (r *Renderer) UpdateTexture(id TextureID, x, y, width, height uint32, data []byte) {
	r.ensureRunning()
	if !r.textures.Has(uint16(id)) {
		panic(fmt.Sprintf("render: texture %d does not exist", id))
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpUpdateTexture)
	c.WriteUint16(uint16(id))
	c.WriteUint32(x)
	c.WriteUint32(y)
	c.WriteUint32(width)
	c.WriteUint32(height)
	c.WriteBytes(data)
}

// DestroyTexture destroys the given texture.
func (r *Renderer) DestroyTexture(id TextureID) {
	r.ensureRunning()
	if !r.textures.Has(uint16(id)) {
		panic(fmt.Sprintf("render: texture %d does not exist", id))
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpDestroyTexture)
	c.WriteUint16(uint16(id))
	r.textures.Destroy(uint16(id))
}

// CreateShader creates a shader of the given stage from source text.
func (r *Renderer) CreateShader(stage ShaderStage, source string) (ShaderID, error) {
	r.ensureRunning()

	id, err := r.shaders.Create()
	if err != nil {
		return 0, fmt.Errorf("render: create shader: %w", err)
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpCreateShader)
	c.WriteUint16(id)
	c.WriteUint8(uint8(stage))
	c.WriteString(source)
	return ShaderID(id), nil
}

// DestroyShader destroys the given shader. Shaders referenced by a live
// program may be destroyed; the program keeps its linked form.
func (r *Renderer) DestroyShader(id ShaderID) {
	r.ensureRunning()
	if !r.shaders.Has(uint16(id)) {
		panic(fmt.Sprintf("render: shader %d does not exist", id))
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpDestroyShader)
	c.WriteUint16(uint16(id))
	r.shaders.Destroy(uint16(id))
}

// CreateProgram links a vertex and a fragment shader into a GPU program.
func (r *Renderer) CreateProgram(vertex, fragment ShaderID) (ProgramID, error) {
	r.ensureRunning()
	if !r.shaders.Has(uint16(vertex)) {
		panic(fmt.Sprintf("render: vertex shader %d does not exist", vertex))
	}
	if !r.shaders.Has(uint16(fragment)) {
		panic(fmt.Sprintf("render: fragment shader %d does not exist", fragment))
	}

	id, err := r.programs.Create()
	if err != nil {
		return 0, fmt.Errorf("render: create program: %w", err)
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpCreateProgram)
	c.WriteUint16(id)
	c.WriteUint16(uint16(vertex))
	c.WriteUint16(uint16(fragment))
	return ProgramID(id), nil
}

// DestroyProgram destroys the given program.
func (r *Renderer) DestroyProgram(id ProgramID) {
	r.ensureRunning()
	if !r.programs.Has(uint16(id)) {
		panic(fmt.Sprintf("render: program %d does not exist", id))
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpDestroyProgram)
	c.WriteUint16(uint16(id))
	r.programs.Destroy(uint16(id))
}

// CreateUniform creates a named uniform with storage for count elements of
// the given type. The name must be shorter than MaxUniformNameLength and must
// not collide with the stock uniform namespace; violating either is a
// precondition failure, checked before anything is queued.
func (r *Renderer) CreateUniform(name string, typ UniformType, count uint8) (UniformID, error) {
	r.ensureRunning()
	if IsStockUniform(name) {
		panic(fmt.Sprintf("render: uniform name %q is a stock uniform", name))
	}
	if len(name) == 0 || len(name) >= MaxUniformNameLength {
		panic(fmt.Sprintf("render: uniform name length %d out of range [1, %d)", len(name), MaxUniformNameLength))
	}
	if count == 0 {
		panic("render: uniform element count must be positive")
	}
	typ.SizeBytes() // validates the type

	id, err := r.uniforms.Create()
	if err != nil {
		return 0, fmt.Errorf("render: create uniform: %w", err)
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpCreateUniform)
	c.WriteUint16(id)
	c.WriteString(name)
	c.WriteUint8(uint8(typ))
	c.WriteUint8(count)
	return UniformID(id), nil
}

// DestroyUniform destroys the given uniform.
func (r *Renderer) DestroyUniform(id UniformID) {
	r.ensureRunning()
	if !r.uniforms.Has(uint16(id)) {
		panic(fmt.Sprintf("render: uniform %d does not exist", id))
	}

	c := r.submit.commands
	c.WriteOp(cmdbuf.OpDestroyUniform)
	c.WriteUint16(uint16(id))
	r.uniforms.Destroy(uint16(id))
}

// CreateRenderTarget allocates a render target handle. Render targets have
// no backend-side lifecycle commands; the handle only names a layer binding,
// and dispatchers resolve it from the layer state at render time.
func (r *Renderer) CreateRenderTarget() (RenderTargetID, error) {
	r.ensureRunning()
	id, err := r.renderTargets.Create()
	if err != nil {
		return 0, fmt.Errorf("render: create render target: %w", err)
	}
	return RenderTargetID(id), nil
}

// DestroyRenderTarget frees a render target handle.
func (r *Renderer) DestroyRenderTarget(id RenderTargetID) {
	r.ensureRunning()
	if !r.renderTargets.Has(uint16(id)) {
		panic(fmt.Sprintf("render: render target %d does not exist", id))
	}
	r.renderTargets.Destroy(uint16(id))
}

// SetUniform buffers a uniform value update for this frame. data must be a
// whole number of elements of the uniform's type; the bytes are copied into
// the constant stream.
func (r *Renderer) SetUniform(id UniformID, typ UniformType, data []byte) {
	r.ensureRunning()
	if !r.uniforms.Has(uint16(id)) {
		panic(fmt.Sprintf("render: uniform %d does not exist", id))
	}
	if len(data) == 0 || len(data)%typ.SizeBytes() != 0 {
		panic(fmt.Sprintf("render: uniform data is %d bytes, want a positive multiple of %d (%s)",
			len(data), typ.SizeBytes(), typ))
	}
	r.submit.constants.Write(uint8(typ), uint16(id), data)
}

// SetState sets the raw draw state flags for subsequent commits.
func (r *Renderer) SetState(flags uint64) {
	r.ensureRunning()
	r.submit.state.flags = flags
}

// SetPose sets the model transform for subsequent commits.
func (r *Renderer) SetPose(pose math32.Matrix4) {
	r.ensureRunning()
	r.submit.state.pose = pose
}

// SetProgram binds a program for subsequent commits.
func (r *Renderer) SetProgram(id ProgramID) {
	r.ensureRunning()
	if !r.programs.Has(uint16(id)) {
		panic(fmt.Sprintf("render: program %d does not exist", id))
	}
	r.submit.state.program = id
	r.submit.state.hasProgram = true
}

// SetVertexBuffer binds a vertex buffer for subsequent commits.
func (r *Renderer) SetVertexBuffer(id VertexBufferID) {
	r.ensureRunning()
	if !r.vertexBuffers.Has(uint16(id)) {
		panic(fmt.Sprintf("render: vertex buffer %d does not exist", id))
	}
	r.submit.state.vertexBuffer = id
	r.submit.state.hasVertexBuffer = true
}

// SetIndexBuffer binds an index buffer for subsequent commits, drawing the
// whole buffer.
func (r *Renderer) SetIndexBuffer(id IndexBufferID) {
	r.SetIndexBufferRange(id, 0, maxIndexRange)
}

// SetIndexBufferRange binds an index buffer subrange for subsequent commits.
func (r *Renderer) SetIndexBufferRange(id IndexBufferID, start, count uint32) {
	r.ensureRunning()
	if !r.indexBuffers.Has(uint16(id)) {
		panic(fmt.Sprintf("render: index buffer %d does not exist", id))
	}
	r.submit.state.indexBuffer = id
	r.submit.state.hasIndexBuffer = true
	r.submit.state.indexStart = start
	r.submit.state.indexCount = count
}

// SetTexture binds a texture and its sampler uniform to a texture unit for
// subsequent commits.
func (r *Renderer) SetTexture(unit uint8, sampler UniformID, texture TextureID, flags uint32) {
	r.ensureRunning()
	if int(unit) >= MaxTextureUnits {
		panic(fmt.Sprintf("render: texture unit %d out of range (max %d)", unit, MaxTextureUnits-1))
	}
	if !r.uniforms.Has(uint16(sampler)) {
		panic(fmt.Sprintf("render: uniform %d does not exist", sampler))
	}
	if !r.textures.Has(uint16(texture)) {
		panic(fmt.Sprintf("render: texture %d does not exist", texture))
	}
	r.submit.state.textures[unit] = TextureBinding{
		Sampler: sampler,
		Texture: texture,
		Flags:   flags,
		Valid:   true,
	}
}

// SetLayerClear configures which buffers the layer clears and with what
// values.
func (r *Renderer) SetLayerClear(layer uint8, flags ClearFlag, color Color, depth float32) {
	r.ensureRunning()
	l := r.submit.layer(layer)
	l.Clear = flags
	l.ClearColor = color
	l.ClearDepth = depth
}

// SetLayerView sets the layer's view matrix.
func (r *Renderer) SetLayerView(layer uint8, view math32.Matrix4) {
	r.ensureRunning()
	r.submit.layer(layer).View = view
}

// SetLayerProjection sets the layer's projection matrix.
func (r *Renderer) SetLayerProjection(layer uint8, projection math32.Matrix4) {
	r.ensureRunning()
	r.submit.layer(layer).Projection = projection
}

// SetLayerViewport sets the layer's viewport rectangle.
func (r *Renderer) SetLayerViewport(layer uint8, x, y, width, height uint16) {
	r.ensureRunning()
	r.submit.layer(layer).Viewport = Rect{X: x, Y: y, Width: width, Height: height}
}

// SetLayerScissor sets the layer's scissor rectangle.
func (r *Renderer) SetLayerScissor(layer uint8, x, y, width, height uint16) {
	r.ensureRunning()
	r.submit.layer(layer).Scissor = Rect{X: x, Y: y, Width: width, Height: height}
}

// SetLayerRenderTarget binds a render target to the layer.
func (r *Renderer) SetLayerRenderTarget(layer uint8, id RenderTargetID) {
	r.ensureRunning()
	if !r.renderTargets.Has(uint16(id)) {
		panic(fmt.Sprintf("render: render target %d does not exist", id))
	}
	l := r.submit.layer(layer)
	l.Target = id
	l.HasTarget = true
}

// Commit finalizes the accumulated bind state into one draw unit on the
// given layer.
func (r *Renderer) Commit(layer uint8) {
	r.ensureRunning()
	r.submit.commit(layer)
}
