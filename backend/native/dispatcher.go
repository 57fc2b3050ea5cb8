//go:build !nogpu

package native

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	types "github.com/gogpu/gputypes"

	"github.com/duskforge/render"
	"github.com/duskforge/render/backend"
)

type vertexBuffer struct {
	buf    hal.Buffer
	count  uint32
	format render.VertexFormat
}

type indexBuffer struct {
	buf   hal.Buffer
	count uint32
}

type texture struct {
	tex           hal.Texture
	width, height uint32
	format        render.PixelFormat
}

type shader struct {
	module hal.ShaderModule
	stage  render.ShaderStage
}

type program struct {
	vertex   render.ShaderID
	fragment render.ShaderID
}

type uniform struct {
	name  string
	typ   render.UniformType
	count uint8
	data  []byte
}

// Dispatcher maps renderer handles to hal resources. All methods run on the
// renderer's consumer goroutine, so no locking is needed.
type Dispatcher struct {
	device hal.Device
	queue  hal.Queue

	vertexBuffers map[render.VertexBufferID]*vertexBuffer
	indexBuffers  map[render.IndexBufferID]*indexBuffer
	textures      map[render.TextureID]*texture
	shaders       map[render.ShaderID]*shader
	programs      map[render.ProgramID]*program
	uniforms      map[render.UniformID]*uniform

	initialized bool
}

var _ render.Dispatcher = (*Dispatcher)(nil)

// New creates a native dispatcher on the given device and queue. The caller
// keeps ownership of both; Shutdown releases only the resources the
// dispatcher created.
func New(device hal.Device, queue hal.Queue) *Dispatcher {
	return &Dispatcher{
		device:        device,
		queue:         queue,
		vertexBuffers: make(map[render.VertexBufferID]*vertexBuffer),
		indexBuffers:  make(map[render.IndexBufferID]*indexBuffer),
		textures:      make(map[render.TextureID]*texture),
		shaders:       make(map[render.ShaderID]*shader),
		programs:      make(map[render.ProgramID]*program),
		uniforms:      make(map[render.UniformID]*uniform),
	}
}

// RegisterWith registers a factory for the given device and queue under the
// "native" name, making it selectable through backend.Get and
// backend.Default.
func RegisterWith(device hal.Device, queue hal.Queue) {
	backend.Register(backend.Native, func() render.Dispatcher {
		return New(device, queue)
	})
}

func (d *Dispatcher) Name() string { return backend.Native }

func (d *Dispatcher) Init() error {
	if d.device == nil || d.queue == nil {
		return fmt.Errorf("native: init: %w", backend.ErrNotAvailable)
	}
	d.initialized = true
	render.Logger().Info("native: initialized")
	return nil
}

func (d *Dispatcher) Shutdown() {
	for id, vb := range d.vertexBuffers {
		d.device.DestroyBuffer(vb.buf)
		delete(d.vertexBuffers, id)
	}
	for id, ib := range d.indexBuffers {
		d.device.DestroyBuffer(ib.buf)
		delete(d.indexBuffers, id)
	}
	for id, t := range d.textures {
		d.device.DestroyTexture(t.tex)
		delete(d.textures, id)
	}
	for id, s := range d.shaders {
		d.device.DestroyShaderModule(s.module)
		delete(d.shaders, id)
	}
	for id := range d.programs {
		delete(d.programs, id)
	}
	for id := range d.uniforms {
		delete(d.uniforms, id)
	}
	d.initialized = false
	render.Logger().Info("native: shut down")
}

// Render walks the frame's draws, resolving every handle against the
// resource maps.
//
// TODO: encode a hal render pass per layer (pipeline from the draw's
// program, vertex/index bindings, clear from the layer state) once the
// render pipeline wiring here grows beyond resource management.
func (d *Dispatcher) Render(f *render.Frame) error {
	if !d.initialized {
		return fmt.Errorf("native: render: %w", backend.ErrNotInitialized)
	}

	for i := range f.Draws {
		dc := &f.Draws[i]
		if dc.HasProgram {
			if _, ok := d.programs[dc.Program]; !ok {
				return fmt.Errorf("native: draw %d references unknown program %d", i, dc.Program)
			}
		}
		if dc.HasVertexBuffer {
			if _, ok := d.vertexBuffers[dc.VertexBuffer]; !ok {
				return fmt.Errorf("native: draw %d references unknown vertex buffer %d", i, dc.VertexBuffer)
			}
		}
		if dc.HasIndexBuffer {
			if _, ok := d.indexBuffers[dc.IndexBuffer]; !ok {
				return fmt.Errorf("native: draw %d references unknown index buffer %d", i, dc.IndexBuffer)
			}
		}
		for unit := range dc.Textures {
			b := &dc.Textures[unit]
			if !b.Valid {
				continue
			}
			if _, ok := d.textures[b.Texture]; !ok {
				return fmt.Errorf("native: draw %d unit %d references unknown texture %d", i, unit, b.Texture)
			}
			if _, ok := d.uniforms[b.Sampler]; !ok {
				return fmt.Errorf("native: draw %d unit %d references unknown sampler uniform %d", i, unit, b.Sampler)
			}
		}
	}

	render.Logger().Debug("native: render", "draws", len(f.Draws))
	return nil
}

func (d *Dispatcher) createBuffer(size uint64, usage types.BufferUsage, data []byte) (hal.Buffer, error) {
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Size:  size,
		Usage: usage | types.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		d.queue.WriteBuffer(buf, 0, data)
	}
	return buf, nil
}

func (d *Dispatcher) CreateVertexBuffer(id render.VertexBufferID, count uint32, format render.VertexFormat, data []byte) error {
	size := uint64(count) * uint64(format.Stride())
	buf, err := d.createBuffer(size, types.BufferUsageVertex, data)
	if err != nil {
		return fmt.Errorf("native: create vertex buffer: %w", err)
	}
	d.vertexBuffers[id] = &vertexBuffer{buf: buf, count: count, format: format}
	return nil
}

func (d *Dispatcher) CreateDynamicVertexBuffer(id render.VertexBufferID, count uint32, format render.VertexFormat) error {
	return d.CreateVertexBuffer(id, count, format, nil)
}

func (d *Dispatcher) UpdateVertexBuffer(id render.VertexBufferID, offset, count uint32, data []byte) error {
	vb, ok := d.vertexBuffers[id]
	if !ok {
		return fmt.Errorf("native: update of unknown vertex buffer %d", id)
	}
	d.queue.WriteBuffer(vb.buf, uint64(offset)*uint64(vb.format.Stride()), data)
	return nil
}

func (d *Dispatcher) DestroyVertexBuffer(id render.VertexBufferID) {
	if vb, ok := d.vertexBuffers[id]; ok {
		d.device.DestroyBuffer(vb.buf)
		delete(d.vertexBuffers, id)
	}
}

func (d *Dispatcher) CreateIndexBuffer(id render.IndexBufferID, count uint32, data []byte) error {
	size := uint64(count) * render.IndexSize
	buf, err := d.createBuffer(size, types.BufferUsageIndex, data)
	if err != nil {
		return fmt.Errorf("native: create index buffer: %w", err)
	}
	d.indexBuffers[id] = &indexBuffer{buf: buf, count: count}
	return nil
}

func (d *Dispatcher) CreateDynamicIndexBuffer(id render.IndexBufferID, count uint32) error {
	return d.CreateIndexBuffer(id, count, nil)
}

func (d *Dispatcher) UpdateIndexBuffer(id render.IndexBufferID, offset, count uint32, data []byte) error {
	ib, ok := d.indexBuffers[id]
	if !ok {
		return fmt.Errorf("native: update of unknown index buffer %d", id)
	}
	d.queue.WriteBuffer(ib.buf, uint64(offset)*render.IndexSize, data)
	return nil
}

func (d *Dispatcher) DestroyIndexBuffer(id render.IndexBufferID) {
	if ib, ok := d.indexBuffers[id]; ok {
		d.device.DestroyBuffer(ib.buf)
		delete(d.indexBuffers, id)
	}
}

func (d *Dispatcher) CreateTexture(id render.TextureID, width, height uint32, format render.PixelFormat, data []byte) error {
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Size: hal.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        textureFormat(format),
		Usage:         types.TextureUsageTextureBinding | types.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("native: create texture: %w", err)
	}
	d.textures[id] = &texture{tex: tex, width: width, height: height, format: format}
	if len(data) > 0 {
		d.writeTexture(d.textures[id], 0, 0, width, height, data)
	}
	return nil
}

func (d *Dispatcher) UpdateTexture(id render.TextureID, x, y, width, height uint32, data []byte) error {
	t, ok := d.textures[id]
	if !ok {
		return fmt.Errorf("native: update of unknown texture %d", id)
	}
	d.writeTexture(t, x, y, width, height, data)
	return nil
}

func (d *Dispatcher) writeTexture(t *texture, x, y, width, height uint32, data []byte) {
	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: x, Y: y, Z: 0},
			Aspect:   types.TextureAspectAll,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  width * bytesPerPixel(t.format),
			RowsPerImage: height,
		},
		&hal.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)
}

func (d *Dispatcher) DestroyTexture(id render.TextureID) {
	if t, ok := d.textures[id]; ok {
		d.device.DestroyTexture(t.tex)
		delete(d.textures, id)
	}
}

func (d *Dispatcher) CreateShader(id render.ShaderID, stage render.ShaderStage, source string) error {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return fmt.Errorf("native: compile %s shader: %w", stage, err)
	}

	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: fmt.Sprintf("shader_%d", id),
		Source: hal.ShaderSource{
			SPIRV: spirv,
		},
	})
	if err != nil {
		return fmt.Errorf("native: create shader module: %w", err)
	}

	d.shaders[id] = &shader{module: module, stage: stage}
	return nil
}

func (d *Dispatcher) DestroyShader(id render.ShaderID) {
	if s, ok := d.shaders[id]; ok {
		d.device.DestroyShaderModule(s.module)
		delete(d.shaders, id)
	}
}

func (d *Dispatcher) CreateProgram(id render.ProgramID, vertex, fragment render.ShaderID) error {
	if _, ok := d.shaders[vertex]; !ok {
		return fmt.Errorf("native: program %d references unknown vertex shader %d", id, vertex)
	}
	if _, ok := d.shaders[fragment]; !ok {
		return fmt.Errorf("native: program %d references unknown fragment shader %d", id, fragment)
	}
	d.programs[id] = &program{vertex: vertex, fragment: fragment}
	return nil
}

func (d *Dispatcher) DestroyProgram(id render.ProgramID) {
	delete(d.programs, id)
}

func (d *Dispatcher) CreateUniform(id render.UniformID, name string, typ render.UniformType, count uint8) error {
	d.uniforms[id] = &uniform{
		name:  name,
		typ:   typ,
		count: count,
		data:  make([]byte, typ.SizeBytes()*int(count)),
	}
	return nil
}

func (d *Dispatcher) DestroyUniform(id render.UniformID) {
	delete(d.uniforms, id)
}

func (d *Dispatcher) UpdateUniform(id render.UniformID, typ render.UniformType, data []byte) {
	u, ok := d.uniforms[id]
	if !ok {
		return
	}
	copy(u.data, data)
}
