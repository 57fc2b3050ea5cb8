package render

import (
	"cogentcore.org/core/math32"
)

// MaxLayers is the number of independently configurable draw layers per frame.
const MaxLayers = 8

// MaxTextureUnits is the number of texture sampler units per draw.
const MaxTextureUnits = 8

// ClearFlag selects which buffers a layer clears before drawing.
type ClearFlag uint8

const (
	// ClearColor clears the color buffer.
	ClearColor ClearFlag = 1 << iota

	// ClearDepth clears the depth buffer.
	ClearDepth
)

// Color is an RGBA color with float32 components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Rect is an axis-aligned screen rectangle in pixels.
type Rect struct {
	X, Y, Width, Height uint16
}

// IsZero reports whether the rectangle is the zero value.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// LayerState is the accumulated render state of one draw layer.
// Layers are configured through the Renderer's SetLayer* calls and reset to
// defaults after each decoded frame.
type LayerState struct {
	// Clear selects which buffers to clear at the start of the layer.
	Clear ClearFlag

	// ClearColor is the color buffer clear value.
	ClearColor Color

	// ClearDepth is the depth buffer clear value.
	ClearDepth float32

	// View transforms world coordinates into camera coordinates.
	View math32.Matrix4

	// Projection transforms camera coordinates into clip coordinates.
	Projection math32.Matrix4

	// Viewport is the layer's viewport rectangle. Zero means full target.
	Viewport Rect

	// Scissor is the layer's scissor rectangle. Zero disables scissoring.
	Scissor Rect

	// Target is the bound render target. Valid only when HasTarget is true;
	// otherwise the layer draws to the default backbuffer.
	Target    RenderTargetID
	HasTarget bool
}

// defaultLayerState returns a layer reset to identity matrices and no
// clearing, the state every layer starts each frame with.
func defaultLayerState() LayerState {
	l := LayerState{ClearDepth: 1}
	l.View.SetIdentity()
	l.Projection.SetIdentity()
	return l
}

// TextureBinding binds a texture to a sampler uniform on one texture unit.
type TextureBinding struct {
	Sampler UniformID
	Texture TextureID
	Flags   uint32
	Valid   bool
}

// DrawCall is one committed draw unit: the bind state accumulated between
// state-setting calls, captured by Commit for a single layer.
type DrawCall struct {
	Layer uint8

	// Flags is the raw draw state word (blend, depth test, culling);
	// interpretation belongs to the dispatcher.
	Flags uint64

	// Pose is the model transform for this draw.
	Pose math32.Matrix4

	Program    ProgramID
	HasProgram bool

	VertexBuffer    VertexBufferID
	HasVertexBuffer bool

	IndexBuffer    IndexBufferID
	HasIndexBuffer bool

	// IndexStart and IndexCount select the index subrange to draw.
	// IndexCount of maxIndexRange means the whole buffer.
	IndexStart uint32
	IndexCount uint32

	Textures [MaxTextureUnits]TextureBinding
}

// maxIndexRange marks "draw the whole index buffer".
const maxIndexRange = 0xFFFFFFFF

// Frame is the decoded view of one frame handed to a Dispatcher's Render:
// the per-layer state plus the draw units committed into it, in commit order.
// The Frame and its Draws slice are valid only for the duration of the Render
// call.
type Frame struct {
	Layers [MaxLayers]LayerState
	Draws  []DrawCall
}
