package render

import (
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/duskforge/render/cmdbuf"
)

// drawState is the bind state accumulated between Commit calls: the program,
// buffers, pose, state flags and texture units the next committed draw will
// carry.
type drawState struct {
	flags uint64
	pose  math32.Matrix4

	program    ProgramID
	hasProgram bool

	vertexBuffer    VertexBufferID
	hasVertexBuffer bool

	indexBuffer    IndexBufferID
	hasIndexBuffer bool
	indexStart     uint32
	indexCount     uint32

	textures [MaxTextureUnits]TextureBinding
}

// defaultDrawState returns the bind state every frame starts with.
func defaultDrawState() drawState {
	s := drawState{indexCount: maxIndexRange}
	s.pose.SetIdentity()
	return s
}

// RenderContext is one side of the double buffer: a command stream, a
// constant stream, the per-layer state and the committed draws of exactly one
// frame. Two instances exist for the lifetime of a Renderer; they swap roles
// (submit/draw) by reference at each frame handshake and are cleared, never
// reallocated, after each decode pass.
type RenderContext struct {
	commands  *cmdbuf.Buffer
	constants *cmdbuf.ConstantBuffer

	layers [MaxLayers]LayerState
	draws  []DrawCall
	state  drawState

	maxDraws int
}

// newRenderContext creates a frame context with the given stream capacities.
func newRenderContext(commandCapacity, constantCapacity, maxDraws int) *RenderContext {
	ctx := &RenderContext{
		commands:  cmdbuf.NewBuffer(commandCapacity),
		constants: cmdbuf.NewConstantBuffer(constantCapacity),
		draws:     make([]DrawCall, 0, maxDraws),
		maxDraws:  maxDraws,
	}
	ctx.reset()
	return ctx
}

// reset clears the streams and restores default layer and bind state.
// Backing storage is retained.
func (c *RenderContext) reset() {
	c.commands.Clear()
	c.constants.Clear()
	for i := range c.layers {
		c.layers[i] = defaultLayerState()
	}
	c.draws = c.draws[:0]
	c.state = defaultDrawState()
}

// finish terminates both streams for submission.
func (c *RenderContext) finish() {
	c.commands.WriteOp(cmdbuf.OpEnd)
	c.constants.Finish()
}

// commit captures the current bind state as one draw unit on the given layer.
func (c *RenderContext) commit(layer uint8) {
	if int(layer) >= MaxLayers {
		panic(fmt.Sprintf("render: layer %d out of range (max %d)", layer, MaxLayers-1))
	}
	if len(c.draws) >= c.maxDraws {
		panic(fmt.Sprintf("render: draw budget exhausted (%d draws per frame)", c.maxDraws))
	}
	c.draws = append(c.draws, DrawCall{
		Layer:           layer,
		Flags:           c.state.flags,
		Pose:            c.state.pose,
		Program:         c.state.program,
		HasProgram:      c.state.hasProgram,
		VertexBuffer:    c.state.vertexBuffer,
		HasVertexBuffer: c.state.hasVertexBuffer,
		IndexBuffer:     c.state.indexBuffer,
		HasIndexBuffer:  c.state.hasIndexBuffer,
		IndexStart:      c.state.indexStart,
		IndexCount:      c.state.indexCount,
		Textures:        c.state.textures,
	})
}

// layer returns the layer state for mutation, panicking on a bad index.
func (c *RenderContext) layer(i uint8) *LayerState {
	if int(i) >= MaxLayers {
		panic(fmt.Sprintf("render: layer %d out of range (max %d)", i, MaxLayers-1))
	}
	return &c.layers[i]
}

// frame returns the decoded view handed to the dispatcher. The view aliases
// the context and is valid only until reset.
func (c *RenderContext) frame() *Frame {
	return &Frame{
		Layers: c.layers,
		Draws:  c.draws,
	}
}
