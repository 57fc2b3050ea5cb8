package render

import "github.com/duskforge/render/cmdbuf"

// Option configures a Renderer during creation.
// Use functional options to size the handle tables and frame streams.
//
// Example:
//
//	// Default capacities
//	r := render.New(dispatcher)
//
//	// A texture-heavy title
//	r := render.New(dispatcher, render.WithMaxTextures(8192))
type Option func(*options)

// options holds the constructor-time capacities of a Renderer. Every value
// is fixed for the Renderer's lifetime; exceeding one at runtime is a sizing
// problem, not a transient error.
type options struct {
	maxVertexBuffers int
	maxIndexBuffers  int
	maxTextures      int
	maxShaders       int
	maxPrograms      int
	maxUniforms      int
	maxRenderTargets int

	commandCapacity  int
	constantCapacity int
	maxDraws         int
}

// defaultOptions returns the default renderer capacities.
func defaultOptions() options {
	return options{
		maxVertexBuffers: 4096,
		maxIndexBuffers:  4096,
		maxTextures:      4096,
		maxShaders:       512,
		maxPrograms:      512,
		maxUniforms:      128,
		maxRenderTargets: 16,
		commandCapacity:  cmdbuf.DefaultCapacity,
		constantCapacity: cmdbuf.DefaultCapacity / 4,
		maxDraws:         4096,
	}
}

// WithMaxVertexBuffers sets the vertex buffer handle table capacity.
func WithMaxVertexBuffers(n int) Option {
	return func(o *options) { o.maxVertexBuffers = n }
}

// WithMaxIndexBuffers sets the index buffer handle table capacity.
func WithMaxIndexBuffers(n int) Option {
	return func(o *options) { o.maxIndexBuffers = n }
}

// WithMaxTextures sets the texture handle table capacity.
func WithMaxTextures(n int) Option {
	return func(o *options) { o.maxTextures = n }
}

// WithMaxShaders sets the shader handle table capacity.
func WithMaxShaders(n int) Option {
	return func(o *options) { o.maxShaders = n }
}

// WithMaxPrograms sets the program handle table capacity.
func WithMaxPrograms(n int) Option {
	return func(o *options) { o.maxPrograms = n }
}

// WithMaxUniforms sets the uniform handle table capacity.
func WithMaxUniforms(n int) Option {
	return func(o *options) { o.maxUniforms = n }
}

// WithMaxRenderTargets sets the render target handle table capacity.
func WithMaxRenderTargets(n int) Option {
	return func(o *options) { o.maxRenderTargets = n }
}

// WithCommandCapacity sets the byte capacity of each frame's command stream.
func WithCommandCapacity(n int) Option {
	return func(o *options) { o.commandCapacity = n }
}

// WithConstantCapacity sets the byte capacity of each frame's constant stream.
func WithConstantCapacity(n int) Option {
	return func(o *options) { o.constantCapacity = n }
}

// WithMaxDraws sets the maximum number of committed draws per frame.
func WithMaxDraws(n int) Option {
	return func(o *options) { o.maxDraws = n }
}
