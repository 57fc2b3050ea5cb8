package render

import (
	"github.com/gogpu/gputypes"
)

// PixelFormat specifies the pixel format of texture data.
// Formats come from the gputypes ecosystem so that texture data can flow to
// wgpu-based dispatchers without translation at the API boundary.
type PixelFormat = gputypes.TextureFormat

// Commonly used pixel formats re-exported for convenience.
const (
	PixelFormatRGBA8 = gputypes.TextureFormatRGBA8Unorm
	PixelFormatBGRA8 = gputypes.TextureFormatBGRA8Unorm
	PixelFormatR8    = gputypes.TextureFormatR8Unorm
)

// VertexFormat identifies the per-vertex attribute layout of a vertex buffer.
// Each format has a fixed stride; vertex data handed to CreateVertexBuffer
// must be exactly count*Stride() bytes.
type VertexFormat uint8

const (
	// VertexFormatPosition is position only: 3 float32.
	VertexFormatPosition VertexFormat = iota

	// VertexFormatPositionNormal is position + normal: 6 float32.
	VertexFormatPositionNormal

	// VertexFormatPositionTexcoord is position + UV: 5 float32.
	VertexFormatPositionTexcoord

	// VertexFormatPositionNormalTexcoord is position + normal + UV: 8 float32.
	VertexFormatPositionNormalTexcoord

	// VertexFormatPositionColor is position + RGBA color: 7 float32.
	VertexFormatPositionColor

	vertexFormatCount
)

// vertexFormatStrides maps each format to its stride in bytes.
var vertexFormatStrides = [...]uint32{
	VertexFormatPosition:               3 * 4,
	VertexFormatPositionNormal:         6 * 4,
	VertexFormatPositionTexcoord:       5 * 4,
	VertexFormatPositionNormalTexcoord: 8 * 4,
	VertexFormatPositionColor:          7 * 4,
}

// Stride returns the size in bytes of one vertex of this format.
func (f VertexFormat) Stride() uint32 {
	if f >= vertexFormatCount {
		panic("render: unknown vertex format")
	}
	return vertexFormatStrides[f]
}

// String returns a human-readable name for the vertex format.
func (f VertexFormat) String() string {
	switch f {
	case VertexFormatPosition:
		return "Position"
	case VertexFormatPositionNormal:
		return "PositionNormal"
	case VertexFormatPositionTexcoord:
		return "PositionTexcoord"
	case VertexFormatPositionNormalTexcoord:
		return "PositionNormalTexcoord"
	case VertexFormatPositionColor:
		return "PositionColor"
	default:
		return "Unknown"
	}
}

// IndexSize is the size in bytes of one index element. Index buffers hold
// uint16 indices.
const IndexSize = 2

// ShaderStage identifies the pipeline stage a shader runs in.
type ShaderStage uint8

const (
	// ShaderStageVertex is a vertex shader.
	ShaderStageVertex ShaderStage = iota

	// ShaderStageFragment is a fragment (pixel) shader.
	ShaderStageFragment
)

// String returns a human-readable name for the shader stage.
func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "Vertex"
	case ShaderStageFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// UniformType identifies the element type of a shader uniform.
type UniformType uint8

const (
	UniformTypeInt UniformType = iota
	UniformTypeFloat
	UniformTypeVec2
	UniformTypeVec3
	UniformTypeVec4
	UniformTypeMat3
	UniformTypeMat4

	uniformTypeCount
)

// uniformTypeSizes maps each uniform type to the size in bytes of one element.
var uniformTypeSizes = [...]int{
	UniformTypeInt:   4,
	UniformTypeFloat: 4,
	UniformTypeVec2:  2 * 4,
	UniformTypeVec3:  3 * 4,
	UniformTypeVec4:  4 * 4,
	UniformTypeMat3:  9 * 4,
	UniformTypeMat4:  16 * 4,
}

// SizeBytes returns the size in bytes of one element of this type.
func (t UniformType) SizeBytes() int {
	if t >= uniformTypeCount {
		panic("render: unknown uniform type")
	}
	return uniformTypeSizes[t]
}

// String returns a human-readable name for the uniform type.
func (t UniformType) String() string {
	switch t {
	case UniformTypeInt:
		return "Int"
	case UniformTypeFloat:
		return "Float"
	case UniformTypeVec2:
		return "Vec2"
	case UniformTypeVec3:
		return "Vec3"
	case UniformTypeVec4:
		return "Vec4"
	case UniformTypeMat3:
		return "Mat3"
	case UniformTypeMat4:
		return "Mat4"
	default:
		return "Unknown"
	}
}

// MaxUniformNameLength is the maximum length of a uniform name, exclusive.
const MaxUniformNameLength = 32

// stockUniforms is the reserved uniform namespace. These names are bound
// automatically by dispatchers from per-layer and per-draw state and may not
// be claimed by CreateUniform.
var stockUniforms = map[string]struct{}{
	"u_view":                  {},
	"u_projection":            {},
	"u_view_projection":       {},
	"u_model":                 {},
	"u_model_view":            {},
	"u_model_view_projection": {},
	"u_time":                  {},
}

// IsStockUniform reports whether name belongs to the reserved stock uniform
// namespace.
func IsStockUniform(name string) bool {
	_, ok := stockUniforms[name]
	return ok
}
