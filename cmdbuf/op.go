// Package cmdbuf provides the binary command and constant streams exchanged
// between the frame-building goroutine and the render consumer.
//
// A command stream is a sequence of op-discriminated, variable-length records.
// There is no embedded framing: the reader reconstructs every payload from the
// op alone, because writer and reader agree statically, call for call, on the
// exact sequence of typed writes and reads for each op. That symmetry is the
// entire correctness argument of the codec. Every stream ends with OpEnd.
package cmdbuf

import "fmt"

// Op is the single-byte discriminant identifying a command record.
// Each op has a fixed payload layout documented in its comment; strings and
// raw data arrays always travel as length-prefixed byte runs.
type Op uint8

const (
	// OpInitRenderer initializes the backend. Payload: none.
	OpInitRenderer Op = iota

	// OpShutdownRenderer shuts the backend down and ends the consumer loop.
	// Payload: none.
	OpShutdownRenderer

	// OpCreateVertexBuffer creates a static vertex buffer.
	// Payload: id uint16, count uint32, format uint8, data bytes.
	OpCreateVertexBuffer

	// OpCreateDynamicVertexBuffer allocates an updatable vertex buffer.
	// Payload: id uint16, count uint32, format uint8.
	OpCreateDynamicVertexBuffer

	// OpUpdateVertexBuffer overwrites part of a vertex buffer.
	// Payload: id uint16, offset uint32, count uint32, data bytes.
	OpUpdateVertexBuffer

	// OpDestroyVertexBuffer destroys a vertex buffer. Payload: id uint16.
	OpDestroyVertexBuffer

	// OpCreateIndexBuffer creates a static index buffer.
	// Payload: id uint16, count uint32, data bytes.
	OpCreateIndexBuffer

	// OpCreateDynamicIndexBuffer allocates an updatable index buffer.
	// Payload: id uint16, count uint32.
	OpCreateDynamicIndexBuffer

	// OpUpdateIndexBuffer overwrites part of an index buffer.
	// Payload: id uint16, offset uint32, count uint32, data bytes.
	OpUpdateIndexBuffer

	// OpDestroyIndexBuffer destroys an index buffer. Payload: id uint16.
	OpDestroyIndexBuffer

	// OpCreateTexture creates a texture.
	// Payload: id uint16, width uint32, height uint32, format uint32,
	// data bytes.
	OpCreateTexture

	// OpUpdateTexture overwrites a texture region.
	// Payload: id uint16, x uint32, y uint32, width uint32, height uint32,
	// data bytes.
	OpUpdateTexture

	// OpDestroyTexture destroys a texture. Payload: id uint16.
	OpDestroyTexture

	// OpCreateShader compiles a shader stage from source text.
	// Payload: id uint16, stage uint8, source bytes.
	OpCreateShader

	// OpDestroyShader destroys a shader. Payload: id uint16.
	OpDestroyShader

	// OpCreateProgram links a vertex and a fragment shader.
	// Payload: id uint16, vertex uint16, fragment uint16.
	OpCreateProgram

	// OpDestroyProgram destroys a program. Payload: id uint16.
	OpDestroyProgram

	// OpCreateUniform creates a named uniform.
	// Payload: id uint16, name bytes, type uint8, count uint8.
	OpCreateUniform

	// OpDestroyUniform destroys a uniform. Payload: id uint16.
	OpDestroyUniform

	// OpEnd terminates a command stream. Payload: none.
	OpEnd
)

// opNames maps Op values to their string representation.
var opNames = [...]string{
	OpInitRenderer:              "InitRenderer",
	OpShutdownRenderer:          "ShutdownRenderer",
	OpCreateVertexBuffer:        "CreateVertexBuffer",
	OpCreateDynamicVertexBuffer: "CreateDynamicVertexBuffer",
	OpUpdateVertexBuffer:        "UpdateVertexBuffer",
	OpDestroyVertexBuffer:       "DestroyVertexBuffer",
	OpCreateIndexBuffer:         "CreateIndexBuffer",
	OpCreateDynamicIndexBuffer:  "CreateDynamicIndexBuffer",
	OpUpdateIndexBuffer:         "UpdateIndexBuffer",
	OpDestroyIndexBuffer:        "DestroyIndexBuffer",
	OpCreateTexture:             "CreateTexture",
	OpUpdateTexture:             "UpdateTexture",
	OpDestroyTexture:            "DestroyTexture",
	OpCreateShader:              "CreateShader",
	OpDestroyShader:             "DestroyShader",
	OpCreateProgram:             "CreateProgram",
	OpDestroyProgram:            "DestroyProgram",
	OpCreateUniform:             "CreateUniform",
	OpDestroyUniform:            "DestroyUniform",
	OpEnd:                       "End",
}

// String returns the string representation of an Op.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}
