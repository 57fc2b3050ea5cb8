package cmdbuf

// ConstantEnd is the type tag terminating a constant stream. Uniform type
// values must stay below it.
const ConstantEnd = 0xFF

// ConstantBuffer is the per-frame uniform update stream: a run of
// {type tag, uniform handle, byte length, raw bytes} records terminated by
// ConstantEnd. It rides alongside the command stream in a frame context so
// that per-draw uniform data does not interleave with command payloads.
//
// Like Buffer, it has fixed capacity, panics on overflow, and is owned by a
// single goroutine at any instant.
type ConstantBuffer struct {
	buf Buffer
}

// NewConstantBuffer creates a constant stream with the given backing
// capacity in bytes.
func NewConstantBuffer(capacity int) *ConstantBuffer {
	return &ConstantBuffer{buf: Buffer{data: make([]byte, capacity)}}
}

// Write appends one uniform update record. typ is the caller's uniform type
// tag and must be below ConstantEnd. The data bytes are copied.
func (c *ConstantBuffer) Write(typ uint8, id uint16, data []byte) {
	if typ >= ConstantEnd {
		panic("cmdbuf: constant type tag collides with end sentinel")
	}
	c.buf.WriteUint8(typ)
	c.buf.WriteUint16(id)
	c.buf.WriteBytes(data)
}

// Finish appends the end sentinel. The stream must be finished exactly once
// per frame, after the last Write.
func (c *ConstantBuffer) Finish() {
	c.buf.WriteUint8(ConstantEnd)
}

// Read consumes the next record. It returns ok=false when the end sentinel
// is reached. The data slice aliases the stream until Clear.
func (c *ConstantBuffer) Read() (typ uint8, id uint16, data []byte, ok bool) {
	typ = c.buf.ReadUint8()
	if typ == ConstantEnd {
		return 0, 0, nil, false
	}
	id = c.buf.ReadUint16()
	data = c.buf.ReadBytes()
	return typ, id, data, true
}

// Clear resets the stream without deallocating backing storage.
func (c *ConstantBuffer) Clear() { c.buf.Clear() }

// Len returns the number of bytes written, including any end sentinel.
func (c *ConstantBuffer) Len() int { return c.buf.Len() }

// Cap returns the backing storage capacity in bytes.
func (c *ConstantBuffer) Cap() int { return c.buf.Cap() }
