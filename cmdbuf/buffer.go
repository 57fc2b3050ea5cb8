package cmdbuf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DefaultCapacity is the default backing storage size of a command stream.
const DefaultCapacity = 1 << 20

// Buffer is an append-only binary command stream with a fixed backing
// capacity. Writes append at the write cursor, reads advance an independent
// read cursor; Clear resets both without deallocating the storage.
//
// Overflowing the capacity is a frame-budget violation and panics; reading
// past the written end indicates a codec mismatch between the encode and
// decode call sequences and also panics. Neither is a recoverable runtime
// condition.
//
// Buffer is not safe for concurrent use. The frame handshake guarantees that
// only one goroutine owns a stream at any instant.
type Buffer struct {
	data []byte
	w, r int
}

// NewBuffer creates a stream with the given backing capacity in bytes.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		panic("cmdbuf: capacity must be positive")
	}
	return &Buffer{data: make([]byte, capacity)}
}

// next reserves n bytes at the write cursor.
func (b *Buffer) next(n int) []byte {
	if b.w+n > len(b.data) {
		panic(fmt.Sprintf("cmdbuf: stream overflow: need %d bytes, %d of %d used", n, b.w, len(b.data)))
	}
	s := b.data[b.w : b.w+n]
	b.w += n
	return s
}

// take consumes n bytes at the read cursor.
func (b *Buffer) take(n int) []byte {
	if b.r+n > b.w {
		panic(fmt.Sprintf("cmdbuf: read past end of stream: need %d bytes, %d of %d consumed", n, b.r, b.w))
	}
	s := b.data[b.r : b.r+n]
	b.r += n
	return s
}

// WriteOp appends a command discriminant.
func (b *Buffer) WriteOp(op Op) { b.WriteUint8(uint8(op)) }

// ReadOp reads the next command discriminant.
func (b *Buffer) ReadOp() Op { return Op(b.ReadUint8()) }

// WriteUint8 appends one byte.
func (b *Buffer) WriteUint8(v uint8) { b.next(1)[0] = v }

// ReadUint8 reads one byte.
func (b *Buffer) ReadUint8() uint8 { return b.take(1)[0] }

// WriteUint16 appends a little-endian uint16.
func (b *Buffer) WriteUint16(v uint16) { binary.LittleEndian.PutUint16(b.next(2), v) }

// ReadUint16 reads a little-endian uint16.
func (b *Buffer) ReadUint16() uint16 { return binary.LittleEndian.Uint16(b.take(2)) }

// WriteUint32 appends a little-endian uint32.
func (b *Buffer) WriteUint32(v uint32) { binary.LittleEndian.PutUint32(b.next(4), v) }

// ReadUint32 reads a little-endian uint32.
func (b *Buffer) ReadUint32() uint32 { return binary.LittleEndian.Uint32(b.take(4)) }

// WriteUint64 appends a little-endian uint64.
func (b *Buffer) WriteUint64(v uint64) { binary.LittleEndian.PutUint64(b.next(8), v) }

// ReadUint64 reads a little-endian uint64.
func (b *Buffer) ReadUint64() uint64 { return binary.LittleEndian.Uint64(b.take(8)) }

// WriteFloat32 appends a float32 as its IEEE 754 bits.
func (b *Buffer) WriteFloat32(v float32) { b.WriteUint32(math.Float32bits(v)) }

// ReadFloat32 reads a float32.
func (b *Buffer) ReadFloat32() float32 { return math.Float32frombits(b.ReadUint32()) }

// WriteBytes appends a length-prefixed byte run. The bytes are copied into
// the stream, so the caller's slice carries no lifetime obligation.
func (b *Buffer) WriteBytes(p []byte) {
	b.WriteUint32(uint32(len(p)))
	copy(b.next(len(p)), p)
}

// ReadBytes reads a length-prefixed byte run. The returned slice aliases the
// stream's backing storage and is valid only until Clear.
func (b *Buffer) ReadBytes() []byte {
	n := int(b.ReadUint32())
	return b.take(n)
}

// WriteString appends a length-prefixed string.
func (b *Buffer) WriteString(s string) {
	b.WriteUint32(uint32(len(s)))
	copy(b.next(len(s)), s)
}

// ReadString reads a length-prefixed string. Unlike ReadBytes the result is
// a copy and does not alias the stream.
func (b *Buffer) ReadString() string {
	return string(b.ReadBytes())
}

// Clear resets both cursors to empty without deallocating backing storage.
func (b *Buffer) Clear() {
	b.w = 0
	b.r = 0
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return b.w }

// Cap returns the backing storage capacity in bytes.
func (b *Buffer) Cap() int { return len(b.data) }

// Bytes returns the written portion of the stream. The slice aliases the
// backing storage; it is intended for inspection and tests.
func (b *Buffer) Bytes() []byte { return b.data[:b.w] }
