// Package base provides the wire-format building blocks for the Broadcast
// Audio Source Endpoint (BASE) structure: the announcement service
// identifier, the minimum encodable size, and a fixed-capacity encode
// buffer with little-endian writers.
package base

import (
	"errors"
	"fmt"
)

// ServiceUUID is the 16-bit Basic Audio Announcement Service identifier
// that opens every BASE.
const ServiceUUID uint16 = 0x1851

// MinimumSize is the smallest encodable BASE: one subgroup with one BIS and
// no codec configuration or metadata bytes.
//
//	2 octets service UUID
//	3 octets presentation delay
//	1 octet subgroup count
//	1 octet BIS count
//	5 octets codec identity
//	1 octet codec configuration length
//	1 octet metadata length
//	1 octet BIS index
//	1 octet BIS configuration length
const MinimumSize = 16

// ErrBufferFull indicates a write would exceed the buffer capacity.
var ErrBufferFull = errors.New("buffer full")

// Buffer is a fixed-capacity append-only encode buffer. Writes fail with
// ErrBufferFull once the capacity is reached; the caller must discard the
// truncated contents.
type Buffer struct {
	data []byte
}

// NewBuffer creates a buffer with the given capacity in bytes.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{data: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Room returns the remaining capacity.
func (b *Buffer) Room() int {
	return cap(b.data) - len(b.data)
}

// Bytes returns the written bytes. The slice is valid until the next write
// or Reset.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Reset discards the written bytes, keeping the capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// AddU8 appends a single octet.
func (b *Buffer) AddU8(v uint8) error {
	if b.Room() < 1 {
		return fmt.Errorf("%w: u8", ErrBufferFull)
	}
	b.data = append(b.data, v)
	return nil
}

// AddLE16 appends a 16-bit value in little-endian byte order.
func (b *Buffer) AddLE16(v uint16) error {
	if b.Room() < 2 {
		return fmt.Errorf("%w: le16", ErrBufferFull)
	}
	b.data = append(b.data, byte(v), byte(v>>8))
	return nil
}

// AddLE24 appends the low 24 bits of v in little-endian byte order.
func (b *Buffer) AddLE24(v uint32) error {
	if b.Room() < 3 {
		return fmt.Errorf("%w: le24", ErrBufferFull)
	}
	b.data = append(b.data, byte(v), byte(v>>8), byte(v>>16))
	return nil
}

// AddMem appends raw bytes.
func (b *Buffer) AddMem(p []byte) error {
	if b.Room() < len(p) {
		return fmt.Errorf("%w: %d bytes", ErrBufferFull, len(p))
	}
	b.data = append(b.data, p...)
	return nil
}
