package tson

import (
	"encoding/binary"
	"math"
)

// Sink is an append-only byte buffer with a back-patch primitive: the
// encoder uses it to reserve a composite's length field, keep writing the
// composite's contents, then overwrite the reserved field once the
// composite's true length is known.
type Sink struct {
	buf []byte
}

// NewSink returns an empty Sink with capacity preallocated for roughly the
// expected output size.
func NewSink(capacity int) *Sink {
	return &Sink{buf: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written so far.
func (s *Sink) Len() int { return len(s.buf) }

// Write appends a single byte.
func (s *Sink) Write(b byte) { s.buf = append(s.buf, b) }

// WriteSlice appends a byte slice.
func (s *Sink) WriteSlice(p []byte) { s.buf = append(s.buf, p...) }

// WriteU32LE appends a little-endian uint32.
func (s *Sink) WriteU32LE(v uint32) {
	var b [lengthFieldSize]byte
	binary.LittleEndian.PutUint32(b[:], v)
	s.WriteSlice(b[:])
}

// WriteF64LE appends a little-endian IEEE-754 double.
func (s *Sink) WriteF64LE(v float64) {
	var b [floatFieldSize]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	s.WriteSlice(b[:])
}

// Patch overwrites the bytes starting at offset with p. len(p) must not
// exceed the number of bytes remaining in the buffer from offset.
func (s *Sink) Patch(offset int, p []byte) {
	copy(s.buf[offset:offset+len(p)], p)
}

// Bytes returns the accumulated buffer.
func (s *Sink) Bytes() []byte { return s.buf }
