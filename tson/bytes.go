package tson

import (
	"encoding/binary"
	"math"
)

// le32 decodes a little-endian uint32 from a 4-byte slice.
func le32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

// le64f decodes a little-endian IEEE-754 double from an 8-byte slice.
func le64f(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
