// Package vector provides the binary embedding codec and similarity helpers.
package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode serializes an embedding as a uint32 dimension header followed by the
// little-endian float32 values. The whole vector is always written; there is
// no partial update format.
func Encode(v []float32) []byte {
	out := make([]byte, 4+len(v)*4)
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(v)))
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[4+i*4:8+i*4], math.Float32bits(f))
	}
	return out
}

// Decode parses a blob produced by Encode. Returns an error if the blob is
// truncated or its dimension header disagrees with its length.
func Decode(b []byte) ([]float32, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("embedding blob too short: %d bytes", len(b))
	}
	dim := int(binary.LittleEndian.Uint32(b[0:4]))
	if len(b) != 4+dim*4 {
		return nil, fmt.Errorf("embedding blob length mismatch: header says %d floats, have %d bytes", dim, len(b)-4)
	}
	out := make([]float32, dim)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4+i*4 : 8+i*4]))
	}
	return out, nil
}
