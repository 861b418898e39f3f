package gpu

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Float32Bytes packs values little endian, the layout uniform buffers expect.
func Float32Bytes(values ...float32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// Uint16Bytes packs index data.
func Uint16Bytes(values ...uint16) []byte {
	out := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out
}

// BytesFloat32 is the inverse of Float32Bytes; trailing bytes are ignored.
func BytesFloat32(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out
}

// BytesUint16 is the inverse of Uint16Bytes.
func BytesUint16(b []byte) []uint16 {
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return out
}

func Mat4Bytes(m mgl32.Mat4) []byte {
	return Float32Bytes(m[:]...)
}

// Mat3Bytes packs a 3x3 matrix as three 16-byte aligned columns.
func Mat3Bytes(m mgl32.Mat3) []byte {
	return Float32Bytes(
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
	)
}

const (
	Mat4Size = 64
	Mat3Size = 48
)

// Align rounds size up to a multiple of n.
func Align(size, n int) int {
	return (size + n - 1) / n * n
}
