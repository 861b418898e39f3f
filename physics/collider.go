// Package physics holds collider shapes and the ray queries the grounded
// character controller relies on.
package physics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrUnknownShape = errors.New("physics: unknown collider shape")
	ErrBadMesh      = errors.New("physics: malformed collision mesh")
)

type Shape string

const (
	ShapeBox  Shape = "box"
	ShapeMesh Shape = "mesh"
)

func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case ShapeBox, ShapeMesh:
		return Shape(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
	}
}

// Box is an axis aligned box in local space.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Corners returns the eight corners, bit 0 selecting x, bit 1 y, bit 2 z.
func (b Box) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		c := b.Min
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		out[i] = c
	}
	return out
}

// BoxEdges indexes Corners pairwise into the twelve edges of a box.
var BoxEdges = [24]uint16{
	0, 1, 1, 3, 3, 2, 2, 0,
	4, 5, 5, 7, 7, 6, 6, 4,
	0, 4, 1, 5, 2, 6, 3, 7,
}

// Mesh is an indexed triangle list in local space.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

func (m Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrBadMesh, len(m.Indices))
	}
	for _, i := range m.Indices {
		if int(i) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d of %d vertices", ErrBadMesh, i, len(m.Vertices))
		}
	}
	return nil
}

// Bounds returns the axis aligned box around every vertex.
func (m Mesh) Bounds() Box {
	if len(m.Vertices) == 0 {
		return Box{}
	}
	b := Box{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v[i])
			b.Max[i] = max(b.Max[i], v[i])
		}
	}
	return b
}
