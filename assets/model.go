// Package assets stores the models and cube maps a scene references. Assets
// are loaded once by ref and shared read-only afterwards.
package assets

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/physics"
)

// Model is a set of meshes loaded from one ref.
type Model struct {
	Ref    string
	Meshes []Mesh
}

type Mesh struct {
	Ref         string
	MaterialRef string
	Vertices    []mgl32.Vec3
	Indices     []uint32
}

// Collision returns the mesh as a triangle list for ray queries.
func (m Mesh) Collision() physics.Mesh {
	return physics.Mesh{Vertices: m.Vertices, Indices: m.Indices}
}

// Edges returns each triangle edge once, as index pairs.
func (m Mesh) Edges() [][2]uint32 {
	seen := make(map[[2]uint32]struct{}, len(m.Indices))
	out := make([][2]uint32, 0, len(m.Indices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri := [3]uint32{m.Indices[i], m.Indices[i+1], m.Indices[i+2]}
		for j := 0; j < 3; j++ {
			a, b := tri[j], tri[(j+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]uint32{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}

// CubeMap is six solid face colours in +X, -X, +Y, -Y, +Z, -Z order.
type CubeMap struct {
	Ref   string
	Faces [6]color.RGBA
}
