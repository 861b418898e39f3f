package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-6

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// RayHit is the nearest intersection along a ray. Normal is unit length and
// faces the ray origin.
type RayHit struct {
	T      float32
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

// IntersectTriangle returns the distance along r to triangle abc.
func IntersectTriangle(r Ray, a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if det > -epsilon && det < epsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < epsilon {
		return 0, false
	}
	return t, true
}

// IntersectMesh casts r against mesh placed by model and returns the nearest
// hit. r is in world space; r.Direction must be normalised for T to be a
// distance.
func IntersectMesh(r Ray, mesh Mesh, model mgl32.Mat4) (RayHit, bool) {
	best := RayHit{T: float32(math.Inf(1))}
	found := false
	world := make([]mgl32.Vec3, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		world[i] = mgl32.TransformCoordinate(v, model)
	}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := world[mesh.Indices[i]], world[mesh.Indices[i+1]], world[mesh.Indices[i+2]]
		t, ok := IntersectTriangle(r, a, b, c)
		if !ok || t >= best.T {
			continue
		}
		n := b.Sub(a).Cross(c.Sub(a))
		if n.LenSqr() < epsilon {
			continue
		}
		n = n.Normalize()
		if n.Dot(r.Direction) > 0 {
			n = n.Mul(-1)
		}
		best = RayHit{T: t, Point: r.Origin.Add(r.Direction.Mul(t)), Normal: n}
		found = true
	}
	return best, found
}
