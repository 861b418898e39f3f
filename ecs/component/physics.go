package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/gpu"
	"github.com/jannetahkola/webgpu-game/physics"
)

type RigidBody struct {
	Velocity mgl32.Vec3
	Grounded bool
}

// Collider is either a box around Center or the triangles of the model Ref.
type Collider struct {
	Shape  physics.Shape
	Center mgl32.Vec3
	Size   mgl32.Vec3
	Ref    string
}

func (c *Collider) Box() physics.Box {
	half := c.Size.Mul(0.5)
	return physics.Box{Min: c.Center.Sub(half), Max: c.Center.Add(half)}
}

// ColliderWireframe holds the debug line buffers of a collider.
type ColliderWireframe struct {
	VertexBuffer    gpu.Buffer
	LineIndexBuffer gpu.Buffer
	LineIndexCount  int
}

func (w *ColliderWireframe) Destroy() {
	if w.VertexBuffer != nil {
		w.VertexBuffer.Destroy()
		w.VertexBuffer = nil
	}
	if w.LineIndexBuffer != nil {
		w.LineIndexBuffer.Destroy()
		w.LineIndexBuffer = nil
	}
}

var (
	RigidBodyComponent         = ecs.NewComponent[RigidBody]("rigid_body")
	ColliderComponent          = ecs.NewComponent[Collider]("collider")
	ColliderWireframeComponent = ecs.NewComponent[ColliderWireframe]("collider_wireframe")
)
