package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/gpu"
	"github.com/jannetahkola/webgpu-game/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshWireframeSystemToggles(t *testing.T) {
	m := ecs.NewManager()
	diagnostics := component.NewDiagnostics(true, false)
	ecs.SetResource(m, diagnostics)
	meshes := []ecs.Entity{
		m.CreateEntity(
			ecs.With(component.MeshComponent.Kind(), &component.Mesh{Ref: "a"}),
			ecs.With(component.TransformComponent.Kind(), component.DefaultTransform()),
		),
		m.CreateEntity(
			ecs.With(component.MeshComponent.Kind(), &component.Mesh{Ref: "b"}),
			ecs.With(component.TransformComponent.Kind(), component.DefaultTransform()),
		),
	}
	untransformed := m.CreateEntity(ecs.With(component.MeshComponent.Kind(), &component.Mesh{Ref: "c"}))
	s := NewMeshWireframeSystem(nil)

	require.NoError(t, s.Update(frame, m))
	assert.False(t, diagnostics.MeshWireframesDirty)
	assert.Equal(t, meshes, m.EntitiesWith(component.MeshWireframeComponent.Kind()))
	assert.False(t, ecs.Has(m, untransformed, component.MeshWireframeComponent.Kind()))

	diagnostics.SetMeshWireframesEnabled(false)
	require.NoError(t, s.Update(frame, m))
	assert.Empty(t, m.EntitiesWith(component.MeshWireframeComponent.Kind()))
}

func TestMeshWireframeSystemWaitsForDirtyFlag(t *testing.T) {
	m := ecs.NewManager()
	diagnostics := component.NewDiagnostics(true, false)
	diagnostics.MeshWireframesDirty = false
	ecs.SetResource(m, diagnostics)
	m.CreateEntity(
		ecs.With(component.MeshComponent.Kind(), &component.Mesh{}),
		ecs.With(component.TransformComponent.Kind(), component.DefaultTransform()),
	)

	require.NoError(t, NewMeshWireframeSystem(nil).Update(frame, m))
	assert.Empty(t, m.EntitiesWith(component.MeshWireframeComponent.Kind()))
}

func TestColliderWireframeSystem(t *testing.T) {
	device := gpu.NewMemoryDevice()
	m := ecs.NewManager()
	diagnostics := component.NewDiagnostics(false, true)
	ecs.SetResource(m, diagnostics)

	box := m.CreateEntity(
		ecs.With(component.TransformComponent.Kind(), component.DefaultTransform()),
		ecs.With(component.ColliderComponent.Kind(), &component.Collider{
			Shape:  physics.ShapeBox,
			Center: mgl32.Vec3{0, 1, 0},
			Size:   mgl32.Vec3{2, 2, 2},
		}),
	)
	mesh := m.CreateEntity(
		ecs.With(component.TransformComponent.Kind(), component.DefaultTransform()),
		ecs.With(component.ColliderComponent.Kind(), &component.Collider{Shape: physics.ShapeMesh, Ref: "builtin:plane"}),
	)
	s := NewColliderWireframeSystem(device, nil)

	require.NoError(t, s.Update(frame, m))
	assert.False(t, diagnostics.ColliderWireframesDirty)
	assert.False(t, ecs.Has(m, mesh, component.ColliderWireframeComponent.Kind()))

	w, err := ecs.Get(m, box, component.ColliderWireframeComponent.Kind())
	require.NoError(t, err)
	assert.Equal(t, 24, w.LineIndexCount)
	assert.Len(t, gpu.Contents(w.VertexBuffer), 8*3*4)

	vertices := gpu.BytesFloat32(gpu.Contents(w.VertexBuffer))
	assert.Equal(t, []float32{-1, 0, -1}, vertices[:3])
	assert.Equal(t, []float32{1, 2, 1}, vertices[21:24])
	assert.Equal(t, gpu.Uint16Bytes(physics.BoxEdges[:]...), gpu.Contents(w.LineIndexBuffer)[:48])

	// a second enable pass keeps the existing buffers
	diagnostics.SetColliderWireframesEnabled(true)
	require.NoError(t, s.Update(frame, m))
	assert.Equal(t, 2, device.Stats().BuffersCreated)

	vb, ib := w.VertexBuffer, w.LineIndexBuffer
	diagnostics.SetColliderWireframesEnabled(false)
	require.NoError(t, s.Update(frame, m))
	assert.False(t, ecs.Has(m, box, component.ColliderWireframeComponent.Kind()))
	assert.True(t, gpu.Destroyed(vb))
	assert.True(t, gpu.Destroyed(ib))
	assert.Equal(t, 2, device.Stats().Destroyed)
}
