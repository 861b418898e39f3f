package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformSystemRefreshesOncePerDirty(t *testing.T) {
	device := gpu.NewMemoryDevice()
	m := ecs.NewManager()
	transform := component.DefaultTransform()
	transform.Position = mgl32.Vec3{1, 2, 3}
	m.CreateEntity(ecs.With(component.TransformComponent.Kind(), transform))
	ts := NewTransformSystem(device)

	require.NoError(t, ts.Update(frame, m))
	assert.False(t, transform.State.IsDirty())
	assert.Equal(t, uint64(1), transform.Revision)
	assert.Equal(t, 1, device.WritesTo(modelBufferLabel))
	assert.Equal(t, 1, device.WritesTo(normalBufferLabel))
	assertVec3(t, mgl32.Vec3{1, 2, 3}, transform.ModelMat.Col(3).Vec3())

	require.NoError(t, ts.Update(frame, m))
	assert.Equal(t, uint64(1), transform.Revision)
	assert.Equal(t, 1, device.WritesTo(modelBufferLabel))

	transform.Position = mgl32.Vec3{4, 5, 6}
	transform.MarkDirty()
	require.NoError(t, ts.Update(frame, m))
	assert.Equal(t, uint64(2), transform.Revision)
	assert.Equal(t, 2, device.WritesTo(modelBufferLabel))
	assert.Equal(t, 2, device.Stats().BuffersCreated)

	uploaded := gpu.BytesFloat32(gpu.Contents(transform.ModelBuffer))
	assert.Equal(t, []float32{4, 5, 6, 1}, uploaded[12:16])
}

func TestTransformSystemNormalMatrix(t *testing.T) {
	device := gpu.NewMemoryDevice()
	m := ecs.NewManager()
	transform := component.NewTransform(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{2, 1, 1})
	m.CreateEntity(ecs.With(component.TransformComponent.Kind(), transform))

	require.NoError(t, NewTransformSystem(device).Update(frame, m))
	assert.InDelta(t, 0.5, transform.NormalMat.At(0, 0), 1e-6)
	assert.InDelta(t, 1, transform.NormalMat.At(1, 1), 1e-6)
	assert.Len(t, gpu.Contents(transform.NormalBuffer), gpu.Mat3Size)
}

func TestTransformSystemComposesParents(t *testing.T) {
	device := gpu.NewMemoryDevice()
	m := ecs.NewManager()

	// the child gets the lower id so ordering cannot come from ids alone
	child := component.DefaultTransform()
	child.Position = mgl32.Vec3{1, 0, 0}
	childEntity := m.CreateEntity(ecs.With(component.TransformComponent.Kind(), child))

	parent := component.NewTransform(mgl32.Vec3{1, 0, 0}, mgl32.QuatIdent(), mgl32.Vec3{2, 2, 2})
	parentEntity := m.CreateEntity(
		ecs.With(component.TransformComponent.Kind(), parent),
		ecs.With(component.ChildComponent.Kind(), &component.Child{Entities: []ecs.Entity{childEntity}}),
	)
	require.NoError(t, ecs.Add(m, childEntity, component.ParentComponent.Kind(), &component.Parent{Entity: parentEntity}))

	ts := NewTransformSystem(device)
	require.NoError(t, ts.Update(frame, m))
	assertVec3(t, mgl32.Vec3{3, 0, 0}, child.ModelMat.Col(3).Vec3())

	parent.Position = mgl32.Vec3{0, 1, 0}
	parent.MarkDirty()
	require.NoError(t, ts.Update(frame, m))
	assert.Equal(t, uint64(2), child.Revision)
	assert.False(t, child.State.IsDirty())
	assertVec3(t, mgl32.Vec3{2, 1, 0}, child.ModelMat.Col(3).Vec3())
}

func TestTransformSystemRotatedParent(t *testing.T) {
	m := ecs.NewManager()

	turn := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	parent := component.NewTransform(mgl32.Vec3{10, 0, 0}, turn, mgl32.Vec3{1, 1, 1})
	parentEntity := m.CreateEntity(ecs.With(component.TransformComponent.Kind(), parent))

	child := component.DefaultTransform()
	child.Position = mgl32.Vec3{1, 0, 0}
	m.CreateEntity(
		ecs.With(component.TransformComponent.Kind(), child),
		ecs.With(component.ParentComponent.Kind(), &component.Parent{Entity: parentEntity}),
	)

	require.NoError(t, NewTransformSystem(gpu.NewMemoryDevice()).Update(frame, m))

	// the child's offset turns with the parent before the parent's translation
	assertVec3(t, mgl32.Vec3{10, 0, -1}, child.ModelMat.Col(3).Vec3())
	assertVec3(t, mgl32.Vec3{0, 0, -1}, child.ModelMat.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3())
	assertVec3(t, mgl32.Vec3{0, 0, -1}, child.NormalMat.Mul3x1(mgl32.Vec3{1, 0, 0}))
}

func TestTransformSystemParentCycle(t *testing.T) {
	m := ecs.NewManager()
	a := m.CreateEntity(ecs.With(component.TransformComponent.Kind(), component.DefaultTransform()))
	b := m.CreateEntity(
		ecs.With(component.TransformComponent.Kind(), component.DefaultTransform()),
		ecs.With(component.ParentComponent.Kind(), &component.Parent{Entity: a}),
	)
	require.NoError(t, ecs.Add(m, a, component.ParentComponent.Kind(), &component.Parent{Entity: b}))

	err := NewTransformSystem(gpu.NewMemoryDevice()).Update(frame, m)
	assert.ErrorIs(t, err, ErrParentCycle)
}
