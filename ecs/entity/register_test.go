package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/physics"
	"github.com/jannetahkola/webgpu-game/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRegisterComponentsIsIdempotent(t *testing.T) {
	r := ecs.NewComponentRegistry()
	RegisterComponents(r, nil)
	first := r.Names()
	RegisterComponents(r, nil)

	assert.Equal(t, first, r.Names())
	assert.Len(t, first, len(componentBuildOrder))
	for _, name := range componentBuildOrder {
		_, err := r.Get(name)
		assert.NoError(t, err, name)
	}
}

func TestDecodeMainScene(t *testing.T) {
	r := ecs.NewComponentRegistry()
	RegisterComponents(r, nil)
	p, err := prefabs.LoadPrefab("main_scene.yaml")
	require.NoError(t, err)

	m := ecs.NewManager()
	require.NoError(t, m.Deserialize(p.Snapshot, r))

	player, err := m.SingletonEntity(ecs.Player)
	require.NoError(t, err)
	tr, err := ecs.Get(m, player, component.TransformComponent.Kind())
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 1, 2}, tr.Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, tr.Scale)
	assert.True(t, tr.State.IsDirty())

	pc, err := ecs.Get(m, player, component.PlayerControllerComponent.Kind())
	require.NoError(t, err)
	assert.Equal(t, float32(3), pc.MoveSpeed)

	light, err := m.SingletonEntity(ecs.Lighting)
	require.NoError(t, err)
	shadow, err := ecs.Get(m, light, component.ShadowComponent.Kind())
	require.NoError(t, err)
	assert.Equal(t, 2048, shadow.ShadowMapSize)

	colliders := m.EntitiesWith(component.ColliderComponent.Kind())
	assert.Equal(t, []ecs.Entity{0, 1, 2}, colliders)
	box, err := ecs.Get(m, 0, component.ColliderComponent.Kind())
	require.NoError(t, err)
	assert.Equal(t, physics.ShapeBox, box.Shape)
}

func TestDecodeRejects(t *testing.T) {
	r := ecs.NewComponentRegistry()
	RegisterComponents(r, nil)

	tests := []struct {
		name string
		typ  string
		data any
	}{
		{"shadow without size", "shadow", map[string]any{}},
		{"unknown collider shape", "collider", map[string]any{"type": "sphere"}},
		{"mesh collider without ref", "collider", map[string]any{"type": "mesh"}},
		{"short position", "transform", map[string]any{"position": []any{1, 2}}},
		{"model without ref", "model", map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ecs.NewManager()
			err := m.Deserialize(ecs.Snapshot{
				Entities:   []ecs.Entity{0},
				Components: []ecs.ComponentSnapshot{{Entity: 0, Type: tt.typ, Data: tt.data}},
			}, r)
			assert.Error(t, err)
			assert.Empty(t, m.Entities())
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	r := ecs.NewComponentRegistry()
	RegisterComponents(r, nil)

	src := ecs.NewManager()
	rot := mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})
	parent := src.CreateEntity(
		ecs.With(component.TransformComponent.Kind(), component.NewTransform(mgl32.Vec3{1, 2, 3}, rot, mgl32.Vec3{2, 2, 2})),
		ecs.With(component.ModelComponent.Kind(), &component.Model{Ref: "builtin:cube"}),
	)
	child := src.CreateEntity(ecs.With(component.ParentComponent.Kind(), &component.Parent{Entity: parent}))
	require.NoError(t, ecs.Add(src, parent, component.ChildComponent.Kind(), &component.Child{Entities: []ecs.Entity{child}}))
	_, err := src.CreateSingletonEntity(ecs.Lighting, ecs.With(component.LightingComponent.Kind(), component.NewLighting()))
	require.NoError(t, err)

	snap, err := src.Serialize(r)
	require.NoError(t, err)
	raw, err := yaml.Marshal(snap)
	require.NoError(t, err)
	var decoded ecs.Snapshot
	require.NoError(t, yaml.Unmarshal(raw, &decoded))

	dst := ecs.NewManager()
	require.NoError(t, dst.Deserialize(decoded, r))

	assert.Equal(t, src.Entities(), dst.Entities())
	assert.Equal(t, src.Singletons(), dst.Singletons())
	assert.Equal(t, src.EntitiesWith(component.ParentComponent.Kind()), dst.EntitiesWith(component.ParentComponent.Kind()))

	tr, err := ecs.Get(dst, parent, component.TransformComponent.Kind())
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, tr.Position)
	assert.True(t, tr.Rotation.ApproxEqualThreshold(rot, 1e-6))

	ch, err := ecs.Get(dst, parent, component.ChildComponent.Kind())
	require.NoError(t, err)
	assert.Equal(t, []ecs.Entity{child}, ch.Entities)
}
