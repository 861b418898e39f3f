package prefabs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedMainScene(t *testing.T) {
	p, err := LoadPrefab("main_scene.yaml")
	require.NoError(t, err)

	assert.Equal(t, "MainScene", p.Name)
	assert.Equal(t, []ecs.Entity{0, 1, 2}, p.Snapshot.Entities)
	require.Len(t, p.Snapshot.SingletonEntities, 3)
	assert.Equal(t, "Player", p.Snapshot.SingletonEntities[0].Tag)
	assert.NotEmpty(t, p.Snapshot.Components)
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main_scene.yaml"), []byte("name: FromDisk\n"), 0o644))
	p, err := LoadPrefab("main_scene.yaml")
	require.NoError(t, err)
	assert.Equal(t, "FromDisk", p.Name)
}

func TestParseSpecJSON(t *testing.T) {
	data := []byte(`{"name":"J","em":{"entities":[0],"singletonEntities":[{"tag":"Player","entity":1}],"components":[{"entity":0,"type":"model","data":{"ref":"builtin:cube"}}]}}`)
	p, err := ParseSpec[Prefab]("scene.json", data)
	require.NoError(t, err)
	assert.Equal(t, "J", p.Name)
	assert.Equal(t, ecs.Entity(1), p.Snapshot.SingletonEntities[0].Entity)
	assert.Equal(t, "model", p.Snapshot.Components[0].Type)
}

func TestDecodeComponentSpec(t *testing.T) {
	spec, err := DecodeComponentSpec[LightingComponentSpec](map[string]any{
		"direction": []any{0, 1, 0},
		"intensity": 0.5,
	})
	require.NoError(t, err)
	dir, ok, err := spec.Direction.Values()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, [3]float32{0, 1, 0}, dir)
	require.NotNil(t, spec.Intensity)
	assert.Equal(t, float32(0.5), *spec.Intensity)
	assert.Nil(t, spec.DiffuseBias)

	empty, err := DecodeComponentSpec[TransformComponentSpec](nil)
	require.NoError(t, err)
	_, ok, err = empty.Position.Values()
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Vec3Spec{1, 2}.Values()
	assert.Error(t, err)
}
