package render

import (
	"context"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/assets"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/ecs/entity"
	"github.com/jannetahkola/webgpu-game/gpu"
	"github.com/jannetahkola/webgpu-game/input"
	"github.com/jannetahkola/webgpu-game/prefabs"
	"github.com/jannetahkola/webgpu-game/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clearColor = color.RGBA{R: 1, G: 2, B: 3, A: 0xff}

type idleInput struct{}

func (idleInput) IsPressed(input.Action) bool       { return false }
func (idleInput) IsJustPressed(input.Action) bool   { return false }
func (idleInput) IsDoublePressed(input.Action) bool { return false }
func (idleInput) PointerDeltaX() float32            { return 0 }
func (idleInput) PointerDeltaY() float32            { return 0 }

func loadMainScene(t *testing.T, meshWireframes, colliderWireframes bool) (*scene.Scene, *assets.Manager) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	entity.RegisterComponents(registry, nil)
	a := assets.NewManager(nil)
	loader := scene.NewLoader(registry, a, gpu.NewMemoryDevice(), idleInput{},
		scene.WithDiagnostics(meshWireframes, colliderWireframes))

	prefab, err := prefabs.LoadPrefab("main_scene.yaml")
	require.NoError(t, err)
	s, err := loader.Load(context.Background(), prefab)
	require.NoError(t, err)
	return s, a
}

func TestLinesRequireCameraBuffer(t *testing.T) {
	s, a := loadMainScene(t, true, true)
	_, err := NewDebugRenderer(a, clearColor).Lines(s.Manager, 1280, 720)
	assert.ErrorIs(t, err, component.ErrNotInitialized)
}

func TestLines(t *testing.T) {
	tests := []struct {
		name           string
		mesh, collider bool
		wantMesh       bool
		wantCollider   bool
	}{
		{"disabled", false, false, false, false},
		{"meshes", true, false, true, false},
		{"colliders", false, true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, a := loadMainScene(t, tt.mesh, tt.collider)
			require.NoError(t, s.Update(1.0/60))

			lines, err := NewDebugRenderer(a, clearColor).Lines(s.Manager, 1280, 720)
			require.NoError(t, err)

			var meshLines, colliderLines int
			for _, l := range lines {
				switch l.Color {
				case meshColor:
					meshLines++
				case colliderColor:
					colliderLines++
				}
			}
			assert.Equal(t, tt.wantMesh, meshLines > 0)
			assert.Equal(t, tt.wantCollider, colliderLines > 0)
		})
	}
}

func TestBackgroundFollowsView(t *testing.T) {
	s, a := loadMainScene(t, false, false)
	r := NewDebugRenderer(a, clearColor)

	bg, err := r.Background(s.Manager)
	require.NoError(t, err)
	assert.Equal(t, clearColor, bg, "sky is not uploaded before the first update")

	require.NoError(t, s.Update(1.0/60))
	sky, err := a.CubeMap("builtin:sky")
	require.NoError(t, err)

	bg, err = r.Background(s.Manager)
	require.NoError(t, err)
	assert.Equal(t, sky.Faces[5], bg)
}

func TestFaceIndex(t *testing.T) {
	tests := []struct {
		dir  mgl32.Vec3
		want int
	}{
		{mgl32.Vec3{1, 0.2, 0}, 0},
		{mgl32.Vec3{-1, 0, 0.5}, 1},
		{mgl32.Vec3{0, 2, 1}, 2},
		{mgl32.Vec3{0.1, -1, 0}, 3},
		{mgl32.Vec3{0, 0, 1}, 4},
		{mgl32.Vec3{0.3, 0.3, -1}, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, faceIndex(tt.dir), "%v", tt.dir)
	}
}

func TestProjectorDropsPointsBehind(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	p := projector{viewProj: mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 10).Mul4(view), width: 100, height: 100}

	x, y, ok := p.point(mgl32.Vec3{0, 0, -5})
	require.True(t, ok)
	assert.InDelta(t, 50, x, 1e-3)
	assert.InDelta(t, 50, y, 1e-3)

	_, _, ok = p.point(mgl32.Vec3{0, 0, 5})
	assert.False(t, ok)
}
