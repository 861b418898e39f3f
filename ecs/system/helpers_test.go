package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/camera"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/input"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

type fakeInput struct {
	pressed       map[input.Action]bool
	justPressed   map[input.Action]bool
	doublePressed map[input.Action]bool
	dx, dy        float32
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		pressed:       make(map[input.Action]bool),
		justPressed:   make(map[input.Action]bool),
		doublePressed: make(map[input.Action]bool),
	}
}

func (f *fakeInput) IsPressed(a input.Action) bool       { return f.pressed[a] }
func (f *fakeInput) IsJustPressed(a input.Action) bool   { return f.justPressed[a] }
func (f *fakeInput) IsDoublePressed(a input.Action) bool { return f.doublePressed[a] }
func (f *fakeInput) PointerDeltaX() float32              { return f.dx }
func (f *fakeInput) PointerDeltaY() float32              { return f.dy }

type player struct {
	entity     ecs.Entity
	transform  *component.Transform
	controller *component.PlayerController
	camera     *component.Camera
	body       *component.RigidBody
}

// newPlayer creates the Player singleton. A nil body leaves it kinematic.
func newPlayer(t *testing.T, m *ecs.Manager, position mgl32.Vec3, body *component.RigidBody) player {
	t.Helper()
	p := player{
		transform:  component.DefaultTransform(),
		controller: component.NewPlayerController(),
		camera:     component.NewCamera(camera.FirstPerson),
		body:       body,
	}
	p.transform.Position = position
	p.camera.Camera = camera.NewFirstPersonCamera()

	e, err := m.CreateSingletonEntity(ecs.Player,
		ecs.With(component.TransformComponent.Kind(), p.transform),
		ecs.With(component.PlayerControllerComponent.Kind(), p.controller),
		ecs.With(component.CameraComponent.Kind(), p.camera),
		ecs.With(component.RigidBodyComponent.Kind(), body),
	)
	require.NoError(t, err)
	p.entity = e
	return p
}

type light struct {
	lighting  *component.Lighting
	shadow    *component.Shadow
	transform *component.Transform
}

func newLight(t *testing.T, m *ecs.Manager) light {
	t.Helper()
	shadow, err := component.NewShadow(1024)
	require.NoError(t, err)
	l := light{
		lighting:  component.NewLighting(),
		shadow:    shadow,
		transform: component.DefaultTransform(),
	}
	l.transform.Position = mgl32.Vec3{5, 10, 5}

	_, err = m.CreateSingletonEntity(ecs.Lighting,
		ecs.With(component.LightingComponent.Kind(), l.lighting),
		ecs.With(component.ShadowComponent.Kind(), l.shadow),
		ecs.With(component.TransformComponent.Kind(), l.transform),
	)
	require.NoError(t, err)
	return l
}

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	require.Truef(t, want.ApproxEqualThreshold(got, 1e-4), "want %v, got %v", want, got)
}
