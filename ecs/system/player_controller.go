package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
)

// MaxPitch keeps the view just short of straight up or down.
const MaxPitch = math.Pi/2 - 0.01

var (
	worldForward = mgl32.Vec3{0, 0, -1}
	worldUp      = mgl32.Vec3{0, 1, 0}
	worldRight   = mgl32.Vec3{1, 0, 0}
)

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

// Update turns look and move intent into the player's orientation and world
// move direction. Orientation is rebuilt from yaw and pitch every frame so
// rounding never accumulates. Movement follows yaw only, keeping it on the
// ground plane whatever the pitch. Bodies without a RigidBody are moved
// here; physics moves the rest.
func (p *PlayerControllerSystem) Update(dt float64, m *ecs.Manager) error {
	player, err := m.SingletonEntity(ecs.Player)
	if err != nil {
		return err
	}
	controller, err := ecs.Get(m, player, component.PlayerControllerComponent.Kind())
	if err != nil {
		return err
	}
	transform, err := ecs.Get(m, player, component.TransformComponent.Kind())
	if err != nil {
		return err
	}

	step := float32(dt)
	controller.Yaw -= controller.LookDelta.X() * step * controller.RotationSpeed
	controller.Pitch -= controller.LookDelta.Y() * step * controller.RotationSpeed
	controller.Pitch = mgl32.Clamp(controller.Pitch, -MaxPitch, MaxPitch)

	yaw := mgl32.QuatRotate(controller.Yaw, worldUp)
	pitch := mgl32.QuatRotate(controller.Pitch, worldRight)
	rotation := yaw.Mul(pitch).Normalize()

	localForward := yaw.Rotate(worldForward)
	localRight := yaw.Rotate(worldRight)

	move := localForward.Mul(controller.MoveDir.Z()).
		Add(worldUp.Mul(controller.MoveDir.Y())).
		Add(localRight.Mul(controller.MoveDir.X()))
	if move.LenSqr() > 0 {
		move = move.Normalize()
	}
	controller.WorldMoveDir = move

	changed := rotation != transform.Rotation
	transform.Rotation = rotation

	if !ecs.Has(m, player, component.RigidBodyComponent.Kind()) && move.LenSqr() > 0 {
		transform.Position = transform.Position.Add(move.Mul(step * controller.MoveSpeed))
		changed = true
	}
	if changed {
		transform.MarkDirty()
	}
	return nil
}
