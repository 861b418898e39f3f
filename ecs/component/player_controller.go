package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
)

// PlayerController carries input intent from the input system to the player
// controller and physics systems.
type PlayerController struct {
	MoveSpeed     float32
	RotationSpeed float32

	// MoveDir is local intent: x right, y up (fly mode only), z forward.
	MoveDir   mgl32.Vec3
	LookDelta mgl32.Vec2

	Yaw   float32
	Pitch float32

	FlyModeEnabled bool
	JumpRequested  bool

	// WorldMoveDir is MoveDir rotated by yaw and normalised.
	WorldMoveDir mgl32.Vec3
}

func NewPlayerController() *PlayerController {
	return &PlayerController{MoveSpeed: 3, RotationSpeed: 0.3}
}

var PlayerControllerComponent = ecs.NewComponent[PlayerController]("player_controller")
