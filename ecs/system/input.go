package system

import (
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/input"
	"go.uber.org/zap"
)

// InputSystem copies the latched input state onto the player's controller.
type InputSystem struct {
	input  input.State
	logger *zap.Logger
}

func NewInputSystem(in input.State, logger *zap.Logger) *InputSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InputSystem{input: in, logger: logger}
}

func (s *InputSystem) Update(_ float64, m *ecs.Manager) error {
	player, err := m.SingletonEntity(ecs.Player)
	if err != nil {
		return err
	}
	controller, err := ecs.Get(m, player, component.PlayerControllerComponent.Kind())
	if err != nil {
		return err
	}

	if s.input.IsDoublePressed(input.Ascend) {
		controller.FlyModeEnabled = !controller.FlyModeEnabled
		s.logger.Info("fly mode toggled", zap.Bool("enabled", controller.FlyModeEnabled))
		ecs.Emit(m, ecs.Event{Type: ecs.EventFlyModeToggled, Entity: player, Data: controller.FlyModeEnabled})
	}

	controller.LookDelta[0] = s.input.PointerDeltaX()
	controller.LookDelta[1] = s.input.PointerDeltaY()

	var move [3]float32
	if s.input.IsPressed(input.MoveForward) {
		move[2] += 1
	}
	if s.input.IsPressed(input.MoveBackward) {
		move[2] -= 1
	}
	if s.input.IsPressed(input.MoveLeft) {
		move[0] -= 1
	}
	if s.input.IsPressed(input.MoveRight) {
		move[0] += 1
	}

	if controller.FlyModeEnabled {
		if s.input.IsPressed(input.Ascend) {
			move[1] += 1
		}
		if s.input.IsPressed(input.Descend) {
			move[1] -= 1
		}
	} else if s.input.IsJustPressed(input.Ascend) {
		controller.JumpRequested = true
	}
	controller.MoveDir = move

	return nil
}
