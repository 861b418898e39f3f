package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputSystem(t *testing.T) {
	tests := []struct {
		name    string
		fly     bool
		pressed []input.Action
		just    []input.Action
		double  []input.Action
		wantDir mgl32.Vec3
		wantFly bool
		jump    bool
	}{
		{
			name:    "walk forward left",
			pressed: []input.Action{input.MoveForward, input.MoveLeft},
			wantDir: mgl32.Vec3{-1, 0, 1},
		},
		{
			name:    "opposites cancel",
			pressed: []input.Action{input.MoveForward, input.MoveBackward},
			wantDir: mgl32.Vec3{},
		},
		{
			name:    "ascend press jumps when walking",
			pressed: []input.Action{input.Ascend},
			just:    []input.Action{input.Ascend},
			jump:    true,
		},
		{
			name:    "held ascend does not jump again",
			pressed: []input.Action{input.Ascend},
		},
		{
			name:    "ascend press does not jump when flying",
			fly:     true,
			pressed: []input.Action{input.Ascend},
			just:    []input.Action{input.Ascend},
			wantDir: mgl32.Vec3{0, 1, 0},
			wantFly: true,
		},
		{
			name:    "ascend rises when flying",
			fly:     true,
			pressed: []input.Action{input.Ascend},
			wantDir: mgl32.Vec3{0, 1, 0},
			wantFly: true,
		},
		{
			name:    "descend ignored when walking",
			pressed: []input.Action{input.Descend},
		},
		{
			name:    "double press toggles fly on",
			double:  []input.Action{input.Ascend},
			wantFly: true,
		},
		{
			name:   "double press toggles fly off",
			fly:    true,
			double: []input.Action{input.Ascend},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ecs.NewManager()
			p := newPlayer(t, m, mgl32.Vec3{}, nil)
			p.controller.FlyModeEnabled = tt.fly

			in := newFakeInput()
			for _, a := range tt.pressed {
				in.pressed[a] = true
			}
			for _, a := range tt.just {
				in.justPressed[a] = true
			}
			for _, a := range tt.double {
				in.doublePressed[a] = true
			}

			require.NoError(t, NewInputSystem(in, nil).Update(frame, m))
			assert.Equal(t, tt.wantDir, p.controller.MoveDir)
			assert.Equal(t, tt.wantFly, p.controller.FlyModeEnabled)
			assert.Equal(t, tt.jump, p.controller.JumpRequested)
		})
	}
}

func TestInputSystemCopiesPointerDelta(t *testing.T) {
	m := ecs.NewManager()
	p := newPlayer(t, m, mgl32.Vec3{}, nil)
	in := newFakeInput()
	in.dx, in.dy = 4, -2

	require.NoError(t, NewInputSystem(in, nil).Update(frame, m))
	assert.Equal(t, mgl32.Vec2{4, -2}, p.controller.LookDelta)
}

func TestInputSystemEmitsFlyToggle(t *testing.T) {
	m := ecs.NewManager()
	p := newPlayer(t, m, mgl32.Vec3{}, nil)
	events := &ecs.EventQueue{}
	ecs.SetResource(m, events)
	in := newFakeInput()
	in.doublePressed[input.Ascend] = true

	require.NoError(t, NewInputSystem(in, nil).Update(frame, m))
	drained := events.Drain()
	require.Len(t, drained, 1)
	assert.Equal(t, ecs.EventFlyModeToggled, drained[0].Type)
	assert.Equal(t, p.entity, drained[0].Entity)
	assert.Equal(t, true, drained[0].Data)
}
