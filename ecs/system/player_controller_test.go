package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerControllerClampsPitch(t *testing.T) {
	tests := []struct {
		name string
		dy   float32
		want float32
	}{
		{"look far up", -1e6, MaxPitch},
		{"look far down", 1e6, -MaxPitch},
		{"small", -1, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ecs.NewManager()
			p := newPlayer(t, m, mgl32.Vec3{}, nil)
			p.controller.LookDelta = mgl32.Vec2{0, tt.dy}

			require.NoError(t, NewPlayerControllerSystem().Update(1, m))
			assert.InDelta(t, tt.want, p.controller.Pitch, 1e-5)
			assert.True(t, p.transform.State.IsDirty())
		})
	}
}

func TestPlayerControllerMovesOnGroundPlane(t *testing.T) {
	for _, pitch := range []float32{0, 1.2, -1.2, MaxPitch} {
		m := ecs.NewManager()
		p := newPlayer(t, m, mgl32.Vec3{}, nil)
		p.controller.Pitch = pitch
		p.controller.MoveDir = mgl32.Vec3{0, 0, 1}

		require.NoError(t, NewPlayerControllerSystem().Update(frame, m))
		assertVec3(t, mgl32.Vec3{0, 0, -1}, p.controller.WorldMoveDir)
	}
}

func TestPlayerControllerLookingUpKeepsHeight(t *testing.T) {
	m := ecs.NewManager()
	p := newPlayer(t, m, mgl32.Vec3{0, 1, 0}, nil)
	p.controller.MoveDir = mgl32.Vec3{0, 0, 1}
	p.controller.LookDelta = mgl32.Vec2{0, -1e6}

	require.NoError(t, NewPlayerControllerSystem().Update(frame, m))
	assert.InDelta(t, MaxPitch, p.controller.Pitch, 1e-5)
	assert.Equal(t, float32(1), p.transform.Position.Y())
	assert.Less(t, p.transform.Position.Z(), float32(0))
}

func TestPlayerControllerYawTurnsMovement(t *testing.T) {
	m := ecs.NewManager()
	p := newPlayer(t, m, mgl32.Vec3{}, nil)
	p.controller.Yaw = math.Pi / 2
	p.controller.MoveDir = mgl32.Vec3{0, 0, 1}

	require.NoError(t, NewPlayerControllerSystem().Update(frame, m))
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, p.controller.WorldMoveDir)
}

func TestPlayerControllerIntegration(t *testing.T) {
	t.Run("kinematic bodies move here", func(t *testing.T) {
		m := ecs.NewManager()
		p := newPlayer(t, m, mgl32.Vec3{}, nil)
		p.controller.MoveDir = mgl32.Vec3{1, 0, 0}

		require.NoError(t, NewPlayerControllerSystem().Update(1, m))
		assertVec3(t, mgl32.Vec3{3, 0, 0}, p.transform.Position)
	})

	t.Run("rigid bodies are left to physics", func(t *testing.T) {
		m := ecs.NewManager()
		p := newPlayer(t, m, mgl32.Vec3{}, &component.RigidBody{})
		p.controller.MoveDir = mgl32.Vec3{1, 0, 0}

		require.NoError(t, NewPlayerControllerSystem().Update(1, m))
		assertVec3(t, mgl32.Vec3{}, p.transform.Position)
		assertVec3(t, mgl32.Vec3{1, 0, 0}, p.controller.WorldMoveDir)
	})

	t.Run("idle leaves transform clean", func(t *testing.T) {
		m := ecs.NewManager()
		p := newPlayer(t, m, mgl32.Vec3{}, nil)
		p.transform.State.MarkClean()

		require.NoError(t, NewPlayerControllerSystem().Update(frame, m))
		assert.False(t, p.transform.State.IsDirty())
	})
}
