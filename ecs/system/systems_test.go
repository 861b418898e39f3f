package system

import (
	"testing"

	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/gpu"
	"github.com/stretchr/testify/assert"
)

func TestSystemsRequireSingletons(t *testing.T) {
	device := gpu.NewMemoryDevice()
	tests := []struct {
		name   string
		system ecs.System
	}{
		{"input", NewInputSystem(newFakeInput(), nil)},
		{"player controller", NewPlayerControllerSystem()},
		{"physics", NewPhysicsSystem(nil)},
		{"camera", NewCameraSystem(device)},
		{"skybox", NewSkyboxSystem(device)},
		{"lighting", NewLightingSystem(device)},
		{"shadow", NewShadowSystem(device)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.system.Update(frame, ecs.NewManager())
			assert.ErrorIs(t, err, ecs.ErrNoSingleton)
		})
	}
}

func TestWireframeSystemsRequireDiagnostics(t *testing.T) {
	tests := []struct {
		name   string
		system ecs.System
	}{
		{"mesh", NewMeshWireframeSystem(nil)},
		{"collider", NewColliderWireframeSystem(gpu.NewMemoryDevice(), nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.system.Update(frame, ecs.NewManager())
			assert.ErrorIs(t, err, ecs.ErrNoResource)
		})
	}
}

func TestTransformSystemWithoutTransformsIsNoop(t *testing.T) {
	device := gpu.NewMemoryDevice()
	assert.NoError(t, NewTransformSystem(device).Update(frame, ecs.NewManager()))
	assert.Equal(t, gpu.Stats{}, device.Stats())
}
