package system

import (
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/gpu"
)

const lightingBufferLabel = "lighting buffer"

type LightingSystem struct {
	device gpu.Device
}

func NewLightingSystem(device gpu.Device) *LightingSystem {
	return &LightingSystem{device: device}
}

// Update packs direction, intensity and diffuse bias into the light uniform.
func (ls *LightingSystem) Update(_ float64, m *ecs.Manager) error {
	light, err := m.SingletonEntity(ecs.Lighting)
	if err != nil {
		return err
	}
	lighting, err := ecs.Get(m, light, component.LightingComponent.Kind())
	if err != nil {
		return err
	}
	if !lighting.State.IsDirty() {
		return nil
	}

	if lighting.Direction.LenSqr() > 0 {
		lighting.Direction = lighting.Direction.Normalize()
	}
	lighting.Packed = [5]float32{
		lighting.Direction.X(),
		lighting.Direction.Y(),
		lighting.Direction.Z(),
		lighting.Intensity,
		lighting.DiffuseBias,
	}

	buf, err := gpu.EnsureBuffer(ls.device, &lighting.Buffer, gpu.BufferDescriptor{
		Label: lightingBufferLabel,
		Size:  component.LightingBufferSize,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	if err := ls.device.WriteBuffer(buf, 0, gpu.Float32Bytes(lighting.Packed[:]...)); err != nil {
		return err
	}

	lighting.State.MarkClean()
	lighting.Revision++
	return nil
}
