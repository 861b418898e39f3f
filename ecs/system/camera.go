package system

import (
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/gpu"
)

const cameraBufferLabel = "camera view projection buffer"

type CameraSystem struct {
	device gpu.Device
}

func NewCameraSystem(device gpu.Device) *CameraSystem {
	return &CameraSystem{device: device}
}

// Update recomputes the player camera when the camera is dirty or the player
// transform was refreshed since the last upload.
func (cs *CameraSystem) Update(_ float64, m *ecs.Manager) error {
	player, err := m.SingletonEntity(ecs.Player)
	if err != nil {
		return err
	}
	cam, err := ecs.Get(m, player, component.CameraComponent.Kind())
	if err != nil {
		return err
	}
	transform, err := ecs.Get(m, player, component.TransformComponent.Kind())
	if err != nil {
		return err
	}
	c, err := cam.CameraOrErr()
	if err != nil {
		return err
	}

	if !cam.State.IsDirty() && cam.ViewProjBuffer != nil && cam.SeenTransformRevision == transform.Revision {
		return nil
	}

	c.Update(transform.Position, transform.Rotation)
	cam.ViewProjMat = c.ViewProjection()

	buf, err := gpu.EnsureBuffer(cs.device, &cam.ViewProjBuffer, gpu.BufferDescriptor{
		Label: cameraBufferLabel,
		Size:  gpu.Mat4Size,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	if err := cs.device.WriteBuffer(buf, 0, gpu.Mat4Bytes(cam.ViewProjMat)); err != nil {
		return err
	}

	cam.SeenTransformRevision = transform.Revision
	cam.State.MarkClean()
	cam.Revision++
	return nil
}
