package system

import (
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/gpu"
)

const skyboxBufferLabel = "skybox inverse view projection buffer"

// SkyboxSystem derives the sky's inverse view-projection from the player
// camera with the translation removed, so the sky never moves with the eye.
type SkyboxSystem struct {
	device gpu.Device
}

func NewSkyboxSystem(device gpu.Device) *SkyboxSystem {
	return &SkyboxSystem{device: device}
}

func (ss *SkyboxSystem) Update(_ float64, m *ecs.Manager) error {
	skyEntity, err := m.SingletonEntity(ecs.Skybox)
	if err != nil {
		return err
	}
	sky, err := ecs.Get(m, skyEntity, component.SkyboxComponent.Kind())
	if err != nil {
		return err
	}
	player, err := m.SingletonEntity(ecs.Player)
	if err != nil {
		return err
	}
	cam, err := ecs.Get(m, player, component.CameraComponent.Kind())
	if err != nil {
		return err
	}
	c, err := cam.CameraOrErr()
	if err != nil {
		return err
	}

	if sky.InvViewProjBuffer != nil && sky.SeenCameraRevision == cam.Revision {
		return nil
	}

	view := c.View()
	view[12], view[13], view[14] = 0, 0, 0
	sky.ViewMat = view
	sky.InvViewProjMat = c.Projection().Mul4(view).Inv()

	buf, err := gpu.EnsureBuffer(ss.device, &sky.InvViewProjBuffer, gpu.BufferDescriptor{
		Label: skyboxBufferLabel,
		Size:  gpu.Mat4Size,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	if err := ss.device.WriteBuffer(buf, 0, gpu.Mat4Bytes(sky.InvViewProjMat)); err != nil {
		return err
	}
	sky.SeenCameraRevision = cam.Revision
	return nil
}
