package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/gpu"
)

const (
	shadowExtent = 10
	shadowNear   = 0.1
	shadowFar    = 100

	shadowBufferLabel   = "shadow buffer"
	shadowVPBufferLabel = "shadow view projection buffer"
)

// ShadowSystem builds the light-space view-projection used by the shadow
// pass, and creates the shadow map texture and its comparison sampler once.
type ShadowSystem struct {
	device gpu.Device
}

func NewShadowSystem(device gpu.Device) *ShadowSystem {
	return &ShadowSystem{device: device}
}

func (ss *ShadowSystem) Update(_ float64, m *ecs.Manager) error {
	light, err := m.SingletonEntity(ecs.Lighting)
	if err != nil {
		return err
	}
	lighting, err := ecs.Get(m, light, component.LightingComponent.Kind())
	if err != nil {
		return err
	}
	shadow, err := ecs.Get(m, light, component.ShadowComponent.Kind())
	if err != nil {
		return err
	}
	transform, err := ecs.Get(m, light, component.TransformComponent.Kind())
	if err != nil {
		return err
	}

	if !shadow.State.IsDirty() &&
		shadow.SeenLightingRevision == lighting.Revision &&
		shadow.SeenTransformRevision == transform.Revision {
		return nil
	}

	view := mgl32.LookAtV(transform.Position, lighting.Target, worldUp)
	proj := mgl32.Ortho(-shadowExtent, shadowExtent, -shadowExtent, shadowExtent, shadowNear, shadowFar)
	shadow.ViewProjMat = proj.Mul4(view)

	if err := ss.upload(shadow); err != nil {
		return err
	}
	if err := ss.ensureDepth(shadow); err != nil {
		return err
	}

	shadow.SeenLightingRevision = lighting.Revision
	shadow.SeenTransformRevision = transform.Revision
	shadow.State.MarkClean()
	return nil
}

func (ss *ShadowSystem) upload(shadow *component.Shadow) error {
	buf, err := gpu.EnsureBuffer(ss.device, &shadow.Buffer, gpu.BufferDescriptor{
		Label: shadowBufferLabel,
		Size:  component.ShadowBufferSize,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	if err := ss.device.WriteBuffer(buf, 0, gpu.Float32Bytes(float32(shadow.ShadowMapSize))); err != nil {
		return err
	}

	vp, err := gpu.EnsureBuffer(ss.device, &shadow.ViewProjBuffer, gpu.BufferDescriptor{
		Label: shadowVPBufferLabel,
		Size:  gpu.Mat4Size,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	return ss.device.WriteBuffer(vp, 0, gpu.Mat4Bytes(shadow.ViewProjMat))
}

func (ss *ShadowSystem) ensureDepth(shadow *component.Shadow) error {
	if shadow.DepthTexture == nil {
		tex, err := ss.device.CreateTexture(gpu.TextureDescriptor{
			Label:  "shadow depth texture",
			Width:  shadow.ShadowMapSize,
			Height: shadow.ShadowMapSize,
			Format: "depth32float",
			Usage:  gpu.TextureUsageRenderAttachment | gpu.TextureUsageTextureBinding,
		})
		if err != nil {
			return err
		}
		shadow.DepthTexture = tex
	}
	if shadow.DepthSampler == nil {
		sampler, err := ss.device.CreateSampler(gpu.SamplerDescriptor{
			Label:        "shadow depth texture sampler",
			Compare:      "less",
			MagFilter:    "linear",
			MinFilter:    "linear",
			AddressModeU: "clamp-to-edge",
			AddressModeV: "clamp-to-edge",
		})
		if err != nil {
			return err
		}
		shadow.DepthSampler = sampler
	}
	return nil
}
