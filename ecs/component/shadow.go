package component

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/gpu"
)

var ErrShadowMapSize = errors.New("component: positive shadow map size is required")

const ShadowBufferSize = 32

type Shadow struct {
	ShadowMapSize int

	ViewProjMat    mgl32.Mat4
	Buffer         gpu.Buffer
	ViewProjBuffer gpu.Buffer
	DepthTexture   gpu.Texture
	DepthSampler   gpu.Sampler

	State                 CacheState
	SeenLightingRevision  uint64
	SeenTransformRevision uint64
}

func NewShadow(shadowMapSize int) (*Shadow, error) {
	if shadowMapSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrShadowMapSize, shadowMapSize)
	}
	return &Shadow{ShadowMapSize: shadowMapSize, ViewProjMat: mgl32.Ident4()}, nil
}

func (s *Shadow) MarkDirty() { s.State.MarkDirty() }

func (s *Shadow) DepthTextureOrErr() (gpu.Texture, error) {
	return Require(s.DepthTexture, "shadow depth texture")
}

var ShadowComponent = ecs.NewComponent[Shadow]("shadow")
