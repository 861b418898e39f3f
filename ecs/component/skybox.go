package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/gpu"
)

type Skybox struct {
	ViewMat           mgl32.Mat4
	InvViewProjMat    mgl32.Mat4
	InvViewProjBuffer gpu.Buffer

	// SeenCameraRevision is the camera revision the inverse was built from.
	// Zero never matches a refreshed camera.
	SeenCameraRevision uint64
}

func NewSkybox() *Skybox {
	return &Skybox{ViewMat: mgl32.Ident4(), InvViewProjMat: mgl32.Ident4()}
}

// CubeMap names the cube map asset a skybox samples.
type CubeMap struct {
	Ref string
}

var (
	SkyboxComponent  = ecs.NewComponent[Skybox]("skybox")
	CubeMapComponent = ecs.NewComponent[CubeMap]("cube_map")
)
