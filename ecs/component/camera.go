package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/camera"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/gpu"
)

// Camera binds a camera implementation to the entity whose transform it views
// from. Camera is instantiated from Type by the scene loader.
type Camera struct {
	Type   camera.Type
	Camera camera.Camera

	ViewProjMat    mgl32.Mat4
	ViewProjBuffer gpu.Buffer

	State                 CacheState
	SeenTransformRevision uint64
	Revision              uint64
}

func NewCamera(t camera.Type) *Camera {
	return &Camera{Type: t, ViewProjMat: mgl32.Ident4()}
}

func (c *Camera) CameraOrErr() (camera.Camera, error) {
	return Require(c.Camera, "camera instance")
}

func (c *Camera) ViewProjBufferOrErr() (gpu.Buffer, error) {
	return Require(c.ViewProjBuffer, "camera view projection buffer")
}

var CameraComponent = ecs.NewComponent[Camera]("camera")
