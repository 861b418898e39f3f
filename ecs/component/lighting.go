package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/gpu"
)

const LightingBufferSize = 32

// Lighting is the scene's directional light. Target is the point the shadow
// camera looks at from the light's transform.
type Lighting struct {
	Direction   mgl32.Vec3
	Target      mgl32.Vec3
	Intensity   float32
	DiffuseBias float32

	Packed [5]float32
	Buffer gpu.Buffer

	State    CacheState
	Revision uint64
}

func NewLighting() *Lighting {
	return &Lighting{
		Direction:   mgl32.Vec3{0, 1, 1},
		Intensity:   1,
		DiffuseBias: 0.2,
	}
}

func (l *Lighting) MarkDirty() { l.State.MarkDirty() }

func (l *Lighting) BufferOrErr() (gpu.Buffer, error) {
	return Require(l.Buffer, "lighting buffer")
}

var LightingComponent = ecs.NewComponent[Lighting]("lighting")
