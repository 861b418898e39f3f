package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/gpu"
)

// Transform is an entity's local placement plus the matrices derived from it.
// Writers change Position, Rotation or Scale and call MarkDirty; the transform
// system rebuilds ModelMat and NormalMat.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3

	ModelMat    mgl32.Mat4
	NormalMat   mgl32.Mat3
	RotationMat mgl32.Mat4

	ModelBuffer  gpu.Buffer
	NormalBuffer gpu.Buffer

	State CacheState
	// Revision counts refreshes, letting dependants notice a new ModelMat.
	Revision uint64
}

func NewTransform(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) *Transform {
	return &Transform{
		Position:    position,
		Rotation:    rotation,
		Scale:       scale,
		ModelMat:    mgl32.Ident4(),
		NormalMat:   mgl32.Ident3(),
		RotationMat: mgl32.Ident4(),
	}
}

// DefaultTransform sits at the origin, unrotated, unit scale.
func DefaultTransform() *Transform {
	return NewTransform(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
}

func (t *Transform) MarkDirty() { t.State.MarkDirty() }

// LocalMat is T·R·S of the local fields.
func (t *Transform) LocalMat() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

var TransformComponent = ecs.NewComponent[Transform]("transform")
