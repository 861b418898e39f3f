// Package camera holds the projection and view logic the camera system drives.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnknownType = errors.New("camera: unknown camera type")

// Type names a camera implementation in prefabs.
type Type string

const FirstPerson Type = "first_person"

// Camera produces view and projection matrices from an eye transform.
type Camera interface {
	Update(position mgl32.Vec3, rotation mgl32.Quat)
	View() mgl32.Mat4
	Projection() mgl32.Mat4
	ViewProjection() mgl32.Mat4
}

var (
	Up      = mgl32.Vec3{0, 1, 0}
	Forward = mgl32.Vec3{0, 0, -1}
)

// New instantiates the camera named by t.
func New(t Type) (Camera, error) {
	switch t {
	case FirstPerson:
		return NewFirstPersonCamera(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
}

type FirstPersonCamera struct {
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32

	view mgl32.Mat4
	proj mgl32.Mat4
}

func NewFirstPersonCamera() *FirstPersonCamera {
	c := &FirstPersonCamera{
		FovY:   math.Pi / 2,
		Aspect: 16.0 / 9.0,
		Near:   0.1,
		Far:    10,
		view:   mgl32.Ident4(),
	}
	c.proj = mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
	return c
}

// Update looks from position along the rotated forward axis.
func (c *FirstPersonCamera) Update(position mgl32.Vec3, rotation mgl32.Quat) {
	target := position.Add(rotation.Rotate(Forward))
	c.view = mgl32.LookAtV(position, target, Up)
	c.proj = mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

func (c *FirstPersonCamera) View() mgl32.Mat4       { return c.view }
func (c *FirstPersonCamera) Projection() mgl32.Mat4 { return c.proj }

func (c *FirstPersonCamera) ViewProjection() mgl32.Mat4 {
	return c.proj.Mul4(c.view)
}
