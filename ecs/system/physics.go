package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/assets"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/physics"
)

const (
	gravity         = -9.8
	ascendGravity   = 0.7
	jumpVelocity    = 2.1
	eyeHeight       = 1.0
	rayOffsetY      = 0.1
	snapOffsetY     = 0.05
	maxSnapDist     = 0.2
	maxSlopeAngle   = math.Pi / 4
	slideSpeed      = 3.0
	maxWallFall     = -1.0
	fallingVelocity = -0.1
)

var gravityDir = mgl32.Vec3{0, -1, 0}

// ModelSource resolves the collision meshes of mesh colliders.
type ModelSource interface {
	Model(ref string) (*assets.Model, error)
}

// PhysicsSystem moves the player's rigid body and keeps it on the ground. It
// casts one ray down from just above the feet against every mesh collider.
type PhysicsSystem struct {
	models ModelSource
	query  ecs.Query
}

func NewPhysicsSystem(models ModelSource) *PhysicsSystem {
	return &PhysicsSystem{
		models: models,
		query:  ecs.NewQuery(component.ColliderComponent.Kind()),
	}
}

func (ps *PhysicsSystem) Update(dt float64, m *ecs.Manager) error {
	player, err := m.SingletonEntity(ecs.Player)
	if err != nil {
		return err
	}
	transform, err := ecs.Get(m, player, component.TransformComponent.Kind())
	if err != nil {
		return err
	}
	body, err := ecs.Get(m, player, component.RigidBodyComponent.Kind())
	if err != nil {
		return err
	}
	controller, err := ecs.Get(m, player, component.PlayerControllerComponent.Kind())
	if err != nil {
		return err
	}

	step := float32(dt)
	fly := controller.FlyModeEnabled

	ps.updateVelocity(controller, body)

	wasGrounded := body.Grounded
	// grounding is re-evaluated every frame
	body.Grounded = false

	if !fly {
		for _, e := range ps.query.Execute(m) {
			if e == player {
				continue
			}
			collider, err := ecs.Get(m, e, component.ColliderComponent.Kind())
			if err != nil {
				return err
			}
			switch collider.Shape {
			case physics.ShapeBox:
			case physics.ShapeMesh:
				if err := ps.updateGrounded(step, colliderMat(m, e), collider, transform, body); err != nil {
					return err
				}
			}
		}
	}

	if body.Grounded && !wasGrounded {
		ecs.Emit(m, ecs.Event{Type: ecs.EventLanded, Entity: player})
	}
	if body.Grounded && controller.JumpRequested {
		body.Velocity[1] = jumpVelocity
		body.Grounded = false
		ecs.Emit(m, ecs.Event{Type: ecs.EventJumped, Entity: player})
	}

	if !body.Grounded && !fly {
		g := float32(gravity)
		if body.Velocity.Y() > 0 {
			g *= ascendGravity
		}
		body.Velocity[1] += g * step
	}

	transform.Position = transform.Position.Add(body.Velocity.Mul(step))

	controller.JumpRequested = false
	transform.MarkDirty()
	return nil
}

func (ps *PhysicsSystem) updateVelocity(controller *component.PlayerController, body *component.RigidBody) {
	fly := controller.FlyModeEnabled
	dir := controller.WorldMoveDir
	if dir.LenSqr() == 0 {
		body.Velocity[0] = 0
		body.Velocity[2] = 0
		if fly {
			body.Velocity[1] = 0
		}
		return
	}

	dir = dir.Normalize()
	body.Velocity[0] = dir.X() * controller.MoveSpeed
	body.Velocity[2] = dir.Z() * controller.MoveSpeed
	if fly {
		body.Velocity[1] = dir.Y() * controller.MoveSpeed
	}
}

// snapDistance widens with fall speed so a fast fall cannot tunnel past the
// ground between frames.
func snapDistance(dt float32, body *component.RigidBody) float32 {
	if body.Velocity.Y() < fallingVelocity {
		fall := float32(math.Abs(float64(body.Velocity.Y())))
		return min(maxSnapDist, snapOffsetY+fall*dt*1.5)
	}
	return maxSnapDist
}

func (ps *PhysicsSystem) updateGrounded(dt float32, world mgl32.Mat4, collider *component.Collider, transform *component.Transform, body *component.RigidBody) error {
	model, err := ps.models.Model(collider.Ref)
	if err != nil {
		return err
	}

	foot := transform.Position.Sub(mgl32.Vec3{0, eyeHeight, 0})
	ray := physics.Ray{
		Origin:    foot.Add(mgl32.Vec3{0, rayOffsetY, 0}),
		Direction: gravityDir,
	}
	ascending := body.Velocity.Y() > 0

	for _, mesh := range model.Meshes {
		if body.Grounded {
			break
		}
		hit, ok := physics.IntersectMesh(ray, mesh.Collision(), world)
		if !ok || hit.T > snapDistance(dt, body) {
			continue
		}
		// rising bodies only snap once they are nearly through the offset
		if ascending && hit.T >= snapOffsetY {
			continue
		}

		cos := mgl32.Clamp(hit.Normal.Dot(worldUp), -1, 1)
		slope := math.Acos(float64(cos))

		switch {
		case slope <= maxSlopeAngle:
			n := hit.Normal
			body.Velocity = body.Velocity.Sub(n.Mul(body.Velocity.Dot(n)))
			transform.Position[1] = ray.Origin.Y() - hit.T + eyeHeight
			body.Velocity[1] = 0
			body.Grounded = true
		case body.Velocity.Y() < fallingVelocity:
			slide := hit.Normal.Cross(gravityDir).Cross(hit.Normal)
			if slide.LenSqr() > 0 {
				body.Velocity = slide.Normalize().Mul(slideSpeed)
			}
		default:
			body.Velocity[0] = 0
			body.Velocity[2] = 0
			if body.Velocity.Y() < maxWallFall {
				body.Velocity[1] = maxWallFall
			}
		}
	}
	return nil
}

// colliderMat places a collider in the world. A transform refreshed this
// frame is not clean yet, so its local matrix stands in.
func colliderMat(m *ecs.Manager, e ecs.Entity) mgl32.Mat4 {
	t, ok := ecs.GetOpt(m, e, component.TransformComponent.Kind())
	if !ok {
		return mgl32.Ident4()
	}
	if t.State.IsDirty() {
		return t.LocalMat()
	}
	return t.ModelMat
}
