// Package entity populates a component registry with every component kind a
// prefab may carry.
package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jannetahkola/webgpu-game/camera"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/physics"
	"github.com/jannetahkola/webgpu-game/prefabs"
	"go.uber.org/zap"
)

// componentBuildOrder fixes registration order, which is also the order
// components of one entity are written by Serialize.
var componentBuildOrder = []string{
	component.TransformComponent.Kind().Name(),
	component.ParentComponent.Kind().Name(),
	component.ChildComponent.Kind().Name(),
	component.ModelComponent.Kind().Name(),
	component.MeshComponent.Kind().Name(),
	component.MaterialComponent.Kind().Name(),
	component.CameraComponent.Kind().Name(),
	component.PlayerControllerComponent.Kind().Name(),
	component.RigidBodyComponent.Kind().Name(),
	component.ColliderComponent.Kind().Name(),
	component.LightingComponent.Kind().Name(),
	component.ShadowComponent.Kind().Name(),
	component.SkyboxComponent.Kind().Name(),
	component.CubeMapComponent.Kind().Name(),
}

// RegisterComponents clears r and registers a codec for every prefab
// component. Calling it again rebuilds the same directory.
func RegisterComponents(r *ecs.ComponentRegistry, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r.Reset()
	for _, name := range componentBuildOrder {
		register(r, name)
	}
	logger.Info("component registry built", zap.Int("count", r.Len()), zap.Strings("names", r.Names()))
}

func register(r *ecs.ComponentRegistry, name string) {
	switch name {
	case component.TransformComponent.Kind().Name():
		ecs.RegisterComponent(r, component.TransformComponent.Kind(), decodeTransform, encodeTransform)
	case component.ParentComponent.Kind().Name():
		ecs.RegisterComponent(r, component.ParentComponent.Kind(), decodeParent, encodeParent)
	case component.ChildComponent.Kind().Name():
		ecs.RegisterComponent(r, component.ChildComponent.Kind(), decodeChild, encodeChild)
	case component.ModelComponent.Kind().Name():
		ecs.RegisterComponent(r, component.ModelComponent.Kind(), decodeRef(func(ref string) *component.Model { return &component.Model{Ref: ref} }),
			func(v *component.Model) (any, error) { return prefabs.RefComponentSpec{Ref: v.Ref}, nil })
	case component.MeshComponent.Kind().Name():
		ecs.RegisterComponent(r, component.MeshComponent.Kind(), decodeRef(func(ref string) *component.Mesh { return &component.Mesh{Ref: ref} }),
			func(v *component.Mesh) (any, error) { return prefabs.RefComponentSpec{Ref: v.Ref}, nil })
	case component.MaterialComponent.Kind().Name():
		ecs.RegisterComponent(r, component.MaterialComponent.Kind(), decodeRef(func(ref string) *component.Material { return &component.Material{Ref: ref} }),
			func(v *component.Material) (any, error) { return prefabs.RefComponentSpec{Ref: v.Ref}, nil })
	case component.CubeMapComponent.Kind().Name():
		ecs.RegisterComponent(r, component.CubeMapComponent.Kind(), decodeRef(func(ref string) *component.CubeMap { return &component.CubeMap{Ref: ref} }),
			func(v *component.CubeMap) (any, error) { return prefabs.RefComponentSpec{Ref: v.Ref}, nil })
	case component.CameraComponent.Kind().Name():
		ecs.RegisterComponent(r, component.CameraComponent.Kind(), decodeCamera, encodeCamera)
	case component.PlayerControllerComponent.Kind().Name():
		ecs.RegisterComponent(r, component.PlayerControllerComponent.Kind(), decodePlayerController, encodePlayerController)
	case component.RigidBodyComponent.Kind().Name():
		ecs.RegisterComponent(r, component.RigidBodyComponent.Kind(), decodeRigidBody, encodeRigidBody)
	case component.ColliderComponent.Kind().Name():
		ecs.RegisterComponent(r, component.ColliderComponent.Kind(), decodeCollider, encodeCollider)
	case component.LightingComponent.Kind().Name():
		ecs.RegisterComponent(r, component.LightingComponent.Kind(), decodeLighting, encodeLighting)
	case component.ShadowComponent.Kind().Name():
		ecs.RegisterComponent(r, component.ShadowComponent.Kind(), decodeShadow, encodeShadow)
	case component.SkyboxComponent.Kind().Name():
		ecs.RegisterComponent(r, component.SkyboxComponent.Kind(),
			func(any) (*component.Skybox, error) { return component.NewSkybox(), nil },
			func(*component.Skybox) (any, error) { return map[string]any{}, nil })
	default:
		panic(fmt.Sprintf("entity: no codec for component %q", name))
	}
}

type transformSpec = prefabs.TransformComponentSpec

func decodeTransform(raw any) (*component.Transform, error) {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode transform spec: %w", err)
	}
	t := component.DefaultTransform()
	if v, ok, err := spec.Position.Values(); err != nil {
		return nil, fmt.Errorf("transform position: %w", err)
	} else if ok {
		t.Position = v
	}
	if q, ok, err := spec.Rotation.Values(); err != nil {
		return nil, fmt.Errorf("transform rotation: %w", err)
	} else if ok {
		t.Rotation = mgl32.Quat{W: q[3], V: mgl32.Vec3{q[0], q[1], q[2]}}.Normalize()
	}
	if v, ok, err := spec.Scale.Values(); err != nil {
		return nil, fmt.Errorf("transform scale: %w", err)
	} else if ok {
		t.Scale = v
	}
	return t, nil
}

func encodeTransform(t *component.Transform) (any, error) {
	return transformSpec{
		Position: vec3Spec(t.Position),
		Rotation: prefabs.QuatSpec{t.Rotation.V[0], t.Rotation.V[1], t.Rotation.V[2], t.Rotation.W},
		Scale:    vec3Spec(t.Scale),
	}, nil
}

func decodeParent(raw any) (*component.Parent, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParentComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode parent spec: %w", err)
	}
	return &component.Parent{Entity: ecs.Entity(spec.Entity)}, nil
}

func encodeParent(p *component.Parent) (any, error) {
	return prefabs.ParentComponentSpec{Entity: uint32(p.Entity)}, nil
}

func decodeChild(raw any) (*component.Child, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ChildComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode child spec: %w", err)
	}
	c := &component.Child{Entities: make([]ecs.Entity, len(spec.Entities))}
	for i, e := range spec.Entities {
		c.Entities[i] = ecs.Entity(e)
	}
	return c, nil
}

func encodeChild(c *component.Child) (any, error) {
	spec := prefabs.ChildComponentSpec{Entities: make([]uint32, len(c.Entities))}
	for i, e := range c.Entities {
		spec.Entities[i] = uint32(e)
	}
	return spec, nil
}

func decodeRef[T any](build func(ref string) *T) func(raw any) (*T, error) {
	return func(raw any) (*T, error) {
		spec, err := prefabs.DecodeComponentSpec[prefabs.RefComponentSpec](raw)
		if err != nil {
			return nil, fmt.Errorf("decode ref spec: %w", err)
		}
		if spec.Ref == "" {
			return nil, fmt.Errorf("decode ref spec: ref is required")
		}
		return build(spec.Ref), nil
	}
}

func decodeCamera(raw any) (*component.Camera, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.CameraType == "" {
		spec.CameraType = string(camera.FirstPerson)
	}
	return component.NewCamera(camera.Type(spec.CameraType)), nil
}

func encodeCamera(c *component.Camera) (any, error) {
	return prefabs.CameraComponentSpec{CameraType: string(c.Type)}, nil
}

func decodePlayerController(raw any) (*component.PlayerController, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerControllerComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode player controller spec: %w", err)
	}
	pc := component.NewPlayerController()
	if spec.MoveSpeed != nil {
		pc.MoveSpeed = *spec.MoveSpeed
	}
	if spec.RotationSpeed != nil {
		pc.RotationSpeed = *spec.RotationSpeed
	}
	pc.FlyModeEnabled = spec.FlyMode
	pc.Yaw = spec.Yaw
	pc.Pitch = spec.Pitch
	return pc, nil
}

func encodePlayerController(pc *component.PlayerController) (any, error) {
	return prefabs.PlayerControllerComponentSpec{
		MoveSpeed:     ptr(pc.MoveSpeed),
		RotationSpeed: ptr(pc.RotationSpeed),
		FlyMode:       pc.FlyModeEnabled,
		Yaw:           pc.Yaw,
		Pitch:         pc.Pitch,
	}, nil
}

func decodeRigidBody(raw any) (*component.RigidBody, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RigidBodyComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode rigid body spec: %w", err)
	}
	rb := &component.RigidBody{}
	v, _, err := spec.Velocity.Values()
	if err != nil {
		return nil, fmt.Errorf("rigid body velocity: %w", err)
	}
	rb.Velocity = v
	return rb, nil
}

func encodeRigidBody(rb *component.RigidBody) (any, error) {
	return prefabs.RigidBodyComponentSpec{Velocity: vec3Spec(rb.Velocity)}, nil
}

func decodeCollider(raw any) (*component.Collider, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode collider spec: %w", err)
	}
	shape, err := physics.ParseShape(spec.Type)
	if err != nil {
		return nil, err
	}
	c := &component.Collider{Shape: shape, Size: mgl32.Vec3{1, 1, 1}, Ref: spec.Ref}
	if v, ok, err := spec.Center.Values(); err != nil {
		return nil, fmt.Errorf("collider center: %w", err)
	} else if ok {
		c.Center = v
	}
	if v, ok, err := spec.Size.Values(); err != nil {
		return nil, fmt.Errorf("collider size: %w", err)
	} else if ok {
		c.Size = v
	}
	if shape == physics.ShapeMesh && c.Ref == "" {
		return nil, fmt.Errorf("decode collider spec: mesh collider needs a ref")
	}
	return c, nil
}

func encodeCollider(c *component.Collider) (any, error) {
	return prefabs.ColliderComponentSpec{
		Type:   string(c.Shape),
		Center: vec3Spec(c.Center),
		Size:   vec3Spec(c.Size),
		Ref:    c.Ref,
	}, nil
}

func decodeLighting(raw any) (*component.Lighting, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LightingComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode lighting spec: %w", err)
	}
	l := component.NewLighting()
	if v, ok, err := spec.Direction.Values(); err != nil {
		return nil, fmt.Errorf("lighting direction: %w", err)
	} else if ok {
		l.Direction = v
	}
	if v, ok, err := spec.Target.Values(); err != nil {
		return nil, fmt.Errorf("lighting target: %w", err)
	} else if ok {
		l.Target = v
	}
	if spec.Intensity != nil {
		l.Intensity = *spec.Intensity
	}
	if spec.DiffuseBias != nil {
		l.DiffuseBias = *spec.DiffuseBias
	}
	return l, nil
}

func encodeLighting(l *component.Lighting) (any, error) {
	return prefabs.LightingComponentSpec{
		Direction:   vec3Spec(l.Direction),
		Target:      vec3Spec(l.Target),
		Intensity:   ptr(l.Intensity),
		DiffuseBias: ptr(l.DiffuseBias),
	}, nil
}

func decodeShadow(raw any) (*component.Shadow, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ShadowComponentSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode shadow spec: %w", err)
	}
	return component.NewShadow(spec.ShadowMapSize)
}

func encodeShadow(s *component.Shadow) (any, error) {
	return prefabs.ShadowComponentSpec{ShadowMapSize: s.ShadowMapSize}, nil
}

func vec3Spec(v mgl32.Vec3) prefabs.Vec3Spec {
	return prefabs.Vec3Spec{v[0], v[1], v[2]}
}

func ptr[T any](v T) *T {
	return &v
}
