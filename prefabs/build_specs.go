package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeComponentSpec converts a snapshot component's loosely typed data into
// a spec struct by round-tripping it through YAML. Missing fields keep their
// zero values; nil data yields the zero spec.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// Vec3Spec is a three element list.
type Vec3Spec []float32

func (v Vec3Spec) Values() ([3]float32, bool, error) {
	switch len(v) {
	case 0:
		return [3]float32{}, false, nil
	case 3:
		return [3]float32{v[0], v[1], v[2]}, true, nil
	default:
		return [3]float32{}, false, fmt.Errorf("prefabs: vec3 needs 3 values, got %d", len(v))
	}
}

// QuatSpec is a quaternion as [x, y, z, w].
type QuatSpec []float32

func (q QuatSpec) Values() ([4]float32, bool, error) {
	switch len(q) {
	case 0:
		return [4]float32{}, false, nil
	case 4:
		return [4]float32{q[0], q[1], q[2], q[3]}, true, nil
	default:
		return [4]float32{}, false, fmt.Errorf("prefabs: quaternion needs 4 values, got %d", len(q))
	}
}

type TransformComponentSpec struct {
	Position Vec3Spec `yaml:"position,omitempty" json:"position,omitempty"`
	Rotation QuatSpec `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Scale    Vec3Spec `yaml:"scale,omitempty" json:"scale,omitempty"`
}

type ParentComponentSpec struct {
	Entity uint32 `yaml:"entity" json:"entity"`
}

type ChildComponentSpec struct {
	Entities []uint32 `yaml:"entities,omitempty" json:"entities,omitempty"`
}

type CameraComponentSpec struct {
	CameraType string `yaml:"camera_type" json:"camera_type"`
}

type LightingComponentSpec struct {
	Direction   Vec3Spec `yaml:"direction,omitempty" json:"direction,omitempty"`
	Target      Vec3Spec `yaml:"target,omitempty" json:"target,omitempty"`
	Intensity   *float32 `yaml:"intensity,omitempty" json:"intensity,omitempty"`
	DiffuseBias *float32 `yaml:"diffuse_bias,omitempty" json:"diffuse_bias,omitempty"`
}

type ShadowComponentSpec struct {
	ShadowMapSize int `yaml:"shadow_map_size" json:"shadow_map_size"`
}

type RefComponentSpec struct {
	Ref string `yaml:"ref" json:"ref"`
}

type PlayerControllerComponentSpec struct {
	MoveSpeed     *float32 `yaml:"move_speed,omitempty" json:"move_speed,omitempty"`
	RotationSpeed *float32 `yaml:"rotation_speed,omitempty" json:"rotation_speed,omitempty"`
	FlyMode       bool     `yaml:"fly_mode,omitempty" json:"fly_mode,omitempty"`
	Yaw           float32  `yaml:"yaw,omitempty" json:"yaw,omitempty"`
	Pitch         float32  `yaml:"pitch,omitempty" json:"pitch,omitempty"`
}

type RigidBodyComponentSpec struct {
	Velocity Vec3Spec `yaml:"velocity,omitempty" json:"velocity,omitempty"`
}

type ColliderComponentSpec struct {
	Type   string   `yaml:"type" json:"type"`
	Center Vec3Spec `yaml:"center,omitempty" json:"center,omitempty"`
	Size   Vec3Spec `yaml:"size,omitempty" json:"size,omitempty"`
	Ref    string   `yaml:"ref,omitempty" json:"ref,omitempty"`
}
