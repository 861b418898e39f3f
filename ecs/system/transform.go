package system

import (
	"errors"
	"fmt"

	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/gpu"
)

var ErrParentCycle = errors.New("system: parent cycle")

const (
	modelBufferLabel  = "transform model buffer"
	normalBufferLabel = "transform normal buffer"
)

// TransformSystem rebuilds the model and normal matrices of dirty transforms
// and uploads them. Parents are processed before their children, and a
// refreshed parent dirties its children in the same pass.
type TransformSystem struct {
	device gpu.Device
	query  ecs.Query
}

func NewTransformSystem(device gpu.Device) *TransformSystem {
	return &TransformSystem{
		device: device,
		query:  ecs.NewQuery(component.TransformComponent.Kind()),
	}
}

func (ts *TransformSystem) Update(_ float64, m *ecs.Manager) error {
	order, err := parentFirst(m, ts.query.Execute(m))
	if err != nil {
		return err
	}

	refreshed := make(map[ecs.Entity]struct{})
	for _, e := range order {
		t, err := ecs.Get(m, e, component.TransformComponent.Kind())
		if err != nil {
			return err
		}
		parent, hasParent := ecs.GetOpt(m, e, component.ParentComponent.Kind())
		if hasParent {
			if _, ok := refreshed[parent.Entity]; ok {
				t.MarkDirty()
			}
		}
		if !t.State.IsDirty() {
			continue
		}

		t.RotationMat = t.Rotation.Mat4()
		model := t.LocalMat()
		if hasParent {
			pt, err := ecs.Get(m, parent.Entity, component.TransformComponent.Kind())
			if err != nil {
				return fmt.Errorf("parent of entity %d: %w", e, err)
			}
			model = pt.ModelMat.Mul4(model)
		}
		t.ModelMat = model
		t.NormalMat = model.Mat3().Inv().Transpose()

		if err := ts.upload(t); err != nil {
			return err
		}

		t.State.MarkClean()
		t.Revision++
		refreshed[e] = struct{}{}
	}
	return nil
}

func (ts *TransformSystem) upload(t *component.Transform) error {
	model, err := gpu.EnsureBuffer(ts.device, &t.ModelBuffer, gpu.BufferDescriptor{
		Label: modelBufferLabel,
		Size:  gpu.Mat4Size,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	normal, err := gpu.EnsureBuffer(ts.device, &t.NormalBuffer, gpu.BufferDescriptor{
		Label: normalBufferLabel,
		Size:  gpu.Mat3Size,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	if err := ts.device.WriteBuffer(model, 0, gpu.Mat4Bytes(t.ModelMat)); err != nil {
		return err
	}
	return ts.device.WriteBuffer(normal, 0, gpu.Mat3Bytes(t.NormalMat))
}

// parentFirst orders entities so every parent precedes its children, keeping
// ascending id order otherwise.
func parentFirst(m *ecs.Manager, entities []ecs.Entity) ([]ecs.Entity, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[ecs.Entity]int, len(entities))
	member := make(map[ecs.Entity]struct{}, len(entities))
	for _, e := range entities {
		member[e] = struct{}{}
	}
	order := make([]ecs.Entity, 0, len(entities))

	var visit func(e ecs.Entity) error
	visit = func(e ecs.Entity) error {
		switch state[e] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: entity %d", ErrParentCycle, e)
		}
		state[e] = visiting
		if p, ok := ecs.GetOpt(m, e, component.ParentComponent.Kind()); ok {
			if _, tracked := member[p.Entity]; tracked {
				if err := visit(p.Entity); err != nil {
					return err
				}
			}
		}
		state[e] = done
		order = append(order, e)
		return nil
	}

	for _, e := range entities {
		if err := visit(e); err != nil {
			return nil, err
		}
	}
	return order, nil
}
