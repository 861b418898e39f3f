package system

import (
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/gpu"
	"github.com/jannetahkola/webgpu-game/physics"
	"go.uber.org/zap"
)

// MeshWireframeSystem adds or removes MeshWireframe on every mesh when the
// diagnostics flag changes.
type MeshWireframeSystem struct {
	query  ecs.Query
	logger *zap.Logger
}

func NewMeshWireframeSystem(logger *zap.Logger) *MeshWireframeSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeshWireframeSystem{
		query:  ecs.NewQuery(component.MeshComponent.Kind(), component.TransformComponent.Kind()),
		logger: logger,
	}
}

func (s *MeshWireframeSystem) Update(_ float64, m *ecs.Manager) error {
	diagnostics, err := ecs.GetResource[component.Diagnostics](m)
	if err != nil {
		return err
	}
	if !diagnostics.MeshWireframesDirty {
		return nil
	}

	kind := component.MeshWireframeComponent.Kind()
	entities := s.query.Execute(m)
	for _, e := range entities {
		if !diagnostics.MeshWireframesEnabled {
			ecs.Remove(m, e, kind)
			continue
		}
		if !ecs.Has(m, e, kind) {
			if err := ecs.Add(m, e, kind, &component.MeshWireframe{}); err != nil {
				return err
			}
		}
	}
	s.logger.Debug("mesh wireframes applied",
		zap.Bool("enabled", diagnostics.MeshWireframesEnabled),
		zap.Int("meshes", len(entities)))

	diagnostics.MeshWireframesDirty = false
	return nil
}

const (
	colliderVertexLabel = "box collider vertex buffer"
	colliderIndexLabel  = "box collider line index buffer"
)

// ColliderWireframeSystem gives box colliders line buffers for the debug
// pass when enabled, and destroys them when disabled.
type ColliderWireframeSystem struct {
	device gpu.Device
	query  ecs.Query
	logger *zap.Logger
}

func NewColliderWireframeSystem(device gpu.Device, logger *zap.Logger) *ColliderWireframeSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ColliderWireframeSystem{
		device: device,
		query:  ecs.NewQuery(component.ColliderComponent.Kind(), component.TransformComponent.Kind()),
		logger: logger,
	}
}

func (s *ColliderWireframeSystem) Update(_ float64, m *ecs.Manager) error {
	diagnostics, err := ecs.GetResource[component.Diagnostics](m)
	if err != nil {
		return err
	}
	if !diagnostics.ColliderWireframesDirty {
		return nil
	}

	kind := component.ColliderWireframeComponent.Kind()
	for _, e := range s.query.Execute(m) {
		if !diagnostics.ColliderWireframesEnabled {
			if w, ok := ecs.GetOpt(m, e, kind); ok {
				w.Destroy()
				ecs.Remove(m, e, kind)
				s.logger.Debug("collider wireframe removed", zap.Uint32("entity", uint32(e)))
			}
			continue
		}
		if ecs.Has(m, e, kind) {
			continue
		}
		collider, err := ecs.Get(m, e, component.ColliderComponent.Kind())
		if err != nil {
			return err
		}
		if collider.Shape != physics.ShapeBox {
			continue
		}
		w, err := s.boxWireframe(collider)
		if err != nil {
			return err
		}
		if err := ecs.Add(m, e, kind, w); err != nil {
			return err
		}
		s.logger.Debug("collider wireframe enabled", zap.Uint32("entity", uint32(e)))
	}

	diagnostics.ColliderWireframesDirty = false
	return nil
}

func (s *ColliderWireframeSystem) boxWireframe(collider *component.Collider) (*component.ColliderWireframe, error) {
	corners := collider.Box().Corners()
	vertices := make([]float32, 0, len(corners)*3)
	for _, c := range corners {
		vertices = append(vertices, c[0], c[1], c[2])
	}
	data := gpu.Float32Bytes(vertices...)

	w := &component.ColliderWireframe{}
	vb, err := s.device.CreateBuffer(gpu.BufferDescriptor{
		Label: colliderVertexLabel,
		Size:  len(data),
		Usage: gpu.BufferUsageVertex | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	w.VertexBuffer = vb

	indices := gpu.Uint16Bytes(physics.BoxEdges[:]...)
	ib, err := s.device.CreateBuffer(gpu.BufferDescriptor{
		Label:    colliderIndexLabel,
		Size:     gpu.Align(len(indices), 4),
		Usage:    gpu.BufferUsageIndex,
		Contents: indices,
	})
	if err != nil {
		w.Destroy()
		return nil, err
	}
	w.LineIndexBuffer = ib
	w.LineIndexCount = len(physics.BoxEdges)

	if err := s.device.WriteBuffer(vb, 0, data); err != nil {
		w.Destroy()
		return nil, err
	}
	return w, nil
}
