package scene

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jannetahkola/webgpu-game/assets"
	"github.com/jannetahkola/webgpu-game/camera"
	"github.com/jannetahkola/webgpu-game/ecs"
	"github.com/jannetahkola/webgpu-game/ecs/component"
	"github.com/jannetahkola/webgpu-game/ecs/system"
	"github.com/jannetahkola/webgpu-game/gpu"
	"github.com/jannetahkola/webgpu-game/input"
	"github.com/jannetahkola/webgpu-game/physics"
	"github.com/jannetahkola/webgpu-game/prefabs"
	"go.uber.org/zap"
)

var ErrUnknownCameraType = errors.New("scene: unknown camera type")

// Loader builds scenes from prefabs. The asset cache is shared across loads,
// so reloading a scene does not reload its models.
type Loader struct {
	registry *ecs.ComponentRegistry
	assets   *assets.Manager
	device   gpu.Device
	input    input.State
	logger   *zap.Logger

	meshWireframes     bool
	colliderWireframes bool
}

type LoaderOption func(*Loader)

func WithLogger(l *zap.Logger) LoaderOption {
	return func(loader *Loader) {
		if l != nil {
			loader.logger = l
		}
	}
}

// WithDiagnostics sets the wireframe toggles new scenes start with.
func WithDiagnostics(meshWireframes, colliderWireframes bool) LoaderOption {
	return func(loader *Loader) {
		loader.meshWireframes = meshWireframes
		loader.colliderWireframes = colliderWireframes
	}
}

func NewLoader(registry *ecs.ComponentRegistry, assetManager *assets.Manager, device gpu.Device, in input.State, opts ...LoaderOption) *Loader {
	l := &Loader{
		registry: registry,
		assets:   assetManager,
		device:   device,
		input:    in,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetDiagnostics changes the wireframe toggles used by later loads.
func (l *Loader) SetDiagnostics(meshWireframes, colliderWireframes bool) {
	l.meshWireframes = meshWireframes
	l.colliderWireframes = colliderWireframes
}

// Load restores prefab into a new manager, resolves its assets and cameras,
// and installs the system pipeline.
func (l *Loader) Load(ctx context.Context, prefab prefabs.Prefab) (*Scene, error) {
	start := time.Now()
	id := uuid.New()
	logger := l.logger.With(zap.String("scene", prefab.Name), zap.Stringer("scene_id", id))

	m := ecs.NewManager(ecs.WithLogger(logger))
	if err := m.Deserialize(prefab.Snapshot, l.registry); err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", prefab.Name, err)
	}
	ecs.SetResource(m, component.NewDiagnostics(l.meshWireframes, l.colliderWireframes))
	ecs.SetResource(m, &ecs.EventQueue{})

	if err := l.loadAssets(ctx, m); err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", prefab.Name, err)
	}
	meshes, err := l.expandModels(m)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", prefab.Name, err)
	}
	if err := initCameras(m); err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", prefab.Name, err)
	}

	s := &Scene{
		ID:        id,
		Name:      prefab.Name,
		Manager:   m,
		scheduler: ecs.NewScheduler(l.systems(logger)...),
	}
	logger.Info("prefab loaded",
		zap.Int("entities", len(m.Entities())),
		zap.Int("meshes", meshes),
		zap.Duration("took", time.Since(start)))
	return s, nil
}

func (l *Loader) systems(logger *zap.Logger) []ecs.System {
	return []ecs.System{
		system.NewInputSystem(l.input, logger),
		system.NewPlayerControllerSystem(),
		system.NewPhysicsSystem(l.assets),
		system.NewTransformSystem(l.device),
		system.NewCameraSystem(l.device),
		system.NewSkyboxSystem(l.device),
		system.NewLightingSystem(l.device),
		system.NewShadowSystem(l.device),
		system.NewMeshWireframeSystem(logger),
		system.NewColliderWireframeSystem(l.device, logger),
	}
}

func (l *Loader) loadAssets(ctx context.Context, m *ecs.Manager) error {
	var models, cubeMaps []string
	ecs.ForEach(m, component.ModelComponent.Kind(), func(_ ecs.Entity, model *component.Model) {
		models = append(models, model.Ref)
	})
	ecs.ForEach(m, component.ColliderComponent.Kind(), func(_ ecs.Entity, c *component.Collider) {
		if c.Shape == physics.ShapeMesh {
			models = append(models, c.Ref)
		}
	})
	ecs.ForEach(m, component.CubeMapComponent.Kind(), func(_ ecs.Entity, c *component.CubeMap) {
		cubeMaps = append(cubeMaps, c.Ref)
	})

	if err := l.assets.LoadModels(ctx, models); err != nil {
		return err
	}
	return l.assets.LoadCubeMaps(ctx, cubeMaps)
}

// expandModels gives every model entity one child per mesh, carrying the mesh
// and material refs under a Parent link. It returns the number of children.
func (l *Loader) expandModels(m *ecs.Manager) (int, error) {
	var created int
	for _, e := range m.EntitiesWith(component.ModelComponent.Kind()) {
		ref, err := ecs.Get(m, e, component.ModelComponent.Kind())
		if err != nil {
			return created, err
		}
		model, err := l.assets.Model(ref.Ref)
		if err != nil {
			return created, err
		}
		if len(model.Meshes) == 0 {
			return created, fmt.Errorf("%w: %q", assets.ErrNoMeshes, ref.Ref)
		}

		children := make([]ecs.Entity, 0, len(model.Meshes))
		for _, mesh := range model.Meshes {
			child := m.CreateEntity(
				ecs.With(component.TransformComponent.Kind(), component.DefaultTransform()),
				ecs.With(component.MeshComponent.Kind(), &component.Mesh{Ref: mesh.Ref}),
				ecs.With(component.MaterialComponent.Kind(), &component.Material{Ref: mesh.MaterialRef}),
				ecs.With(component.ParentComponent.Kind(), &component.Parent{Entity: e}),
			)
			children = append(children, child)
		}
		if existing, ok := ecs.GetOpt(m, e, component.ChildComponent.Kind()); ok {
			existing.Entities = append(existing.Entities, children...)
		} else if err := ecs.Add(m, e, component.ChildComponent.Kind(), &component.Child{Entities: children}); err != nil {
			return created, err
		}
		created += len(children)
	}
	return created, nil
}

func initCameras(m *ecs.Manager) error {
	for _, e := range m.EntitiesWith(component.CameraComponent.Kind()) {
		c, err := ecs.Get(m, e, component.CameraComponent.Kind())
		if err != nil {
			return err
		}
		instance, err := camera.New(c.Type)
		if err != nil {
			return fmt.Errorf("%w: entity %d: %w", ErrUnknownCameraType, e, err)
		}
		c.Camera = instance
	}
	return nil
}
