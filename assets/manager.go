package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotLoaded  = errors.New("assets: not loaded")
	ErrUnknownRef = errors.New("assets: unknown ref")
	ErrNoMeshes   = errors.New("assets: model has no meshes")
)

// Manager caches models and cube maps by ref. Loading is concurrent; lookups
// after loading are safe from any goroutine.
type Manager struct {
	mu       sync.RWMutex
	models   map[string]*Model
	meshes   map[string]Mesh
	cubeMaps map[string]CubeMap
	logger   *zap.Logger
	limit    int
}

func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		models:   make(map[string]*Model),
		meshes:   make(map[string]Mesh),
		cubeMaps: make(map[string]CubeMap),
		logger:   logger,
		limit:    4,
	}
}

// Register stores a model under its ref, replacing any previous one.
func (m *Manager) Register(model *Model) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models[model.Ref] = model
	for _, mesh := range model.Meshes {
		m.meshes[mesh.Ref] = mesh
	}
}

// Model returns a loaded model.
func (m *Manager) Model(ref string) (*Model, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	model, ok := m.models[ref]
	if !ok {
		return nil, fmt.Errorf("%w: model %q", ErrNotLoaded, ref)
	}
	return model, nil
}

// Mesh returns a mesh of a loaded model by its own ref.
func (m *Manager) Mesh(ref string) (Mesh, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mesh, ok := m.meshes[ref]
	if !ok {
		return Mesh{}, fmt.Errorf("%w: mesh %q", ErrNotLoaded, ref)
	}
	return mesh, nil
}

func (m *Manager) CubeMap(ref string) (CubeMap, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cubeMaps[ref]
	if !ok {
		return CubeMap{}, fmt.Errorf("%w: cube map %q", ErrNotLoaded, ref)
	}
	return c, nil
}

// LoadModels loads every ref not already cached. The first failure cancels
// the remaining loads.
func (m *Manager) LoadModels(ctx context.Context, refs []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.limit)
	for _, ref := range dedupe(refs) {
		if m.hasModel(ref) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			model, err := loadModel(ref)
			if err != nil {
				return err
			}
			m.Register(model)
			m.logger.Debug("model loaded", zap.String("ref", ref), zap.Int("meshes", len(model.Meshes)))
			return nil
		})
	}
	return g.Wait()
}

func (m *Manager) LoadCubeMaps(ctx context.Context, refs []string) error {
	for _, ref := range dedupe(refs) {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, ok := builtinCubeMaps[ref]
		if !ok {
			return fmt.Errorf("%w: cube map %q", ErrUnknownRef, ref)
		}
		m.mu.Lock()
		m.cubeMaps[ref] = c
		m.mu.Unlock()
	}
	return nil
}

func (m *Manager) hasModel(ref string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.models[ref]
	return ok
}

func loadModel(ref string) (*Model, error) {
	if strings.HasPrefix(ref, BuiltinPrefix) {
		build, ok := builtinModels[ref]
		if !ok {
			return nil, fmt.Errorf("%w: model %q", ErrUnknownRef, ref)
		}
		return build(), nil
	}
	data, err := LoadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: model %q: %v", ErrUnknownRef, ref, err)
	}
	return parseModel(ref, data)
}

func dedupe(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
