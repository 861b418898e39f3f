package ecs

import (
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// Manager owns entity identity, component storage, singleton bindings and
// per-type resources. It is not safe for concurrent use; a frame's update and
// render phases run on one goroutine.
type Manager struct {
	entities []Entity
	alive    map[Entity]struct{}
	next     Entity

	stores     map[ComponentID]componentStore
	singletons map[SingletonTag]Entity
	resources  map[reflect.Type]any

	logger *zap.Logger
}

type ManagerOption func(*Manager)

// WithLogger sets the logger used for snapshot restore diagnostics.
func WithLogger(l *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		alive:      make(map[Entity]struct{}),
		stores:     make(map[ComponentID]componentStore),
		singletons: make(map[SingletonTag]Entity),
		resources:  make(map[reflect.Type]any),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateEntity allocates the next id and attaches the given components.
func (m *Manager) CreateEntity(components ...Attachment) Entity {
	e := m.allocate()
	m.attach(e, components)
	return e
}

// CreateSingletonEntity allocates an entity bound to tag. It fails without
// allocating anything if tag is already bound.
func (m *Manager) CreateSingletonEntity(tag SingletonTag, components ...Attachment) (Entity, error) {
	if bound, ok := m.singletons[tag]; ok {
		return 0, fmt.Errorf("%w: %s (entity %d)", ErrSingletonExists, tag, bound)
	}
	e := m.allocate()
	m.singletons[tag] = e
	m.attach(e, components)
	return e, nil
}

func (m *Manager) allocate() Entity {
	e := m.next
	if e > MaxEntity {
		panic("ecs: entity ids exhausted")
	}
	m.next++
	m.insertEntity(e)
	return e
}

func (m *Manager) insertEntity(e Entity) {
	m.alive[e] = struct{}{}
	idx, _ := slices.BinarySearch(m.entities, e)
	m.entities = slices.Insert(m.entities, idx, e)
}

func (m *Manager) attach(e Entity, components []Attachment) {
	for _, c := range components {
		if c.attach != nil {
			c.attach(m, e)
		}
	}
}

// HasEntity reports whether e was created in (or restored into) this manager.
func (m *Manager) HasEntity(e Entity) bool {
	_, ok := m.alive[e]
	return ok
}

// Entities returns every entity in ascending id order.
func (m *Manager) Entities() []Entity {
	return slices.Clone(m.entities)
}

// EntitiesWith returns, in ascending id order, the entities holding every one
// of kinds. With no kinds it returns every entity.
func (m *Manager) EntitiesWith(kinds ...AnyKind) []Entity {
	if len(kinds) == 0 {
		return m.Entities()
	}

	stores := make([]componentStore, 0, len(kinds))
	for _, k := range kinds {
		s, ok := m.stores[k.ID()]
		if !ok || s.len() == 0 {
			return []Entity{}
		}
		stores = append(stores, s)
	}

	// iterate the smallest store
	smallest := 0
	for i, s := range stores {
		if s.len() < stores[smallest].len() {
			smallest = i
		}
	}

	out := make([]Entity, 0, stores[smallest].len())
	for _, e := range stores[smallest].entities() {
		if !m.HasEntity(e) {
			continue
		}
		matched := true
		for i, s := range stores {
			if i != smallest && !s.has(e) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	slices.Sort(out)
	return out
}

// SingletonEntity returns the entity bound to tag.
func (m *Manager) SingletonEntity(tag SingletonTag) (Entity, error) {
	e, ok := m.singletons[tag]
	if !ok {
		return 0, fmt.Errorf("%w %s", ErrNoSingleton, tag)
	}
	return e, nil
}

// Singletons returns a copy of the tag bindings.
func (m *Manager) Singletons() map[SingletonTag]Entity {
	out := make(map[SingletonTag]Entity, len(m.singletons))
	for tag, e := range m.singletons {
		out[tag] = e
	}
	return out
}
