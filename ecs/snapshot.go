package ecs

import (
	"fmt"

	"go.uber.org/zap"
)

// Snapshot is the serialised form of a manager. It is what prefabs carry.
type Snapshot struct {
	Entities          []Entity            `yaml:"entities" json:"entities"`
	SingletonEntities []SingletonSnapshot `yaml:"singletonEntities" json:"singletonEntities"`
	Components        []ComponentSnapshot `yaml:"components" json:"components"`
}

type SingletonSnapshot struct {
	Tag    string `yaml:"tag" json:"tag"`
	Entity Entity `yaml:"entity" json:"entity"`
}

type ComponentSnapshot struct {
	Entity Entity `yaml:"entity" json:"entity"`
	Type   string `yaml:"type" json:"type"`
	Data   any    `yaml:"data" json:"data"`
}

// Deserialize restores snap into m. Entity ids, singleton tags and component
// types are all validated and every component decoded before anything is
// mutated, so a rejected snapshot leaves m untouched. Afterwards new entities
// are allocated above the highest restored id.
func (m *Manager) Deserialize(snap Snapshot, registry *ComponentRegistry) error {
	seen := make(map[Entity]struct{}, len(snap.Entities)+len(snap.SingletonEntities))
	next := m.next
	claim := func(e Entity) error {
		if e > MaxEntity {
			return fmt.Errorf("%w: %d", ErrEntityRange, e)
		}
		if _, dup := seen[e]; dup || m.HasEntity(e) {
			return fmt.Errorf("%w: %d", ErrEntityExists, e)
		}
		seen[e] = struct{}{}
		if e >= next {
			next = e + 1
		}
		return nil
	}

	for _, e := range snap.Entities {
		if err := claim(e); err != nil {
			return fmt.Errorf("ecs: deserialize: %w", err)
		}
	}

	tags := make(map[SingletonTag]Entity, len(snap.SingletonEntities))
	for _, s := range snap.SingletonEntities {
		if err := claim(s.Entity); err != nil {
			return fmt.Errorf("ecs: deserialize: %w", err)
		}
		tag, err := ParseSingletonTag(s.Tag)
		if err != nil {
			return fmt.Errorf("ecs: deserialize: entity %d: %w", s.Entity, err)
		}
		if _, bound := m.singletons[tag]; bound {
			return fmt.Errorf("ecs: deserialize: %w: %s", ErrSingletonExists, tag)
		}
		if _, bound := tags[tag]; bound {
			return fmt.Errorf("ecs: deserialize: %w: %s", ErrSingletonExists, tag)
		}
		tags[tag] = s.Entity
	}

	if registry == nil && len(snap.Components) > 0 {
		return fmt.Errorf("ecs: deserialize: %w: no registry", ErrUnknownComponent)
	}
	attachments := make([]Attachment, len(snap.Components))
	for i, c := range snap.Components {
		codec, err := registry.Get(c.Type)
		if err != nil {
			return fmt.Errorf("ecs: deserialize: component %d on entity %d: %w", i, c.Entity, err)
		}
		a, err := codec.Decode(c.Data)
		if err != nil {
			return fmt.Errorf("ecs: deserialize: decode %s on entity %d: %w", c.Type, c.Entity, err)
		}
		attachments[i] = a
	}

	for _, e := range snap.Entities {
		m.insertEntity(e)
		m.logger.Debug("restored entity", zap.Uint32("entity", uint32(e)))
	}
	for _, s := range snap.SingletonEntities {
		m.insertEntity(s.Entity)
		m.logger.Debug("restored singleton", zap.String("tag", s.Tag), zap.Uint32("entity", uint32(s.Entity)))
	}
	for tag, e := range tags {
		m.singletons[tag] = e
	}
	for i, c := range snap.Components {
		attachments[i].attach(m, c.Entity)
		m.logger.Debug("restored component", zap.String("type", c.Type), zap.Uint32("entity", uint32(c.Entity)))
	}

	m.next = next
	return nil
}

// Serialize captures entities, singleton bindings and every component whose
// type has an encoder in registry.
func (m *Manager) Serialize(registry *ComponentRegistry) (Snapshot, error) {
	snap := Snapshot{
		Entities:          []Entity{},
		SingletonEntities: []SingletonSnapshot{},
		Components:        []ComponentSnapshot{},
	}

	tagOf := make(map[Entity]SingletonTag, len(m.singletons))
	for tag, e := range m.singletons {
		tagOf[e] = tag
	}

	for _, e := range m.entities {
		if tag, ok := tagOf[e]; ok {
			snap.SingletonEntities = append(snap.SingletonEntities, SingletonSnapshot{Tag: string(tag), Entity: e})
			continue
		}
		snap.Entities = append(snap.Entities, e)
	}

	if registry == nil {
		return snap, nil
	}
	for _, e := range m.entities {
		for _, name := range registry.order {
			codec := registry.codecs[name]
			if codec.Encode == nil {
				continue
			}
			data, ok, err := codec.Encode(m, e)
			if err != nil {
				return Snapshot{}, fmt.Errorf("ecs: serialize %s on entity %d: %w", name, e, err)
			}
			if ok {
				snap.Components = append(snap.Components, ComponentSnapshot{Entity: e, Type: name, Data: data})
			}
		}
	}
	return snap, nil
}
