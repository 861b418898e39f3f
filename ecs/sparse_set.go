package ecs

// componentStore is the type-erased face of a sparseSet, used by queries and
// snapshots that do not know the concrete component type.
type componentStore interface {
	has(e Entity) bool
	remove(e Entity) bool
	entities() []Entity
	len() int
	value(e Entity) (any, bool)
}

// sparseLimit bounds the directly indexed part of the sparse index. Ids at or
// above it are looked up through the overflow map.
const sparseLimit = 1 << 16

// sparseSet stores components of one type keyed by entity id. Lookups index
// the sparse slice directly; iteration walks the dense slices.
type sparseSet[T any] struct {
	denseEntities []Entity
	denseValues   []*T
	sparse        []int
	overflow      map[Entity]int
}

func (s *sparseSet[T]) index(e Entity) (int, bool) {
	if s == nil {
		return 0, false
	}
	var idx int
	if e < sparseLimit {
		if int(e) >= len(s.sparse) {
			return 0, false
		}
		idx = s.sparse[e]
	} else {
		i, ok := s.overflow[e]
		if !ok {
			return 0, false
		}
		idx = i
	}
	if idx < 0 || idx >= len(s.denseEntities) || s.denseEntities[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet[T]) setIndex(e Entity, idx int) {
	if e >= sparseLimit {
		if s.overflow == nil {
			s.overflow = make(map[Entity]int)
		}
		s.overflow[e] = idx
		return
	}
	for int(e) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	s.sparse[e] = idx
}

func (s *sparseSet[T]) clearIndex(e Entity) {
	if e >= sparseLimit {
		delete(s.overflow, e)
		return
	}
	s.sparse[e] = -1
}

func (s *sparseSet[T]) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.denseValues[idx], true
}

func (s *sparseSet[T]) value(e Entity) (any, bool) {
	v, ok := s.get(e)
	return v, ok
}

// set inserts or overwrites the component for e.
func (s *sparseSet[T]) set(e Entity, v *T) {
	if idx, ok := s.index(e); ok {
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.setIndex(e, len(s.denseEntities)-1)
}

func (s *sparseSet[T]) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.denseEntities) - 1
	lastEntity := s.denseEntities[last]

	s.denseEntities[idx] = s.denseEntities[last]
	s.denseValues[idx] = s.denseValues[last]
	s.setIndex(lastEntity, idx)

	s.denseValues[last] = nil
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.clearIndex(e)
	return true
}

func (s *sparseSet[T]) entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}

func (s *sparseSet[T]) len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}
