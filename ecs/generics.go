package ecs

import (
	"fmt"
	"reflect"
)

// Attachment is a component value bound to its kind, ready to be attached to
// an entity by CreateEntity or CreateSingletonEntity.
type Attachment struct {
	kind   AnyKind
	attach func(m *Manager, e Entity)
}

// Kind returns the kind the attachment stores under.
func (a Attachment) Kind() AnyKind {
	return a.kind
}

// With pairs a component value with its kind. A nil value yields an
// attachment that attaches nothing. An invalid kind panics.
func With[T any](kind ComponentKind[T], value *T) Attachment {
	if !kind.Valid() {
		panic(fmt.Sprintf("ecs: %v for %T", ErrInvalidKind, value))
	}
	return Attachment{
		kind: kind,
		attach: func(m *Manager, e Entity) {
			_ = Add(m, e, kind, value)
		},
	}
}

func storeFor[T any](m *Manager, kind ComponentKind[T], create bool) *sparseSet[T] {
	s, ok := m.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		created := &sparseSet[T]{}
		m.stores[kind.ID()] = created
		return created
	}
	typed, ok := s.(*sparseSet[T])
	if !ok {
		panic(fmt.Sprintf("ecs: component kind %s registered with a different type", kind.Name()))
	}
	return typed
}

// Add attaches value to e under kind, replacing any previous component of the
// same kind. The entity's existence is not checked.
func Add[T any](m *Manager, e Entity, kind ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return ErrInvalidKind
	}
	if value == nil {
		return fmt.Errorf("%w: %s on entity %d", ErrNilComponent, kind.Name(), e)
	}
	storeFor(m, kind, true).set(e, value)
	return nil
}

// Get returns the component of kind on e, failing if it is absent.
func Get[T any](m *Manager, e Entity, kind ComponentKind[T]) (*T, error) {
	v, ok := GetOpt(m, e, kind)
	if !ok {
		return nil, fmt.Errorf("%w %s on entity %d", ErrNoComponent, kind.Name(), e)
	}
	return v, nil
}

// GetOpt returns the component of kind on e, if any.
func GetOpt[T any](m *Manager, e Entity, kind ComponentKind[T]) (*T, bool) {
	s := storeFor(m, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e)
}

func Has[T any](m *Manager, e Entity, kind ComponentKind[T]) bool {
	_, ok := GetOpt(m, e, kind)
	return ok
}

// Remove detaches the component of kind from e and reports whether one was
// present.
func Remove[T any](m *Manager, e Entity, kind ComponentKind[T]) bool {
	s := storeFor(m, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e)
}

// ForEach calls fn for every entity holding kind, in ascending id order.
func ForEach[T any](m *Manager, kind ComponentKind[T], fn func(e Entity, v *T)) {
	s := storeFor(m, kind, false)
	if s == nil {
		return
	}
	for _, e := range m.EntitiesWith(kind) {
		v, _ := s.get(e)
		fn(e, v)
	}
}

// SetResource stores value in the manager's single slot for *T.
func SetResource[T any](m *Manager, value *T) {
	m.resources[reflect.TypeFor[T]()] = value
}

// GetResource returns the resource of type *T.
func GetResource[T any](m *Manager) (*T, error) {
	t := reflect.TypeFor[T]()
	v, ok := m.resources[t]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrNoResource, t)
	}
	return v.(*T), nil
}
