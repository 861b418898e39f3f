package ecs

import "sync/atomic"

type ComponentID uint32

var nextComponentID atomic.Uint32

// AnyKind is the untyped view of a ComponentKind, used where several kinds of
// different component types travel together (queries, snapshots).
type AnyKind interface {
	ID() ComponentID
	Name() string
}

type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func NewComponentKind[T any](name string) ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1)), name: name}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Name() string {
	return k.name
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent allocates a process-unique kind for T. name is the identifier
// used in snapshots and error messages.
func NewComponent[T any](name string) ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T](name)}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
