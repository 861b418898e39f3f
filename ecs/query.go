package ecs

import "slices"

// Query is a reusable AND-filter over component kinds. It holds no results;
// every Execute reflects the manager's current storage.
type Query struct {
	kinds []AnyKind
}

func NewQuery(kinds ...AnyKind) Query {
	return Query{kinds: slices.Clone(kinds)}
}

// Execute returns the entities that currently hold every kind of the query,
// in ascending id order.
func (q Query) Execute(m *Manager) []Entity {
	return m.EntitiesWith(q.kinds...)
}
