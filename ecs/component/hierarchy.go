package component

import "github.com/jannetahkola/webgpu-game/ecs"

// Parent links a child entity to the entity its model matrix is relative to.
type Parent struct {
	Entity ecs.Entity
}

// Child lists the entities a model was expanded into.
type Child struct {
	Entities []ecs.Entity
}

var (
	ParentComponent = ecs.NewComponent[Parent]("parent")
	ChildComponent  = ecs.NewComponent[Child]("child")
)
