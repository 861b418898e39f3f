package component

import "github.com/jannetahkola/webgpu-game/ecs"

// Model references a multi-mesh asset. The scene loader expands it into one
// child entity per mesh.
type Model struct {
	Ref string
}

type Mesh struct {
	Ref string
}

type Material struct {
	Ref string
}

// MeshWireframe marks a mesh for the debug wireframe pass.
type MeshWireframe struct{}

var (
	ModelComponent         = ecs.NewComponent[Model]("model")
	MeshComponent          = ecs.NewComponent[Mesh]("mesh")
	MaterialComponent      = ecs.NewComponent[Material]("material")
	MeshWireframeComponent = ecs.NewComponent[MeshWireframe]("mesh_wireframe")
)
