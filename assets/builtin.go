package assets

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

const BuiltinPrefix = "builtin:"

var builtinModels = map[string]func() *Model{
	"builtin:plane": planeModel,
	"builtin:cube":  cubeModel,
	"builtin:ramp":  rampModel,
}

var builtinCubeMaps = map[string]CubeMap{
	"builtin:sky": {
		Ref: "builtin:sky",
		Faces: [6]color.RGBA{
			{0x87, 0xce, 0xeb, 0xff},
			{0x87, 0xce, 0xeb, 0xff},
			{0xb0, 0xe0, 0xff, 0xff},
			{0x50, 0x60, 0x70, 0xff},
			{0x87, 0xce, 0xeb, 0xff},
			{0x87, 0xce, 0xeb, 0xff},
		},
	},
}

// planeModel is a unit quad on y = 0.
func planeModel() *Model {
	return &Model{
		Ref: "builtin:plane",
		Meshes: []Mesh{{
			Ref:         "builtin:plane#0",
			MaterialRef: "builtin:grey",
			Vertices: []mgl32.Vec3{
				{-0.5, 0, -0.5}, {0.5, 0, -0.5}, {0.5, 0, 0.5}, {-0.5, 0, 0.5},
			},
			Indices: []uint32{0, 2, 1, 0, 3, 2},
		}},
	}
}

// cubeModel is a unit cube centred on the origin.
func cubeModel() *Model {
	v := []mgl32.Vec3{
		{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5},
		{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5},
	}
	idx := []uint32{
		0, 2, 1, 1, 2, 3, // back
		4, 5, 6, 5, 7, 6, // front
		0, 4, 2, 2, 4, 6, // left
		1, 3, 5, 3, 7, 5, // right
		2, 6, 3, 3, 6, 7, // top
		0, 1, 4, 1, 5, 4, // bottom
	}
	return &Model{
		Ref:    "builtin:cube",
		Meshes: []Mesh{{Ref: "builtin:cube#0", MaterialRef: "builtin:red", Vertices: v, Indices: idx}},
	}
}

// rampModel rises from y = 0 at z = 0.5 to y = 0.5 at z = -0.5.
func rampModel() *Model {
	v := []mgl32.Vec3{
		{-0.5, 0, 0.5}, {0.5, 0, 0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5},
	}
	return &Model{
		Ref: "builtin:ramp",
		Meshes: []Mesh{{
			Ref:         "builtin:ramp#0",
			MaterialRef: "builtin:grey",
			Vertices:    v,
			Indices:     []uint32{0, 1, 3, 0, 3, 2},
		}},
	}
}
