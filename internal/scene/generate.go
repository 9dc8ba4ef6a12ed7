package scene

import (
	"fmt"

	"github.com/SeamusWaldron/cubeengine/internal/geom"
)

// Spacing is the distance between neighbouring cubie centres.
const Spacing = 2

// Rubik returns the nodes of a solved 3x3x3 puzzle: 27 cubies named
// Cube.000 to Cube.026 centred on the lattice {-2,0,2}^3, each with a
// Cube.NNN.Material sub-part, plus a root, a lamp and a camera.
func Rubik() []Node {
	nodes := []Node{
		{ID: NewNodeID(), Name: "Cube", Transform: geom.Transform{Rotation: geom.Identity}},
	}
	n := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				name := fmt.Sprintf("Cube.%03d", n)
				t := geom.Transform{
					Position: geom.Vec3{X: float64(x * Spacing), Y: float64(y * Spacing), Z: float64(z * Spacing)},
					Rotation: geom.Identity,
				}
				nodes = append(nodes,
					Node{ID: NewNodeID(), Name: name, Transform: t},
					Node{ID: NewNodeID(), Name: name + ".Material", Transform: t},
				)
				n++
			}
		}
	}
	nodes = append(nodes,
		Node{ID: NewNodeID(), Name: "Lamp", Transform: geom.Transform{Position: geom.Vec3{X: 4, Y: 6, Z: 4}, Rotation: geom.Identity}},
		Node{ID: NewNodeID(), Name: "Camera", Transform: geom.Transform{Position: geom.Vec3{Z: 14}, Rotation: geom.Identity}},
	)
	return nodes
}
