// Package scene supplies the flat list of named nodes the puzzle is built
// from: a generated 27-piece cube, or one read from a YAML scene file.
package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubeengine/internal/geom"
)

// NodeID identifies a node within a scene.
type NodeID string

// NewNodeID returns a fresh random node ID.
func NewNodeID() NodeID {
	return NodeID(uuid.New().String())
}

// Node is one named element of the loaded geometry.
type Node struct {
	ID        NodeID
	Name      string
	Transform geom.Transform
}

func (n Node) String() string {
	return fmt.Sprintf("%s %q at %v", n.ID, n.Name, n.Transform.Position)
}
