package scene

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubeengine/internal/geom"
)

// document is the on-disk scene format:
//
//	nodes:
//	  - id: 7f0c...
//	    name: Cube.000
//	    position: [-2, -2, -2]
//	    rotation: [1, 0, 0, 0]   # w, x, y, z
type document struct {
	Nodes []nodeDoc `yaml:"nodes"`
}

type nodeDoc struct {
	ID       string     `yaml:"id,omitempty"`
	Name     string     `yaml:"name"`
	Position [3]float64 `yaml:"position,flow"`
	Rotation []float64  `yaml:"rotation,flow,omitempty"`
}

// Decode reads a scene document. Nodes without an ID get a fresh one and
// nodes without a rotation get the identity.
func Decode(r io.Reader) ([]Node, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	nodes := make([]Node, 0, len(doc.Nodes))
	for i, nd := range doc.Nodes {
		rot := geom.Identity
		switch len(nd.Rotation) {
		case 0:
		case 4:
			rot = geom.Quat{W: nd.Rotation[0], X: nd.Rotation[1], Y: nd.Rotation[2], Z: nd.Rotation[3]}.Normalize()
		default:
			return nil, fmt.Errorf("node %d (%s): rotation needs 4 components, got %d", i, nd.Name, len(nd.Rotation))
		}
		id := NodeID(nd.ID)
		if id == "" {
			id = NewNodeID()
		}
		nodes = append(nodes, Node{
			ID:   id,
			Name: nd.Name,
			Transform: geom.Transform{
				Position: geom.Vec3{X: nd.Position[0], Y: nd.Position[1], Z: nd.Position[2]},
				Rotation: rot,
			},
		})
	}
	return nodes, nil
}

// Encode writes nodes as a scene document.
func Encode(w io.Writer, nodes []Node) error {
	doc := document{Nodes: make([]nodeDoc, len(nodes))}
	for i, n := range nodes {
		p, q := n.Transform.Position, n.Transform.Rotation
		doc.Nodes[i] = nodeDoc{
			ID:       string(n.ID),
			Name:     n.Name,
			Position: [3]float64{p.X, p.Y, p.Z},
			Rotation: []float64{q.W, q.X, q.Y, q.Z},
		}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return enc.Close()
}

// Load reads a scene file.
func Load(path string) ([]Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes a scene file, creating parent directories as needed.
func Save(path string, nodes []Node) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create scene directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scene file: %w", err)
	}
	if err := Encode(f, nodes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
