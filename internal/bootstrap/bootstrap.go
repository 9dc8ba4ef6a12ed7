// Package bootstrap turns loaded scene nodes into puzzle cubies.
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubeengine/internal/cubie"
	"github.com/SeamusWaldron/cubeengine/internal/scene"
)

// Phase is the engine lifecycle phase. The only transition is
// Loading -> Active.
type Phase int

const (
	Loading Phase = iota
	Active
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Source supplies the scene once it is available. Poll must not block.
type Source interface {
	Poll() (nodes []scene.Node, ready bool, err error)
}

const cubiePrefix = "Cube."

// IsCubieName reports whether a node name denotes a cubie: "Cube.<N>" where
// <N> contains no further '.'. An empty <N> still counts.
func IsCubieName(name string) bool {
	rest, ok := strings.CutPrefix(name, cubiePrefix)
	return ok && !strings.Contains(rest, ".")
}

// Tag returns the cubies among nodes, in node order.
func Tag(nodes []scene.Node) []cubie.Cubie {
	var out []cubie.Cubie
	for _, n := range nodes {
		if !IsCubieName(n.Name) {
			continue
		}
		out = append(out, cubie.Cubie{
			ID:        cubie.ID(n.ID),
			Name:      n.Name,
			Transform: n.Transform,
		})
	}
	return out
}

// Bootstrap waits for the scene and tags its cubies exactly once.
type Bootstrap struct {
	source Source
	phase  Phase
	cubies *cubie.Set
	nodes  int
}

// New creates a bootstrap in the Loading phase.
func New(source Source) *Bootstrap {
	return &Bootstrap{source: source}
}

// Phase returns the current phase.
func (b *Bootstrap) Phase() Phase {
	return b.phase
}

// Cubies returns the tagged cubies, or nil while loading.
func (b *Bootstrap) Cubies() *cubie.Set {
	return b.cubies
}

// NodeCount returns how many scene nodes were scanned on activation.
func (b *Bootstrap) NodeCount() int {
	return b.nodes
}

// Step polls the source while loading. It reports true on the call that
// transitions to Active and false on every other call. Source errors leave
// the phase unchanged.
func (b *Bootstrap) Step() (bool, error) {
	if b.phase == Active {
		return false, nil
	}
	nodes, ready, err := b.source.Poll()
	if err != nil {
		return false, fmt.Errorf("failed to load scene: %w", err)
	}
	if !ready {
		return false, nil
	}
	b.nodes = len(nodes)
	b.cubies = cubie.NewSet(Tag(nodes))
	b.phase = Active
	return true, nil
}
