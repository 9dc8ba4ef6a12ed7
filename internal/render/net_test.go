package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SeamusWaldron/cubeengine/internal/bootstrap"
	"github.com/SeamusWaldron/cubeengine/internal/cubie"
	"github.com/SeamusWaldron/cubeengine/internal/movetable"
	"github.com/SeamusWaldron/cubeengine/internal/scene"
	"github.com/SeamusWaldron/cubeengine/internal/scheduler"
)

func solvedSet() *cubie.Set {
	return cubie.NewSet(bootstrap.Tag(scene.Rubik()))
}

func apply(set *cubie.Set, syms ...movetable.Symbol) *scheduler.Scheduler {
	s := scheduler.New(set, movetable.Default(), scheduler.Config{Duration: scheduler.DefaultDuration})
	for _, sym := range syms {
		s.Enqueue(sym)
	}
	s.Drain(50 * time.Millisecond)
	return s
}

func TestProject_SolvedCube(t *testing.T) {
	n := Project(solvedSet().Snapshot())
	assert.True(t, n.IsSolved())
	assert.Equal(t, [9]Color{White, White, White, White, White, White, White, White, White}, n.Face(U))
	assert.Equal(t, [9]Color{Green, Green, Green, Green, Green, Green, Green, Green, Green}, n.Face(F))
}

func TestProject_TopLayerTurn(t *testing.T) {
	set := solvedSet()
	apply(set, "w")
	n := Project(set.Snapshot())

	assert.False(t, n.IsSolved())
	for _, c := range n.Face(U) {
		assert.Equal(t, White, c)
	}
	front := n.Face(F)
	assert.Equal(t, []Color{Orange, Orange, Orange}, front[0:3])
	assert.Equal(t, []Color{Green, Green, Green, Green, Green, Green}, front[3:9])
	right := n.Face(R)
	assert.Equal(t, []Color{Green, Green, Green}, right[0:3])
}

func TestProject_UndoRestoresSolved(t *testing.T) {
	set := solvedSet()
	apply(set, "w", "i", "v", "l", "f", "u", "j", "x", "k", "r")
	assert.False(t, Project(set.Snapshot()).IsSolved())
	apply(set, "w", "i", "v", "u", "j", "s", "o", "x", "k", "r")
	assert.True(t, Project(set.Snapshot()).IsSolved())
}

func TestProject_MidTurnCellsAreEmpty(t *testing.T) {
	set := solvedSet()
	s := scheduler.New(set, movetable.Default(), scheduler.Config{Duration: scheduler.DefaultDuration})
	s.Enqueue("o")
	s.Step(0)
	s.Step(scheduler.DefaultDuration / 2)

	n := Project(set.Snapshot())
	empty := 0
	for _, c := range n.Face(U) {
		if c == None {
			empty++
		}
	}
	assert.Greater(t, empty, 0)
}

func TestNet_String(t *testing.T) {
	out := Project(solvedSet().Snapshot()).String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 9)
	assert.Equal(t, "      W W W ", lines[0])
	assert.Equal(t, "O O O G G G R R R B B B ", lines[3])
	assert.Equal(t, "      Y Y Y ", lines[8])
}
