package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubeengine"
	"github.com/SeamusWaldron/cubeengine/internal/scene"
)

func newModel(t *testing.T) (*Model, *cubeengine.Engine) {
	t.Helper()
	eng, err := cubeengine.New(scene.NewStaticSource(scene.Rubik()))
	require.NoError(t, err)
	return New(eng, Config{TickRate: 50 * time.Millisecond}), eng
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_KeysAreBufferedUntilActive(t *testing.T) {
	m, eng := newModel(t)

	m.Update(key('w'))
	assert.Equal(t, 1, eng.Pending())
	assert.Contains(t, m.View(), "Loading puzzle")

	start := time.Now()
	_, cmd := m.Update(tickMsg(start))
	assert.NotNil(t, cmd, "ticks reschedule themselves")
	assert.Equal(t, cubeengine.Active, eng.Phase())
	assert.Equal(t, cubeengine.Animating, eng.State())

	for i := 1; i <= 5; i++ {
		m.Update(tickMsg(start.Add(time.Duration(i) * 50 * time.Millisecond)))
	}
	assert.True(t, eng.Idle())
	assert.Equal(t, []string{"w"}, m.recent)
	assert.Contains(t, m.View(), "Moves: 1")
}

func TestModel_UnknownKeysAreDropped(t *testing.T) {
	m, eng := newModel(t)
	m.Update(tickMsg(time.Now()))
	m.Update(key('z'))
	m.Update(tickMsg(time.Now()))

	assert.Equal(t, 1, m.drops)
	assert.Equal(t, uint64(1), eng.Stats().Unresolved)
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		key('q'),
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		m, eng := newModel(t)
		_, cmd := m.Update(k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.Zero(t, eng.Pending())
		assert.Empty(t, m.View())
	}
}

func TestModel_ViewShowsNetAndHelp(t *testing.T) {
	m, _ := newModel(t)
	m.Update(tickMsg(time.Now()))

	view := m.View()
	assert.Contains(t, view, "solved")
	assert.Contains(t, view, "w=+Y@2")
	assert.Contains(t, view, "q=quit")
	assert.GreaterOrEqual(t, strings.Count(view, " W "), 9)
}

func TestModel_Status(t *testing.T) {
	eng, err := cubeengine.New(scene.NewStaticSource(scene.Rubik()))
	require.NoError(t, err)
	m := New(eng, Config{Status: func() string { return "GoCube_1A2B (Battery: 80%)" }})
	assert.Contains(t, m.View(), "GoCube_1A2B")
}
