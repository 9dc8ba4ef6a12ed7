// Package tui is the interactive terminal front end: keys become symbols
// and the cube is drawn as a coloured net.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubeengine"
	"github.com/SeamusWaldron/cubeengine/internal/movetable"
)

// maxRecent is how many completed moves the footer shows.
const maxRecent = 20

// Config configures the model.
type Config struct {
	Title    string
	TickRate time.Duration
	// Status, when set, supplies an extra status line (device, battery).
	Status func() string
}

type tickMsg time.Time

// Model drives an Engine from the terminal.
type Model struct {
	eng      *cubeengine.Engine
	cfg      Config
	lastTick time.Time

	recent   []string
	drops    int
	err      error
	quitting bool
}

// New creates a model over eng.
func New(eng *cubeengine.Engine, cfg Config) *Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 16 * time.Millisecond
	}
	if cfg.Title == "" {
		cfg.Title = "cubeengine"
	}
	m := &Model{eng: eng, cfg: cfg}

	// Callbacks fire inside Engine.Tick, which only Update calls.
	eng.OnMoveComplete(func(ev cubeengine.MoveEvent) {
		m.recent = append(m.recent, string(ev.Symbol))
		if len(m.recent) > maxRecent {
			m.recent = m.recent[len(m.recent)-maxRecent:]
		}
	})
	eng.OnDrop(func(cubeengine.Symbol, cubeengine.DropReason) {
		m.drops++
	})
	return m
}

// Run starts the program and blocks until the user quits.
func Run(eng *cubeengine.Engine, cfg Config) error {
	p := tea.NewProgram(New(eng, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.TickRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			m.eng.Submit(movetable.Symbol(msg.Runes))
		}
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		dt := m.cfg.TickRate
		if !m.lastTick.IsZero() {
			dt = now.Sub(m.lastTick)
		}
		m.lastTick = now
		if err := m.eng.Tick(dt); err != nil {
			m.err = err
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.cfg.Title))
	b.WriteString("\n")
	if m.cfg.Status != nil {
		b.WriteString(statusStyle.Render(m.cfg.Status()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.eng.Phase() != cubeengine.Active {
		b.WriteString(stateStyle.Render("Loading puzzle..."))
		b.WriteString("\n")
		if n := m.eng.Pending(); n > 0 {
			b.WriteString(statusStyle.Render(fmt.Sprintf("%d key(s) buffered", n)))
			b.WriteString("\n")
		}
	} else {
		net, err := m.eng.Net()
		if err == nil {
			b.WriteString(renderNet(net))
			b.WriteString("\n")
		}

		state := m.eng.State().String()
		if m.eng.State() == cubeengine.Animating {
			state = fmt.Sprintf("%s %3.0f%%", state, m.eng.Progress()*100)
		} else if err == nil && net.IsSolved() {
			state = "solved"
		}
		b.WriteString(fmt.Sprintf("State: %s   Queued: %d   Dropped: %d\n",
			stateStyle.Render(state), m.eng.Pending(), m.drops))

		st := m.eng.Stats()
		b.WriteString(fmt.Sprintf("Moves: %d\n", st.Completed))
		if len(m.recent) > 0 {
			b.WriteString("Recent: ")
			b.WriteString(moveStyle.Render(strings.Join(m.recent, " ")))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) help() string {
	var keys []string
	for _, e := range m.eng.Table().Entries() {
		keys = append(keys, fmt.Sprintf("%s=%s", e.Symbol, e.Move))
	}
	return "Keys: " + strings.Join(keys, " ") + "  q=quit"
}
