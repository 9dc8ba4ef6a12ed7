package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubeengine/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	stateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var stickerStyles = map[render.Color]lipgloss.Style{
	render.White:  sticker("15", "0"),
	render.Yellow: sticker("11", "0"),
	render.Green:  sticker("2", "0"),
	render.Blue:   sticker("4", "15"),
	render.Red:    sticker("1", "15"),
	render.Orange: sticker("208", "0"),
	render.None:   sticker("236", "241"),
}

func sticker(bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg))
}

func renderSticker(c render.Color) string {
	return stickerStyles[c].Render(" " + c.String() + " ")
}

// renderNet draws the net with coloured cells in the same layout as
// render.Net.String.
func renderNet(n render.Net) string {
	var b strings.Builder
	pad := strings.Repeat(" ", 9)

	row := func(f render.Face, r int) string {
		stickers := n.Face(f)
		var s strings.Builder
		for c := 0; c < 3; c++ {
			s.WriteString(renderSticker(stickers[r*3+c]))
		}
		return s.String()
	}

	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(render.U, r) + "\n")
	}
	for r := 0; r < 3; r++ {
		for _, f := range []render.Face{render.L, render.F, render.R, render.B} {
			b.WriteString(row(f, r))
		}
		b.WriteString("\n")
	}
	for r := 0; r < 3; r++ {
		b.WriteString(pad + row(render.D, r) + "\n")
	}
	return b.String()
}
