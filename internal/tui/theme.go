package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal
// backgrounds. We use lipgloss.AdaptiveColor where possible and only apply
// "faint" styling on dark backgrounds (faint text on light terminals often
// becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if termenv.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    = ac("240", "243")
	colorAccent   = ac("27", "62") // blue
	colorDoneFg   = ac("245", "240")
	colorSelected = ac("#e9e9e9", "#262626")
	colorHighPrio = ac("160", "203")

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	styleCount  = lipgloss.NewStyle().Foreground(colorMuted)
	styleDone   = lipgloss.NewStyle().Foreground(colorDoneFg).Strikethrough(true)
	styleCursor = lipgloss.NewStyle().Background(colorSelected)
	styleStatus = lipgloss.NewStyle().Foreground(colorMuted)
	styleHigh   = lipgloss.NewStyle().Foreground(colorHighPrio)
)
