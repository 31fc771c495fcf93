package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")) // cyan
	frameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("4")).Padding(0, 1)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	announceStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)
)

// namedColors maps common color names to ANSI colors. Unknown names fall
// back to gray; hex values are passed through.
var namedColors = map[string]lipgloss.Color{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"purple":  "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "8",
	"grey":    "8",
	"orange":  "208",
	"pink":    "213",
}

func colorFor(name string) lipgloss.Color {
	key := strings.ToLower(strings.TrimSpace(name))
	if c, ok := namedColors[key]; ok {
		return c
	}
	if strings.HasPrefix(key, "#") {
		return lipgloss.Color(key)
	}
	return lipgloss.Color("8")
}

func pieceStyle(color string, winning bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(colorFor(color))
	if winning {
		style = style.Bold(true).Reverse(true)
	}
	return style
}
