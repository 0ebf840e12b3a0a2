package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"mdpane"
)

// Styles maps a Theme to lipgloss styles for surface chrome that sits
// outside the markdown pipeline (labels, scrollbars, status line).
type Styles struct {
	Muted  lipgloss.Style
	Accent lipgloss.Style
	Code   lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t mdpane.Theme) Styles {
	return Styles{
		Muted:  lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent: lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Code:   lipgloss.NewStyle().Foreground(ansiColor(t.CodeFg)).Background(ansiColor(t.CodeBg)),
		Error:  lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
