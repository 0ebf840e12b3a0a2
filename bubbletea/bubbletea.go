// Package bubbletea renders a markdown document as a Bubble Tea surface:
// prose flows through the styling pipeline and word-wraps to the tracked
// width, wide code segments become independently scrollable regions, and a
// width-tracking controller keeps the whole stack sized to the terminal.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"mdpane/layout"
)

// Run creates and runs the Bubble Tea program for a document. It blocks
// until the program exits. The context is used for graceful shutdown — when
// cancelled, the program quits. Mouse reporting is enabled so wheel input
// over code regions still scrolls the document.
func Run(ctx context.Context, m Document) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// reflowMsg is the deferred "run after the current event-processing pass"
// trigger. It arrives once the surface tree is attached and measurable.
type reflowMsg struct{}

// scrollMsg asks the focused code region to scroll horizontally.
type scrollMsg struct {
	cols int
}

// requestReflow schedules a deferred reflow unless one is already pending.
// A pending pass supersedes further requests rather than queuing them.
func requestReflow(s *layout.Scheduler) tea.Cmd {
	if !s.Request() {
		return nil
	}
	return func() tea.Msg {
		return reflowMsg{}
	}
}
