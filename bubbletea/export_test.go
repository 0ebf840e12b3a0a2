package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// ScrollBy builds a horizontal scroll message for testing.
func ScrollBy(cols int) tea.Msg {
	return scrollMsg{cols: cols}
}

// Blocks exports the block stack for testing.
func Blocks(m Document) []Block {
	return m.content.blocks
}

// Focus exports the focused code region index for testing.
func Focus(m Document) int {
	return m.focus
}

// RenderContent exports the stacked block rendering for testing.
func RenderContent(m Document, width int) string {
	return renderBlocks(m.content.blocks, width)
}

// PendingReflow reports whether a deferred reflow pass is scheduled.
func PendingReflow(m Document) bool {
	return m.scheduler.Pending()
}
