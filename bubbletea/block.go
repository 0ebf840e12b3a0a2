package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// Block is a renderable element of the document stack. Unlike tea.Model,
// View takes a width parameter so the root model controls layout and blocks
// are testable in isolation.
type Block interface {
	Update(tea.Msg) (Block, tea.Cmd)
	View(width int) string
}

// renderBlocks stacks block views with a blank separator row between them.
func renderBlocks(blocks []Block, width int) string {
	if len(blocks) == 0 || width <= 0 {
		return ""
	}
	out := ""
	for i, b := range blocks {
		if i > 0 {
			out += "\n\n"
		}
		out += b.View(width)
	}
	return out
}
