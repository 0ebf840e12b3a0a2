package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"

	"mdpane/markdown"
)

var _ Block = (*ProseBlock)(nil)

// ProseBlock renders a prose segment through the styling pipeline. Renders
// are cached per width; a reflow at an already-seen width costs a lookup.
type ProseBlock struct {
	raw      string
	renderer *markdown.Renderer
	byWidth  map[int]string
}

// NewProseBlock creates a block for a prose segment.
func NewProseBlock(raw string, renderer *markdown.Renderer) *ProseBlock {
	return &ProseBlock{
		raw:      raw,
		renderer: renderer,
		byWidth:  make(map[int]string),
	}
}

func (b *ProseBlock) Update(tea.Msg) (Block, tea.Cmd) {
	return b, nil
}

func (b *ProseBlock) View(width int) string {
	if width <= 0 {
		return ""
	}
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}
	rendered := b.renderer.Render(b.raw, width)
	b.byWidth[width] = rendered
	return rendered
}
