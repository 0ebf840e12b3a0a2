package bubbletea

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"mdpane"
	"mdpane/markdown"
)

var _ Block = (*CodeBlock)(nil)

// scrollStep is how many columns one scroll request moves a code region.
const scrollStep = 8

// CodeBlock renders a wide code segment as an independent horizontally
// scrollable region: fixed-width content, no line wrapping, an explicit
// horizontal scrollbar, and no vertical scrolling of its own. Vertical wheel
// input over the region is handled by the enclosing document viewport, so
// the user can keep scrolling the document while the pointer sits on code.
type CodeBlock struct {
	lang         string
	lines        []string // highlighted, or raw when plain
	plain        bool     // true when highlighting failed
	contentWidth int      // widest line, display columns
	xOffset      int
	viewWidth    int // last width given to View, for scroll clamping
	focused      bool
	styles       Styles
}

// NewCodeBlock creates a scrollable region for a code segment.
func NewCodeBlock(seg mdpane.Segment, styles Styles) *CodeBlock {
	highlighted, ok := markdown.Highlight(seg.Content, seg.Lang)
	contentWidth := 0
	for _, line := range strings.Split(seg.Content, "\n") {
		if w := ansi.StringWidth(line); w > contentWidth {
			contentWidth = w
		}
	}
	return &CodeBlock{
		lang:         seg.Lang,
		lines:        strings.Split(highlighted, "\n"),
		plain:        !ok,
		contentWidth: contentWidth,
		styles:       styles,
	}
}

// SetFocus marks the region as the target for horizontal scroll input.
func (b *CodeBlock) SetFocus(focused bool) {
	b.focused = focused
}

// XOffset returns the current horizontal scroll position in columns.
func (b *CodeBlock) XOffset() int {
	return b.xOffset
}

func (b *CodeBlock) Update(msg tea.Msg) (Block, tea.Cmd) {
	if s, ok := msg.(scrollMsg); ok {
		b.xOffset += s.cols
		b.clamp()
	}
	return b, nil
}

func (b *CodeBlock) View(width int) string {
	if width <= 0 {
		return ""
	}
	b.viewWidth = width
	b.clamp()

	var out []string
	if b.lang != "" {
		label := b.styles.Muted
		if b.focused {
			label = b.styles.Accent
		}
		out = append(out, label.Render(b.lang))
	}
	for _, line := range b.lines {
		visible := ansi.Truncate(ansi.TruncateLeft(line, b.xOffset, ""), width, "")
		if b.plain {
			visible = b.styles.Code.Render(visible)
		}
		out = append(out, visible)
	}
	if b.contentWidth > width {
		out = append(out, b.scrollbar(width))
	}
	return strings.Join(out, "\n")
}

// scrollbar renders the horizontal position indicator row.
func (b *CodeBlock) scrollbar(width int) string {
	span := b.contentWidth - b.viewWidth
	track := width - 2
	if track < 1 {
		track = 1
	}
	pos := 0
	if span > 0 {
		pos = b.xOffset * (track - 1) / span
	}
	cells := []rune(strings.Repeat("─", track))
	cells[pos] = '█'
	bar := "◀" + string(cells) + "▶"
	if b.focused {
		return b.styles.Accent.Render(bar)
	}
	return b.styles.Muted.Render(bar)
}

// clamp keeps the scroll offset within the content. Before the first View
// the view width is unknown and the offset is only bounded by the content.
func (b *CodeBlock) clamp() {
	limit := b.contentWidth
	if b.viewWidth > 0 {
		limit = b.contentWidth - b.viewWidth
	}
	if limit < 0 {
		limit = 0
	}
	if b.xOffset > limit {
		b.xOffset = limit
	}
	if b.xOffset < 0 {
		b.xOffset = 0
	}
}
