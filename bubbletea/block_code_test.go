package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdpane"
	bt "mdpane/bubbletea"
)

func wideSegment() mdpane.Segment {
	return mdpane.Segment{
		Kind:    mdpane.SegmentCode,
		Content: strings.Repeat("abcdefghij", 12), // 120 columns
		Lang:    "go",
	}
}

func TestCodeBlock(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(mdpane.DefaultTheme())

	t.Run("shows language label and scrollbar when content overflows", func(t *testing.T) {
		t.Parallel()
		b := bt.NewCodeBlock(wideSegment(), styles)
		view := ansi.Strip(b.View(40))
		assert.Contains(t, view, "go")
		assert.Contains(t, view, "◀")
		assert.Contains(t, view, "▶")
	})

	t.Run("no scrollbar when content fits", func(t *testing.T) {
		t.Parallel()
		b := bt.NewCodeBlock(wideSegment(), styles)
		view := ansi.Strip(b.View(150))
		assert.NotContains(t, view, "◀")
	})

	t.Run("lines are truncated not wrapped", func(t *testing.T) {
		t.Parallel()
		seg := wideSegment()
		b := bt.NewCodeBlock(seg, styles)
		view := ansi.Strip(b.View(40))
		// label + one code line + scrollbar
		lines := strings.Split(view, "\n")
		require.Len(t, lines, 3)
		assert.LessOrEqual(t, ansi.StringWidth(lines[1]), 40)
	})

	t.Run("scrolling shifts the visible window", func(t *testing.T) {
		t.Parallel()
		b := bt.NewCodeBlock(wideSegment(), styles)
		before := ansi.Strip(b.View(40))
		for range 3 {
			updated, _ := b.Update(bt.ScrollBy(8))
			b = updated.(*bt.CodeBlock)
		}
		assert.Equal(t, 24, b.XOffset())
		after := ansi.Strip(b.View(40))
		assert.NotEqual(t, before, after)
	})

	t.Run("offset clamps to content width minus view", func(t *testing.T) {
		t.Parallel()
		b := bt.NewCodeBlock(wideSegment(), styles)
		b.View(40)
		updated, _ := b.Update(bt.ScrollBy(10000))
		b = updated.(*bt.CodeBlock)
		assert.Equal(t, 80, b.XOffset()) // 120 - 40

		updated, _ = b.Update(bt.ScrollBy(-10000))
		b = updated.(*bt.CodeBlock)
		assert.Equal(t, 0, b.XOffset())
	})

	t.Run("zero width renders nothing", func(t *testing.T) {
		t.Parallel()
		b := bt.NewCodeBlock(wideSegment(), styles)
		assert.Equal(t, "", b.View(0))
	})
}
