package bubbletea_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdpane"
	bt "mdpane/bubbletea"
	"mdpane/layout"
)

const wideLine = 100

// wideDoc is a document with prose, a narrow code block, and a wide one.
func wideDoc() string {
	return "# Title\n\nSome **bold** text.\n\n" +
		"```go\nfmt.Println(\"short\")\n```\n\n" +
		"```go\n" + strings.Repeat("x", wideLine) + "\n```\n"
}

// initModel creates a model and drives the window-size / deferred-reflow
// exchange the way the runtime would.
func initModel(t *testing.T, source string, width, height int) bt.Document {
	t.Helper()
	m := bt.New(source, mdpane.DefaultTheme())
	return resize(t, m, width, height)
}

func resize(t *testing.T, m bt.Document, width, height int) bt.Document {
	t.Helper()
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Document)
	require.True(t, ok)
	require.NotNil(t, cmd, "window size must schedule a reflow")
	return deliver(t, model, cmd())
}

func deliver(t *testing.T, m bt.Document, msg tea.Msg) bt.Document {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Document)
	require.True(t, ok)
	return model
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("wide code becomes a scrollable region", func(t *testing.T) {
		t.Parallel()
		m := bt.New(wideDoc(), mdpane.DefaultTheme())
		blocks := bt.Blocks(m)
		require.Len(t, blocks, 4)
		_, prose := blocks[0].(*bt.ProseBlock)
		assert.True(t, prose)
		_, narrowIsProse := blocks[1].(*bt.ProseBlock)
		assert.True(t, narrowIsProse, "narrow code renders through the pipeline")
		_, wideIsCode := blocks[3].(*bt.CodeBlock)
		assert.True(t, wideIsCode)
	})

	t.Run("threshold override reclassifies", func(t *testing.T) {
		t.Parallel()
		m := bt.New(wideDoc(), mdpane.DefaultTheme(), bt.WithWideThreshold(wideLine))
		for _, b := range bt.Blocks(m) {
			_, isCode := b.(*bt.CodeBlock)
			assert.False(t, isCode, "exactly-threshold lines are not wide")
		}
	})

	t.Run("first code region is focused", func(t *testing.T) {
		t.Parallel()
		m := bt.New(wideDoc(), mdpane.DefaultTheme())
		assert.Equal(t, 3, bt.Focus(m))
	})

	t.Run("document without code has no focus", func(t *testing.T) {
		t.Parallel()
		m := bt.New("just prose", mdpane.DefaultTheme())
		assert.Equal(t, -1, bt.Focus(m))
	})
}

func TestReflow(t *testing.T) {
	t.Parallel()

	t.Run("window size applies tracked width", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, wideDoc(), 80, 24)
		w, h := m.NaturalSize()
		assert.Equal(t, 80, w)
		assert.Greater(t, h, 0)
	})

	t.Run("repeat notification is not a second pass", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, wideDoc(), 80, 24)
		w1, h1 := m.NaturalSize()
		m = resize(t, m, 80, 24)
		w2, h2 := m.NaturalSize()
		assert.Equal(t, w1, w2)
		assert.Equal(t, h1, h2)
	})

	t.Run("second request while pending supersedes", func(t *testing.T) {
		t.Parallel()
		m := bt.New(wideDoc(), mdpane.DefaultTheme())
		updated, cmd1 := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		m = updated.(bt.Document)
		require.NotNil(t, cmd1)
		assert.True(t, bt.PendingReflow(m))

		updated, cmd2 := m.Update(tea.WindowSizeMsg{Width: 90, Height: 24})
		m = updated.(bt.Document)
		assert.Nil(t, cmd2, "pending pass absorbs the second request")

		m = deliver(t, m, cmd1())
		w, _ := m.NaturalSize()
		assert.Equal(t, 90, w, "the deferred pass sees the latest width")
	})

	t.Run("resize re-wraps prose", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, "word "+strings.Repeat("stretch ", 30), 80, 24)
		wideContent := bt.RenderContent(m, 80)
		m = resize(t, m, 30, 24)
		narrowContent := bt.RenderContent(m, 30)
		assert.NotEqual(t, wideContent, narrowContent)
	})

	t.Run("insets narrow the tracked width", func(t *testing.T) {
		t.Parallel()
		m := bt.New(wideDoc(), mdpane.DefaultTheme(), bt.WithInsets(layout.Insets{Left: 2, Right: 2}))
		m = resize(t, m, 80, 24)
		w, _ := m.NaturalSize()
		assert.Equal(t, 76, w)
	})
}

func TestSetSource(t *testing.T) {
	t.Parallel()

	m := initModel(t, "original text", 80, 24)
	m2, cmd := m.SetSource("# Replaced\n\nnew content")
	require.NotNil(t, cmd)
	m2 = deliver(t, m2, cmd())
	assert.Contains(t, bt.RenderContent(m2, 80), "Replaced")
	assert.NotContains(t, bt.RenderContent(m2, 80), "original")
}

func TestSetTheme(t *testing.T) {
	t.Parallel()

	m := initModel(t, "# Heading\n\ntext", 80, 24)
	theme := mdpane.DefaultTheme()
	theme.Accent = 2
	m2, cmd := m.SetTheme(theme)
	require.NotNil(t, cmd, "theme change schedules a reflow")
	m2 = deliver(t, m2, cmd())
	assert.Contains(t, bt.RenderContent(m2, 80), "Heading")
}

func TestCodeRegionScroll(t *testing.T) {
	t.Parallel()

	t.Run("right scrolls the focused region", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, wideDoc(), 40, 24)
		focus := bt.Focus(m)
		require.GreaterOrEqual(t, focus, 0)

		m = deliver(t, m, tea.KeyMsg{Type: tea.KeyRight})
		region := bt.Blocks(m)[focus].(*bt.CodeBlock)
		assert.Greater(t, region.XOffset(), 0)

		m = deliver(t, m, tea.KeyMsg{Type: tea.KeyLeft})
		region = bt.Blocks(m)[focus].(*bt.CodeBlock)
		assert.Equal(t, 0, region.XOffset())
	})

	t.Run("offset clamps at content end", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, wideDoc(), 40, 24)
		for range 100 {
			m = deliver(t, m, tea.KeyMsg{Type: tea.KeyRight})
		}
		region := bt.Blocks(m)[bt.Focus(m)].(*bt.CodeBlock)
		assert.LessOrEqual(t, region.XOffset(), wideLine)
	})

	t.Run("tab wraps focus across regions", func(t *testing.T) {
		t.Parallel()
		src := "```go\n" + strings.Repeat("a", 120) + "\n```\n\nmiddle\n\n```go\n" + strings.Repeat("b", 120) + "\n```\n"
		m := initModel(t, src, 40, 24)
		first := bt.Focus(m)
		m = deliver(t, m, tea.KeyMsg{Type: tea.KeyTab})
		second := bt.Focus(m)
		assert.NotEqual(t, first, second)
		m = deliver(t, m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, first, bt.Focus(m))
	})
}

func TestWheelDelegation(t *testing.T) {
	t.Parallel()

	// A document much taller than the viewport; wheel input must scroll the
	// outer viewport even though a code region is present (and focused).
	src := wideDoc() + strings.Repeat("\nfiller paragraph text\n", 40)
	m := initModel(t, src, 40, 10)
	require.GreaterOrEqual(t, bt.Focus(m), 0)
	require.Equal(t, 0, m.Viewport.YOffset)

	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	m = deliver(t, m, wheel)
	assert.Greater(t, m.Viewport.YOffset, 0)
}

func TestView(t *testing.T) {
	t.Parallel()

	t.Run("before first window size", func(t *testing.T) {
		t.Parallel()
		m := bt.New("text", mdpane.DefaultTheme())
		assert.Equal(t, "Initializing...", m.View())
	})

	t.Run("after init shows content and status", func(t *testing.T) {
		t.Parallel()
		m := initModel(t, "hello surface", 80, 24)
		view := m.View()
		assert.Contains(t, view, "hello surface")
		assert.Contains(t, view, "q quit")
	})
}
