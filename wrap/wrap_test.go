package wrap_test

import (
	"strings"
	"testing"

	"mdpane/wrap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	t.Parallel()

	t.Run("short line is returned unchanged", func(t *testing.T) {
		t.Parallel()
		lines := wrap.Line("hello world", 20)
		assert.Equal(t, []string{"hello world"}, lines)
	})

	t.Run("breaks at the nearest space before the fit", func(t *testing.T) {
		t.Parallel()
		lines := wrap.Line("the quick brown fox", 10)
		require.Len(t, lines, 2)
		assert.Equal(t, "the quick ", lines[0])
		assert.Equal(t, "brown fox", lines[1])
	})

	t.Run("breaks after punctuation candidates", func(t *testing.T) {
		t.Parallel()
		lines := wrap.Line("foo/bar/baz/qux", 9)
		require.GreaterOrEqual(t, len(lines), 2)
		assert.Equal(t, "foo/bar/", lines[0])
	})

	t.Run("hard-breaks a token with no candidates", func(t *testing.T) {
		t.Parallel()
		lines := wrap.Line(strings.Repeat("a", 25), 10)
		assert.Equal(t, []string{"aaaaaaaaaa", "aaaaaaaaaa", "aaaaa"}, lines)
	})

	t.Run("soft break tokens are candidates", func(t *testing.T) {
		t.Parallel()
		src := strings.Repeat("a", 8) + string(wrap.SoftBreak) + strings.Repeat("b", 8)
		lines := wrap.Line(src, 10)
		require.Len(t, lines, 2)
		assert.Equal(t, strings.Repeat("a", 8)+string(wrap.SoftBreak), lines[0])
		assert.Equal(t, strings.Repeat("b", 8), lines[1])
	})

	t.Run("candidate is kept in the first fragment", func(t *testing.T) {
		t.Parallel()
		lines := wrap.Line("aaa-bbb", 5)
		require.Len(t, lines, 2)
		assert.Equal(t, "aaa-", lines[0])
		assert.Equal(t, "bbb", lines[1])
	})

	t.Run("ansi escapes are zero width", func(t *testing.T) {
		t.Parallel()
		styled := "\x1b[1mbold\x1b[0m text here"
		lines := wrap.Line(styled, 9)
		require.GreaterOrEqual(t, len(lines), 2)
		assert.Contains(t, lines[0], "bold")
	})

	t.Run("forward progress at width one", func(t *testing.T) {
		t.Parallel()
		lines := wrap.Line("abcdef", 1)
		assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, lines)
	})

	t.Run("forward progress with wide rune and narrow width", func(t *testing.T) {
		t.Parallel()
		// Double-width rune never fits in one column; each fragment still
		// consumes one cluster.
		lines := wrap.Line("世界", 1)
		assert.Equal(t, []string{"世", "界"}, lines)
	})

	t.Run("zero width returns input unchanged", func(t *testing.T) {
		t.Parallel()
		lines := wrap.Line("hello world", 0)
		assert.Equal(t, []string{"hello world"}, lines)
	})
}

func TestText(t *testing.T) {
	t.Parallel()

	t.Run("preserves existing newlines", func(t *testing.T) {
		t.Parallel()
		out := wrap.Text("one\ntwo", 10)
		assert.Equal(t, "one\ntwo", out)
	})

	t.Run("wraps each line independently", func(t *testing.T) {
		t.Parallel()
		out := wrap.Text("the quick brown fox\nshort", 10)
		assert.Equal(t, "the quick \nbrown fox\nshort", out)
	})

	t.Run("non-positive width is a no-op", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "anything at all", wrap.Text("anything at all", -1))
	})
}

// Every break offset must strictly advance, for any width >= 1. This is the
// termination guarantee for the layout pass.
func TestForwardProgress(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"plain words separated by spaces",
		strings.Repeat("x", 200),
		"path/to/some/deeply/nested/file_name.go",
		"混合 width 文本 with spaces",
		"\x1b[31mred\x1b[0m\x1b[1mbold\x1b[0m",
	}
	for _, src := range inputs {
		for width := 1; width <= 12; width++ {
			lines := wrap.Line(src, width)
			total := 0
			for _, l := range lines {
				total += len(l)
			}
			assert.Equal(t, len(src), total, "no bytes lost for %q at width %d", src, width)
			for i, l := range lines {
				if i < len(lines)-1 {
					assert.NotEmpty(t, l, "empty fragment for %q at width %d", src, width)
				}
			}
		}
	}
}
