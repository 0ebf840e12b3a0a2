// Package wrap implements word-boundary line breaking for ANSI-styled
// terminal text. The host cell grid breaks at arbitrary column boundaries
// (character-accurate, not word-aware); this package computes the
// character-accurate fit for the available width and then backs up to the
// nearest break candidate, so prose wraps at word boundaries instead of
// mid-token. Preformatted content must not pass through here; callers keep
// code out and rely on soft-break tokens instead.
package wrap

import (
	"strings"

	"github.com/rivo/uniseg"
)

// SoftBreak is a zero-width break opportunity. The styling pipeline inserts
// it into overlong unbroken tokens; this engine treats it as a candidate.
const SoftBreak = '​'

// candidates are the non-whitespace runes after which a visual line break
// is acceptable.
const candidates = "-/_.,;:"

// cell is one grapheme cluster or ANSI escape sequence of a line.
type cell struct {
	start, end int // byte offsets into the line
	width      int // display columns, 0 for escapes and zero-width runes
	breakable  bool
}

// Text wraps every line of text to width columns, preserving existing
// newlines. If width <= 0 the text is returned unchanged.
func Text(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, Line(line, width)...)
	}
	return strings.Join(out, "\n")
}

// Line wraps a single line at break candidates (whitespace, a small set of
// punctuation, and soft-break tokens) to fit within width display columns.
// The candidate is kept at the end of the fragment before the break. If no
// candidate exists in range the line is hard-broken at the
// character-accurate fit, always consuming at least one grapheme cluster so
// layout makes forward progress.
func Line(line string, width int) []string {
	if width <= 0 || line == "" {
		return []string{line}
	}

	cs := cells(line)
	if len(cs) == 0 {
		return []string{line}
	}

	var out []string
	from := 0 // index into cs of the current fragment's first cell

	for lineWidth(cs, from, len(cs)) > width {
		fit := fitOffset(cs, from, width)
		cut := fit
		if cand := lastCandidate(cs, from, fit); cand > from {
			cut = cand
		}
		if cut >= len(cs) {
			break
		}
		out = append(out, line[cs[from].start:cs[cut-1].end])
		from = cut
	}

	out = append(out, line[cs[from].start:])
	return out
}

// fitOffset returns the index one past the last cell that fits in width
// columns starting at from. It always advances past at least one cell with
// non-zero width (or all remaining cells, if none has width).
func fitOffset(cs []cell, from, width int) int {
	cols := 0
	consumed := false
	for i := from; i < len(cs); i++ {
		if cols+cs[i].width > width && consumed {
			return i
		}
		cols += cs[i].width
		if cs[i].width > 0 {
			consumed = true
		}
	}
	return len(cs)
}

// lastCandidate scans backward from limit for the nearest break candidate
// and returns the index one past it, or from if none exists in range.
func lastCandidate(cs []cell, from, limit int) int {
	for i := limit - 1; i >= from; i-- {
		if cs[i].breakable {
			return i + 1
		}
	}
	return from
}

func lineWidth(cs []cell, from, to int) int {
	cols := 0
	for i := from; i < to; i++ {
		cols += cs[i].width
	}
	return cols
}

// cells splits a line into grapheme clusters, folding ANSI escape sequences
// into zero-width cells so styled text measures and breaks like its plain
// equivalent.
func cells(line string) []cell {
	var out []cell
	i := 0
	for i < len(line) {
		if line[i] == 0x1B {
			end := escapeEnd(line, i)
			out = append(out, cell{start: i, end: end})
			i = end
			continue
		}
		g := uniseg.NewGraphemes(line[i:])
		if !g.Next() {
			break
		}
		_, to := g.Positions()
		next := i + to
		r := g.Runes()[0]
		out = append(out, cell{
			start:     i,
			end:       next,
			width:     g.Width(),
			breakable: isCandidate(r),
		})
		i = next
	}
	return out
}

// escapeEnd returns the byte offset one past the ANSI escape sequence
// starting at i. CSI sequences run to their final byte (0x40-0x7E); OSC
// sequences run to BEL or ST; anything else is a two-byte escape.
func escapeEnd(line string, i int) int {
	if i+1 >= len(line) {
		return len(line)
	}
	switch line[i+1] {
	case '[':
		for j := i + 2; j < len(line); j++ {
			if line[j] >= 0x40 && line[j] <= 0x7E {
				return j + 1
			}
		}
		return len(line)
	case ']':
		for j := i + 2; j < len(line); j++ {
			if line[j] == 0x07 {
				return j + 1
			}
			if line[j] == 0x1B && j+1 < len(line) && line[j+1] == '\\' {
				return j + 2
			}
		}
		return len(line)
	default:
		return i + 2
	}
}

func isCandidate(r rune) bool {
	switch {
	case r == ' ' || r == '\t':
		return true
	case r == SoftBreak:
		return true
	case strings.ContainsRune(candidates, r):
		return true
	}
	return false
}
