// Package segment partitions a markdown document into an ordered sequence of
// prose and fenced-code segments. Prose segments are raw source slices; code
// segments carry the fence's inner content and language tag. Only fences
// whose markers Join can re-emit verbatim are extracted: an opener of
// exactly "```lang" (language recognized by chroma's lexer registry) and a
// closer of exactly "```", each on its own newline-terminated line.
// Everything else (untagged fences, unknown languages, info-string extras,
// tilde fences, unterminated fences) stays in prose so the styling pipeline
// can deal with it.
package segment

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"mdpane"
)

// DefaultWideThreshold is the line width, in display columns, above which a
// code segment is rendered as an independent horizontally-scrollable region.
// The boundary is exclusive: a line of exactly this width is not wide.
const DefaultWideThreshold = 80

// Split partitions source into prose and code segments, preserving source
// order. Join inverts it for fence styles Split extracts.
func Split(source string) []mdpane.Segment {
	if source == "" {
		return nil
	}

	ls := splitLines(source)
	var segs []mdpane.Segment

	proseStart := 0
	i := 0
	for i < len(ls) {
		lang, tagged := fenceOpen(ls[i])
		if !tagged {
			if isFence(ls[i]) {
				// Untagged or unrecognized fence: skip its whole body as
				// prose so content lines resembling fences are not misread.
				i = skipFence(ls, i)
				continue
			}
			i++
			continue
		}

		end := i + 1
		for end < len(ls) && !fenceClose(ls[end]) {
			end++
		}
		if end == len(ls) {
			// Unterminated, or closed only by a marker Join could not
			// reproduce: the rest of the document stays prose.
			break
		}

		if prose := strings.Join(ls[proseStart:i], ""); prose != "" {
			segs = append(segs, mdpane.Segment{Kind: mdpane.SegmentProse, Content: prose})
		}
		inner := strings.Join(ls[i+1:end], "")
		segs = append(segs, mdpane.Segment{
			Kind:    mdpane.SegmentCode,
			Content: strings.TrimSuffix(inner, "\n"),
			Lang:    lang,
		})
		i = end + 1
		proseStart = i
	}

	if prose := strings.Join(ls[proseStart:], ""); prose != "" {
		segs = append(segs, mdpane.Segment{Kind: mdpane.SegmentProse, Content: prose})
	}
	return segs
}

// Join reassembles segments into markdown source, re-adding the fence
// markers around code segments.
func Join(segs []mdpane.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		switch s.Kind {
		case mdpane.SegmentCode:
			b.WriteString("```")
			b.WriteString(s.Lang)
			b.WriteString("\n")
			if s.Content != "" {
				b.WriteString(s.Content)
				b.WriteString("\n")
			}
			b.WriteString("```\n")
		default:
			b.WriteString(s.Content)
		}
	}
	return b.String()
}

// splitLines splits source into lines, each keeping its trailing newline so
// concatenating the result reproduces source exactly.
func splitLines(source string) []string {
	var ls []string
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			ls = append(ls, source[start:i+1])
			start = i + 1
		}
	}
	if start < len(source) {
		ls = append(ls, source[start:])
	}
	return ls
}

// fenceOpen reports whether line is an opener Join can reproduce exactly:
// three backticks, the language tag, a newline, nothing else. Openers with
// leading space before the tag or info-string extras are legal markdown but
// not invertible, so they are left in prose.
func fenceOpen(line string) (lang string, ok bool) {
	rest, found := strings.CutPrefix(line, "```")
	if !found {
		return "", false
	}
	lang, terminated := strings.CutSuffix(rest, "\n")
	if !terminated || lang == "" || strings.ContainsAny(lang, " \t`") {
		return "", false
	}
	if lexers.Get(lang) == nil {
		return "", false
	}
	return lang, true
}

// isFence reports whether line opens any code fence, tagged or not.
func isFence(line string) bool {
	trimmed := strings.TrimRight(line, "\n")
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// fenceClose reports whether line is a closer Join can reproduce exactly.
// Longer closers, trailing spaces, and a closer without its newline (end of
// file) are not invertible; the fence stays prose instead.
func fenceClose(line string) bool {
	return line == "```\n"
}

// looseClose reports whether line closes a backtick fence in the permissive
// markdown sense, used only when skipping over a fence kept as prose.
func looseClose(line string) bool {
	trimmed := strings.TrimRight(line, " \t\n")
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if r != '`' {
			return false
		}
	}
	return true
}

// skipFence advances past an untagged fence body, returning the index of the
// first line after its closing marker. If the fence never closes the rest of
// the document is consumed.
func skipFence(ls []string, open int) int {
	tilde := strings.HasPrefix(strings.TrimRight(ls[open], "\n"), "~~~")
	for i := open + 1; i < len(ls); i++ {
		trimmed := strings.TrimRight(ls[i], " \t\n")
		if tilde {
			if len(trimmed) >= 3 && strings.Count(trimmed, "~") == len(trimmed) {
				return i + 1
			}
			continue
		}
		if looseClose(ls[i]) {
			return i + 1
		}
	}
	return len(ls)
}
