// Package markdown renders markdown text to ANSI-styled terminal output
// using goldmark for parsing and lipgloss for styling. Paragraphs, headings,
// lists, and tables are word-wrapped to width by the wrap engine. Code spans
// and code blocks are never reflowed; overlong code tokens instead receive
// zero-width break opportunities so the surface can split them predictably.
package markdown

import "mdpane"

// Render parses markdown source and returns ANSI-styled terminal output.
// It constructs a throwaway Renderer; callers rendering repeatedly should
// hold their own.
func Render(source string, width int, theme mdpane.Theme) string {
	if source == "" {
		return ""
	}
	return New(theme).Render(source, width)
}
