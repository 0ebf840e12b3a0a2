package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mdpane/wrap"
)

// step runs one named sanitization/styling transform under a recover guard.
// A panicking transform yields its input unchanged; a single malformed input
// must never abort the whole render.
func (r *Renderer) step(name string, input string, fn func(string) string) (out string) {
	out = input
	defer func() {
		if rec := recover(); rec != nil {
			out = input
		}
	}()
	return fn(input)
}

// escapeComments neutralizes literal HTML comment openers so the surface's
// parser can never enter an unterminated-comment state. A zero-width break
// between "<!" and "--" leaves the text visually identical. Already-escaped
// input passes through unchanged.
func escapeComments(s string) string {
	return strings.ReplaceAll(s, "<!--", "<!​--")
}

// softBreaks inserts zero-width break opportunities into tokens longer than
// scan: one immediately after every soft-boundary rune, and one every
// `every` runes of unbroken run. Tokens already carrying soft breaks are
// left alone, which makes the step idempotent.
func softBreaks(s string, scan, every int) string {
	if scan <= 0 || every <= 0 {
		return s
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '\t' })
	needsWork := false
	for _, f := range fields {
		if len([]rune(f)) > scan && !strings.ContainsRune(f, wrap.SoftBreak) {
			needsWork = true
			break
		}
	}
	if !needsWork {
		return s
	}

	var b strings.Builder
	var token []rune
	flush := func() {
		if len(token) == 0 {
			return
		}
		tok := string(token)
		if len(token) > scan && !strings.ContainsRune(tok, wrap.SoftBreak) {
			tok = breakToken(token, every)
		}
		b.WriteString(tok)
		token = token[:0]
	}
	for _, r := range s {
		if r == ' ' || r == '\t' {
			flush()
			b.WriteRune(r)
			continue
		}
		token = append(token, r)
	}
	flush()
	return b.String()
}

const softBoundaries = "_-/.,;:"

func breakToken(token []rune, every int) string {
	var b strings.Builder
	run := 0
	for i, r := range token {
		b.WriteRune(r)
		run++
		last := i == len(token)-1
		if !last && (strings.ContainsRune(softBoundaries, r) || run >= every) {
			b.WriteRune(wrap.SoftBreak)
			run = 0
		}
	}
	return b.String()
}

// shell wraps the rendered body in the document-level theme declaration.
// Foreground is already applied per element for precedence; the shell only
// paints the background when the theme asks for one.
func (r *Renderer) shell(body string) string {
	if r.theme.Background < 0 {
		return body
	}
	return r.step("document-shell", body, func(s string) string {
		return lipgloss.NewStyle().Background(ansiColor(r.theme.Background)).Render(s)
	})
}
