package markdown

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"mdpane"
	"mdpane/wrap"
)

// maxAncestorWalk bounds the preformatted-ancestor check so a malformed or
// unusually deep tree cannot stall a render pass. Exceeding the cap means
// "assume not preformatted", not an error.
const maxAncestorWalk = 20

// Renderer is a stateless parser/renderer pair. Construct one per theme and
// reuse it; Render is safe to call repeatedly.
type Renderer struct {
	md     goldmark.Markdown
	theme  mdpane.Theme
	styles styles

	// scanThreshold and breakEvery control soft-break insertion into
	// overlong code tokens.
	scanThreshold int
	breakEvery    int
}

type styles struct {
	bold      lipgloss.Style
	italic    lipgloss.Style
	muted     lipgloss.Style
	underline lipgloss.Style
	code      lipgloss.Style
	text      lipgloss.Style
	headings  [6]lipgloss.Style
}

// New creates a Renderer for the given theme. The goldmark parser (with GFM
// table support) is constructed once and reused across renders.
func New(theme mdpane.Theme) *Renderer {
	accent := ansiColor(theme.Accent)
	h := [6]lipgloss.Style{
		lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true),
		lipgloss.NewStyle().Foreground(accent).Bold(true),
		lipgloss.NewStyle().Foreground(accent),
		lipgloss.NewStyle().Foreground(accent),
		lipgloss.NewStyle().Foreground(accent).Faint(true),
		lipgloss.NewStyle().Foreground(accent).Faint(true),
	}
	return &Renderer{
		md:    goldmark.New(goldmark.WithExtensions(extension.Table)),
		theme: theme,
		styles: styles{
			bold:      lipgloss.NewStyle().Bold(true),
			italic:    lipgloss.NewStyle().Italic(true),
			muted:     lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
			underline: lipgloss.NewStyle().Underline(true),
			code:      lipgloss.NewStyle().Foreground(ansiColor(theme.CodeFg)).Background(ansiColor(theme.CodeBg)),
			text:      lipgloss.NewStyle().Foreground(ansiColor(theme.Text)),
			headings:  h,
		},
		scanThreshold: 80,
		breakEvery:    40,
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// Render parses source and renders it at width. A parser failure degrades to
// plain word-wrapped text; the caller always gets visible content.
func (r *Renderer) Render(source string, width int) (out string) {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	defer func() {
		if rec := recover(); rec != nil {
			out = wrap.Text(source, width)
		}
	}()

	doc := r.md.Parser().Parse(text.NewReader([]byte(source)))
	var buf bytes.Buffer
	r.walkBlock(doc, []byte(source), width, &buf)
	return r.shell(strings.TrimRight(buf.String(), "\n"))
}

func (r *Renderer) walkBlock(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderBlock(c, source, width, buf)
	}
}

func (r *Renderer) renderBlock(node ast.Node, source []byte, width int, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Paragraph:
		inline := r.collectInline(n, source)
		buf.WriteString(r.wrapProse(n, inline, width))
		buf.WriteString("\n")
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.Heading:
		r.renderHeading(n, source, width, buf)

	case *ast.FencedCodeBlock:
		lang := string(n.Language(source))
		r.renderCodeLines(lang, blockLines(n, source), width, buf)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.CodeBlock:
		r.renderCodeLines("", blockLines(n, source), width, buf)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.List:
		r.renderList(n, source, width, buf, 0)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.Blockquote:
		r.renderBlockquote(n, source, width, buf)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *east.Table:
		r.renderTable(n, source, buf)
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.ThematicBreak:
		buf.WriteString(r.styles.muted.Render(strings.Repeat("─", min(width, 40))))
		buf.WriteString("\n")
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	case *ast.HTMLBlock:
		var raw bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			raw.Write(seg.Value(source))
		}
		escaped := r.step("escape-comments", raw.String(), escapeComments)
		buf.WriteString(r.styles.muted.Render(strings.TrimRight(escaped, "\n")))
		buf.WriteString("\n")
		if n.NextSibling() != nil {
			buf.WriteString("\n")
		}

	default:
		// Unrecognized blocks: recurse into children.
		r.walkBlock(node, source, width, buf)
	}
}

// renderHeading replaces the heading with a generic styled block: accent
// styling scaled down by level, margin rows scaled from the theme's base
// unit. The raw marker never reaches the output, so the surface's own idea
// of heading sizing cannot interfere.
func (r *Renderer) renderHeading(n *ast.Heading, source []byte, width int, buf *bytes.Buffer) {
	level := n.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}

	margin := 0
	if level <= 2 && n.PreviousSibling() != nil {
		margin = max(r.theme.BaseUnit, 1) - 1
	}
	for range margin {
		buf.WriteString("\n")
	}

	inline := r.collectInline(n, source)
	styled := r.styles.headings[level-1].Render(inline)
	buf.WriteString(r.wrapProse(n, styled, width))
	buf.WriteString("\n")
	if n.NextSibling() != nil {
		buf.WriteString("\n")
	}
}

// renderCodeLines writes preformatted lines with a gutter, a muted language
// label, and element-level code coloring. Syntax highlighting is attempted
// first; on failure the line renders with the plain code style. Lines that
// fit the width are emitted verbatim. A line too wide for the gutter's
// remainder would be clipped by the enclosing viewport, so it instead gets
// soft break opportunities and is split at them; those lines render with
// the plain code style since the split invalidates the highlighted pairing.
func (r *Renderer) renderCodeLines(lang string, lines []string, width int, buf *bytes.Buffer) {
	if lang != "" {
		buf.WriteString(r.styles.muted.Render(lang))
		buf.WriteString("\n")
	}
	gutter := r.styles.muted.Render("│") + " "
	inner := width - 2
	if inner < 10 {
		inner = 10
	}
	highlighted, ok := Highlight(strings.Join(lines, "\n"), lang)
	hl := strings.Split(highlighted, "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) <= inner {
			buf.WriteString(gutter)
			if ok {
				buf.WriteString(hl[i])
			} else {
				buf.WriteString(r.styles.code.Render(line))
			}
			buf.WriteString("\n")
			continue
		}
		broken := r.step("soft-breaks", line, func(s string) string {
			return softBreaks(s, inner, inner)
		})
		for _, frag := range wrap.Line(broken, inner) {
			buf.WriteString(gutter)
			buf.WriteString(r.styles.code.Render(frag))
			buf.WriteString("\n")
		}
	}
}

func blockLines(n interface{ Lines() *text.Segments }, source []byte) []string {
	segs := n.Lines()
	out := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		out = append(out, strings.TrimRight(string(seg.Value(source)), "\n"))
	}
	return out
}

func (r *Renderer) renderBlockquote(n *ast.Blockquote, source []byte, width int, buf *bytes.Buffer) {
	inner := width - 2
	if inner < 10 {
		inner = 10
	}
	var inherit bytes.Buffer
	r.walkBlock(n, source, inner, &inherit)
	gutter := r.styles.muted.Render("┃") + " "
	for _, line := range strings.Split(strings.TrimRight(inherit.String(), "\n"), "\n") {
		buf.WriteString(gutter + line + "\n")
	}
}

func (r *Renderer) renderList(node *ast.List, source []byte, width int, buf *bytes.Buffer, depth int) {
	ordered := node.IsOrdered()
	start := node.Start
	itemNum := 0

	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		indent := strings.Repeat("  ", depth)
		var marker string
		if ordered {
			itemNum++
			marker = fmt.Sprintf("%d. ", start+itemNum-1)
		} else {
			marker = "- "
		}

		var itemBuf bytes.Buffer
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			switch in := ic.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				itemBuf.WriteString(r.collectInline(in, source))
			case *ast.List:
				if itemBuf.Len() > 0 {
					r.writeListItem(buf, indent, marker, itemBuf.String(), width)
					itemBuf.Reset()
				}
				r.renderList(in, source, width, buf, depth+1)
				marker = strings.Repeat(" ", len(marker))
			default:
				r.renderBlock(ic, source, width, &itemBuf)
			}
		}

		if itemBuf.Len() > 0 {
			r.writeListItem(buf, indent, marker, itemBuf.String(), width)
		}
	}
}

// writeListItem writes a list item with continuation-line indentation.
func (r *Renderer) writeListItem(buf *bytes.Buffer, indent, marker, content string, width int) {
	prefix := indent + marker
	itemWidth := width - len(prefix)
	if itemWidth < 10 {
		itemWidth = 10
	}
	wrapped := wrap.Text(content, itemWidth)
	continuation := strings.Repeat(" ", len(prefix))
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			buf.WriteString(prefix + line + "\n")
		} else {
			buf.WriteString(continuation + line + "\n")
		}
	}
}

// wrapProse word-wraps inline content unless the node sits inside a
// preformatted ancestor, in which case the text passes through untouched.
func (r *Renderer) wrapProse(n ast.Node, s string, width int) string {
	if insidePreformatted(n) {
		return s
	}
	return wrap.Text(s, width)
}

// insidePreformatted walks the parent chain looking for a preformatted
// element. The walk is capped; past the cap it reports false.
func insidePreformatted(n ast.Node) bool {
	for i := 0; n != nil && i < maxAncestorWalk; i++ {
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindCodeSpan:
			return true
		}
		n = n.Parent()
	}
	return false
}

// collectInline recursively collects styled inline text from a node's children.
func (r *Renderer) collectInline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.renderInline(c, source, &buf)
	}
	return buf.String()
}

func (r *Renderer) renderInline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.WriteString(r.styleText(string(n.Segment.Value(source))))
		if n.SoftLineBreak() {
			buf.WriteByte(' ')
		}
		if n.HardLineBreak() {
			buf.WriteByte('\n')
		}

	case *ast.String:
		buf.WriteString(r.styleText(string(n.Value)))

	case *ast.Emphasis:
		// Legacy bold/italic sequences; the surface has no reliable
		// styling for the semantic emphasis levels themselves.
		inner := r.collectInline(n, source)
		switch n.Level {
		case 1:
			buf.WriteString(r.styles.italic.Render(inner))
		default:
			buf.WriteString(r.styles.bold.Render(inner))
		}

	case *ast.CodeSpan:
		inner := r.collectInline(n, source)
		inner = r.step("soft-breaks", inner, func(s string) string {
			return softBreaks(s, r.scanThreshold, r.breakEvery)
		})
		buf.WriteString(r.styles.code.Render(inner))

	case *ast.Link:
		inner := r.collectInline(n, source)
		url := string(n.Destination)
		buf.WriteString(r.styles.underline.Render(inner))
		buf.WriteString(" ")
		buf.WriteString(r.styles.muted.Render("(" + url + ")"))

	case *ast.AutoLink:
		buf.WriteString(r.styles.underline.Render(string(n.URL(source))))

	case *ast.Image:
		alt := r.collectInline(n, source)
		url := string(n.Destination)
		buf.WriteString(r.styles.underline.Render(alt))
		buf.WriteString(" ")
		buf.WriteString(r.styles.muted.Render("(" + url + ")"))

	case *ast.RawHTML:
		var raw bytes.Buffer
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			raw.Write(seg.Value(source))
		}
		escaped := r.step("escape-comments", raw.String(), escapeComments)
		buf.WriteString(r.styles.muted.Render(escaped))

	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.renderInline(c, source, buf)
		}
	}
}

// styleText applies the theme's body text color to a plain text run. Inline
// styling always takes precedence over whatever the enclosing surface does.
func (r *Renderer) styleText(s string) string {
	if r.theme.Text < 0 || s == "" {
		return s
	}
	return r.styles.text.Render(s)
}
