package markdown

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// renderTable renders a GFM table as aligned columns with muted separators.
// Columns are sized to their widest styled cell; tables are not reflowed to
// the surface width, so a genuinely oversized table simply overflows like
// preformatted content.
func (r *Renderer) renderTable(t *east.Table, source []byte, buf *bytes.Buffer) {
	var header []string
	var rows [][]string

	for c := t.FirstChild(); c != nil; c = c.NextSibling() {
		switch row := c.(type) {
		case *east.TableHeader:
			header = r.collectCells(row, source)
		case *east.TableRow:
			rows = append(rows, r.collectCells(row, source))
		}
	}

	cols := len(header)
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if w := ansi.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}

	sep := r.styles.muted.Render(" │ ")
	writeRow := func(row []string, style func(string) string) {
		parts := make([]string, cols)
		for i := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", widths[i]-ansi.StringWidth(cell))
			if style != nil {
				cell = style(cell)
			}
			parts[i] = cell + pad
		}
		buf.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
		buf.WriteString("\n")
	}

	if len(header) > 0 {
		writeRow(header, func(s string) string { return r.styles.bold.Render(s) })
		rule := make([]string, cols)
		for i := range cols {
			rule[i] = strings.Repeat("─", widths[i])
		}
		buf.WriteString(r.styles.muted.Render(strings.Join(rule, "─┼─")))
		buf.WriteString("\n")
	}
	for _, row := range rows {
		writeRow(row, nil)
	}
}

func (r *Renderer) collectCells(row ast.Node, source []byte) []string {
	var cells []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if cell, ok := c.(*east.TableCell); ok {
			cells = append(cells, r.collectInline(cell, source))
		}
	}
	return cells
}
