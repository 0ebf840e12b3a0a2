package markdown

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// chromaStyle is the highlight palette. 256-color output keeps it readable
// on both light and dark terminals without probing the background.
const chromaStyle = "monokai"

// Highlight syntax-highlights code with chroma. It reports false when the
// language is unknown or the formatter fails, in which case callers should
// fall back to their plain code styling.
func Highlight(code, lang string) (string, bool) {
	if lang == "" || code == "" {
		return code, false
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, code, lang, "terminal256", chromaStyle); err != nil {
		return code, false
	}
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return code, false
	}
	// The gutter logic pairs highlighted lines with source lines; a
	// formatter that changes the line count is unusable here.
	if strings.Count(out, "\n") != strings.Count(code, "\n") {
		return code, false
	}
	return out, true
}
