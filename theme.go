package mdpane

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so rendered
// output automatically matches any color scheme. An index of -1 means
// "no color" (the terminal default).
type Theme struct {
	Text       int // body text
	Background int // document background
	Accent     int // headings, links
	Muted      int // gutters, language labels, secondary text
	CodeFg     int // code foreground
	CodeBg     int // code block background
	Error      int // fallback/error notices
	BaseUnit   int // heading margin scale, in rows
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Text:       -1,
		Background: -1,
		Accent:     5,
		Muted:      8,
		CodeFg:     6,
		CodeBg:     0,
		Error:      1,
		BaseUnit:   1,
	}
}
