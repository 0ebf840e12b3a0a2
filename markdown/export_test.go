package markdown

// SoftBreaks exports softBreaks for testing.
func SoftBreaks(s string, scan, every int) string {
	return softBreaks(s, scan, every)
}

// EscapeComments exports escapeComments for testing.
func EscapeComments(s string) string {
	return escapeComments(s)
}

// Step exports the per-step recover guard for testing.
func (r *Renderer) Step(name, input string, fn func(string) string) string {
	return r.step(name, input, fn)
}
