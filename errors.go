package mdpane

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrNoFiles indicates a glob pattern matched no files.
	ErrNoFiles = errors.New("no files match pattern")

	// ErrNoParent indicates a surface has no ancestor that can supply a
	// usable width.
	ErrNoParent = errors.New("no ancestor reports a usable width")
)
