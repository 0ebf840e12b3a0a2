package mdpane

import "github.com/rivo/uniseg"

// SegmentKind discriminates prose from fenced code.
type SegmentKind int

const (
	// SegmentProse is markdown text rendered through the styling pipeline.
	SegmentProse SegmentKind = iota
	// SegmentCode is the inner content of a fenced code block.
	SegmentCode
)

// Segment is a contiguous prose or code portion of a document, in source
// order. Concatenating a document's segments (re-adding only the fence
// markers around code) reproduces the original document exactly.
type Segment struct {
	Kind    SegmentKind
	Content string // prose: raw markdown; code: lines between the fences
	Lang    string // code only: the fence's language tag
}

// Wide reports whether any line of the segment is strictly wider than
// threshold display columns. A line of exactly threshold columns is not wide.
func (s Segment) Wide(threshold int) bool {
	if threshold <= 0 {
		return false
	}
	start := 0
	for i := 0; i <= len(s.Content); i++ {
		if i == len(s.Content) || s.Content[i] == '\n' {
			if uniseg.StringWidth(s.Content[start:i]) > threshold {
				return true
			}
			start = i + 1
		}
	}
	return false
}
