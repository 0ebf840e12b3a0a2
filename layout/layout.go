// Package layout keeps a rendering surface's measured size synchronized
// with the visible width of its nearest scrollable ancestor. The surface's
// host surface breaks or clips long content instead of reflowing it, so the
// controller continuously recomputes the target width from the ancestor
// hierarchy and re-applies the surface's natural height at that width.
//
// Everything here runs on the single UI event-processing goroutine; there is
// no locking and no concurrent layout work. Deferred reflows are ordering
// deferrals within that loop, coalesced by Scheduler.
package layout

// Insets are the horizontal columns a container consumes on each side of
// its content (padding, borders, gutters).
type Insets struct {
	Left, Right int
}

// Horizontal returns the total columns consumed on both sides.
func (i Insets) Horizontal() int {
	return i.Left + i.Right
}

// Container is one level of the visual hierarchy above a surface. Parent
// returns nil at the root. Implementations may additionally satisfy
// Scroller or Sized.
type Container interface {
	Parent() Container
	Insets() Insets
}

// Scroller is a container owning a scrollable viewport. Extent is the
// visible window, not the full scrollable content size.
type Scroller interface {
	Container
	Extent() (width, height int)
}

// Sized is a container that reports its own width. Used as a fallback when
// no scroller exists in the ancestor chain.
type Sized interface {
	Container
	Width() int
}

// Surface is the rendering surface whose size the controller manages.
type Surface interface {
	Container
	// NaturalHeight measures the content's preferred height at the given
	// width, in rows.
	NaturalHeight(width int) int
	// Resize applies the computed measurement box.
	Resize(width, height int)
}
