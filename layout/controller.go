package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"mdpane"
)

// Walk caps guarantee termination even when the hierarchy is unexpectedly
// cyclic or deep. Exceeding a cap means "stop, assume no match".
const (
	maxScrollerWalk = 20
	maxSizedWalk    = 10
)

// Controller tracks a surface's target width and applies resize passes.
// Re-invoking Reflow with no intervening ancestor change is a no-op, which
// keeps repeated notifications from causing reflow storms.
type Controller struct {
	surface Surface
	logger  *log.Logger

	// buffer is added to the natural height so asynchronous reflow never
	// clips the last line. Always at least one row.
	buffer int

	lastWidth int
	applied   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for absorbed layout failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithHeightBuffer sets the safety rows added below the natural height.
// Values below one are clamped to one.
func WithHeightBuffer(rows int) Option {
	return func(c *Controller) {
		if rows < 1 {
			rows = 1
		}
		c.buffer = rows
	}
}

// NewController creates a Controller for surface. Without WithLogger,
// absorbed failures are discarded.
func NewController(surface Surface, opts ...Option) *Controller {
	c := &Controller{
		surface: surface,
		logger:  log.New(io.Discard),
		buffer:  1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reflow recomputes the target width and, when it changed, measures the
// natural height at that width and applies the new size. Failures are
// logged and absorbed; the surface keeps its last valid size.
func (c *Controller) Reflow() {
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Error("reflow failed, keeping last size", "panic", rec)
		}
	}()

	width, err := c.targetWidth()
	if err != nil {
		c.logger.Debug("no usable ancestor width", "err", err)
		return
	}
	if width <= 0 || width == c.lastWidth {
		return
	}

	height := c.surface.NaturalHeight(width) + c.buffer
	c.surface.Resize(width, height)
	c.lastWidth = width
	c.applied++
}

// Invalidate forgets the last applied width so the next Reflow re-applies
// even at an unchanged width. Callers use it when the surface's content is
// replaced, since the natural height changes independently of width.
func (c *Controller) Invalidate() {
	c.lastWidth = 0
}

// targetWidth walks upward for the nearest scrollable ancestor and derives
// the width its visible extent leaves for the surface: the extent minus the
// cumulative horizontal insets of every container strictly between the
// scroller and the surface, including the surface's own. With no scroller
// in range it falls back to the nearest ancestor reporting a non-zero
// width, minus only the surface's own insets.
func (c *Controller) targetWidth() (int, error) {
	insets := c.surface.Insets().Horizontal()
	node := c.surface.Parent()
	for hops := 0; node != nil && hops < maxScrollerWalk; hops++ {
		if s, ok := node.(Scroller); ok {
			w, _ := s.Extent()
			return w - insets, nil
		}
		insets += node.Insets().Horizontal()
		node = node.Parent()
	}

	node = c.surface.Parent()
	for hops := 0; node != nil && hops < maxSizedWalk; hops++ {
		if s, ok := node.(Sized); ok && s.Width() > 0 {
			return s.Width() - c.surface.Insets().Horizontal(), nil
		}
		node = node.Parent()
	}
	return 0, mdpane.ErrNoParent
}
