package bubbletea

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"mdpane"
	"mdpane/layout"
	"mdpane/markdown"
	"mdpane/segment"
)

var _ tea.Model = Document{}

// Document is the Bubble Tea model for a rendered markdown document: an
// ordered stack of prose blocks and scrollable code regions inside a
// vertically scrolling viewport, kept sized by the width-tracking
// controller.
type Document struct {
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	source   string
	theme    mdpane.Theme
	styles   Styles
	renderer *markdown.Renderer

	threshold int
	insets    layout.Insets
	logger    *log.Logger

	// Shared across model copies: the Bubble Tea model is a value, but the
	// block stack and layout state must survive Update returning a copy.
	content    *content
	window     *windowNode
	surface    *surface
	controller *layout.Controller
	scheduler  *layout.Scheduler

	focus int // index of focused code region (-1 = none)
	ready bool
}

type content struct {
	blocks []Block
}

// windowNode is the terminal window acting as the scrollable ancestor.
type windowNode struct {
	width, height int
}

func (w *windowNode) Parent() layout.Container { return nil }
func (w *windowNode) Insets() layout.Insets    { return layout.Insets{} }
func (w *windowNode) Extent() (int, int)       { return w.width, w.height }

// surface adapts the block stack to layout.Surface.
type surface struct {
	parent  layout.Container
	insets  layout.Insets
	content *content

	width, height int
}

func (s *surface) Parent() layout.Container { return s.parent }
func (s *surface) Insets() layout.Insets    { return s.insets }

func (s *surface) NaturalHeight(width int) int {
	rendered := renderBlocks(s.content.blocks, width)
	if rendered == "" {
		return 0
	}
	return lipgloss.Height(rendered)
}

func (s *surface) Resize(width, height int) {
	s.width, s.height = width, height
}

// Option configures a Document.
type Option func(*Document)

// WithWideThreshold overrides the column threshold above which a code
// segment becomes an independently scrollable region.
func WithWideThreshold(cols int) Option {
	return func(d *Document) {
		d.threshold = cols
	}
}

// WithInsets sets the horizontal insets the surface consumes inside the
// window.
func WithInsets(in layout.Insets) Option {
	return func(d *Document) {
		d.insets = in
	}
}

// WithLogger sets the logger for absorbed layout failures.
func WithLogger(l *log.Logger) Option {
	return func(d *Document) {
		d.logger = l
	}
}

// New creates a Document rendering source with the given theme.
func New(source string, theme mdpane.Theme, opts ...Option) Document {
	d := Document{
		theme:     theme,
		styles:    NewStyles(theme),
		renderer:  markdown.New(theme),
		threshold: segment.DefaultWideThreshold,
		content:   &content{},
		window:    &windowNode{},
		scheduler: &layout.Scheduler{},
		focus:     -1,
	}
	for _, opt := range opts {
		opt(&d)
	}
	d.surface = &surface{parent: d.window, insets: d.insets, content: d.content}
	ctrlOpts := []layout.Option{layout.WithHeightBuffer(max(theme.BaseUnit, 1))}
	if d.logger != nil {
		ctrlOpts = append(ctrlOpts, layout.WithLogger(d.logger))
	}
	d.controller = layout.NewController(d.surface, ctrlOpts...)
	return d.rebuild(source)
}

// rebuild re-derives the block stack from source. Prose and narrow code
// segments go through the styling pipeline; wide code segments become
// scrollable regions.
func (m Document) rebuild(source string) Document {
	m.source = source
	segs := segment.Split(source)
	blocks := make([]Block, 0, len(segs))
	for _, seg := range segs {
		switch {
		case seg.Kind == mdpane.SegmentCode && seg.Wide(m.threshold):
			blocks = append(blocks, NewCodeBlock(seg, m.styles))
		case seg.Kind == mdpane.SegmentCode:
			blocks = append(blocks, NewProseBlock(segment.Join([]mdpane.Segment{seg}), m.renderer))
		default:
			blocks = append(blocks, NewProseBlock(seg.Content, m.renderer))
		}
	}
	m.content.blocks = blocks
	m.focus = -1
	return m.cycleFocus(1)
}

// SetSource replaces the document text and schedules a reflow.
func (m Document) SetSource(source string) (Document, tea.Cmd) {
	m = m.rebuild(source)
	m.controller.Invalidate()
	return m, requestReflow(m.scheduler)
}

// SetTheme re-derives all styled markup for a new theme. Colors are baked
// into the rendered strings for precedence, so surface-level restyling
// alone would leave stale colors behind.
func (m Document) SetTheme(theme mdpane.Theme) (Document, tea.Cmd) {
	m.theme = theme
	m.styles = NewStyles(theme)
	m.renderer = markdown.New(theme)
	m = m.rebuild(m.source)
	m.controller.Invalidate()
	return m, requestReflow(m.scheduler)
}

// NaturalSize returns the surface's current applied size: the tracked width
// and the content's natural height at that width plus the safety buffer.
func (m Document) NaturalSize() (width, height int) {
	return m.surface.width, m.surface.height
}

// Init implements tea.Model.
func (m Document) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Document) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case reflowMsg:
		m.scheduler.Run(m.controller)
		m.Viewport.SetContent(renderBlocks(m.content.blocks, m.surface.width))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		// Vertical wheel input anywhere, including over a code region,
		// scrolls the document. Code regions have no vertical scrolling
		// of their own.
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Document) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.window.width, m.window.height = msg.Width, msg.Height

	statusHeight := 1
	vpHeight := msg.Height - statusHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	// Content is re-rendered after the deferred reflow pass, once the
	// surface tree is fully attached and measurable.
	return m, requestReflow(m.scheduler)
}

func (m Document) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		m = m.cycleFocus(1)
		m.Viewport.SetContent(renderBlocks(m.content.blocks, m.surface.width))
		return m, nil

	case "shift+tab":
		m = m.cycleFocus(-1)
		m.Viewport.SetContent(renderBlocks(m.content.blocks, m.surface.width))
		return m, nil

	case "left", "right":
		if m.focus < 0 {
			break
		}
		cols := scrollStep
		if msg.String() == "left" {
			cols = -scrollStep
		}
		block, cmd := m.content.blocks[m.focus].Update(scrollMsg{cols: cols})
		m.content.blocks[m.focus] = block
		m.Viewport.SetContent(renderBlocks(m.content.blocks, m.surface.width))
		return m, cmd
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// cycleFocus moves focus to the next code region in direction dir, wrapping
// around. With no code regions, focus stays cleared.
func (m Document) cycleFocus(dir int) Document {
	var regions []int
	for i, b := range m.content.blocks {
		if _, ok := b.(*CodeBlock); ok {
			regions = append(regions, i)
		}
	}
	if len(regions) == 0 {
		m.focus = -1
		return m
	}

	next := regions[0]
	for p, idx := range regions {
		if idx == m.focus {
			next = regions[(p+dir+len(regions))%len(regions)]
			break
		}
	}
	for _, idx := range regions {
		m.content.blocks[idx].(*CodeBlock).SetFocus(idx == next)
	}
	m.focus = next
	return m
}

// View implements tea.Model.
func (m Document) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.Viewport.View() + "\n" + m.statusLine()
}

func (m Document) statusLine() string {
	if m.focus >= 0 {
		return m.styles.Muted.Render("←/→ scroll code · tab next code block · q quit")
	}
	return m.styles.Muted.Render("↑/↓ scroll · q quit")
}
