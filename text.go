package jterm

// Text displays a string, hard-wrapped to the content width. Explicit
// line breaks start a new logical line.
type Text struct {
	Node
	content string
	lines   []string
}

// NewText creates a text widget.
func NewText(content string, opts ...Option) *Text {
	t := &Text{Node: newNode(opts)}
	t.SetContent(content)
	return t
}

// Content returns the displayed string.
func (t *Text) Content() string { return t.content }

// SetContent replaces the displayed string.
func (t *Text) SetContent(content string) {
	t.content = content
	t.lines = splitLines(content)
	t.markDirty()
}

// Measure computes the outer size within the available space.
func (t *Text) Measure(availWidth, availHeight int) Size {
	return measure(t, availWidth, availHeight)
}

// Layout positions the widget at rect and lays out its content.
func (t *Text) Layout(rect Rect) { layout(t, rect) }

// Render paints the widget at its layout position.
func (t *Text) Render(s *Screen) { render(t, s) }

// RenderScrolled paints the widget shifted up by offset rows, clipped to viewport.
func (t *Text) RenderScrolled(s *Screen, viewport Rect, offset int) {
	renderScrolled(t, s, viewport, offset)
}

// rowCount is the number of display rows at the given width, at least
// one per logical line.
func (t *Text) rowCount(width int) int {
	if width <= 0 {
		return len(t.lines)
	}
	n := 0
	for _, l := range t.lines {
		n += len(wrapLine(l, width))
	}
	return n
}

func (t *Text) measureContent(availWidth, availHeight int) Size {
	natural := 0
	for _, l := range t.lines {
		w := textWidth(l)
		if availWidth != Unbounded {
			w = min(w, availWidth)
		}
		natural = max(natural, w)
	}
	width := t.width.resolve(natural, availWidth, t.border.Horizontal())

	rows := 0
	if t.height.Mode != SizeFixed {
		rows = t.rowCount(width)
	}
	return Size{
		Width:  width,
		Height: t.height.resolve(rows, availHeight, t.border.Vertical()),
	}
}

func (t *Text) layoutContent() {
	width := max(0, t.rect.Width-t.border.Horizontal())
	t.total = t.rowCount(width)
	if t.NeedsScrollbar() {
		t.total = t.rowCount(max(0, width-1))
	}
}

func (t *Text) renderContent(s *Screen, area Rect, skip int) {
	cr := t.ContentRect()
	rows := wrapLines(t.lines, cr.Width)
	start := t.scrollOffset + skip
	for i := 0; i < area.Height; i++ {
		idx := start + i
		if idx >= len(rows) {
			break
		}
		s.Put(cr.X, area.Y+i, rows[idx])
	}
}
