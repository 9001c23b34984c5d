package jterm

import (
	"fmt"

	"github.com/grindlemire/jterm/internal/debug"
)

// Scroll-wheel coalescing defaults. Wheel ticks are summed between frames;
// when the sum reaches the threshold in either direction the widget
// scrolls by step lines once. Both can be changed per App.
const (
	DefaultScrollThreshold = 1
	DefaultScrollStep      = 3
)

// Scrollbar glyphs.
const (
	scrollThumb = '█'
	scrollTrack = '│'
)

// Widget is a node in the widget tree. The set of widget kinds is closed:
// *Container, *Text and *Input.
type Widget interface {
	node() *Node

	// Measure computes the widget's outer size for the given available
	// space, either of which may be Unbounded, and caches it.
	Measure(availWidth, availHeight int) Size
	// Layout assigns the final outer rectangle and positions descendants
	// from the sizes cached by Measure.
	Layout(rect Rect)
	// Render paints border, content and scrollbar, in that order.
	Render(s *Screen)
	// RenderScrolled paints the widget shifted up by offset rows and
	// clipped to viewport. Used by scrolling parents.
	RenderScrolled(s *Screen, viewport Rect, offset int)
	// HandleKey dispatches a key down the focus chain and reports whether
	// it was consumed.
	HandleKey(ev KeyEvent) bool
	// HandleMouse dispatches a mouse event children-first and reports
	// whether it was consumed.
	HandleMouse(ev MouseEvent) bool
	// OnFrame runs once per scheduler tick.
	OnFrame()

	measureContent(availWidth, availHeight int) Size
	layoutContent()
	renderContent(s *Screen, area Rect, skip int)
}

// clipState is the temporary paint geometry installed by RenderScrolled.
type clipState struct {
	active bool
	rect   Rect
	top    int
	bottom int
}

// Node is the state and behaviour shared by every widget.
type Node struct {
	id       string
	width    Sizing
	height   Sizing
	border   Border
	overflow Overflow
	position Position
	focused  bool

	children []Widget
	// app is a non-owning back reference used for posting messages and
	// marking the tree dirty.
	app *App

	content  Size
	measured Size
	rect     Rect
	total    int

	scrollOffset  int
	pinBottom     bool
	pendingScroll []int

	shift int
	clip  clipState
}

// Option configures a widget at construction.
type Option func(*Node)

// WithID sets the widget id used by App.QueryOne.
func WithID(id string) Option {
	return func(n *Node) { n.id = id }
}

// WithWidth sets the horizontal sizing policy. Default is Fill.
func WithWidth(s Sizing) Option {
	return func(n *Node) { n.width = s }
}

// WithHeight sets the vertical sizing policy. Default is Auto.
func WithHeight(s Sizing) Option {
	return func(n *Node) { n.height = s }
}

// WithBorder sets the border.
func WithBorder(b Border) Option {
	return func(n *Node) { n.border = b }
}

// WithOverflow sets the overflow policy. Default is OverflowVisible.
func WithOverflow(o Overflow) Option {
	return func(n *Node) { n.overflow = o }
}

// WithPosition stores a position. Layout does not use it.
func WithPosition(p Position) Option {
	return func(n *Node) { n.position = p }
}

// WithChildren sets the initial children.
func WithChildren(children ...Widget) Option {
	return func(n *Node) { n.children = append(n.children, children...) }
}

// WithFocus marks the widget as focused.
func WithFocus() Option {
	return func(n *Node) { n.focused = true }
}

func newNode(opts []Option) Node {
	n := Node{
		width:    Fill(),
		height:   Auto(),
		overflow: OverflowVisible,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

func (n *Node) node() *Node { return n }

// ID returns the identifier used by QueryOne.
func (n *Node) ID() string { return n.id }

// Width returns the horizontal sizing policy.
func (n *Node) Width() Sizing { return n.width }

// Height returns the vertical sizing policy.
func (n *Node) Height() Sizing { return n.height }

// Border returns the per-side border styles.
func (n *Node) Border() Border { return n.border }

// Overflow returns how content taller than the widget is handled.
func (n *Node) Overflow() Overflow { return n.overflow }

// Position returns the positioning mode.
func (n *Node) Position() Position { return n.position }

// Rect returns the outer rectangle from the last layout.
func (n *Node) Rect() Rect { return n.rect }

// ContentSize returns the inner size from the last measure.
func (n *Node) ContentSize() Size { return n.content }

// MeasuredSize returns the outer size from the last measure.
func (n *Node) MeasuredSize() Size { return n.measured }

// ScrollOffset returns how many content rows are scrolled off the top.
func (n *Node) ScrollOffset() int { return n.scrollOffset }

// Focused reports whether the widget has keyboard focus.
func (n *Node) Focused() bool { return n.focused }

// SetFocused sets or clears keyboard focus without touching siblings.
func (n *Node) SetFocused(focus bool) { n.focused = focus }

// Children returns the child widgets in render and hit-test order.
func (n *Node) Children() []Widget { return n.children }

// ContentHeight returns the total height of the content as of the last
// layout: the sum of child heights, or the wrapped row count for text.
func (n *Node) ContentHeight() int { return n.total }

// App returns the owning application, or nil before mounting.
func (n *Node) App() *App { return n.app }

// Post sends a message to the owning application.
func (n *Node) Post(msg Message) {
	if n.app == nil {
		debug.Log("dropping %T from %q: widget is not mounted", msg, n.id)
		return
	}
	n.app.Post(msg)
}

func (n *Node) markDirty() {
	if n.app != nil {
		n.app.MarkDirty()
	}
}

func (n *Node) hasFocus() bool {
	if n.focused {
		return true
	}
	for _, c := range n.children {
		if c.node().hasFocus() {
			return true
		}
	}
	return false
}

func (n *Node) focusedChild() Widget {
	for _, c := range n.children {
		if c.node().hasFocus() {
			return c
		}
	}
	return nil
}

// viewportHeight is the rect height minus the border rows.
func (n *Node) viewportHeight() int {
	return max(0, n.rect.Height-n.border.Vertical())
}

// NeedsScrollbar reports whether the widget shows a scrollbar. It panics
// on an unknown overflow value.
func (n *Node) NeedsScrollbar() bool {
	switch n.overflow {
	case OverflowVisible, OverflowHidden:
		return false
	case OverflowScroll:
		return true
	case OverflowAuto:
		vh := n.viewportHeight()
		return vh > 0 && n.total > vh
	}
	panic(fmt.Sprintf("jterm: unknown overflow %d on %q", int(n.overflow), n.id))
}

// ContentRect is the rect inset by the border and, when a scrollbar is
// shown, by one more column on the right.
func (n *Node) ContentRect() Rect {
	b := n.border
	r := n.rect.Inset(b.TopWidth(), b.RightWidth(), b.BottomWidth(), b.LeftWidth())
	if n.NeedsScrollbar() && r.Width > 0 {
		r.Width--
	}
	return r
}

// MaxScrollOffset is how far the content can scroll.
func (n *Node) MaxScrollOffset() int {
	return max(0, n.total-n.viewportHeight())
}

// ScrollbarHeight is the thumb height in rows.
func (n *Node) ScrollbarHeight() int {
	vh := n.viewportHeight()
	if vh == 0 {
		return 0
	}
	if n.total <= 0 {
		return vh
	}
	return min(vh, max(1, vh*vh/n.total))
}

// ScrollbarPosition is the thumb's row relative to the top of the viewport.
func (n *Node) ScrollbarPosition() int {
	m := n.MaxScrollOffset()
	if m == 0 {
		return 0
	}
	return n.scrollOffset * (n.viewportHeight() - n.ScrollbarHeight()) / m
}

// ScrollUp moves the content up to lines rows towards the top and reports
// whether the offset changed.
func (n *Node) ScrollUp(lines int) bool {
	if lines <= 0 || n.scrollOffset == 0 {
		return false
	}
	n.scrollOffset = max(0, n.scrollOffset-lines)
	return true
}

// ScrollDown moves the content up to lines rows towards the bottom and
// reports whether the offset changed.
func (n *Node) ScrollDown(lines int) bool {
	m := n.MaxScrollOffset()
	if lines <= 0 || n.scrollOffset >= m {
		return false
	}
	n.scrollOffset = min(m, n.scrollOffset+lines)
	return true
}

// ScrollToTop resets the offset to zero.
func (n *Node) ScrollToTop() {
	n.scrollOffset = 0
	n.pinBottom = false
}

// ScrollToBottom scrolls to the last row. The request is applied again
// after the next layout so content mounted in the meantime is included.
func (n *Node) ScrollToBottom() {
	n.scrollOffset = n.MaxScrollOffset()
	n.pinBottom = true
}

func (n *Node) clampScroll() {
	if n.pinBottom {
		n.scrollOffset = n.MaxScrollOffset()
		n.pinBottom = false
	}
	n.scrollOffset = min(max(0, n.scrollOffset), n.MaxScrollOffset())
}

func (n *Node) scrollCoalescing() (threshold, step int) {
	if n.app != nil {
		return n.app.scrollThreshold, n.app.scrollStep
	}
	return DefaultScrollThreshold, DefaultScrollStep
}

// HandleKey offers the key to the focused child first. Unconsumed
// Up/Down/PageUp/PageDown scroll the widget when it has a scrollbar.
func (n *Node) HandleKey(ev KeyEvent) bool {
	if c := n.focusedChild(); c != nil && c.HandleKey(ev) {
		return true
	}
	if !n.NeedsScrollbar() || ev.Mod != ModNone {
		return false
	}
	switch ev.Key {
	case KeyUp:
		return n.ScrollUp(1)
	case KeyDown:
		return n.ScrollDown(1)
	case KeyPageUp:
		return n.ScrollUp(n.viewportHeight())
	case KeyPageDown:
		return n.ScrollDown(n.viewportHeight())
	}
	return false
}

// HandleMouse offers the event to the children in order, translated into
// content coordinates, then buffers a wheel tick if the widget scrolls.
func (n *Node) HandleMouse(ev MouseEvent) bool {
	if len(n.children) > 0 && n.ContentRect().Contains(ev.X, ev.Y) {
		inner := ev
		inner.Y += n.scrollOffset
		for _, c := range n.children {
			if c.HandleMouse(inner) {
				return true
			}
		}
	}
	if ev.IsScroll() && n.rect.Contains(ev.X, ev.Y) && n.NeedsScrollbar() {
		tick := -1
		if ev.ScrollUp {
			tick = 1
		}
		n.pendingScroll = append(n.pendingScroll, tick)
		n.markDirty()
		return true
	}
	return false
}

// OnFrame applies buffered wheel ticks as one coalesced scroll, then
// recurses into the children.
func (n *Node) OnFrame() {
	if len(n.pendingScroll) > 0 {
		sum := 0
		for _, t := range n.pendingScroll {
			sum += t
		}
		n.pendingScroll = n.pendingScroll[:0]

		threshold, step := n.scrollCoalescing()
		var changed bool
		switch {
		case sum >= threshold:
			changed = n.ScrollUp(step)
		case sum <= -threshold:
			changed = n.ScrollDown(step)
		}
		if changed {
			n.markDirty()
		}
	}
	for _, c := range n.children {
		c.OnFrame()
	}
}

// attach sets the app reference on w and its descendants.
func attach(w Widget, app *App) {
	n := w.node()
	n.app = app
	for _, c := range n.children {
		attach(c, app)
	}
}

// shrink subtracts border space from an available dimension.
func shrink(avail, border int) int {
	if avail == Unbounded {
		return Unbounded
	}
	return max(0, avail-border)
}

func measure(w Widget, availWidth, availHeight int) Size {
	n := w.node()
	bh, bv := n.border.Horizontal(), n.border.Vertical()

	content := w.measureContent(shrink(availWidth, bh), shrink(availHeight, bv))
	content.Width = max(0, content.Width)
	content.Height = max(0, content.Height)

	outer := Size{Width: content.Width + bh, Height: content.Height + bv}
	if availWidth != Unbounded {
		outer.Width = min(outer.Width, availWidth)
	}
	if availHeight != Unbounded {
		outer.Height = min(outer.Height, availHeight)
	}
	n.content = content
	n.measured = outer
	return outer
}

func layout(w Widget, rect Rect) {
	n := w.node()
	n.rect = NewRect(rect.X, rect.Y, rect.Width, rect.Height)
	w.layoutContent()
	n.clampScroll()
}

func render(w Widget, s *Screen) {
	n := w.node()
	n.renderBorder(s)
	if area, skip := n.paintContentArea(); !area.IsEmpty() {
		w.renderContent(s, area, skip)
	}
	n.renderScrollbar(s)
}

func renderScrolled(w Widget, s *Screen, viewport Rect, offset int) {
	n := w.node()
	prevShift, prevClip := n.shift, n.clip
	defer func() {
		n.shift, n.clip = prevShift, prevClip
	}()

	visual := n.rect.Translate(0, -offset)
	visible := visual.Intersect(viewport)
	n.shift = offset
	n.clip = clipState{
		active: true,
		rect:   visible,
		top:    max(0, visible.Y-visual.Y),
		bottom: max(0, visual.Bottom()-visible.Bottom()),
	}
	if visible.IsEmpty() {
		return
	}

	prev := s.SetClip(visible)
	defer s.SetClip(prev)
	render(w, s)
}

// visualRect is the layout rect shifted by the ancestors' scroll.
func (n *Node) visualRect() Rect {
	return n.rect.Translate(0, -n.shift)
}

func (n *Node) paintRect() Rect {
	if n.clip.active {
		return n.clip.rect
	}
	return n.visualRect()
}

// paintContentArea returns the on-screen part of the content rect and
// how many of its leading rows are clipped away by ancestors.
func (n *Node) paintContentArea() (Rect, int) {
	cr := n.ContentRect().Translate(0, -n.shift)
	area := cr.Intersect(n.paintRect())
	if area.IsEmpty() {
		return area, 0
	}
	return area, area.Y - cr.Y
}

func (n *Node) renderBorder(s *Screen) {
	b := n.border
	if b.IsZero() {
		return
	}
	v := n.visualRect()
	if v.IsEmpty() {
		return
	}

	if b.Top != BorderNone && n.clip.top == 0 {
		g := b.Top.Glyphs()
		n.drawEdge(s, v, v.Y, g.TopLeft, g.Horizontal, g.TopRight)
	}
	if b.Bottom != BorderNone && n.clip.bottom == 0 && v.Height > b.TopWidth() {
		g := b.Bottom.Glyphs()
		n.drawEdge(s, v, v.Bottom()-1, g.BottomLeft, g.Horizontal, g.BottomRight)
	}
	for y := v.Y + b.TopWidth(); y < v.Bottom()-b.BottomWidth(); y++ {
		if b.Left != BorderNone {
			s.PutRune(v.X, y, b.Left.Glyphs().Vertical)
		}
		if b.Right != BorderNone && v.Width > b.LeftWidth() {
			s.PutRune(v.Right()-1, y, b.Right.Glyphs().Vertical)
		}
	}
}

// drawEdge draws a horizontal border row. Corners are only drawn where the
// adjoining side has a border.
func (n *Node) drawEdge(s *Screen, v Rect, y int, left, fill, right rune) {
	b := n.border
	x, w := v.X, v.Width
	if b.Left != BorderNone {
		s.PutRune(x, y, left)
		x++
		w--
	}
	if b.Right != BorderNone && w > 0 {
		s.PutRune(v.Right()-1, y, right)
		w--
	}
	s.HLine(x, y, w, fill)
}

func (n *Node) renderScrollbar(s *Screen) {
	if !n.NeedsScrollbar() {
		return
	}
	cr := n.ContentRect()
	vh := n.viewportHeight()
	x := cr.Right()
	y0 := cr.Y - n.shift
	thumbY, thumbH := n.ScrollbarPosition(), n.ScrollbarHeight()
	for i := 0; i < vh; i++ {
		r := scrollTrack
		if i >= thumbY && i < thumbY+thumbH {
			r = scrollThumb
		}
		s.PutRune(x, y0+i, r)
	}
}
