package jterm

import "slices"

// Container stacks its children vertically. Children with Fill height
// share whatever height the fixed and auto children leave over.
type Container struct {
	Node
}

// NewContainer creates an empty container.
func NewContainer(opts ...Option) *Container {
	return &Container{Node: newNode(opts)}
}

// Add appends children and returns the container for chaining. Children
// added to a mounted container are mounted immediately.
func (c *Container) Add(children ...Widget) *Container {
	for _, child := range children {
		if c.app != nil {
			attach(child, c.app)
		}
		c.children = append(c.children, child)
	}
	c.markDirty()
	return c
}

// Remove detaches child from the container. It reports whether the child
// was found.
func (c *Container) Remove(child Widget) bool {
	i := slices.Index(c.children, child)
	if i < 0 {
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	attach(child, nil)
	c.markDirty()
	return true
}

// Measure computes the outer size within the available space.
func (c *Container) Measure(availWidth, availHeight int) Size {
	return measure(c, availWidth, availHeight)
}

// Layout positions the widget at rect and lays out its content.
func (c *Container) Layout(rect Rect) { layout(c, rect) }

// Render paints the widget at its layout position.
func (c *Container) Render(s *Screen) { render(c, s) }

// RenderScrolled paints the widget shifted up by offset rows, clipped to viewport.
func (c *Container) RenderScrolled(s *Screen, viewport Rect, offset int) {
	renderScrolled(c, s, viewport, offset)
}

// measureContent runs the two measuring passes: non-Fill children first
// with unbounded height, then Fill children with an equal share of what
// is left.
func (c *Container) measureContent(availWidth, availHeight int) Size {
	var total, maxWidth, fillCount int
	for _, child := range c.children {
		if child.node().height.Mode == SizeFill {
			fillCount++
			continue
		}
		s := child.Measure(availWidth, Unbounded)
		total += s.Height
		maxWidth = max(maxWidth, s.Width)
	}

	if fillCount > 0 {
		remaining := 0
		if availHeight != Unbounded {
			remaining = max(0, availHeight-total)
		}
		share := remaining / fillCount
		for _, child := range c.children {
			if child.node().height.Mode != SizeFill {
				continue
			}
			s := child.Measure(availWidth, share)
			total += s.Height
			maxWidth = max(maxWidth, s.Width)
		}
	}

	return Size{
		Width:  c.width.resolve(maxWidth, availWidth, c.border.Horizontal()),
		Height: c.height.resolve(total, availHeight, c.border.Vertical()),
	}
}

// layoutContent places children top to bottom at their unscrolled
// offsets. The Fill share is recomputed from the real content height and
// the remainder goes one row each to the first Fill children.
func (c *Container) layoutContent() {
	fixed, fillCount := 0, 0
	for _, child := range c.children {
		cn := child.node()
		if cn.height.Mode == SizeFill {
			fillCount++
		} else {
			fixed += cn.measured.Height
		}
	}

	c.total = fixed
	if fillCount > 0 {
		c.total += max(0, c.viewportHeight()-fixed)
	}

	cr := c.ContentRect()
	share, extra := 0, 0
	if fillCount > 0 {
		remaining := max(0, cr.Height-fixed)
		share, extra = remaining/fillCount, remaining%fillCount
	}

	y := cr.Y
	fillIndex := 0
	for _, child := range c.children {
		cn := child.node()
		h := cn.measured.Height
		if cn.height.Mode == SizeFill {
			h = share
			if fillIndex < extra {
				h++
			}
			fillIndex++
		}
		w := min(cn.measured.Width, cr.Width)
		if cn.width.Mode == SizeFill {
			w = cr.Width
		}
		child.Layout(Rect{X: cr.X, Y: y, Width: w, Height: h})
		y += h
	}
}

// renderContent paints every child that overlaps the viewport. Partially
// visible children clip themselves through RenderScrolled.
func (c *Container) renderContent(s *Screen, area Rect, _ int) {
	cr := c.ContentRect()
	vh := cr.Height
	for _, child := range c.children {
		r := child.node().rect
		top := r.Y - cr.Y - c.scrollOffset
		bottom := top + r.Height
		if bottom <= 0 || top >= vh {
			continue
		}
		child.RenderScrolled(s, area, c.scrollOffset+c.shift)
	}
}
