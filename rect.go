package jterm

// Rect is a rectangle in absolute, 0-based cell coordinates.
// X and Y are the top-left corner; Width and Height are never negative.
type Rect struct {
	X, Y          int
	Width, Height int
}

// NewRect creates a Rect, clamping negative dimensions to zero.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: max(0, width), Height: max(0, height)}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point (x, y) is inside the rectangle.
// Points on the left and top edges are inside; points on the right and bottom edges are outside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by the given amount on each side.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	return NewRect(r.X+left, r.Y+top, r.Width-left-right, r.Height-top-bottom)
}

// Translate returns a new Rect moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Intersect returns the overlap of two rectangles.
// If the rectangles don't overlap, the result is empty and positioned at
// the clamped origin so callers can still compute offsets from it.
func (r Rect) Intersect(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	return NewRect(x, y, right-x, bottom-y)
}

// Size is a computed width and height, the result of measuring a widget.
type Size struct {
	Width, Height int
}
