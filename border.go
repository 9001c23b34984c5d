package jterm

// BorderStyle represents different styles of box borders.
type BorderStyle int

const (
	// BorderNone indicates no border should be drawn on a side.
	BorderNone BorderStyle = iota
	// BorderSolid uses single-line box-drawing characters (─, │, ┌, etc.)
	BorderSolid
	// BorderHeavy uses thick box-drawing characters (━, ┃, ┏, etc.)
	BorderHeavy
	// BorderDouble uses double-line box-drawing characters (═, ║, ╔, etc.)
	BorderDouble
	// BorderRounded uses rounded corner characters (─, │, ╭, ╮, ╰, ╯)
	BorderRounded
	// BorderDashed uses dashed lines with square corners (┄, ┆, ┌, etc.)
	BorderDashed
)

// BorderGlyphs holds the six characters used to draw a box border.
type BorderGlyphs struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

var borderGlyphs = map[BorderStyle]BorderGlyphs{
	BorderSolid:   {'─', '│', '┌', '┐', '└', '┘'},
	BorderHeavy:   {'━', '┃', '┏', '┓', '┗', '┛'},
	BorderDouble:  {'═', '║', '╔', '╗', '╚', '╝'},
	BorderRounded: {'─', '│', '╭', '╮', '╰', '╯'},
	BorderDashed:  {'┄', '┆', '┌', '┐', '└', '┘'},
}

// Glyphs returns the box-drawing characters for this style.
// BorderNone and unknown styles draw with spaces.
func (b BorderStyle) Glyphs() BorderGlyphs {
	if g, ok := borderGlyphs[b]; ok {
		return g
	}
	return BorderGlyphs{' ', ' ', ' ', ' ', ' ', ' '}
}

// width is 1 for any visible style and 0 for BorderNone.
func (b BorderStyle) width() int {
	if b == BorderNone {
		return 0
	}
	return 1
}

// Border styles each side of a widget independently.
type Border struct {
	Top, Right, Bottom, Left BorderStyle
}

// BorderAll returns a border with the same style on every side.
func BorderAll(style BorderStyle) Border {
	return Border{Top: style, Right: style, Bottom: style, Left: style}
}

// NoBorder returns a border that takes no space.
func NoBorder() Border { return Border{} }

// TopWidth, RightWidth, BottomWidth and LeftWidth return the cells each
// side occupies: 1 when styled, 0 otherwise.
func (b Border) TopWidth() int    { return b.Top.width() }
func (b Border) RightWidth() int  { return b.Right.width() }
func (b Border) BottomWidth() int { return b.Bottom.width() }
func (b Border) LeftWidth() int   { return b.Left.width() }

// Horizontal returns the total columns taken by the left and right sides.
func (b Border) Horizontal() int { return b.LeftWidth() + b.RightWidth() }

// Vertical returns the total rows taken by the top and bottom sides.
func (b Border) Vertical() int { return b.TopWidth() + b.BottomWidth() }

// IsZero reports whether no side is drawn.
func (b Border) IsZero() bool { return b == Border{} }
