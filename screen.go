package jterm

// Screen collects the cursor-addressed output of one frame. Widgets paint
// into it and the App writes the result to the terminal in a single call.
// Every write is clipped to the current clip rectangle.
type Screen struct {
	esc           *escBuilder
	width, height int
	clip          Rect
}

// NewScreen creates a painter for a terminal of the given size.
func NewScreen(width, height int) *Screen {
	s := &Screen{esc: newEscBuilder(4096)}
	s.Reset(width, height)
	return s
}

// Reset discards buffered output and resizes the screen.
func (s *Screen) Reset(width, height int) {
	s.esc.Reset()
	s.width = max(0, width)
	s.height = max(0, height)
	s.clip = s.Bounds()
}

// Bounds returns the full screen rectangle.
func (s *Screen) Bounds() Rect {
	return Rect{Width: s.width, Height: s.height}
}

// Clip returns the active clip rectangle.
func (s *Screen) Clip() Rect {
	return s.clip
}

// SetClip narrows drawing to r (intersected with the screen) and returns
// the previous clip so the caller can restore it.
func (s *Screen) SetClip(r Rect) Rect {
	prev := s.clip
	s.clip = r.Intersect(s.Bounds())
	return prev
}

// Clear emits a full-screen clear.
func (s *Screen) Clear() {
	s.esc.ClearScreen()
}

// Put writes text starting at cell (x, y). Cells outside the clip are dropped.
func (s *Screen) Put(x, y int, text string) {
	if text == "" || y < s.clip.Y || y >= s.clip.Bottom() {
		return
	}
	part, start := clipCells(text, s.clip.X-x, s.clip.Right()-x)
	if part == "" {
		return
	}
	s.esc.MoveTo(x+start, y)
	s.esc.WriteString(part)
}

// PutRune writes a single rune at (x, y) if the cell is inside the clip.
func (s *Screen) PutRune(x, y int, r rune) {
	if !s.clip.Contains(x, y) {
		return
	}
	s.esc.MoveTo(x, y)
	s.esc.WriteRune(r)
}

// HLine draws count copies of r starting at (x, y).
func (s *Screen) HLine(x, y, count int, r rune) {
	if count <= 0 {
		return
	}
	line := make([]rune, count)
	for i := range line {
		line[i] = r
	}
	s.Put(x, y, string(line))
}

// Bytes returns the buffered output.
func (s *Screen) Bytes() []byte {
	return s.esc.Bytes()
}
