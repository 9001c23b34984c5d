package jterm

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// EmulatorTerminal is a terminal emulator for testing that interprets the
// escape sequences the app writes and keeps the visible screen, so tests
// can assert on what a user would actually see.
type EmulatorTerminal struct {
	mu            sync.Mutex
	width, height int
	screen        [][]rune // screen[row][col]; 0 marks a wide-rune continuation
	cursorRow     int
	cursorCol     int
	modes         map[string]bool // private modes, keyed like "?1049"
	kitty         []bool          // pushed kitty keyboard flags
	inRawMode     bool
	rawEnterCount int
	writes        int
	raw           strings.Builder
}

var _ Terminal = (*EmulatorTerminal)(nil)

// NewEmulatorTerminal creates a terminal emulator with the given dimensions.
func NewEmulatorTerminal(width, height int) *EmulatorTerminal {
	e := &EmulatorTerminal{
		width:  width,
		height: height,
		modes:  make(map[string]bool),
	}
	e.screen = make([][]rune, height)
	for i := range e.screen {
		e.screen[i] = make([]rune, width)
	}
	e.clear()
	return e
}

func (e *EmulatorTerminal) Size() (int, int) { return e.width, e.height }

func (e *EmulatorTerminal) EnterRawMode() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inRawMode = true
	e.rawEnterCount++
	return nil
}

func (e *EmulatorTerminal) ExitRawMode() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inRawMode = false
	return nil
}

// Write processes raw bytes containing ANSI escape sequences.
func (e *EmulatorTerminal) Write(b []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.writes++
	e.raw.Write(b)

	s := string(b)
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			if i+1 < len(s) && s[i+1] == '[' {
				i += 2 + e.parseCSI(s[i+2:])
				continue
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		e.put(r)
		i += size
	}
	return len(b), nil
}

func (e *EmulatorTerminal) put(r rune) {
	w := runewidth.RuneWidth(r)
	if e.cursorRow < 0 || e.cursorRow >= e.height || e.cursorCol < 0 || e.cursorCol+w > e.width {
		e.cursorCol += w
		return
	}
	e.screen[e.cursorRow][e.cursorCol] = r
	for k := 1; k < w; k++ {
		e.screen[e.cursorRow][e.cursorCol+k] = 0
	}
	e.cursorCol += w
}

// parseCSI parses a sequence starting after "\x1b[" and returns the number
// of bytes consumed.
func (e *EmulatorTerminal) parseCSI(s string) int {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 0x40 || ch > 0x7e {
			continue
		}
		params := s[:i]
		switch {
		case ch == 'H':
			e.cursorPosition(params)
		case ch == 'J' && params == "2":
			e.clear()
		case (ch == 'h' || ch == 'l') && strings.HasPrefix(params, "?"):
			e.modes[params] = ch == 'h'
		case ch == 'u' && params == ">1":
			e.kitty = append(e.kitty, true)
		case ch == 'u' && params == ">0":
			e.kitty = nil
		}
		return i + 1
	}
	return len(s)
}

// cursorPosition handles ESC[row;colH (1-indexed).
func (e *EmulatorTerminal) cursorPosition(params string) {
	row, col := 1, 1
	if params != "" {
		parts := strings.Split(params, ";")
		if parts[0] != "" {
			row, _ = strconv.Atoi(parts[0])
		}
		if len(parts) >= 2 && parts[1] != "" {
			col, _ = strconv.Atoi(parts[1])
		}
	}
	e.cursorRow = row - 1
	e.cursorCol = col - 1
}

func (e *EmulatorTerminal) clear() {
	for r := range e.screen {
		for c := range e.screen[r] {
			e.screen[r][c] = ' '
		}
	}
}

// --- Test helper methods ---

// ScreenRow returns the content of a screen row as a trimmed string.
func (e *EmulatorTerminal) ScreenRow(row int) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rowLocked(row)
}

func (e *EmulatorTerminal) rowLocked(row int) string {
	if row < 0 || row >= e.height {
		return ""
	}
	var b strings.Builder
	for _, r := range e.screen[row] {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// ScreenString returns the entire visible screen (rows joined by \n).
func (e *EmulatorTerminal) ScreenString() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	lines := make([]string, e.height)
	for r := range lines {
		lines[r] = e.rowLocked(r)
	}
	return strings.Join(lines, "\n")
}

// Cell returns the rune at (x, y).
func (e *EmulatorTerminal) Cell(x, y int) rune {
	e.mu.Lock()
	defer e.mu.Unlock()
	if y < 0 || y >= e.height || x < 0 || x >= e.width {
		return 0
	}
	return e.screen[y][x]
}

// Mode reports whether a private mode such as "?1049" is set.
func (e *EmulatorTerminal) Mode(mode string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modes[mode]
}

// KittyPushed reports whether the kitty keyboard protocol is active.
func (e *EmulatorTerminal) KittyPushed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.kitty) > 0
}

// InRawMode reports the raw mode flag.
func (e *EmulatorTerminal) InRawMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inRawMode
}

// Raw returns every byte written so far.
func (e *EmulatorTerminal) Raw() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.raw.String()
}

// Writes returns how many Write calls were made.
func (e *EmulatorTerminal) Writes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writes
}

// renderTo runs measure, layout and render for root on a fresh emulator.
func renderTo(root Widget, width, height int) *EmulatorTerminal {
	term := NewEmulatorTerminal(width, height)
	s := NewScreen(width, height)
	root.Measure(width, height)
	root.Layout(Rect{Width: width, Height: height})
	root.Render(s)
	_, _ = term.Write(s.Bytes())
	return term
}
