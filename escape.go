package jterm

import (
	"strconv"
	"unicode/utf8"
)

// escBuilder builds ANSI escape sequences into a reusable buffer.
type escBuilder struct {
	buf []byte
}

func newEscBuilder(capacity int) *escBuilder {
	return &escBuilder{
		buf: make([]byte, 0, capacity),
	}
}

// Reset clears the buffer for reuse.
func (e *escBuilder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the built output.
func (e *escBuilder) Bytes() []byte {
	return e.buf
}

// Len returns the current length of the buffer.
func (e *escBuilder) Len() int {
	return len(e.buf)
}

func (e *escBuilder) writeCSI() {
	e.buf = append(e.buf, '\x1b', '[')
}

func (e *escBuilder) writeInt(n int) {
	e.buf = strconv.AppendInt(e.buf, int64(n), 10)
}

// privateMode writes ESC[?{mode}h or ESC[?{mode}l.
func (e *escBuilder) privateMode(mode int, on bool) {
	e.writeCSI()
	e.buf = append(e.buf, '?')
	e.writeInt(mode)
	if on {
		e.buf = append(e.buf, 'h')
	} else {
		e.buf = append(e.buf, 'l')
	}
}

// MoveTo moves the cursor to the specified position.
// x and y are 0-indexed; ANSI sequences use 1-indexed positions.
func (e *escBuilder) MoveTo(x, y int) {
	e.writeCSI()
	e.writeInt(y + 1)
	e.buf = append(e.buf, ';')
	e.writeInt(x + 1)
	e.buf = append(e.buf, 'H')
}

// ClearScreen clears the entire screen.
func (e *escBuilder) ClearScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'J')
}

func (e *escBuilder) HideCursor() { e.privateMode(25, false) }
func (e *escBuilder) ShowCursor() { e.privateMode(25, true) }

func (e *escBuilder) EnterAltScreen() { e.privateMode(1049, true) }
func (e *escBuilder) ExitAltScreen()  { e.privateMode(1049, false) }

// BeginSyncUpdate starts a synchronized update block. Terminals that
// don't support mode 2026 ignore it.
func (e *escBuilder) BeginSyncUpdate() { e.privateMode(2026, true) }
func (e *escBuilder) EndSyncUpdate()   { e.privateMode(2026, false) }

// EnableMouse turns on button tracking (1000), any-motion tracking (1003)
// and SGR extended coordinates (1006).
func (e *escBuilder) EnableMouse() {
	e.privateMode(1000, true)
	e.privateMode(1003, true)
	e.privateMode(1006, true)
}

// DisableMouse turns the modes from EnableMouse off in reverse order.
func (e *escBuilder) DisableMouse() {
	e.privateMode(1006, false)
	e.privateMode(1003, false)
	e.privateMode(1000, false)
}

// PushKittyKeyboard enables the kitty keyboard protocol with the
// disambiguate flag, which makes the terminal report CSI-u sequences.
func (e *escBuilder) PushKittyKeyboard() {
	e.writeCSI()
	e.buf = append(e.buf, '>', '1', 'u')
}

// PopKittyKeyboard resets the kitty keyboard flags.
func (e *escBuilder) PopKittyKeyboard() {
	e.writeCSI()
	e.buf = append(e.buf, '>', '0', 'u')
}

// WriteRune appends a UTF-8 encoded rune to the buffer.
func (e *escBuilder) WriteRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	e.buf = append(e.buf, buf[:n]...)
}

// WriteString appends a string to the buffer.
func (e *escBuilder) WriteString(s string) {
	e.buf = append(e.buf, s...)
}
