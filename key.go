package jterm

import (
	"strconv"
	"strings"
)

// Key identifies a logical keyboard key.
type Key uint16

const (
	// KeyNone represents no key (zero value).
	KeyNone Key = iota

	// KeyRune is a character key. Check KeyEvent.Rune for the character.
	KeyRune

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyCode is a CSI-u codepoint with no name of its own. Rune holds it.
	KeyCode

	// KeyUnknown is an escape sequence the decoder does not recognise.
	// KeyEvent.Raw holds the sequence text after ESC.
	KeyUnknown
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackTab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeySpace:     "space",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
	KeyCode:      "code",
	KeyUnknown:   "unknown",
}

// String returns the lowercase key name.
func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

// Modifier represents keyboard modifier flags.
type Modifier uint8

const (
	// ModNone represents no modifiers.
	ModNone Modifier = 0
	// ModShift represents the Shift modifier.
	ModShift Modifier = 1 << (iota - 1)
	// ModAlt represents the Alt modifier.
	ModAlt
	// ModCtrl represents the Ctrl modifier.
	ModCtrl
)

// Has checks if the modifier set includes the given modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns a human-readable representation of the modifiers.
func (m Modifier) String() string {
	if m == ModNone {
		return "none"
	}

	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// Event is a decoded terminal input event.
type Event interface {
	// isEvent is a marker method to prevent external implementations.
	isEvent()
}

// KeyEvent is a decoded key press.
type KeyEvent struct {
	Key Key
	// Rune is the character for KeyRune and the codepoint for KeyCode.
	Rune rune
	Mod  Modifier
	// Printable is set for keys that insert their character into text.
	Printable bool
	// Raw carries the undecoded sequence for KeyUnknown.
	Raw string
}

func (KeyEvent) isEvent() {}

// Name returns the logical key name: the character itself for rune keys,
// the decimal codepoint for KeyCode, the raw sequence for KeyUnknown, and
// the lowercase key name otherwise.
func (e KeyEvent) Name() string {
	switch e.Key {
	case KeyRune:
		return string(e.Rune)
	case KeyCode:
		return strconv.Itoa(int(e.Rune))
	case KeyUnknown:
		return e.Raw
	}
	return e.Key.String()
}

// Is reports whether the event is key k with exactly the modifiers mod.
func (e KeyEvent) Is(k Key, mod Modifier) bool {
	return e.Key == k && e.Mod == mod
}

// IsRune reports whether the event is the character r with no modifiers
// besides shift.
func (e KeyEvent) IsRune(r rune) bool {
	return e.Key == KeyRune && e.Rune == r && e.Mod&^ModShift == 0
}

// IsCtrl reports whether the event is Ctrl plus the letter r.
func (e KeyEvent) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Rune == r && e.Mod.Has(ModCtrl)
}

// String returns a readable description such as "ctrl+c" or "shift+enter".
func (e KeyEvent) String() string {
	if e.Mod == ModNone {
		return e.Name()
	}
	return e.Mod.String() + "+" + e.Name()
}

// MouseButton represents which mouse button was involved in an event.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseNone
	MouseWheel
)

// MouseAction represents the type of mouse action.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
)

// MouseEvent is a decoded SGR mouse report.
type MouseEvent struct {
	Button MouseButton
	Action MouseAction
	Mod    Modifier
	// X and Y are 0-based cell coordinates.
	X, Y int
	// ScrollUp and ScrollDown are set for wheel events, never both.
	ScrollUp   bool
	ScrollDown bool
}

func (MouseEvent) isEvent() {}

// IsScroll reports whether the event is a wheel gesture.
func (m MouseEvent) IsScroll() bool {
	return m.ScrollUp || m.ScrollDown
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width, Height int
}

func (ResizeEvent) isEvent() {}
