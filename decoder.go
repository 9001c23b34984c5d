package jterm

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/grindlemire/jterm/internal/debug"
)

// maxEscapeLen caps how many bytes after ESC are accumulated before the
// sequence is parsed as-is.
const maxEscapeLen = 20

type decoderState int

const (
	stateNormal decoderState = iota
	stateEscape
)

// Decoder turns a raw terminal byte stream into key and mouse events.
// It is fed one byte at a time and keeps the partial escape sequence or
// UTF-8 character between calls. A Decoder is not safe for concurrent use.
type Decoder struct {
	state decoderState
	seq   []byte
	utf   []byte
}

// NewDecoder returns a decoder in the normal state.
func NewDecoder() *Decoder {
	return &Decoder{seq: make([]byte, 0, maxEscapeLen)}
}

// Pending reports whether bytes are buffered waiting for the rest of a
// sequence. Callers that stop receiving input should call Flush.
func (d *Decoder) Pending() bool {
	return d.state == stateEscape || len(d.utf) > 0
}

// Write feeds every byte of p and returns the events they complete.
func (d *Decoder) Write(p []byte) []Event {
	var events []Event
	for _, b := range p {
		events = append(events, d.Feed(b)...)
	}
	return events
}

// Feed consumes one byte. It returns the events completed by that byte,
// usually none or one.
func (d *Decoder) Feed(b byte) []Event {
	if d.state == stateEscape {
		return d.feedEscape(b)
	}
	return d.feedNormal(b)
}

// Flush finalises whatever is buffered, as if input had ended. A lone ESC
// becomes the escape key; a truncated sequence is parsed as it stands.
func (d *Decoder) Flush() []Event {
	var events []Event
	if len(d.utf) > 0 {
		events = append(events, unknownKey(string(d.utf)))
		d.utf = d.utf[:0]
	}
	if d.state == stateEscape {
		events = append(events, d.finish())
	}
	return events
}

func (d *Decoder) feedNormal(b byte) []Event {
	var events []Event
	if len(d.utf) > 0 {
		if b >= 0x80 && b < 0xc0 {
			d.utf = append(d.utf, b)
			if !utf8.FullRune(d.utf) {
				return nil
			}
			r, size := utf8.DecodeRune(d.utf)
			raw := string(d.utf)
			d.utf = d.utf[:0]
			if r == utf8.RuneError && size <= 1 {
				return []Event{unknownKey(raw)}
			}
			return []Event{KeyEvent{Key: KeyRune, Rune: r, Printable: true}}
		}
		events = append(events, unknownKey(string(d.utf)))
		d.utf = d.utf[:0]
	}

	switch {
	case b == 0x1b:
		d.state = stateEscape
		d.seq = d.seq[:0]
		return events
	case b >= 0xc0 && b < 0xf8:
		d.utf = append(d.utf, b)
		return events
	case b >= 0x80:
		return append(events, unknownKey(string([]byte{b})))
	}
	return append(events, decodeByte(b))
}

// decodeByte maps a single ASCII byte in the normal state.
func decodeByte(b byte) KeyEvent {
	switch {
	case b == 0x7f:
		return KeyEvent{Key: KeyBackspace}
	case b == '\r' || b == '\n':
		return KeyEvent{Key: KeyEnter}
	case b == '\t':
		return KeyEvent{Key: KeyTab}
	case b == 0x1b:
		return KeyEvent{Key: KeyEscape}
	case b < 0x20:
		// Control bytes are the letter (or symbol) 64 positions up, which
		// holds for US-ASCII layouts.
		return KeyEvent{Key: KeyRune, Rune: unicode.ToLower(rune(b) + 64), Mod: ModCtrl}
	}
	return KeyEvent{Key: KeyRune, Rune: rune(b), Printable: true}
}

func (d *Decoder) feedEscape(b byte) []Event {
	d.seq = append(d.seq, b)
	if d.complete() {
		return []Event{d.finish()}
	}
	if len(d.seq) >= maxEscapeLen {
		debug.Component("decoder").Warn("escape sequence has no terminator",
			slog.Int("limit", maxEscapeLen), slog.String("seq", string(d.seq)))
		return []Event{d.finish()}
	}
	return nil
}

// complete reports whether the accumulated bytes form a whole sequence.
func (d *Decoder) complete() bool {
	seq := d.seq
	n := len(seq)
	switch seq[0] {
	case '[':
		if n == 1 {
			return false
		}
		last := seq[n-1]
		if seq[1] == '<' {
			return n > 2 && (last == 'M' || last == 'm')
		}
		// Any CSI final byte. Covers ~ u A B C D H F P Q R S.
		return last >= 0x40 && last <= 0x7e
	case 'O':
		return n == 2
	}
	if seq[0] >= 0xc0 {
		return utf8.FullRune(seq)
	}
	return true
}

func (d *Decoder) finish() Event {
	seq := string(d.seq)
	d.seq = d.seq[:0]
	d.state = stateNormal
	return parseSequence(seq)
}

// parseSequence maps the bytes that followed ESC to an event.
func parseSequence(seq string) Event {
	if seq == "" {
		return KeyEvent{Key: KeyEscape}
	}
	if strings.HasPrefix(seq, "[<") {
		if ev, ok := parseMouseSGR(seq); ok {
			return ev
		}
		return unknownKey(seq)
	}
	if ev, ok := parseCSIu(seq); ok {
		return ev
	}
	if ev, ok := legacyKeys[seq]; ok {
		return ev
	}
	if ev, ok := parseModifiedCSI(seq); ok {
		return ev
	}
	// A lone character after ESC is that character as typed.
	if r, size := utf8.DecodeRuneInString(seq); size == len(seq) && r != utf8.RuneError {
		if r < 0x80 {
			return decodeByte(byte(r))
		}
		return KeyEvent{Key: KeyRune, Rune: r, Printable: true}
	}
	return unknownKey(seq)
}

func unknownKey(raw string) KeyEvent {
	debug.Component("decoder").Info("unknown input sequence", slog.String("raw", raw))
	metricUnknownSequences.Inc()
	return KeyEvent{Key: KeyUnknown, Raw: raw}
}

// decodeModifier converts an xterm/kitty modifier parameter to flags. The
// parameter is 1 plus a bitmask: 1 shift, 2 alt, 4 ctrl.
func decodeModifier(param int) Modifier {
	if param < 1 {
		return ModNone
	}
	return Modifier(param-1) & (ModShift | ModAlt | ModCtrl)
}

// csiUKeys names the codepoints the kitty protocol reports for control keys.
var csiUKeys = map[int]Key{
	13:  KeyEnter,
	9:   KeyTab,
	27:  KeyEscape,
	32:  KeySpace,
	127: KeyBackspace,
}

// parseCSIu parses the kitty keyboard form [<codepoint>;<modifiers>u.
func parseCSIu(seq string) (KeyEvent, bool) {
	if len(seq) < 3 || seq[0] != '[' || seq[len(seq)-1] != 'u' {
		return KeyEvent{}, false
	}
	params := strings.Split(seq[1:len(seq)-1], ";")
	if len(params) > 2 {
		return KeyEvent{}, false
	}
	cp, err := strconv.Atoi(params[0])
	if err != nil || cp < 0 {
		return KeyEvent{}, false
	}
	mods := 1
	if len(params) == 2 {
		if mods, err = strconv.Atoi(params[1]); err != nil || mods < 1 {
			return KeyEvent{}, false
		}
	}

	ev := KeyEvent{Mod: decodeModifier(mods)}
	switch k, named := csiUKeys[cp]; {
	case named:
		ev.Key = k
	case cp > 32 && cp < 127:
		ev.Key = KeyRune
		ev.Rune = rune(cp)
	default:
		ev.Key = KeyCode
		ev.Rune = rune(cp)
	}
	return ev, true
}

// legacyKeys maps unmodified CSI and SS3 sequences to keys.
var legacyKeys = map[string]KeyEvent{
	"[A":   {Key: KeyUp},
	"[B":   {Key: KeyDown},
	"[C":   {Key: KeyRight},
	"[D":   {Key: KeyLeft},
	"[H":   {Key: KeyHome},
	"[F":   {Key: KeyEnd},
	"[1~":  {Key: KeyHome},
	"[4~":  {Key: KeyEnd},
	"[2~":  {Key: KeyInsert},
	"[3~":  {Key: KeyDelete},
	"[5~":  {Key: KeyPageUp},
	"[6~":  {Key: KeyPageDown},
	"[Z":   {Key: KeyBackTab, Mod: ModShift},
	"OA":   {Key: KeyUp},
	"OB":   {Key: KeyDown},
	"OC":   {Key: KeyRight},
	"OD":   {Key: KeyLeft},
	"OH":   {Key: KeyHome},
	"OF":   {Key: KeyEnd},
	"OP":   {Key: KeyF1},
	"OQ":   {Key: KeyF2},
	"OR":   {Key: KeyF3},
	"OS":   {Key: KeyF4},
	"[15~": {Key: KeyF5},
	"[17~": {Key: KeyF6},
	"[18~": {Key: KeyF7},
	"[19~": {Key: KeyF8},
	"[20~": {Key: KeyF9},
	"[21~": {Key: KeyF10},
	"[23~": {Key: KeyF11},
	"[24~": {Key: KeyF12},
}

// parseModifiedCSI handles the xterm modifier forms [1;<mods>X and
// [<n>;<mods>~ by stripping the modifier and looking up the base key.
func parseModifiedCSI(seq string) (KeyEvent, bool) {
	if len(seq) < 5 || seq[0] != '[' {
		return KeyEvent{}, false
	}
	final := seq[len(seq)-1]
	params := strings.Split(seq[1:len(seq)-1], ";")
	if len(params) != 2 {
		return KeyEvent{}, false
	}
	mods, err := strconv.Atoi(params[1])
	if err != nil || mods < 1 {
		return KeyEvent{}, false
	}

	var base string
	switch {
	case final == '~':
		base = "[" + params[0] + "~"
	case params[0] != "1":
		return KeyEvent{}, false
	case final >= 'P' && final <= 'S':
		base = "O" + string(final)
	default:
		base = "[" + string(final)
	}
	ev, ok := legacyKeys[base]
	if !ok {
		return KeyEvent{}, false
	}
	ev.Mod |= decodeModifier(mods)
	return ev, true
}

// parseMouseSGR parses an SGR mouse report [<b;x;yM (press) or [<b;x;ym
// (release). Coordinates arrive 1-based.
func parseMouseSGR(seq string) (MouseEvent, bool) {
	if len(seq) < 7 {
		return MouseEvent{}, false
	}
	final := seq[len(seq)-1]
	if final != 'M' && final != 'm' {
		return MouseEvent{}, false
	}
	parts := strings.Split(seq[2:len(seq)-1], ";")
	if len(parts) != 3 {
		return MouseEvent{}, false
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return MouseEvent{}, false
		}
		nums[i] = n
	}
	code, x, y := nums[0], nums[1], nums[2]
	if x < 1 || y < 1 {
		return MouseEvent{}, false
	}

	ev := MouseEvent{X: x - 1, Y: y - 1}
	if code&4 != 0 {
		ev.Mod |= ModShift
	}
	if code&8 != 0 {
		ev.Mod |= ModAlt
	}
	if code&16 != 0 {
		ev.Mod |= ModCtrl
	}

	if code&64 != 0 {
		ev.Button = MouseWheel
		ev.Action = MousePress
		switch code & 3 {
		case 0:
			ev.ScrollUp = true
		case 1:
			ev.ScrollDown = true
		}
		return ev, true
	}

	switch code & 3 {
	case 0:
		ev.Button = MouseLeft
	case 1:
		ev.Button = MouseMiddle
	case 2:
		ev.Button = MouseRight
	default:
		ev.Button = MouseNone
	}
	switch {
	case code&32 != 0:
		ev.Action = MouseMotion
	case final == 'm':
		ev.Action = MouseRelease
	default:
		ev.Action = MousePress
	}
	return ev, true
}
