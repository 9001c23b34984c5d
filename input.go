package jterm

import "unicode/utf8"

// Input is an editable text field. Enter submits the buffer as a
// Submitted message; Shift+Enter inserts a line break.
type Input struct {
	Text
}

// NewInput creates an empty input.
func NewInput(opts ...Option) *Input {
	in := &Input{Text: Text{Node: newNode(opts)}}
	in.SetContent("")
	return in
}

// Value returns the current buffer.
func (in *Input) Value() string { return in.content }

// SetValue replaces the buffer.
func (in *Input) SetValue(v string) { in.SetContent(v) }

// HandleKey edits the buffer. Keys it does not use fall through to the
// scrolling behaviour shared by all widgets, then to ancestors.
func (in *Input) HandleKey(ev KeyEvent) bool {
	switch {
	case ev.Is(KeyEnter, ModShift):
		in.SetContent(in.content + "\n")
		return true
	case ev.Key == KeyEnter:
		in.Post(Submitted{Input: in, Value: in.content})
		in.SetContent("")
		return true
	case ev.Key == KeyBackspace:
		if in.content != "" {
			_, size := utf8.DecodeLastRuneInString(in.content)
			in.SetContent(in.content[:len(in.content)-size])
		}
		return true
	case ev.Printable:
		in.SetContent(in.content + string(ev.Rune))
		return true
	}
	return in.Node.HandleKey(ev)
}
