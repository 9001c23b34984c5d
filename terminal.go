package jterm

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Terminal is the output side of the app. Frames and mode switches are
// written to it as raw escape sequences.
type Terminal interface {
	io.Writer

	// Size returns the terminal dimensions (width, height) in cells.
	Size() (width, height int)

	// EnterRawMode puts the terminal into raw mode for byte-by-byte input.
	EnterRawMode() error

	// ExitRawMode restores the mode saved by EnterRawMode.
	ExitRawMode() error
}

// ANSITerminal is a Terminal backed by a real tty.
type ANSITerminal struct {
	out   io.Writer
	inFd  int
	outFd int

	mu       sync.Mutex
	rawState *term.State
}

var _ Terminal = (*ANSITerminal)(nil)

// NewANSITerminal creates a terminal that writes to out and switches the
// mode of in. Either side may be a non-file, in which case raw mode
// reports ErrNotTerminal and Size falls back to 80x24.
func NewANSITerminal(out io.Writer, in io.Reader) (*ANSITerminal, error) {
	t := &ANSITerminal{out: out, inFd: -1, outFd: -1}
	if f, ok := out.(*os.File); ok {
		t.outFd = int(f.Fd())
	}
	if f, ok := in.(*os.File); ok {
		t.inFd = int(f.Fd())
	}
	return t, nil
}

// Write sends p to the terminal output.
func (t *ANSITerminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Size returns the terminal dimensions.
// Returns a default of 80x24 if the size cannot be determined.
func (t *ANSITerminal) Size() (width, height int) {
	if t.outFd < 0 {
		return 80, 24
	}
	w, h, err := term.GetSize(t.outFd)
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

// EnterRawMode saves the current input mode and switches to raw mode.
func (t *ANSITerminal) EnterRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rawState != nil {
		return nil
	}
	if t.inFd < 0 || !term.IsTerminal(t.inFd) {
		return ErrNotTerminal
	}
	state, err := term.MakeRaw(t.inFd)
	if err != nil {
		return err
	}
	t.rawState = state
	return nil
}

// ExitRawMode restores the saved mode. It is a no-op outside raw mode.
func (t *ANSITerminal) ExitRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rawState == nil {
		return nil
	}
	err := term.Restore(t.inFd, t.rawState)
	t.rawState = nil
	return err
}
