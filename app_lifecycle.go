package jterm

import (
	"errors"
	"fmt"
)

// setup switches the terminal into full-screen mode: alternate screen,
// hidden cursor, kitty keyboard protocol and mouse reporting.
func (a *App) setup() error {
	e := newEscBuilder(64)
	e.EnterAltScreen()
	e.HideCursor()
	if a.kittyKeyboard {
		e.PushKittyKeyboard()
	}
	if a.mouseEnabled {
		e.EnableMouse()
	}
	e.ClearScreen()
	if _, err := a.terminal.Write(e.Bytes()); err != nil {
		return fmt.Errorf("terminal setup: %w", err)
	}
	return nil
}

// teardown undoes setup in reverse order and restores the terminal mode.
// Both steps always run.
func (a *App) teardown() error {
	e := newEscBuilder(64)
	if a.kittyKeyboard {
		e.PopKittyKeyboard()
	}
	if a.mouseEnabled {
		e.DisableMouse()
	}
	e.ShowCursor()
	e.ExitAltScreen()

	var errs []error
	if _, err := a.terminal.Write(e.Bytes()); err != nil {
		errs = append(errs, fmt.Errorf("terminal teardown: %w", err))
	}
	if err := a.terminal.ExitRawMode(); err != nil {
		errs = append(errs, fmt.Errorf("exit raw mode: %w", err))
	}
	return errors.Join(errs...)
}

// Close releases the input reader. Call it once the app will not run again.
func (a *App) Close() error {
	return a.reader.Close()
}
