package jterm

import (
	"errors"
	"fmt"
	"time"
)

// AppOption is a functional option for configuring an App.
type AppOption func(*App) error

// WithTerminal sets the output terminal. Default is stdout.
func WithTerminal(t Terminal) AppOption {
	return func(a *App) error {
		if t == nil {
			return errors.New("terminal must not be nil")
		}
		a.terminal = t
		return nil
	}
}

// WithReader sets the input byte source. Default is stdin.
func WithReader(r InputReader) AppOption {
	return func(a *App) error {
		if r == nil {
			return errors.New("reader must not be nil")
		}
		a.reader = r
		return nil
	}
}

// WithFrameRate sets the target frame rate for the render loop.
// Default is 60 fps. Valid range is 1-240 fps.
func WithFrameRate(fps int) AppOption {
	return func(a *App) error {
		if fps < 1 {
			return fmt.Errorf("frame rate must be at least 1 fps")
		}
		if fps > 240 {
			return fmt.Errorf("frame rate cannot exceed 240 fps")
		}
		a.frameDuration = time.Second / time.Duration(fps)
		return nil
	}
}

// WithPollTimeout sets how long the reader waits for input before
// checking for shutdown. Default is 50ms.
func WithPollTimeout(d time.Duration) AppOption {
	return func(a *App) error {
		if d <= 0 {
			return fmt.Errorf("poll timeout must be positive, got %s", d)
		}
		a.pollTimeout = d
		return nil
	}
}

// WithEscapeTimeout sets how long a partial escape sequence may wait for
// more bytes before it is decoded as-is. Default is 25ms.
func WithEscapeTimeout(d time.Duration) AppOption {
	return func(a *App) error {
		if d <= 0 {
			return fmt.Errorf("escape timeout must be positive, got %s", d)
		}
		a.escapeTimeout = d
		return nil
	}
}

// WithQueueSize sets the capacity of the key and mouse queues.
// Default is 256. Must be at least 1.
func WithQueueSize(size int) AppOption {
	return func(a *App) error {
		if size < 1 {
			return fmt.Errorf("queue size must be at least 1")
		}
		a.queueSize = size
		return nil
	}
}

// WithScrollCoalescing overrides the wheel threshold and step.
func WithScrollCoalescing(threshold, step int) AppOption {
	return func(a *App) error {
		if threshold < 1 || step < 1 {
			return fmt.Errorf("scroll threshold and step must be at least 1, got %d and %d", threshold, step)
		}
		a.scrollThreshold = threshold
		a.scrollStep = step
		return nil
	}
}

// WithKeyBindings adds app-level key bindings. They run, first match
// only, for keys no widget consumed and take precedence over Tab focus
// cycling.
func WithKeyBindings(bindings ...KeyBinding) AppOption {
	return func(a *App) error {
		for _, b := range bindings {
			if b.Handler == nil {
				return fmt.Errorf("key binding for %v has no handler", b.Pattern)
			}
			if b.Pattern.matches(KeyEvent{Key: KeyRune, Rune: 'c', Mod: ModCtrl}) {
				return errors.New("ctrl+c cannot be bound")
			}
		}
		a.bindings = append(a.bindings, bindings...)
		return nil
	}
}

// WithoutMouse disables mouse event reporting.
// By default, mouse events are enabled.
func WithoutMouse() AppOption {
	return func(a *App) error {
		a.mouseEnabled = false
		return nil
	}
}

// WithoutKittyKeyboard leaves the kitty keyboard protocol off.
func WithoutKittyKeyboard() AppOption {
	return func(a *App) error {
		a.kittyKeyboard = false
		return nil
	}
}
