package jterm

// KeyBinding associates a key pattern with a handler. App-level bindings
// only see keys the widget tree did not consume.
type KeyBinding struct {
	Pattern KeyPattern
	Handler func(KeyEvent)
}

// KeyPattern identifies which key events match a binding. A non-zero Rune
// matches that character; otherwise Key is compared. Modifiers must match
// exactly.
type KeyPattern struct {
	Key  Key
	Rune rune
	Mod  Modifier
}

func (p KeyPattern) matches(ev KeyEvent) bool {
	if ev.Mod != p.Mod {
		return false
	}
	if p.Rune != 0 {
		return ev.Key == KeyRune && ev.Rune == p.Rune
	}
	return ev.Key == p.Key
}

// OnKey creates a binding for a named key with no modifiers.
func OnKey(key Key, handler func(KeyEvent)) KeyBinding {
	return KeyBinding{Pattern: KeyPattern{Key: key}, Handler: handler}
}

// OnRune creates a binding for a character with no modifiers.
func OnRune(r rune, handler func(KeyEvent)) KeyBinding {
	return KeyBinding{Pattern: KeyPattern{Key: KeyRune, Rune: r}, Handler: handler}
}

// OnCtrl creates a binding for Ctrl plus a letter. Ctrl+C always stops the
// app and cannot be bound.
func OnCtrl(r rune, handler func(KeyEvent)) KeyBinding {
	return KeyBinding{Pattern: KeyPattern{Key: KeyRune, Rune: r, Mod: ModCtrl}, Handler: handler}
}

// runBindings calls the first binding matching ev and reports whether one
// did.
func (a *App) runBindings(ev KeyEvent) bool {
	for _, b := range a.bindings {
		if b.Pattern.matches(ev) {
			b.Handler(ev)
			return true
		}
	}
	return false
}
