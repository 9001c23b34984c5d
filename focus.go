package jterm

import "github.com/grindlemire/jterm/internal/debug"

// focusables returns the widgets that can take keyboard focus, in tree
// order. Only inputs accept focus.
func focusables(w Widget) []Widget {
	var out []Widget
	if _, ok := w.(*Input); ok {
		out = append(out, w)
	}
	for _, c := range w.node().children {
		out = append(out, focusables(c)...)
	}
	return out
}

// FocusNext moves focus to the next focusable widget, wrapping around.
func (a *App) FocusNext() { a.moveFocus(1) }

// FocusPrev moves focus to the previous focusable widget, wrapping around.
func (a *App) FocusPrev() { a.moveFocus(-1) }

func (a *App) moveFocus(dir int) {
	list := focusables(a.root)
	if len(list) == 0 {
		return
	}
	current := -1
	for i, w := range list {
		if w.node().focused {
			current = i
			w.node().focused = false
		}
	}
	next := 0
	if current >= 0 {
		next = (current + dir + len(list)) % len(list)
	} else if dir < 0 {
		next = len(list) - 1
	}
	list[next].node().focused = true
	debug.Log("focus moved to %q", list[next].node().id)
	a.MarkDirty()
}
