package jterm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func focusedID(a *App) string {
	for _, w := range focusables(a.root) {
		if w.node().Focused() {
			return w.node().ID()
		}
	}
	return ""
}

func threeInputs(focus string) *Container {
	opts := func(id string) []Option {
		if id == focus {
			return []Option{WithID(id), WithFocus()}
		}
		return []Option{WithID(id)}
	}
	return NewContainer().Add(
		NewInput(opts("a")...),
		NewContainer().Add(NewText("label"), NewInput(opts("b")...)),
		NewInput(opts("c")...),
	)
}

func TestFocus_Move(t *testing.T) {
	type tc struct {
		start string
		next  bool
		want  string
	}

	tests := map[string]tc{
		"next from first":    {start: "a", next: true, want: "b"},
		"next into nested":   {start: "b", next: true, want: "c"},
		"next wraps":         {start: "c", next: true, want: "a"},
		"prev wraps":         {start: "a", next: false, want: "c"},
		"prev from nested":   {start: "b", next: false, want: "a"},
		"next without focus": {start: "", next: true, want: "a"},
		"prev without focus": {start: "", next: false, want: "c"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			app, _, _ := newTestApp(t, threeInputs(tt.start))
			app.checkAndClearDirty()

			if tt.next {
				app.FocusNext()
			} else {
				app.FocusPrev()
			}
			assert.Equal(t, tt.want, focusedID(app))
			assert.True(t, app.IsDirty())
		})
	}
}

func TestFocus_NoFocusables(t *testing.T) {
	app, _, _ := newTestApp(t, NewContainer().Add(NewText("only text")))
	app.checkAndClearDirty()

	assert.NotPanics(t, app.FocusNext)
	assert.False(t, app.IsDirty())
}

func TestFocus_TabDispatch(t *testing.T) {
	type tc struct {
		ev   KeyEvent
		want string
	}

	tests := map[string]tc{
		"tab":       {ev: KeyEvent{Key: KeyTab}, want: "b"},
		"backtab":   {ev: KeyEvent{Key: KeyBackTab}, want: "c"},
		"shift+tab": {ev: KeyEvent{Key: KeyTab, Mod: ModShift}, want: "c"},
		"ctrl+tab":  {ev: KeyEvent{Key: KeyTab, Mod: ModCtrl}, want: "a"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			app, _, _ := newTestApp(t, threeInputs("a"))
			app.dispatchKey(tt.ev)
			assert.Equal(t, tt.want, focusedID(app))
		})
	}
}

func TestFocus_KeysFollowFocus(t *testing.T) {
	app, _, _ := newTestApp(t, threeInputs("a"))
	a, _ := app.QueryInput("#a")
	b, _ := app.QueryInput("#b")

	app.dispatchKey(KeyEvent{Key: KeyRune, Rune: 'x', Printable: true})
	app.dispatchKey(KeyEvent{Key: KeyTab})
	app.dispatchKey(KeyEvent{Key: KeyRune, Rune: 'y', Printable: true})

	assert.Equal(t, "x", a.Value())
	assert.Equal(t, "y", b.Value())
}
