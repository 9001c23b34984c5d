package jterm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_SetupTeardownSequences(t *testing.T) {
	type tc struct {
		opts         []AppOption
		wantSetup    []string
		notSetup     []string
		wantTeardown []string
	}

	tests := map[string]tc{
		"defaults": {
			wantSetup:    []string{"\x1b[?1049h", "\x1b[?25l", "\x1b[>1u", "\x1b[?1000h", "\x1b[?1006h", "\x1b[2J"},
			wantTeardown: []string{"\x1b[>0u", "\x1b[?1000l", "\x1b[?25h", "\x1b[?1049l"},
		},
		"without mouse": {
			opts:         []AppOption{WithoutMouse()},
			wantSetup:    []string{"\x1b[?1049h", "\x1b[>1u"},
			notSetup:     []string{"\x1b[?1000h"},
			wantTeardown: []string{"\x1b[?1049l"},
		},
		"without kitty": {
			opts:         []AppOption{WithoutKittyKeyboard()},
			wantSetup:    []string{"\x1b[?1049h", "\x1b[?1000h"},
			notSetup:     []string{"\x1b[>1u"},
			wantTeardown: []string{"\x1b[?1049l"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			app, term, _ := newTestApp(t, NewContainer(), tt.opts...)

			require.NoError(t, app.setup())
			setup := term.Raw()
			for _, seq := range tt.wantSetup {
				assert.Contains(t, setup, seq)
			}
			for _, seq := range tt.notSetup {
				assert.NotContains(t, setup, seq)
			}

			require.NoError(t, app.teardown())
			teardown := strings.TrimPrefix(term.Raw(), setup)
			for _, seq := range tt.wantTeardown {
				assert.Contains(t, teardown, seq)
			}
			assert.True(t, strings.HasSuffix(teardown, "\x1b[?1049l"), "alternate screen is left last")
		})
	}
}

type failingTerminal struct {
	*EmulatorTerminal
	writeErr, restoreErr error
}

func (f failingTerminal) Write([]byte) (int, error) { return 0, f.writeErr }
func (f failingTerminal) ExitRawMode() error        { return f.restoreErr }

func TestApp_TeardownJoinsErrors(t *testing.T) {
	writeErr := errors.New("write failed")
	restoreErr := errors.New("restore failed")
	term := failingTerminal{EmulatorTerminal: NewEmulatorTerminal(10, 5), writeErr: writeErr, restoreErr: restoreErr}
	app, err := NewApp(NewContainer(), WithTerminal(term), WithReader(newMockReader()))
	require.NoError(t, err)

	err = app.teardown()
	assert.ErrorIs(t, err, writeErr)
	assert.ErrorIs(t, err, restoreErr)

	assert.ErrorIs(t, app.setup(), writeErr)
}

func TestApp_CloseClosesReader(t *testing.T) {
	app, _, reader := newTestApp(t, NewContainer())
	require.NoError(t, app.Close())

	_, err := reader.Poll(0)
	assert.Error(t, err)
}
