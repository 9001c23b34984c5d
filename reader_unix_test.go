//go:build unix

package jterm

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openPTY returns both ends of a pseudo-terminal, skipping the test where
// the platform has none.
func openPTY(t *testing.T) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("no pty available: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})
	return ptmx, tty
}

func TestANSITerminal_PTY(t *testing.T) {
	ptmx, tty := openPTY(t)
	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}))

	term, err := NewANSITerminal(tty, tty)
	require.NoError(t, err)

	w, h := term.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 30, h)

	require.NoError(t, term.EnterRawMode())
	require.NoError(t, term.EnterRawMode(), "entering twice is a no-op")
	assert.NoError(t, term.ExitRawMode())
	assert.NoError(t, term.ExitRawMode())
}

func TestStdinReader_PTY(t *testing.T) {
	ptmx, tty := openPTY(t)

	term, err := NewANSITerminal(tty, tty)
	require.NoError(t, err)
	require.NoError(t, term.EnterRawMode())
	defer func() { _ = term.ExitRawMode() }()

	r, err := NewStdinReader(tty)
	require.NoError(t, err)

	data, err := r.Poll(10 * time.Millisecond)
	assert.NoError(t, err)
	assert.Nil(t, data)

	_, err = ptmx.Write([]byte("\x1b[A"))
	require.NoError(t, err)

	var got []byte
	require.Eventually(t, func() bool {
		data, err := r.Poll(10 * time.Millisecond)
		if err != nil {
			return false
		}
		got = append(got, data...)
		return len(got) >= 3
	}, waitFor, time.Millisecond)
	assert.Equal(t, []byte("\x1b[A"), got)

	require.NoError(t, r.Close())
	_, err = r.Poll(time.Millisecond)
	assert.ErrorIs(t, err, io.EOF)
}

func TestStdinReader_NilFile(t *testing.T) {
	_, err := NewStdinReader(nil)
	assert.Error(t, err)
}
