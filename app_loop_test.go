package jterm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

// startApp runs app in the background and returns a channel that receives
// Run's result.
func startApp(t *testing.T, ctx context.Context, app *App) <-chan error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- app.Run(ctx) }()
	return errc
}

func waitExit(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(waitFor):
		t.Fatal("app did not exit")
		return nil
	}
}

func assertRestored(t *testing.T, term *EmulatorTerminal) {
	t.Helper()
	assert.False(t, term.Mode("?1049"), "alternate screen left on")
	assert.True(t, term.Mode("?25"), "cursor left hidden")
	assert.False(t, term.Mode("?1000"), "mouse reporting left on")
	assert.False(t, term.KittyPushed(), "kitty keyboard left on")
	assert.False(t, term.InRawMode(), "raw mode left on")
}

func TestRun_RendersAndStopsOnCtrlC(t *testing.T) {
	app, term, reader := newTestApp(t, NewContainer().Add(NewText("hello")))
	errc := startApp(t, context.Background(), app)

	require.Eventually(t, func() bool { return term.ScreenRow(0) == "hello" }, waitFor, time.Millisecond)
	assert.True(t, term.Mode("?1049"))
	assert.False(t, term.Mode("?25"))
	assert.True(t, term.Mode("?1000"))
	assert.True(t, term.KittyPushed())
	assert.True(t, term.InRawMode())

	reader.Feed("\x03")
	assert.NoError(t, waitExit(t, errc))
	assertRestored(t, term)
}

func TestRun_ExitPaths(t *testing.T) {
	type tc struct {
		stop func(app *App, reader *mockReader, cancel context.CancelFunc)
	}

	tests := map[string]tc{
		"ctrl+c": {
			stop: func(_ *App, reader *mockReader, _ context.CancelFunc) { reader.Feed("\x03") },
		},
		"stop": {
			stop: func(app *App, _ *mockReader, _ context.CancelFunc) { app.Stop() },
		},
		"stop twice": {
			stop: func(app *App, _ *mockReader, _ context.CancelFunc) {
				app.Stop()
				app.Stop()
			},
		},
		"context cancelled": {
			stop: func(_ *App, _ *mockReader, cancel context.CancelFunc) { cancel() },
		},
		"input closed": {
			stop: func(_ *App, reader *mockReader, _ context.CancelFunc) { reader.EndInput() },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			app, term, reader := newTestApp(t, NewContainer().Add(NewText("x")))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			errc := startApp(t, ctx, app)
			require.Eventually(t, func() bool { return term.ScreenRow(0) == "x" }, waitFor, time.Millisecond)

			tt.stop(app, reader, cancel)
			assert.NoError(t, waitExit(t, errc))
			assertRestored(t, term)
		})
	}
}

func TestRun_AlreadyRunning(t *testing.T) {
	app, term, _ := newTestApp(t, NewContainer().Add(NewText("x")))
	errc := startApp(t, context.Background(), app)
	require.Eventually(t, func() bool { return term.ScreenRow(0) == "x" }, waitFor, time.Millisecond)

	assert.ErrorIs(t, app.Run(context.Background()), ErrAlreadyRunning)

	app.Stop()
	assert.NoError(t, waitExit(t, errc))
}

func TestRun_RunsAgainAfterExit(t *testing.T) {
	app, term, reader := newTestApp(t, NewContainer().Add(NewText("x")))

	for i := range 2 {
		errc := startApp(t, context.Background(), app)
		require.Eventually(t, term.InRawMode, waitFor, time.Millisecond, "run %d", i)
		reader.Feed("\x03")
		require.NoError(t, waitExit(t, errc))
	}
	assertRestored(t, term)
}

type rawErrTerminal struct{ *EmulatorTerminal }

func (rawErrTerminal) EnterRawMode() error { return ErrNotTerminal }

func TestRun_RawModeFailure(t *testing.T) {
	term := rawErrTerminal{NewEmulatorTerminal(10, 5)}
	app, err := NewApp(NewContainer(), WithTerminal(term), WithReader(newMockReader()))
	require.NoError(t, err)

	err = app.Run(context.Background())
	assert.ErrorIs(t, err, ErrNotTerminal)
	assert.Zero(t, term.Writes())

	assert.ErrorIs(t, app.Run(context.Background()), ErrNotTerminal)
}

// panicOnceTerminal panics on its first write.
type panicOnceTerminal struct {
	*EmulatorTerminal
	once sync.Once
}

func (p *panicOnceTerminal) Write(b []byte) (int, error) {
	p.once.Do(func() { panic("write exploded") })
	return p.EmulatorTerminal.Write(b)
}

func TestRun_PanicRestoresTerminal(t *testing.T) {
	term := &panicOnceTerminal{EmulatorTerminal: NewEmulatorTerminal(10, 5)}
	app, err := NewApp(NewContainer(), WithTerminal(term), WithReader(newMockReader()))
	require.NoError(t, err)

	assert.PanicsWithValue(t, "write exploded", func() { _ = app.Run(context.Background()) })
	assert.False(t, term.InRawMode())
	assert.True(t, term.Mode("?25"))
	assert.False(t, app.running.Load())
}

func TestRun_HandlerPanicReturnsError(t *testing.T) {
	root := NewContainer().Add(NewInput(WithFocus()))
	app, term, reader := newTestApp(t, root,
		OnMessage(func(Submitted) { panic("handler exploded") }),
	)
	errc := startApp(t, context.Background(), app)

	reader.Feed("x\r")
	err := waitExit(t, errc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handler exploded")
	assertRestored(t, term)
}

func TestRun_KeysArriveInOrder(t *testing.T) {
	root := NewContainer().Add(NewInput(WithFocus()))
	app, term, reader := newTestApp(t, root)
	errc := startApp(t, context.Background(), app)

	reader.Feed("a", "b", "c", "日", "\x7f", "d")
	assert.Eventually(t, func() bool { return term.ScreenRow(0) == "abcd" }, waitFor, time.Millisecond)

	app.Stop()
	assert.NoError(t, waitExit(t, errc))
}

func TestRun_LoneEscapeIsFlushed(t *testing.T) {
	root := NewContainer().Add(NewInput(WithFocus()))
	app, term, reader := newTestApp(t, root, WithEscapeTimeout(5*time.Millisecond))
	errc := startApp(t, context.Background(), app)

	reader.Feed("\x1b")
	time.Sleep(100 * time.Millisecond)
	reader.Feed("a")

	// Had the escape not been flushed on its own, "a" would decode as alt+a
	// and never reach the buffer.
	assert.Eventually(t, func() bool { return term.ScreenRow(0) == "a" }, waitFor, time.Millisecond)

	app.Stop()
	assert.NoError(t, waitExit(t, errc))
}

func TestRun_OneWritePerFrame(t *testing.T) {
	root := NewContainer().Add(NewText("title"), NewInput(WithFocus()))
	app, term, reader := newTestApp(t, root)
	errc := startApp(t, context.Background(), app)

	require.Eventually(t, func() bool { return term.ScreenRow(0) == "title" }, waitFor, time.Millisecond)
	// setup and the first frame
	assert.Equal(t, 2, term.Writes())

	reader.Feed("x")
	require.Eventually(t, func() bool { return term.ScreenRow(1) == "x" }, waitFor, time.Millisecond)
	assert.Equal(t, 3, term.Writes())
	assert.Contains(t, term.Raw(), "\x1b[?2026h")
	assert.Contains(t, term.Raw(), "\x1b[?2026l")

	app.Stop()
	assert.NoError(t, waitExit(t, errc))
}

func TestRun_WheelScrollsUnderPointer(t *testing.T) {
	box := NewContainer(WithHeight(Fixed(3)), WithOverflow(OverflowAuto))
	for i := range 10 {
		box.Add(NewText(fmt.Sprintf("l%d", i)))
	}
	app, term, reader := newTestApp(t, NewContainer().Add(box))
	errc := startApp(t, context.Background(), app)
	require.Eventually(t, func() bool { return strings.HasPrefix(term.ScreenRow(0), "l0") }, waitFor, time.Millisecond)

	reader.Feed("\x1b[<65;2;2M")
	assert.Eventually(t, func() bool {
		return strings.HasPrefix(term.ScreenRow(0), "l3") && strings.HasPrefix(term.ScreenRow(2), "l5")
	}, waitFor, time.Millisecond)

	app.Stop()
	assert.NoError(t, waitExit(t, errc))
}

func TestRun_TabCyclesFocus(t *testing.T) {
	root := NewContainer().Add(NewInput(WithFocus()), NewInput())
	app, term, reader := newTestApp(t, root)
	errc := startApp(t, context.Background(), app)

	reader.Feed("a", "\t", "b")
	assert.Eventually(t, func() bool {
		return term.ScreenRow(0) == "a" && term.ScreenRow(1) == "b"
	}, waitFor, time.Millisecond)

	app.Stop()
	assert.NoError(t, waitExit(t, errc))
}

// slowTerminal delays every write past the frame budget.
type slowTerminal struct {
	*EmulatorTerminal
	delay time.Duration
}

func (s slowTerminal) Write(b []byte) (int, error) {
	time.Sleep(s.delay)
	return s.EmulatorTerminal.Write(b)
}

func TestRun_FrameOverrunIsCounted(t *testing.T) {
	term := slowTerminal{EmulatorTerminal: NewEmulatorTerminal(10, 5), delay: 20 * time.Millisecond}
	reader := newMockReader()
	app, err := NewApp(NewContainer().Add(NewText("x")),
		WithTerminal(term), WithReader(reader), WithFrameRate(240))
	require.NoError(t, err)

	before := testutil.ToFloat64(metricFrameOverruns)
	errc := startApp(t, context.Background(), app)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metricFrameOverruns) > before
	}, waitFor, time.Millisecond)

	app.Stop()
	assert.NoError(t, waitExit(t, errc))
}
