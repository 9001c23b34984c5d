package jterm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	rtdebug "runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/jterm/internal/debug"
)

// Run sets up the terminal and runs the scheduler until Ctrl+C, Stop, an
// input error or cancellation of ctx. The terminal is restored on every
// exit path, including a panic, which is re-raised after the restore.
func (a *App) Run(ctx context.Context) (err error) {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.terminal.EnterRawMode(); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() {
		r := recover()
		if terr := a.teardown(); terr != nil && err == nil {
			err = terr
		}
		if r != nil {
			panic(r)
		}
	}()
	if err := a.setup(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.stopMu.Lock()
	a.cancel = cancel
	a.stopMu.Unlock()

	resize := make(chan os.Signal, 1)
	notifyResize(resize)
	defer stopResize(resize)

	attach(a.root, a)
	a.MarkDirty()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return a.readInput(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return a.loop(gctx, resize)
	})
	return g.Wait()
}

// Stop asks a running app to exit. Stop is idempotent.
func (a *App) Stop() {
	a.running.Store(false)
	a.stopMu.Lock()
	defer a.stopMu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
}

// loop is the scheduler. Key handling, mouse handling and frame ticks all
// run on this goroutine, so the widget tree is never touched concurrently.
func (a *App) loop(ctx context.Context, resize <-chan os.Signal) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("jterm: panic in scheduler: %v\n%s", r, rtdebug.Stack())
		}
	}()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-a.keyQ:
			if ev.IsCtrl('c') {
				debug.Log("ctrl+c received, stopping")
				a.running.Store(false)
				return nil
			}
			a.dispatchKey(ev)

		case ev := <-a.mouseQ:
			a.dispatchMouse(ev)

		case <-resize:
			a.MarkDirty()

		case <-timer.C:
			if !a.running.Load() {
				return nil
			}
			timer.Reset(a.tick())
		}
	}
}

// tick runs one frame and returns how long to sleep before the next.
func (a *App) tick() time.Duration {
	start := time.Now()
	a.root.OnFrame()
	if a.checkAndClearDirty() {
		a.render()
		metricFramesRendered.Inc()
	}
	elapsed := time.Since(start)
	metricFrameDuration.Observe(elapsed.Seconds())

	if elapsed > a.frameDuration {
		metricFrameOverruns.Inc()
		a.overrunLog.Do(func() {
			debug.Log("frame took %s, budget is %s", elapsed, a.frameDuration)
		})
		return 0
	}
	return a.frameDuration - elapsed
}

// render measures the root against the current terminal size, lays it
// out over the full screen and writes the painted frame in one call.
func (a *App) render() {
	w, h := a.terminal.Size()
	a.screen.Reset(w, h)
	a.screen.esc.BeginSyncUpdate()
	a.screen.Clear()

	a.root.Measure(w, h)
	a.root.Layout(Rect{Width: w, Height: h})
	a.root.Render(a.screen)

	a.screen.esc.EndSyncUpdate()
	if _, err := a.terminal.Write(a.screen.Bytes()); err != nil {
		debug.Log("frame write failed: %v", err)
	}
}

func (a *App) dispatchKey(ev KeyEvent) {
	metricInputEvents.WithLabelValues("key").Inc()
	if !a.root.HandleKey(ev) && !a.runBindings(ev) {
		switch {
		case ev.Is(KeyTab, ModNone):
			a.FocusNext()
		case ev.Key == KeyBackTab, ev.Is(KeyTab, ModShift):
			a.FocusPrev()
		}
	}
	a.MarkDirty()
}

func (a *App) dispatchMouse(ev MouseEvent) {
	metricInputEvents.WithLabelValues("mouse").Inc()
	a.root.HandleMouse(ev)
}

// readInput is the single producer for both queues. It polls the reader,
// decodes bytes and routes each event to the queue for its kind.
func (a *App) readInput(ctx context.Context) error {
	var last time.Time
	for ctx.Err() == nil {
		timeout := a.pollTimeout
		if a.decoder.Pending() {
			timeout = min(timeout, a.escapeTimeout)
		}

		data, err := a.reader.Poll(timeout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.enqueue(ctx, a.decoder.Flush())
				debug.Log("input closed, stopping")
				a.Stop()
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		if len(data) == 0 {
			if a.decoder.Pending() && time.Since(last) >= a.escapeTimeout {
				a.enqueue(ctx, a.decoder.Flush())
			}
			continue
		}
		last = time.Now()
		a.enqueue(ctx, a.decoder.Write(data))
	}
	return nil
}

func (a *App) enqueue(ctx context.Context, events []Event) {
	for _, ev := range events {
		switch e := ev.(type) {
		case KeyEvent:
			select {
			case a.keyQ <- e:
			case <-ctx.Done():
				return
			}
		case MouseEvent:
			select {
			case a.mouseQ <- e:
			case <-ctx.Done():
				return
			}
		}
	}
}
