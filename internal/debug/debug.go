package debug

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// EnvFile names the environment variable that enables file logging.
const EnvFile = "JTERM_DEBUG"

// Options configures the debug sinks.
type Options struct {
	// File is the log file path. Empty falls back to $JTERM_DEBUG; if that
	// is empty too, no file is written.
	File       string
	MaxSizeMB  int
	MaxBackups int
	Level      slog.Level
	// Extra receives a copy of every record, e.g. the console client.
	Extra io.Writer
}

var (
	mu      sync.Mutex
	logger  = slog.New(slog.NewTextHandler(io.Discard, nil))
	closers []io.Closer
)

// Init replaces the active logger. It may be called again to reconfigure;
// files opened by a previous call are closed.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	path := opts.File
	if path == "" {
		path = os.Getenv(EnvFile)
	}

	var writers []io.Writer
	if path != "" {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    max(1, opts.MaxSizeMB),
			MaxBackups: opts.MaxBackups,
		}
		writers = append(writers, lj)
		closers = append(closers, lj)
	}
	if opts.Extra != nil {
		writers = append(writers, opts.Extra)
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}
	logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: opts.Level}))
	return nil
}

// SetOutput sends records to w with no file sink. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Close flushes and closes any open log file and resets logging to a no-op.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	err := closeLocked()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return err
}

func closeLocked() error {
	var errs []error
	for _, c := range closers {
		errs = append(errs, c.Close())
	}
	closers = nil
	return errors.Join(errs...)
}

// Logger returns the active structured logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Component returns a logger tagged with a component name.
func Component(name string) *slog.Logger {
	return Logger().With(slog.String("component", name))
}

// Log writes a formatted message at info level.
func Log(format string, args ...any) {
	Logger().Info(fmt.Sprintf(format, args...))
}
