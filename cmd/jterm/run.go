package main

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/grindlemire/jterm"
	"github.com/grindlemire/jterm/internal/config"
	"github.com/grindlemire/jterm/internal/console"
	"github.com/grindlemire/jterm/internal/debug"
)

func runDemo(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logOpts := debug.Options{
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	if opts.dev {
		client := console.NewClient(cfg.Console.Addr)
		defer client.Close()
		logOpts.Extra = client
	}
	if err := debug.Init(logOpts); err != nil {
		return err
	}
	defer debug.Close()

	if cfg.Metrics.Addr != "" {
		stop := serveMetrics(cfg.Metrics.Addr)
		defer stop()
	}

	app, err := newDemoApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	debug.Log("demo starting, dev=%t", opts.dev)
	return app.Run(ctx)
}

// newDemoApp builds the chat-style demo: a header, a scrolling log and an
// input whose submissions are appended to the log. Ctrl+L clears the log;
// Home and End jump to its top and bottom.
func newDemoApp(cfg config.Config, extra ...jterm.AppOption) (*jterm.App, error) {
	log := jterm.NewContainer(
		jterm.WithID("log"),
		jterm.WithHeight(jterm.Fill()),
		jterm.WithOverflow(jterm.OverflowAuto),
	)
	root := jterm.NewContainer(
		jterm.WithID("root"),
		jterm.WithHeight(jterm.Fill()),
	).Add(
		jterm.NewText("Welcome to JTerm", jterm.WithHeight(jterm.Auto())),
		log,
		jterm.NewInput(
			jterm.WithID("input"),
			jterm.WithHeight(jterm.Auto()),
			jterm.WithBorder(jterm.BorderAll(jterm.BorderRounded)),
			jterm.WithFocus(),
		),
	)

	opts := []jterm.AppOption{
		jterm.WithFrameRate(cfg.FPS),
		jterm.WithPollTimeout(cfg.PollTimeout),
		jterm.WithEscapeTimeout(cfg.EscapeTimeout),
		jterm.WithScrollCoalescing(cfg.Scroll.Threshold, cfg.Scroll.Step),
		jterm.OnMessage(func(m jterm.Submitted) {
			log.Add(jterm.NewText(m.Value, jterm.WithHeight(jterm.Auto())))
			log.ScrollToBottom()
		}),
		jterm.WithKeyBindings(
			jterm.OnCtrl('l', func(jterm.KeyEvent) {
				for _, c := range slices.Clone(log.Children()) {
					log.Remove(c)
				}
			}),
			jterm.OnKey(jterm.KeyHome, func(jterm.KeyEvent) { log.ScrollToTop() }),
			jterm.OnKey(jterm.KeyEnd, func(jterm.KeyEvent) { log.ScrollToBottom() }),
		),
	}
	if !cfg.Mouse {
		opts = append(opts, jterm.WithoutMouse())
	}
	if !cfg.KittyKeyboard {
		opts = append(opts, jterm.WithoutKittyKeyboard())
	}
	return jterm.NewApp(root, append(opts, extra...)...)
}

func serveMetrics(addr string) (stop func()) {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			debug.Log("metrics server: %v", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
