package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/jterm/internal/config"
	"github.com/grindlemire/jterm/internal/console"
)

func runConsole(ctx context.Context, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return console.NewServer(os.Stdout).ListenAndServe(ctx, cfg.Console.Addr)
}
