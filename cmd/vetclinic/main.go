package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"vet-clinic-records/internal/app"
	"vet-clinic-records/internal/cli"
	"vet-clinic-records/internal/config"
	"vet-clinic-records/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	// Los logs van a stderr para no mezclarse con el menú; por defecto solo warn+.
	log := cfg.NewLogger(os.Stderr, logger.Warn)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", map[string]any{"error": err.Error()})
		return err
	}
	defer a.Close()

	if err := cli.New(a.Service, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("session ended with error", map[string]any{"error": err.Error()})
		return err
	}
	return nil
}
