package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vet-clinic-records/internal/app"
	"vet-clinic-records/internal/config"
	"vet-clinic-records/internal/jobs"
	"vet-clinic-records/internal/platform/logger"
	"vet-clinic-records/internal/router"
)

// @title Vet Clinic Records API
// @version 1.0
// @description Fichas de animales, turnos, pagos y capacidad de la clínica.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run devuelve error en vez de salir, así los defers (Close, Stop) siempre corren.
func run() error {
	// Config primero: LOG_* pueden venir del .env.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := cfg.NewLogger(os.Stdout, logger.Info)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", map[string]any{"error": err.Error()})
		return err
	}
	defer a.Close()

	if cfg.ReminderSchedule != "" {
		c, err := jobs.Start(cfg.ReminderSchedule, jobs.NewBalanceReminder(a.Service, log))
		if err != nil {
			log.Error("reminder job disabled", map[string]any{"error": err.Error()})
		} else {
			defer func() { <-c.Stop().Done() }()
			log.Info("reminder job scheduled", map[string]any{"schedule": cfg.ReminderSchedule})
		}
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.NewRouter(router.Options{Service: a.Service, Logger: log}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// ListenAndServe vuelve apenas arranca Shutdown; hay que esperar el drenado.
	drained := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		drained <- srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": addr, "capacity": cfg.Capacity})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		return err
	}

	if err := <-drained; err != nil {
		log.Warn("shutdown incomplete", map[string]any{"error": err.Error()})
	}
	log.Info("server stopped", nil)
	return nil
}
