package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vet-clinic-records/internal/adapters/catalogsource"
	"vet-clinic-records/internal/adapters/messaging/kafka"
	fs "vet-clinic-records/internal/adapters/storage/file"
	mem "vet-clinic-records/internal/adapters/storage/memory"
	pg "vet-clinic-records/internal/adapters/storage/postgres"
	"vet-clinic-records/internal/config"
	"vet-clinic-records/internal/domain/catalog"
	"vet-clinic-records/internal/domain/clinic"
	"vet-clinic-records/internal/platform/httpclient"
	"vet-clinic-records/internal/platform/logger"
	"vet-clinic-records/internal/ports/history"
	"vet-clinic-records/internal/ports/notify"
)

// App agrupa el servicio de clínica con los adapters que hay que cerrar al salir.
type App struct {
	Service *clinic.Service

	closers []func() error
}

// Build arma catálogo, registry, store de historiales y publisher según cfg.
// HISTORY_BACKEND decide dónde van los historiales (directorio, memoria o Postgres).
func Build(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{}

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("service catalog loaded", map[string]any{"services": cat.Len()})

	reg, err := clinic.NewRegistry(cat, clinic.WithCapacity(cfg.Capacity))
	if err != nil {
		return nil, err
	}

	store, err := a.historyStore(ctx, cfg, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var pub notify.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, kp.Close)
		pub = kp
		log.Info("kafka publisher enabled", map[string]any{"brokers": cfg.KafkaBrokers, "topic": cfg.KafkaTopic})
	}

	a.Service = clinic.NewService(reg, clinic.ServiceOptions{
		Logger:    log,
		Store:     store,
		Publisher: pub,
	})
	return a, nil
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) historyStore(ctx context.Context, cfg *config.Config, log logger.Logger) (history.Store, error) {
	switch cfg.HistoryBackend {
	case config.BackendMemory:
		log.Info("medical histories kept in memory", nil)
		return mem.NewHistoryRepo(), nil
	case config.BackendPostgres:
		db, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		repo := pg.NewHistoryRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		log.Info("medical histories saved to postgres", nil)
		return repo, nil
	default:
		log.Info("medical histories saved to directory", map[string]any{"dir": cfg.HistoryDir})
		return fs.NewHistoryStore(cfg.HistoryDir)
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogURL != "" {
		c := httpclient.New(10 * time.Second)
		return catalogsource.FromURL(ctx, c, cfg.CatalogURL)
	}
	return catalogsource.FromFile(cfg.CatalogPath)
}
