package postgres

import (
	"context"
	"database/sql"
	"time"

	"vet-clinic-records/internal/ports/history"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	ErrNotFound = history.ErrNotFound
)

// Open abre el pool de Postgres vía pgx (database/sql) y verifica con un ping.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// los exports son escrituras esporádicas; pool chico
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
