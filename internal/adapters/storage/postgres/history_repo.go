package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic-records/internal/ports/history"

	"github.com/google/uuid"
)

const historySchema = `
	CREATE TABLE IF NOT EXISTS medical_history_exports (
		id          UUID PRIMARY KEY,
		record_id   INTEGER NOT NULL,
		file_name   TEXT NOT NULL,
		content     TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	)
`

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// EnsureSchema crea la tabla si no existe (sin herramienta de migraciones por ahora).
func (r *HistoryRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, historySchema)
	return err
}

func (r *HistoryRepo) Save(ctx context.Context, e history.Export) (string, error) {
	if e.FileName == "" {
		return "", errors.New("export file name required")
	}

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medical_history_exports (
			id, record_id, file_name, content, created_at
		) VALUES ($1,$2,$3,$4,$5)
	`,
		id,
		e.RecordID,
		e.FileName,
		e.Content,
		e.CreatedAt,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *HistoryRepo) Get(ctx context.Context, id string) (history.Export, error) {
	if _, err := uuid.Parse(id); err != nil {
		return history.Export{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, record_id, file_name, content, created_at
		FROM medical_history_exports
		WHERE id = $1
	`, id)

	var e history.Export
	if err := row.Scan(&e.ID, &e.RecordID, &e.FileName, &e.Content, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return history.Export{}, ErrNotFound
		}
		return history.Export{}, err
	}
	return e, nil
}

func (r *HistoryRepo) ListByRecord(ctx context.Context, recordID int) ([]history.Export, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, record_id, file_name, content, created_at
		FROM medical_history_exports
		WHERE record_id = $1
		ORDER BY created_at ASC
	`, recordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Export, 0)
	for rows.Next() {
		var e history.Export
		if err := rows.Scan(&e.ID, &e.RecordID, &e.FileName, &e.Content, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
