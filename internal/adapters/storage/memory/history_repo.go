package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"vet-clinic-records/internal/ports/history"

	"github.com/google/uuid"
)

var (
	ErrNotFound = history.ErrNotFound
)

type historyRepo struct {
	mu   sync.RWMutex
	byID map[string]history.Export
}

// HistoryRepo es el store de exports en memoria (HISTORY_BACKEND=memory y tests);
// se pierde al reiniciar.
type HistoryRepo interface {
	history.Store
	history.Lister
}

func NewHistoryRepo() HistoryRepo {
	return &historyRepo{
		byID: make(map[string]history.Export),
	}
}

func (r *historyRepo) Save(ctx context.Context, e history.Export) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.FileName == "" {
		return "", errors.New("export file name required")
	}
	e.ID = uuid.NewString()
	r.byID[e.ID] = e
	return e.ID, nil
}

func (r *historyRepo) Get(ctx context.Context, id string) (history.Export, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return history.Export{}, ErrNotFound
	}
	return e, nil
}

func (r *historyRepo) ListByRecord(ctx context.Context, recordID int) ([]history.Export, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]history.Export, 0)
	for _, e := range r.byID {
		if e.RecordID == recordID {
			out = append(out, e)
		}
	}

	// Orden estable por created_at asc
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
