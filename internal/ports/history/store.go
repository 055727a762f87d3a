package history

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("history export not found")

// Export es un historial médico ya renderizado listo para persistir.
// ID lo asigna el store al guardar.
type Export struct {
	ID        string
	RecordID  int
	FileName  string
	Content   string
	CreatedAt time.Time
}

// Store persiste exports de historial. Devuelve la ubicación (path, id, etc.).
type Store interface {
	Save(ctx context.Context, e Export) (string, error)
}

// Lister lo implementan los stores que pueden releer exports previos
// (memory, postgres). El store de archivos no lo implementa.
type Lister interface {
	Get(ctx context.Context, id string) (Export, error)
	ListByRecord(ctx context.Context, recordID int) ([]Export, error)
}
