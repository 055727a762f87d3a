package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vet-clinic-records/internal/ports/history"
)

// HistoryStore escribe cada export como archivo de texto en Dir.
// Un export nuevo del mismo animal pisa el anterior (nombre determinístico).
type HistoryStore struct {
	Dir string
}

func NewHistoryStore(dir string) (*HistoryStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history dir: %w", err)
	}
	return &HistoryStore{Dir: dir}, nil
}

func (s *HistoryStore) Save(ctx context.Context, e history.Export) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := filepath.Base(strings.TrimSpace(e.FileName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", errors.New("export file name required")
	}

	path := filepath.Join(s.Dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(e.Content), 0o644); err != nil {
		return "", fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write history: %w", err)
	}
	return path, nil
}
