package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vet-clinic-records/internal/ports/history"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryStore_WritesAndOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s, err := NewHistoryStore(dir)
	require.NoError(t, err)

	loc, err := s.Save(context.Background(), history.Export{RecordID: 1234, FileName: "medical_history_1234.txt", Content: "v1"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "medical_history_1234.txt"), loc)

	_, err = s.Save(context.Background(), history.Export{RecordID: 1234, FileName: "medical_history_1234.txt", Content: "v2"})
	require.NoError(t, err)

	b, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(b))

	_, err = os.Stat(loc + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestHistoryStore_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	s, err := NewHistoryStore(dir)
	require.NoError(t, err)

	loc, err := s.Save(context.Background(), history.Export{FileName: "../../etc/medical_history_1.txt", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "medical_history_1.txt"), loc)

	_, err = s.Save(context.Background(), history.Export{FileName: "  "})
	assert.Error(t, err)
}
