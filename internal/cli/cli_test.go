package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fs "vet-clinic-records/internal/adapters/storage/file"
	"vet-clinic-records/internal/domain/catalog"
	"vet-clinic-records/internal/domain/clinic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, capacity int) (*clinic.Service, string) {
	t.Helper()

	cat, err := catalog.New([]catalog.Entry{
		{Key: "1", Name: "Consultation", Price: 30},
		{Key: "2", Name: "Vaccination", Price: 20},
	})
	require.NoError(t, err)
	reg, err := clinic.NewRegistry(cat, clinic.WithCapacity(capacity))
	require.NoError(t, err)

	dir := t.TempDir()
	store, err := fs.NewHistoryStore(dir)
	require.NoError(t, err)

	return clinic.NewService(reg, clinic.ServiceOptions{Store: store}), dir
}

func run(t *testing.T, svc *clinic.Service, lines ...string) string {
	t.Helper()

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, New(svc, in, &out).Run(context.Background()))
	return out.String()
}

func TestCLI_CreateRecord_RepromptsSex(t *testing.T) {
	svc, _ := newTestService(t, 5)

	out := run(t, svc,
		"1", "dog", "Milo", "x", "M", "2020-03-01", "mixed", "Ana", "555-0101",
		"7",
	)

	assert.Contains(t, out, "Invalid option. Please enter 'f' for female or 'm' for male.")
	recs := svc.Records(context.Background())
	require.Len(t, recs, 1)
	assert.Equal(t, clinic.SexMale, recs[0].Sex)
	assert.Contains(t, out, fmt.Sprintf("Animal record created with ID: %d", recs[0].ID))
}

func TestCLI_CreateRecord_BadBirthday(t *testing.T) {
	svc, _ := newTestService(t, 5)

	out := run(t, svc, "1", "cat", "Luna", "f", "03/01/2020", "", "Ana", "555", "7")

	assert.Contains(t, out, "Invalid date format. Please enter the date in YYYY-MM-DD format.")
	assert.Empty(t, svc.Records(context.Background()))
}

func TestCLI_FullSession(t *testing.T) {
	svc, dir := newTestService(t, 1)
	ctx := context.Background()

	run(t, svc, "1", "dog", "Milo", "m", "2020-03-01", "mixed", "Ana", "555-0101", "7")
	recID := fmt.Sprint(svc.Records(ctx)[0].ID)

	// turno con un servicio inválido en el medio
	out := run(t, svc, "2", recID, "2024-05-10", "1", "9", "2", "done", "7")
	assert.Contains(t, out, "1. Consultation - 30 GEL")
	assert.Contains(t, out, "Invalid choice, please try again.")
	assert.Contains(t, out, "Appointment added.")

	rec, err := svc.Record(ctx, svc.Records(ctx)[0].ID)
	require.NoError(t, err)
	require.Len(t, rec.Appointments, 1)
	appt := rec.Appointments[0]
	assert.EqualValues(t, 50, appt.Cost)
	apptID := fmt.Sprint(appt.ID)

	// capacidad 1: no hay lugar
	out = run(t, svc, "2", "7")
	assert.Contains(t, out, "No open slots available for appointments.")

	// pago que excede, luego parcial
	out = run(t, svc, "4", recID, apptID, "60", "4", recID, apptID, "20", "7")
	assert.Contains(t, out, "Total cost is $50. Amount already paid is $0. Amount left to pay is $50.")
	assert.Contains(t, out, "payment amount exceeds the amount due")
	assert.Contains(t, out, "Payment successful. $20 paid, $30 remaining.")

	// monto no numérico
	out = run(t, svc, "4", recID, apptID, "abc", "7")
	assert.Contains(t, out, "Invalid amount. Please enter a numeric value.")

	// nota, cierre, historial
	out = run(t, svc,
		"5", recID, "Healthy",
		"6", recID, apptID,
		"3", recID,
		"7",
	)
	assert.Contains(t, out, "Note added.")
	assert.Contains(t, out, "Status: open, Payment Status: partly paid")
	assert.Contains(t, out, "Appointment closed.")
	assert.Contains(t, out, "Medical history saved to ")

	raw, err := os.ReadFile(filepath.Join(dir, "medical_history_"+recID+".txt"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Consultation, Vaccination")
	assert.Contains(t, string(raw), "closed")

	// pagar el resto sobre el turno cerrado
	out = run(t, svc, "4", recID, apptID, "30", "4", recID, apptID, "7")
	assert.Contains(t, out, "Payment successful. Appointment fully paid.")
	assert.Contains(t, out, "This appointment is already fully paid.")
}

func TestCLI_UnknownRecordAndBadMenu(t *testing.T) {
	svc, _ := newTestService(t, 5)

	out := run(t, svc, "9", "5", "1234", "5", "abc", "7")

	assert.Contains(t, out, "Incorrect menu item, please try again.")
	assert.Contains(t, out, "Record not found.")
	assert.Contains(t, out, "Invalid ID. Please enter a number.")
}

func TestCLI_EOFEndsSession(t *testing.T) {
	svc, _ := newTestService(t, 5)

	var out bytes.Buffer
	err := New(svc, strings.NewReader("1\ndog\n"), &out).Run(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, svc.Records(context.Background()))
}
