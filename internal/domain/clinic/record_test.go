package clinic

import (
	"strings"
	"testing"
	"time"

	"vet-clinic-records/internal/domain/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_RowsInInsertionOrder(t *testing.T) {
	rec := &AnimalRecord{ID: 1234}
	rec.AddAppointment(Appointment{
		ID:         5001,
		Date:       time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Services:   []catalog.Entry{{Key: "1", Name: "Consultation", Price: 30}, {Key: "2", Name: "Vaccination", Price: 20}},
		Cost:       50,
		Status:     StatusOpen,
		AmountPaid: decimal.NewFromInt(20),
	})
	rec.AddAppointment(Appointment{
		ID:         4001,
		Date:       time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		Services:   []catalog.Entry{{Key: "3", Name: "Surgery", Price: 100}},
		Cost:       100,
		Status:     StatusClosed,
		AmountPaid: decimal.NewFromInt(100),
	})

	h := rec.Summarize()
	require.Len(t, h.Rows, 2)
	assert.Equal(t, 5001, h.Rows[0].AppointmentID)
	assert.Equal(t, "Consultation, Vaccination", h.Rows[0].Services)
	assert.Equal(t, PaymentPartlyPaid, h.Rows[0].PaymentStatus)
	assert.True(t, h.Rows[0].Remaining.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 4001, h.Rows[1].AppointmentID)
	assert.Equal(t, PaymentFullyPaid, h.Rows[1].PaymentStatus)
	assert.Equal(t, 1234, rec.Appointments[0].RecordID)
}

func TestHistory_Render(t *testing.T) {
	h := History{
		RecordID: 1234,
		Rows: []HistoryRow{{
			AppointmentID: 5001,
			Date:          time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			Services:      "Consultation, Vaccination",
			Cost:          50,
			Status:        StatusOpen,
			PaymentStatus: PaymentPartlyPaid,
			Remaining:     decimal.RequireFromString("30"),
		}},
	}

	assert.Equal(t, "medical_history_1234.txt", h.FileName())

	lines := strings.Split(strings.TrimRight(h.Render(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		[]string{"ID", "Date", "Services", "Cost", "Status", "Payment", "Status", "Amount", "Left", "to", "Pay"},
		strings.Fields(lines[0]))
	assert.Equal(t,
		[]string{"5001", "2025-01-02", "Consultation,", "Vaccination", "$50", "open", "partly", "paid", "$30"},
		strings.Fields(lines[1]))
}

func TestHistory_RenderEmpty(t *testing.T) {
	out := History{RecordID: 1}.Render()
	assert.True(t, strings.HasPrefix(out, "ID"))
	assert.Equal(t, 1, strings.Count(out, "\n"))
}
