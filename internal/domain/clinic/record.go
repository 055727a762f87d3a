package clinic

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
)

const noteTimestampLayout = "2006-01-02 15:04:05"

// AddAppointment agrega el turno al final. La capacidad la valida el Registry antes.
func (r *AnimalRecord) AddAppointment(a Appointment) {
	a.RecordID = r.ID
	r.Appointments = append(r.Appointments, a)
}

// AddNote agrega una línea al log de notas; nunca pisa las anteriores.
func (r *AnimalRecord) AddNote(text string, at time.Time) {
	r.Notes = append(r.Notes, Note{At: at, Text: text})
}

// NotesLog renderiza las notas como "timestamp: texto" una por línea.
func (r *AnimalRecord) NotesLog() string {
	var b strings.Builder
	for _, n := range r.Notes {
		b.WriteString(n.At.Format(noteTimestampLayout))
		b.WriteString(": ")
		b.WriteString(n.Text)
		b.WriteString("\n")
	}
	return b.String()
}

func (r *AnimalRecord) appointment(id int) (*Appointment, bool) {
	for i := range r.Appointments {
		if r.Appointments[i].ID == id {
			return &r.Appointments[i], true
		}
	}
	return nil, false
}

func (r *AnimalRecord) clone() AnimalRecord {
	out := *r
	out.Notes = append([]Note(nil), r.Notes...)
	out.Appointments = make([]Appointment, 0, len(r.Appointments))
	for _, a := range r.Appointments {
		out.Appointments = append(out.Appointments, a.clone())
	}
	return out
}

// HistoryRow es una fila del historial médico.
type HistoryRow struct {
	AppointmentID int
	Date          time.Time
	Services      string
	Cost          int64
	Status        Status
	PaymentStatus PaymentStatus
	Remaining     decimal.Decimal
}

// History es la proyección tabular de los turnos de una ficha.
type History struct {
	RecordID int
	Rows     []HistoryRow
}

// Summarize no tiene efectos: una fila por turno, en orden de inserción.
func (r *AnimalRecord) Summarize() History {
	h := History{
		RecordID: r.ID,
		Rows:     make([]HistoryRow, 0, len(r.Appointments)),
	}
	for _, a := range r.Appointments {
		h.Rows = append(h.Rows, HistoryRow{
			AppointmentID: a.ID,
			Date:          a.Date,
			Services:      a.ServiceNames(),
			Cost:          a.Cost,
			Status:        a.Status,
			PaymentStatus: a.PaymentStatus(),
			Remaining:     a.Remaining(),
		})
	}
	return h
}

// FileName es el nombre determinístico del export.
func (h History) FileName() string {
	return fmt.Sprintf("medical_history_%d.txt", h.RecordID)
}

// Render arma el texto tabular del export (columnas alineadas con espacios).
func (h History) Render() string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 4, ' ', 0)

	fmt.Fprintln(tw, "ID\tDate\tServices\tCost\tStatus\tPayment Status\tAmount Left to Pay")
	for _, row := range h.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t$%d\t%s\t%s\t$%s\n",
			row.AppointmentID,
			row.Date.Format(DateLayout),
			row.Services,
			row.Cost,
			row.Status,
			row.PaymentStatus.Label(),
			row.Remaining.String(),
		)
	}
	_ = tw.Flush()
	return b.String()
}
