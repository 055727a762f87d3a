package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventRecordCreated      EventType = "record.created"
	EventNoteAdded          EventType = "record.note_added"
	EventAppointmentCreated EventType = "appointment.created"
	EventAppointmentPaid    EventType = "appointment.paid"
	EventAppointmentClosed  EventType = "appointment.closed"
)

// Event es un hecho de dominio ya ocurrido (la mutación fue aplicada).
type Event struct {
	ID            string         `json:"id"`
	Type          EventType      `json:"type"`
	RecordID      int            `json:"record_id"`
	AppointmentID int            `json:"appointment_id,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
	Data          map[string]any `json:"data,omitempty"`
}

func NewEvent(t EventType, recordID, appointmentID int, at time.Time, data map[string]any) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          t,
		RecordID:      recordID,
		AppointmentID: appointmentID,
		OccurredAt:    at,
		Data:          data,
	}
}

// Publisher entrega eventos a un broker externo.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
