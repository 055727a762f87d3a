package clinic

import (
	"strings"
	"time"

	"vet-clinic-records/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// Sex del animal: solo f/m.
type Sex string

const (
	SexFemale Sex = "f"
	SexMale   Sex = "m"
)

func ParseSex(s string) (Sex, error) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexFemale:
		return SexFemale, nil
	case SexMale:
		return SexMale, nil
	default:
		return "", ErrInvalidInput
	}
}

// Status del ciclo de vida de un turno. closed es terminal.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

type PaymentStatus string

const (
	PaymentNotPaid    PaymentStatus = "not_paid"
	PaymentPartlyPaid PaymentStatus = "partly_paid"
	PaymentFullyPaid  PaymentStatus = "fully_paid"
)

// Label es la forma legible usada en reportes y en la CLI.
func (p PaymentStatus) Label() string {
	return strings.ReplaceAll(string(p), "_", " ")
}

// ParseDate valida fechas calendario YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// Appointment es un turno con servicios, costo congelado y estado de pago.
type Appointment struct {
	ID       int
	RecordID int

	Date     time.Time
	Services []catalog.Entry // orden de selección, puede repetir
	Cost     int64           // snapshot al crear; cambios de catálogo no lo afectan

	Status     Status
	AmountPaid decimal.Decimal

	CreatedAt time.Time
	ClosedAt  *time.Time
}

// PaymentStatus se deriva siempre de AmountPaid vs Cost; no hay campo que setear.
func (a Appointment) PaymentStatus() PaymentStatus {
	cost := decimal.NewFromInt(a.Cost)
	switch {
	case a.AmountPaid.GreaterThanOrEqual(cost):
		return PaymentFullyPaid
	case a.AmountPaid.IsZero():
		return PaymentNotPaid
	default:
		return PaymentPartlyPaid
	}
}

// Remaining = Cost - AmountPaid.
func (a Appointment) Remaining() decimal.Decimal {
	return decimal.NewFromInt(a.Cost).Sub(a.AmountPaid)
}

func (a Appointment) IsOpen() bool {
	return a.Status == StatusOpen
}

// ServiceNames une los nombres en orden de selección.
func (a Appointment) ServiceNames() string {
	names := make([]string, 0, len(a.Services))
	for _, s := range a.Services {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}

func (a Appointment) clone() Appointment {
	out := a
	out.Services = append([]catalog.Entry(nil), a.Services...)
	if a.ClosedAt != nil {
		t := *a.ClosedAt
		out.ClosedAt = &t
	}
	return out
}

// Note es una entrada del log de notas (append-only).
type Note struct {
	At   time.Time
	Text string
}

// AnimalRecord es la ficha del animal; es dueña exclusiva de sus turnos.
type AnimalRecord struct {
	ID int

	AnimalType string
	Name       string
	Sex        Sex
	Birthday   time.Time
	Breed      string

	// ContactPerson es el responsable legal del animal.
	ContactPerson string
	PhoneNumber   string

	Notes        []Note
	Appointments []Appointment

	CreatedAt time.Time
}

// RecordInput son los datos de identidad para crear una ficha.
type RecordInput struct {
	AnimalType    string
	Name          string
	Sex           Sex
	Birthday      time.Time
	Breed         string
	ContactPerson string
	PhoneNumber   string
}

// PaymentResult es lo que el registro devuelve tras un pago exitoso.
type PaymentResult struct {
	AppointmentID int
	AmountPaid    decimal.Decimal
	Remaining     decimal.Decimal
	PaymentStatus PaymentStatus
}

// Outstanding es un turno con saldo pendiente.
type Outstanding struct {
	RecordID      int
	AnimalName    string
	ContactPerson string
	PhoneNumber   string
	Appointment   Appointment
}
