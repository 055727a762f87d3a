package jobs

import (
	"context"
	"fmt"

	"vet-clinic-records/internal/domain/clinic"
	"vet-clinic-records/internal/platform/logger"
	"vet-clinic-records/internal/platform/metrics"

	"github.com/robfig/cron/v3"
)

// OutstandingSource es lo que el job necesita del servicio de clínica.
type OutstandingSource interface {
	Outstanding(ctx context.Context) []clinic.Outstanding
}

// BalanceReminder recorre los turnos con saldo pendiente y loguea un
// recordatorio por cada uno (para que recepción llame al responsable).
type BalanceReminder struct {
	src OutstandingSource
	log logger.Logger
}

func NewBalanceReminder(src OutstandingSource, log logger.Logger) *BalanceReminder {
	if log == nil {
		log = logger.Nop()
	}
	return &BalanceReminder{
		src: src,
		log: log.With(map[string]any{"component": "balance_reminder"}),
	}
}

// Run devuelve cuántos recordatorios se emitieron.
func (b *BalanceReminder) Run(ctx context.Context) int {
	items := b.src.Outstanding(ctx)
	metrics.OutstandingAppointments.Set(float64(len(items)))

	for _, o := range items {
		b.log.Info("outstanding balance", map[string]any{
			"record_id":      o.RecordID,
			"animal":         o.AnimalName,
			"contact_person": o.ContactPerson,
			"phone_number":   o.PhoneNumber,
			"appointment_id": o.Appointment.ID,
			"status":         string(o.Appointment.Status),
			"remaining":      o.Appointment.Remaining().String(),
		})
	}
	return len(items)
}

// Start agenda el job con una expresión cron estándar (5 campos).
// El caller es dueño del *cron.Cron devuelto y debe llamar Stop().
func Start(schedule string, b *BalanceReminder) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		b.Run(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("schedule balance reminder: %w", err)
	}
	c.Start()
	return c, nil
}
