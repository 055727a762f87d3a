package clinic

import (
	"context"
	"errors"
	"time"

	"vet-clinic-records/internal/domain/catalog"
	"vet-clinic-records/internal/platform/logger"
	"vet-clinic-records/internal/platform/metrics"
	"vet-clinic-records/internal/ports/history"
	"vet-clinic-records/internal/ports/notify"

	"github.com/shopspring/decimal"
)

// Service es la capa de aplicación sobre el Registry: logging, métricas,
// eventos de dominio y export de historiales. Las reglas viven en el Registry.
type Service struct {
	reg       *Registry
	log       logger.Logger
	store     history.Store    // opcional
	exports   history.Lister   // opcional
	publisher notify.Publisher // opcional
	now       func() time.Time
}

type ServiceOptions struct {
	Logger logger.Logger
	Store  history.Store
	// Exports por defecto es Store si también implementa history.Lister.
	Exports   history.Lister
	Publisher notify.Publisher
}

func NewService(reg *Registry, opts ServiceOptions) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		reg:       reg,
		log:       log.With(map[string]any{"component": "clinic"}),
		store:     opts.Store,
		exports:   opts.Exports,
		publisher: opts.Publisher,
		now:       time.Now,
	}
	if s.exports == nil {
		if l, ok := opts.Store.(history.Lister); ok {
			s.exports = l
		}
	}
	s.refreshGauges()
	return s
}

func (s *Service) Services() []catalog.Entry {
	return s.reg.Catalog().Entries()
}

func (s *Service) CreateRecord(ctx context.Context, in RecordInput) (AnimalRecord, error) {
	id, err := s.reg.CreateRecord(in)
	s.observe("create_record", err)
	if err != nil {
		s.log.Warn("create record rejected", map[string]any{"error": err.Error()})
		return AnimalRecord{}, err
	}

	rec, err := s.reg.Record(id)
	if err != nil {
		return AnimalRecord{}, err
	}

	s.log.Info("record created", map[string]any{"record_id": id, "animal_type": rec.AnimalType})
	s.publish(ctx, notify.NewEvent(notify.EventRecordCreated, id, 0, s.now(), map[string]any{
		"name":        rec.Name,
		"animal_type": rec.AnimalType,
	}))
	return rec, nil
}

func (s *Service) AddAppointment(ctx context.Context, recordID int, date time.Time, serviceKeys []string) (Appointment, error) {
	id, err := s.reg.AddAppointment(recordID, date, serviceKeys)
	s.observe("add_appointment", err)
	if err != nil {
		s.log.Warn("add appointment rejected", map[string]any{"record_id": recordID, "error": err.Error()})
		return Appointment{}, err
	}
	s.refreshGauges()

	a, err := s.reg.Appointment(recordID, id)
	if err != nil {
		return Appointment{}, err
	}

	s.log.Info("appointment added", map[string]any{
		"record_id":      recordID,
		"appointment_id": id,
		"cost":           a.Cost,
	})
	s.publish(ctx, notify.NewEvent(notify.EventAppointmentCreated, recordID, id, s.now(), map[string]any{
		"date":     a.Date.Format(DateLayout),
		"services": a.ServiceNames(),
		"cost":     a.Cost,
	}))
	return a, nil
}

func (s *Service) Pay(ctx context.Context, recordID, appointmentID int, amount decimal.Decimal) (PaymentResult, error) {
	res, err := s.reg.PayForAppointment(recordID, appointmentID, amount)
	s.observe("pay", err)
	if err != nil {
		s.log.Warn("payment rejected", map[string]any{
			"record_id":      recordID,
			"appointment_id": appointmentID,
			"amount":         amount.String(),
			"error":          err.Error(),
		})
		return PaymentResult{}, err
	}
	metrics.PaymentsAmountTotal.Add(amount.InexactFloat64())

	s.log.Info("payment recorded", map[string]any{
		"record_id":      recordID,
		"appointment_id": appointmentID,
		"amount":         amount.String(),
		"remaining":      res.Remaining.String(),
		"payment_status": string(res.PaymentStatus),
	})
	s.publish(ctx, notify.NewEvent(notify.EventAppointmentPaid, recordID, appointmentID, s.now(), map[string]any{
		"amount":         amount.String(),
		"remaining":      res.Remaining.String(),
		"payment_status": string(res.PaymentStatus),
	}))
	return res, nil
}

// Close cierra el turno (idempotente) y devuelve su estado final.
func (s *Service) Close(ctx context.Context, recordID, appointmentID int) (Appointment, error) {
	changed, err := s.reg.CloseAppointment(recordID, appointmentID)
	s.observe("close_appointment", err)
	if err != nil {
		return Appointment{}, err
	}

	a, err := s.reg.Appointment(recordID, appointmentID)
	if err != nil {
		return Appointment{}, err
	}
	if !changed {
		return a, nil
	}
	s.refreshGauges()

	s.log.Info("appointment closed", map[string]any{"record_id": recordID, "appointment_id": appointmentID})
	s.publish(ctx, notify.NewEvent(notify.EventAppointmentClosed, recordID, appointmentID, s.now(), map[string]any{
		"payment_status": string(a.PaymentStatus()),
		"remaining":      a.Remaining().String(),
	}))
	return a, nil
}

func (s *Service) AddNote(ctx context.Context, recordID int, text string) error {
	err := s.reg.AddNote(recordID, text, s.now())
	s.observe("add_note", err)
	if err != nil {
		return err
	}
	s.publish(ctx, notify.NewEvent(notify.EventNoteAdded, recordID, 0, s.now(), nil))
	return nil
}

func (s *Service) Record(_ context.Context, id int) (AnimalRecord, error) {
	return s.reg.Record(id)
}

func (s *Service) Records(_ context.Context) []AnimalRecord {
	return s.reg.Records()
}

func (s *Service) MedicalHistory(_ context.Context, recordID int) (History, error) {
	return s.reg.MedicalHistory(recordID)
}

// ExportHistory renderiza el historial y lo entrega al Store configurado.
func (s *Service) ExportHistory(ctx context.Context, recordID int) (string, error) {
	if s.store == nil {
		return "", errors.New("history store not configured")
	}

	h, err := s.reg.MedicalHistory(recordID)
	if err != nil {
		return "", err
	}

	loc, err := s.store.Save(ctx, history.Export{
		RecordID:  recordID,
		FileName:  h.FileName(),
		Content:   h.Render(),
		CreatedAt: s.now(),
	})
	s.observe("export_history", err)
	if err != nil {
		s.log.Error("history export failed", map[string]any{"record_id": recordID, "error": err.Error()})
		return "", err
	}

	s.log.Info("medical history saved", map[string]any{"record_id": recordID, "location": loc})
	return loc, nil
}

// HistoryExports lista los exports guardados de una ficha (más viejo primero).
func (s *Service) HistoryExports(ctx context.Context, recordID int) ([]history.Export, error) {
	if _, err := s.reg.Record(recordID); err != nil {
		return nil, err
	}
	if s.exports == nil {
		return nil, ErrExportsUnavailable
	}
	return s.exports.ListByRecord(ctx, recordID)
}

// HistoryExport devuelve un export puntual. Un export de otra ficha cuenta como inexistente.
func (s *Service) HistoryExport(ctx context.Context, recordID int, exportID string) (history.Export, error) {
	if _, err := s.reg.Record(recordID); err != nil {
		return history.Export{}, err
	}
	if s.exports == nil {
		return history.Export{}, ErrExportsUnavailable
	}
	e, err := s.exports.Get(ctx, exportID)
	if err != nil {
		return history.Export{}, err
	}
	if e.RecordID != recordID {
		return history.Export{}, history.ErrNotFound
	}
	return e, nil
}

func (s *Service) Appointment(_ context.Context, recordID, appointmentID int) (Appointment, error) {
	return s.reg.Appointment(recordID, appointmentID)
}

func (s *Service) OpenSlots() int {
	return s.reg.OpenSlots()
}

func (s *Service) Capacity() int {
	return s.reg.Capacity()
}

func (s *Service) Outstanding(_ context.Context) []Outstanding {
	return s.reg.OutstandingBalances()
}

func (s *Service) publish(ctx context.Context, e notify.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		// La mutación ya quedó aplicada; el evento perdido solo se loguea.
		s.log.Warn("event publish failed", map[string]any{
			"event_type": string(e.Type),
			"event_id":   e.ID,
			"error":      err.Error(),
		})
	}
}

func (s *Service) observe(op string, err error) {
	metrics.OperationsTotal.WithLabelValues(op, ErrorReason(err)).Inc()
}

func (s *Service) refreshGauges() {
	metrics.OpenSlots.Set(float64(s.reg.OpenSlots()))
	metrics.OpenAppointments.Set(float64(s.reg.OpenAppointments()))
}

// ErrorReason mapea errores de dominio a una etiqueta corta (métricas, respuestas).
func ErrorReason(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrRecordNotFound):
		return "record_not_found"
	case errors.Is(err, ErrAppointmentNotFound):
		return "appointment_not_found"
	case errors.Is(err, ErrUnknownService):
		return "unknown_service"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrPaymentExceedsBalance):
		return "payment_exceeds_balance"
	case errors.Is(err, ErrAlreadyFullyPaid):
		return "already_fully_paid"
	case errors.Is(err, ErrIdentifierExhausted):
		return "identifier_exhausted"
	case errors.Is(err, ErrInvalidDateFormat):
		return "invalid_date_format"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrExportsUnavailable):
		return "exports_unavailable"
	case errors.Is(err, history.ErrNotFound):
		return "export_not_found"
	default:
		return "internal"
	}
}
