package clinic

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"vet-clinic-records/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

const DefaultCapacity = 20

// Registry es el único punto de entrada para mutar fichas y turnos.
// Las mutaciones toman el lock de escritura completo, así el chequeo de
// capacidad/unicidad y la mutación son atómicos.
type Registry struct {
	mu sync.RWMutex

	records map[int]*AnimalRecord
	order   []int
	used    map[int]struct{}

	catalog  *catalog.Catalog
	capacity int
	ids      *IDAllocator
	now      func() time.Time
}

type Option func(*Registry)

func WithCapacity(n int) Option {
	return func(r *Registry) { r.capacity = n }
}

func WithIDAllocator(a *IDAllocator) Option {
	return func(r *Registry) { r.ids = a }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(cat *catalog.Catalog, opts ...Option) (*Registry, error) {
	r := &Registry{
		records:  make(map[int]*AnimalRecord),
		used:     make(map[int]struct{}),
		catalog:  cat,
		capacity: DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: catalog required", ErrInvalidInput)
	}
	if r.capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	if r.ids == nil {
		r.ids = NewIDAllocator()
	}
	return r, nil
}

func (r *Registry) Catalog() *catalog.Catalog {
	return r.catalog
}

// CreateRecord no consume capacidad: la capacidad aplica solo a turnos.
func (r *Registry) CreateRecord(in RecordInput) (int, error) {
	in.AnimalType = strings.TrimSpace(in.AnimalType)
	in.Name = strings.TrimSpace(in.Name)
	if in.AnimalType == "" || in.Name == "" {
		return 0, ErrInvalidInput
	}
	if in.Sex != SexFemale && in.Sex != SexMale {
		return 0, ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.allocateLocked()
	if err != nil {
		return 0, err
	}

	r.records[id] = &AnimalRecord{
		ID:            id,
		AnimalType:    in.AnimalType,
		Name:          in.Name,
		Sex:           in.Sex,
		Birthday:      in.Birthday,
		Breed:         strings.TrimSpace(in.Breed),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		CreatedAt:     r.now(),
	}
	r.order = append(r.order, id)
	return id, nil
}

// AddAppointment valida ficha, capacidad y todos los servicios antes de tocar estado.
func (r *Registry) AddAppointment(recordID int, date time.Time, serviceKeys []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[recordID]
	if !ok {
		return 0, ErrRecordNotFound
	}
	if r.openCountLocked() >= r.capacity {
		return 0, ErrCapacityExceeded
	}

	services := make([]catalog.Entry, 0, len(serviceKeys))
	var cost int64
	for _, key := range serviceKeys {
		e, ok := r.catalog.Lookup(key)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownService, key)
		}
		services = append(services, e)
		cost += e.Price
	}

	id, err := r.allocateLocked()
	if err != nil {
		return 0, err
	}

	rec.AddAppointment(Appointment{
		ID:         id,
		Date:       date,
		Services:   services,
		Cost:       cost,
		Status:     StatusOpen,
		AmountPaid: decimal.Zero,
		CreatedAt:  r.now(),
	})
	return id, nil
}

// PayForAppointment registra un pago parcial o total. No se permite sobrepago
// (se rechaza, no se recorta). Un turno cerrado sigue aceptando pagos.
func (r *Registry) PayForAppointment(recordID, appointmentID int, amount decimal.Decimal) (PaymentResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := r.appointmentLocked(recordID, appointmentID)
	if err != nil {
		return PaymentResult{}, err
	}
	if amount.IsNegative() {
		return PaymentResult{}, ErrInvalidAmount
	}
	amount, err = boundAmount(amount)
	if err != nil {
		return PaymentResult{}, err
	}
	if a.PaymentStatus() == PaymentFullyPaid {
		return PaymentResult{}, ErrAlreadyFullyPaid
	}
	if amount.Exponent() > maxAmountExponent || amount.GreaterThan(a.Remaining()) {
		return PaymentResult{}, fmt.Errorf("%w: amount left to pay is $%s", ErrPaymentExceedsBalance, a.Remaining())
	}

	a.AmountPaid = a.AmountPaid.Add(amount)

	return PaymentResult{
		AppointmentID: a.ID,
		AmountPaid:    a.AmountPaid,
		Remaining:     a.Remaining(),
		PaymentStatus: a.PaymentStatus(),
	}, nil
}

// Límites de exponente para montos. Comparar decimales reescala ambos
// operandos (10^|exp|), así que exponentes extremos se filtran antes del Cmp.
// Cualquier coeficiente no nulo con exponente > 18 supera un costo int64.
const (
	maxAmountExponent = 18
	maxAmountScale    = 10
)

// boundAmount normaliza el cero y rechaza escalas absurdas sin reescalar.
func boundAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() == 0 {
		return decimal.Zero, nil
	}
	if -amount.Exponent() > maxAmountScale {
		return decimal.Decimal{}, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, maxAmountScale)
	}
	return amount, nil
}

// CloseAppointment es idempotente: cerrar dos veces no falla ni cambia nada.
// Devuelve true si el turno pasó de open a closed en esta llamada.
func (r *Registry) CloseAppointment(recordID, appointmentID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, err := r.appointmentLocked(recordID, appointmentID)
	if err != nil {
		return false, err
	}
	if a.Status == StatusClosed {
		return false, nil
	}

	now := r.now()
	a.Status = StatusClosed
	a.ClosedAt = &now
	return true, nil
}

func (r *Registry) AddNote(recordID int, text string, at time.Time) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[recordID]
	if !ok {
		return ErrRecordNotFound
	}
	rec.AddNote(text, at)
	return nil
}

// MedicalHistory delega en AnimalRecord.Summarize; persistir el reporte es
// responsabilidad del colaborador.
func (r *Registry) MedicalHistory(recordID int) (History, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[recordID]
	if !ok {
		return History{}, ErrRecordNotFound
	}
	return rec.Summarize(), nil
}

// OpenSlots nunca es negativo aunque la capacidad se haya reducido por debajo
// de los turnos abiertos.
func (r *Registry) OpenSlots() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	free := r.capacity - r.openCountLocked()
	if free < 0 {
		return 0
	}
	return free
}

func (r *Registry) Capacity() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.capacity
}

// SetCapacity reconfigura la capacidad. No cierra turnos abiertos existentes.
func (r *Registry) SetCapacity(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capacity = n
	return nil
}

// Record devuelve una copia; mutarla no afecta al registro.
func (r *Registry) Record(id int) (AnimalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return AnimalRecord{}, ErrRecordNotFound
	}
	return rec.clone(), nil
}

// Records en orden de creación.
func (r *Registry) Records() []AnimalRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]AnimalRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id].clone())
	}
	return out
}

// Appointment devuelve una copia del turno.
func (r *Registry) Appointment(recordID, appointmentID int) (Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, err := r.appointmentLocked(recordID, appointmentID)
	if err != nil {
		return Appointment{}, err
	}
	return a.clone(), nil
}

func (r *Registry) OpenAppointments() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.openCountLocked()
}

// OutstandingBalances lista turnos con saldo pendiente (abiertos o cerrados).
func (r *Registry) OutstandingBalances() []Outstanding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Outstanding, 0)
	for _, id := range r.order {
		rec := r.records[id]
		for _, a := range rec.Appointments {
			if !a.Remaining().IsPositive() {
				continue
			}
			out = append(out, Outstanding{
				RecordID:      rec.ID,
				AnimalName:    rec.Name,
				ContactPerson: rec.ContactPerson,
				PhoneNumber:   rec.PhoneNumber,
				Appointment:   a.clone(),
			})
		}
	}
	return out
}

func (r *Registry) appointmentLocked(recordID, appointmentID int) (*Appointment, error) {
	rec, ok := r.records[recordID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	a, ok := rec.appointment(appointmentID)
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return a, nil
}

func (r *Registry) openCountLocked() int {
	n := 0
	for _, rec := range r.records {
		for _, a := range rec.Appointments {
			if a.IsOpen() {
				n++
			}
		}
	}
	return n
}

func (r *Registry) allocateLocked() (int, error) {
	id, err := r.ids.Allocate(func(candidate int) bool {
		_, taken := r.used[candidate]
		return taken
	})
	if err != nil {
		return 0, err
	}
	r.used[id] = struct{}{}
	return id, nil
}
