package clinic

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vet-clinic-records/internal/ports/history"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/services", listServicesHandler(svc))
	r.Get("/clinic/slots", slotsHandler(svc))
	r.Get("/billing/outstanding", outstandingHandler(svc))

	r.Route("/records", func(rr chi.Router) {
		rr.Post("/", createRecordHandler(svc))
		rr.Get("/", listRecordsHandler(svc))

		rr.Route("/{recordID}", func(rec chi.Router) {
			rec.Get("/", getRecordHandler(svc))
			rec.Post("/notes", addNoteHandler(svc))
			rec.Get("/history", historyHandler(svc))
			rec.Post("/history/export", exportHistoryHandler(svc))
			rec.Get("/history/exports", listExportsHandler(svc))
			rec.Get("/history/exports/{exportID}", getExportHandler(svc))

			rec.Post("/appointments", addAppointmentHandler(svc))
			rec.Post("/appointments/{appointmentID}/payments", payHandler(svc))
			rec.Post("/appointments/{appointmentID}/close", closeHandler(svc))
		})
	})
}

// createRecordRequest son los datos de identidad del animal.
type createRecordRequest struct {
	AnimalType    string `json:"animal_type"`
	Name          string `json:"name"`
	Sex           string `json:"sex" enums:"f,m"`
	Birthday      string `json:"birthday"` // YYYY-MM-DD
	Breed         string `json:"breed"`
	ContactPerson string `json:"contact_person"`
	PhoneNumber   string `json:"phone_number"`
}

type addAppointmentRequest struct {
	Date     string   `json:"date"`     // YYYY-MM-DD
	Services []string `json:"services"` // keys del catálogo, en orden de selección
}

type paymentRequest struct {
	Amount *decimal.Decimal `json:"amount" swaggertype:"string"`
}

type noteRequest struct {
	Text string `json:"text"`
}

type serviceResponse struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type noteResponse struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

type appointmentResponse struct {
	ID            int               `json:"id"`
	RecordID      int               `json:"record_id"`
	Date          string            `json:"date"`
	Services      []serviceResponse `json:"services"`
	Cost          int64             `json:"cost"`
	Status        Status            `json:"status"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
	AmountPaid    decimal.Decimal   `json:"amount_paid" swaggertype:"string"`
	Remaining     decimal.Decimal   `json:"remaining" swaggertype:"string"`
	CreatedAt     time.Time         `json:"created_at"`
	ClosedAt      *time.Time        `json:"closed_at,omitempty"`
}

type recordResponse struct {
	ID            int                   `json:"id"`
	AnimalType    string                `json:"animal_type"`
	Name          string                `json:"name"`
	Sex           Sex                   `json:"sex"`
	Birthday      string                `json:"birthday"`
	Breed         string                `json:"breed"`
	ContactPerson string                `json:"contact_person"`
	PhoneNumber   string                `json:"phone_number"`
	Notes         []noteResponse        `json:"notes"`
	Appointments  []appointmentResponse `json:"appointments"`
	CreatedAt     time.Time             `json:"created_at"`
}

type paymentResponse struct {
	AppointmentID int             `json:"appointment_id"`
	AmountPaid    decimal.Decimal `json:"amount_paid" swaggertype:"string"`
	Remaining     decimal.Decimal `json:"remaining" swaggertype:"string"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
}

type slotsResponse struct {
	Capacity  int `json:"capacity"`
	OpenSlots int `json:"open_slots"`
}

type exportResponse struct {
	Location string `json:"location"`
}

type exportSummaryResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

type outstandingResponse struct {
	RecordID      int                 `json:"record_id"`
	AnimalName    string              `json:"animal_name"`
	ContactPerson string              `json:"contact_person"`
	PhoneNumber   string              `json:"phone_number"`
	Appointment   appointmentResponse `json:"appointment"`
}

// listServicesHandler godoc
// @Summary Listar servicios
// @Description Devuelve el catálogo de servicios en el orden de carga.
// @Tags services
// @Produce json
// @Success 200 {array} serviceResponse
// @Router /services [get]
func listServicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := svc.Services()
		out := make([]serviceResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, serviceResponse{Key: e.Key, Name: e.Name, Price: e.Price})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// slotsHandler godoc
// @Summary Capacidad de la clínica
// @Description Capacidad total y turnos que todavía se pueden abrir.
// @Tags clinic
// @Produce json
// @Success 200 {object} slotsResponse
// @Router /clinic/slots [get]
func slotsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, slotsResponse{
			Capacity:  svc.Capacity(),
			OpenSlots: svc.OpenSlots(),
		})
	}
}

// createRecordHandler godoc
// @Summary Crear ficha de animal
// @Description Crea la ficha con un id único. No consume capacidad.
// @Tags records
// @Accept json
// @Produce json
// @Param payload body createRecordRequest true "Datos del animal; birthday en formato YYYY-MM-DD, sex f|m"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / fecha inválida / datos incompletos"
// @Failure 503 {string} string "identifier range exhausted"
// @Router /records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRecordRequest
		if err := decodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sex, err := ParseSex(req.Sex)
		if err != nil {
			http.Error(w, "sex must be f or m", http.StatusBadRequest)
			return
		}
		bd, err := ParseDate(req.Birthday)
		if err != nil {
			http.Error(w, "birthday must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := svc.CreateRecord(r.Context(), RecordInput{
			AnimalType:    req.AnimalType,
			Name:          req.Name,
			Sex:           sex,
			Birthday:      bd,
			Breed:         req.Breed,
			ContactPerson: req.ContactPerson,
			PhoneNumber:   req.PhoneNumber,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary Listar fichas
// @Tags records
// @Produce json
// @Success 200 {array} recordResponse
// @Router /records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.Records(r.Context())
		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getRecordHandler godoc
// @Summary Ver ficha
// @Tags records
// @Produce json
// @Param recordID path int true "ID de la ficha"
// @Success 200 {object} recordResponse
// @Failure 404 {string} string "record not found"
// @Router /records/{recordID} [get]
func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}
		rec, err := svc.Record(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// addNoteHandler godoc
// @Summary Agregar nota
// @Description Agrega una nota con timestamp al log de la ficha (append-only).
// @Tags records
// @Accept json
// @Param recordID path int true "ID de la ficha"
// @Param payload body noteRequest true "Texto de la nota"
// @Success 204
// @Failure 400 {string} string "invalid json / texto vacío"
// @Failure 404 {string} string "record not found"
// @Router /records/{recordID}/notes [post]
func addNoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}
		var req noteRequest
		if err := decodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := svc.AddNote(r.Context(), id, req.Text); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// addAppointmentHandler godoc
// @Summary Agregar turno
// @Description Abre un turno si hay capacidad. Todos los servicios deben existir; si alguno no existe no se aplica nada.
// @Tags appointments
// @Accept json
// @Produce json
// @Param recordID path int true "ID de la ficha"
// @Param payload body addAppointmentRequest true "Fecha YYYY-MM-DD y keys de servicios"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "fecha inválida / servicio desconocido"
// @Failure 404 {string} string "record not found"
// @Failure 409 {string} string "no open slots available for appointments"
// @Router /records/{recordID}/appointments [post]
func addAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}
		var req addAppointmentRequest
		if err := decodeJSON(w, r, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		date, err := ParseDate(req.Date)
		if err != nil {
			writeError(w, err)
			return
		}

		a, err := svc.AddAppointment(r.Context(), id, date, req.Services)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// payHandler godoc
// @Summary Pagar turno
// @Description Pago parcial o total. Se rechaza (no se recorta) si supera el saldo. Un turno cerrado también acepta pagos.
// @Tags appointments
// @Accept json
// @Produce json
// @Param recordID path int true "ID de la ficha"
// @Param appointmentID path int true "ID del turno"
// @Param payload body paymentRequest true "Monto (decimal, no negativo)"
// @Success 200 {object} paymentResponse
// @Failure 400 {string} string "invalid amount"
// @Failure 404 {string} string "record / appointment not found"
// @Failure 409 {string} string "appointment is already fully paid"
// @Failure 422 {string} string "payment amount exceeds the amount due"
// @Router /records/{recordID}/appointments/{appointmentID}/payments [post]
func payHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recordID, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}
		appointmentID, ok := pathID(w, r, "appointmentID")
		if !ok {
			return
		}

		var req paymentRequest
		if err := decodeJSON(w, r, &req); err != nil || req.Amount == nil {
			http.Error(w, ErrInvalidAmount.Error(), http.StatusBadRequest)
			return
		}

		res, err := svc.Pay(r.Context(), recordID, appointmentID, *req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, paymentResponse{
			AppointmentID: res.AppointmentID,
			AmountPaid:    res.AmountPaid,
			Remaining:     res.Remaining,
			PaymentStatus: res.PaymentStatus,
		})
	}
}

// closeHandler godoc
// @Summary Cerrar turno
// @Description Cierra el turno y libera un lugar. Idempotente.
// @Tags appointments
// @Produce json
// @Param recordID path int true "ID de la ficha"
// @Param appointmentID path int true "ID del turno"
// @Success 200 {object} appointmentResponse
// @Failure 404 {string} string "record / appointment not found"
// @Router /records/{recordID}/appointments/{appointmentID}/close [post]
func closeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recordID, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}
		appointmentID, ok := pathID(w, r, "appointmentID")
		if !ok {
			return
		}

		a, err := svc.Close(r.Context(), recordID, appointmentID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// historyHandler godoc
// @Summary Historial médico
// @Description Tabla de turnos en texto plano (mismo formato que el export).
// @Tags records
// @Produce plain
// @Param recordID path int true "ID de la ficha"
// @Success 200 {string} string "reporte tabular"
// @Failure 404 {string} string "record not found"
// @Router /records/{recordID}/history [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}
		h, err := svc.MedicalHistory(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(h.Render()))
	}
}

// exportHistoryHandler godoc
// @Summary Exportar historial médico
// @Description Persiste medical_history_{id}.txt en el store configurado (directorio o Postgres).
// @Tags records
// @Produce json
// @Param recordID path int true "ID de la ficha"
// @Success 201 {object} exportResponse
// @Failure 404 {string} string "record not found"
// @Failure 500 {string} string "internal error"
// @Router /records/{recordID}/history/export [post]
func exportHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}
		loc, err := svc.ExportHistory(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, exportResponse{Location: loc})
	}
}

// listExportsHandler godoc
// @Summary Listar exports de historial
// @Description Exports guardados de la ficha, más viejo primero. Requiere store memory o Postgres.
// @Tags records
// @Produce json
// @Param recordID path int true "ID de la ficha"
// @Success 200 {array} exportSummaryResponse
// @Failure 404 {string} string "record not found"
// @Failure 501 {string} string "history store cannot list exports"
// @Router /records/{recordID}/history/exports [get]
func listExportsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}
		items, err := svc.HistoryExports(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]exportSummaryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, exportSummaryResponse{ID: e.ID, FileName: e.FileName, CreatedAt: e.CreatedAt})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getExportHandler godoc
// @Summary Ver export de historial
// @Tags records
// @Produce plain
// @Param recordID path int true "ID de la ficha"
// @Param exportID path string true "ID del export"
// @Success 200 {string} string "reporte tabular guardado"
// @Failure 404 {string} string "record / export not found"
// @Failure 501 {string} string "history store cannot list exports"
// @Router /records/{recordID}/history/exports/{exportID} [get]
func getExportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}
		e, err := svc.HistoryExport(r.Context(), id, chi.URLParam(r, "exportID"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+e.FileName+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(e.Content))
	}
}

// outstandingHandler godoc
// @Summary Saldos pendientes
// @Description Turnos (abiertos o cerrados) con monto pendiente de pago.
// @Tags billing
// @Produce json
// @Success 200 {array} outstandingResponse
// @Router /billing/outstanding [get]
func outstandingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.Outstanding(r.Context())
		out := make([]outstandingResponse, 0, len(items))
		for _, o := range items {
			out = append(out, outstandingResponse{
				RecordID:      o.RecordID,
				AnimalName:    o.AnimalName,
				ContactPerson: o.ContactPerson,
				PhoneNumber:   o.PhoneNumber,
				Appointment:   toAppointmentResponse(o.Appointment),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(chi.URLParam(r, param)))
	if err != nil {
		http.Error(w, "invalid "+param, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRecordNotFound), errors.Is(err, ErrAppointmentNotFound), errors.Is(err, history.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidDateFormat),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrUnknownService):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrCapacityExceeded), errors.Is(err, ErrAlreadyFullyPaid):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrPaymentExceedsBalance):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrIdentifierExhausted):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, ErrExportsUnavailable):
		http.Error(w, err.Error(), http.StatusNotImplemented)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	services := make([]serviceResponse, 0, len(a.Services))
	for _, s := range a.Services {
		services = append(services, serviceResponse{Key: s.Key, Name: s.Name, Price: s.Price})
	}
	return appointmentResponse{
		ID:            a.ID,
		RecordID:      a.RecordID,
		Date:          a.Date.Format(DateLayout),
		Services:      services,
		Cost:          a.Cost,
		Status:        a.Status,
		PaymentStatus: a.PaymentStatus(),
		AmountPaid:    a.AmountPaid,
		Remaining:     a.Remaining(),
		CreatedAt:     a.CreatedAt,
		ClosedAt:      a.ClosedAt,
	}
}

func toRecordResponse(rec AnimalRecord) recordResponse {
	notes := make([]noteResponse, 0, len(rec.Notes))
	for _, n := range rec.Notes {
		notes = append(notes, noteResponse{At: n.At, Text: n.Text})
	}
	appts := make([]appointmentResponse, 0, len(rec.Appointments))
	for _, a := range rec.Appointments {
		appts = append(appts, toAppointmentResponse(a))
	}
	return recordResponse{
		ID:            rec.ID,
		AnimalType:    rec.AnimalType,
		Name:          rec.Name,
		Sex:           rec.Sex,
		Birthday:      rec.Birthday.Format(DateLayout),
		Breed:         rec.Breed,
		ContactPerson: rec.ContactPerson,
		PhoneNumber:   rec.PhoneNumber,
		Notes:         notes,
		Appointments:  appts,
		CreatedAt:     rec.CreatedAt,
	}
}

// maxBodyBytes acota los payloads JSON; ningún request legítimo se acerca.
const maxBodyBytes = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
