package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	mem "vet-clinic-records/internal/adapters/storage/memory"
	"vet-clinic-records/internal/domain/catalog"
	"vet-clinic-records/internal/domain/clinic"
	"vet-clinic-records/internal/router"
)

func newTestServer(t *testing.T, capacity int) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(newTestHandler(t, capacity))
	t.Cleanup(ts.Close)
	return ts
}

func newTestHandler(t *testing.T, capacity int) http.Handler {
	t.Helper()

	cat, err := catalog.Parse(strings.NewReader("1,Consultation,30\n2,Vaccination,20\n3,Surgery,100\n"))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	reg, err := clinic.NewRegistry(cat, clinic.WithCapacity(capacity))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	svc := clinic.NewService(reg, clinic.ServiceOptions{Store: mem.NewHistoryRepo()})

	return router.NewRouter(router.Options{Service: svc})
}

func TestHTTP_EndToEnd_AppointmentLifecycle(t *testing.T) {
	ts := newTestServer(t, 1)

	// 1) Crear ficha
	recordID := createRecord(t, ts.URL, map[string]any{
		"animal_type":    "dog",
		"name":           "Milo",
		"sex":            "m",
		"birthday":       "2020-03-01",
		"breed":          "mixed",
		"contact_person": "Ana",
		"phone_number":   "555-0101",
	})
	if recordID < 1000 || recordID > 9999 {
		t.Fatalf("record id out of range: %d", recordID)
	}
	base := "/records/" + strconv.Itoa(recordID)

	// 2) Turno con servicio desconocido => 400, no consume lugar
	{
		st, body := doReq(t, ts.URL, "POST", base+"/appointments", map[string]any{
			"date":     "2024-05-10",
			"services": []string{"1", "99"},
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unknown service, got %d body=%s", st, string(body))
		}
	}

	// 3) Turno válido
	apptID := createAppointment(t, ts.URL, recordID, "2024-05-10", []string{"1", "2"})
	apptBase := base + "/appointments/" + strconv.Itoa(apptID)

	// 4) Sin capacidad => 409
	{
		st, body := doReq(t, ts.URL, "POST", base+"/appointments", map[string]any{
			"date":     "2024-05-11",
			"services": []string{"1"},
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 capacity exceeded, got %d body=%s", st, string(body))
		}
	}

	// 5) Pago parcial
	{
		st, body := doReq(t, ts.URL, "POST", apptBase+"/payments", map[string]any{"amount": "20"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 partial payment, got %d body=%s", st, string(body))
		}
		var resp struct {
			Remaining     string `json:"remaining"`
			PaymentStatus string `json:"payment_status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Remaining != "30" || resp.PaymentStatus != "partly_paid" {
			t.Fatalf("unexpected payment response: %s", string(body))
		}
	}

	// 6) Pago que excede el saldo => 422
	{
		st, _ := doReq(t, ts.URL, "POST", apptBase+"/payments", map[string]any{"amount": "31"})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 exceeding payment, got %d", st)
		}
	}

	// 7) Pago negativo => 400
	{
		st, _ := doReq(t, ts.URL, "POST", apptBase+"/payments", map[string]any{"amount": "-1"})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 negative payment, got %d", st)
		}
	}

	// 8) Cerrar turno libera el lugar
	{
		st, body := doReq(t, ts.URL, "POST", apptBase+"/close", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 close, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", "/clinic/slots", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"open_slots":1`) {
			t.Fatalf("expected a free slot after close, got %d body=%s", st, string(body))
		}
	}

	// 9) Saldo pendiente aparece en billing aunque el turno esté cerrado
	{
		st, body := doReq(t, ts.URL, "GET", "/billing/outstanding", nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"animal_name":"Milo"`) {
			t.Fatalf("expected outstanding entry, got %d body=%s", st, string(body))
		}
	}

	// 10) Completar el pago y reintentar => 409
	{
		st, _ := doReq(t, ts.URL, "POST", apptBase+"/payments", map[string]any{"amount": "30"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 final payment, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "POST", apptBase+"/payments", map[string]any{"amount": "1"})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 already paid, got %d", st)
		}
	}

	// 11) Nota + historial
	{
		st, _ := doReq(t, ts.URL, "POST", base+"/notes", map[string]any{"text": "Healthy"})
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 add note, got %d", st)
		}
		st, body := doReq(t, ts.URL, "GET", base+"/history", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history, got %d", st)
		}
		if !strings.Contains(string(body), "Consultation, Vaccination") || !strings.Contains(string(body), "fully paid") {
			t.Fatalf("unexpected history body:\n%s", string(body))
		}
	}

	// 12) Export
	{
		st, body := doReq(t, ts.URL, "POST", base+"/history/export", nil)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 export, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_HistoryExports(t *testing.T) {
	ts := newTestServer(t, 5)

	recordID := createRecord(t, ts.URL, map[string]any{
		"animal_type": "cat", "name": "Luna", "sex": "f", "birthday": "2021-01-15",
	})
	base := "/records/" + strconv.Itoa(recordID) + "/history"
	createAppointment(t, ts.URL, recordID, "2024-05-10", []string{"3"})

	st, body := doReq(t, ts.URL, "POST", base+"/export", nil)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 export, got %d body=%s", st, string(body))
	}
	var exp struct {
		Location string `json:"location"`
	}
	_ = json.Unmarshal(body, &exp)

	st, body = doReq(t, ts.URL, "GET", base+"/exports", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list exports, got %d body=%s", st, string(body))
	}
	var list []struct {
		ID       string `json:"id"`
		FileName string `json:"file_name"`
	}
	_ = json.Unmarshal(body, &list)
	if len(list) != 1 || list[0].ID != exp.Location {
		t.Fatalf("unexpected exports list: %s", string(body))
	}

	st, body = doReq(t, ts.URL, "GET", base+"/exports/"+exp.Location, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "Surgery") {
		t.Fatalf("expected stored report, got %d body=%s", st, string(body))
	}

	if st, _ := doReq(t, ts.URL, "GET", base+"/exports/missing", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown export, got %d", st)
	}
}

func TestHTTP_PaymentInputBounds(t *testing.T) {
	ts := newTestServer(t, 5)

	recordID := createRecord(t, ts.URL, map[string]any{
		"animal_type": "dog", "name": "Rex", "sex": "m", "birthday": "2019-07-02",
	})
	apptID := createAppointment(t, ts.URL, recordID, "2024-05-10", []string{"1"})
	payURL := "/records/" + strconv.Itoa(recordID) + "/appointments/" + strconv.Itoa(apptID) + "/payments"

	start := time.Now()
	if st, _ := doReq(t, ts.URL, "POST", payURL, map[string]any{"amount": "1e50000000"}); st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 huge exponent, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", payURL, map[string]any{"amount": "1e-50000000"}); st != http.StatusBadRequest {
		t.Fatalf("expected 400 tiny exponent, got %d", st)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("extreme amounts took %s", elapsed)
	}
}

func TestHTTP_OversizedBodyRejected(t *testing.T) {
	h := newTestHandler(t, 5)

	body := `{"animal_type":"dog","name":"Rex","sex":"m","birthday":"2019-07-02","breed":"` + strings.Repeat("x", 128<<10) + `"}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 oversized body, got %d", rec.Code)
	}
}

func TestHTTP_NotFoundAndBadIDs(t *testing.T) {
	ts := newTestServer(t, 5)

	if st, _ := doReq(t, ts.URL, "GET", "/records/1", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown record, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/records/abc", nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 bad id, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/records/1/appointments/2/close", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 close on unknown record, got %d", st)
	}
}

func TestHTTP_CreateRecord_RejectsBadInput(t *testing.T) {
	ts := newTestServer(t, 5)

	st, _ := doReq(t, ts.URL, "POST", "/records", map[string]any{
		"animal_type": "dog",
		"name":        "Milo",
		"sex":         "x",
		"birthday":    "2020-03-01",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid sex, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/records", map[string]any{
		"animal_type": "dog",
		"name":        "Milo",
		"sex":         "f",
		"birthday":    "01/03/2020",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid birthday, got %d", st)
	}
}

func TestHTTP_HealthMetricsAndServices(t *testing.T) {
	ts := newTestServer(t, 5)

	if st, body := doReq(t, ts.URL, "GET", "/health", nil); st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok, got %d %s", st, string(body))
	}
	if st, body := doReq(t, ts.URL, "GET", "/metrics", nil); st != http.StatusOK || !strings.Contains(string(body), "vetclinic_http_requests_total") {
		t.Fatalf("expected metrics exposition, got %d", st)
	}

	st, body := doReq(t, ts.URL, "GET", "/services", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 services, got %d", st)
	}
	var services []struct {
		Key   string `json:"key"`
		Price int64  `json:"price"`
	}
	_ = json.Unmarshal(body, &services)
	if len(services) != 3 || services[2].Key != "3" || services[2].Price != 100 {
		t.Fatalf("unexpected services body=%s", string(body))
	}
}

func createRecord(t *testing.T, baseURL string, payload map[string]any) int {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/records", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create record, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID int `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == 0 {
		t.Fatalf("create record: missing id body=%s", string(body))
	}
	return resp.ID
}

func createAppointment(t *testing.T, baseURL string, recordID int, date string, services []string) int {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/records/"+strconv.Itoa(recordID)+"/appointments", map[string]any{
		"date":     date,
		"services": services,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create appointment, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID   int   `json:"id"`
		Cost int64 `json:"cost"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == 0 {
		t.Fatalf("create appointment: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
