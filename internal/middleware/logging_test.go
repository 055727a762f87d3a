package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"vet-clinic-records/internal/middleware"
	"vet-clinic-records/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(buf *bytes.Buffer) http.Handler {
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: buf})

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.EchoRequestID)
	r.Use(middleware.AccessLog(log))
	r.Get("/records/{recordID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	return r
}

func TestAccessLog_UsesRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	h := newTestRouter(&buf)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records/1234", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	out := buf.String()
	assert.Contains(t, out, `"route":"/records/{recordID}"`)
	assert.Contains(t, out, `"path":"/records/1234"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"level":"warning"`)
}

func TestEchoRequestID(t *testing.T) {
	var buf bytes.Buffer
	h := newTestRouter(&buf)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/records/1", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
}
