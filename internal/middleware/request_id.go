package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader se devuelve al cliente para poder correlacionar logs.
const RequestIDHeader = "X-Request-Id"

// EchoRequestID copia el id generado por chimw.RequestID a la respuesta.
// Debe ir después de chimw.RequestID en la cadena.
func EchoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}
