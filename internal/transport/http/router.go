// Package http exposes the service's HTTP surface: liveness, metrics and
// the payment endpoint. The fan-out core is not reachable over HTTP; it is
// driven by message-creation events.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/strogmv/chatpush/internal/port"
)

// NewRouter assembles the chi router.
func NewRouter(payments port.Payments, jwtSecret []byte) *chi.Mux {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(MetricsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	paymentHandler := NewPaymentHandler(payments, jwtSecret)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/payments/intent", paymentHandler.CreateIntent)
	})

	return r
}
