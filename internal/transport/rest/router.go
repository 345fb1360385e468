package rest

import (
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/mbRabaa/microservice-paiement/api"
	"github.com/mbRabaa/microservice-paiement/internal/payment"
	"github.com/mbRabaa/microservice-paiement/internal/transport"
	"github.com/mbRabaa/microservice-paiement/internal/transport/middleware"
	"github.com/mbRabaa/microservice-paiement/internal/transport/swagger"
	"github.com/mbRabaa/microservice-paiement/pkg/metrics"
)

// AvailableEndpoints is listed in every 404 body.
var AvailableEndpoints = []string{
	"/health (GET)",
	"/payments (POST)",
}

type RouterDeps struct {
	Base           *transport.BaseHandler
	Prober         middleware.Prober
	PaymentHandler *payment.Handler
	Metrics        *metrics.Metrics
	MetricsPath    string
	AllowedOrigins []string
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.Base)

	metricsPath := ""
	if deps.Metrics != nil {
		metricsPath = deps.MetricsPath
	}

	// Apply global middleware. CORS preflights and metrics scrapes are answered
	// without the probe, every other request is gated by it, unmatched routes
	// included.
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.TraceID)
	router.Use(middleware.LoggingMiddleware(deps.Base.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Base))
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.Metrics(deps.Metrics))
	router.Use(middleware.Availability(deps.Prober, deps.Base, deps.Metrics, metricsPath))

	notFound := func(w http.ResponseWriter, r *http.Request) {
		deps.Base.WriteNotFound(w, r, AvailableEndpoints)
	}
	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	router.Get(swagger.SpecURL, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.OpenAPISpec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	if metricsPath != "" {
		router.Handle(metricsPath, deps.Metrics.Handler())
	}

	router.Get("/health", healthHandler.healthCheckHandler)

	if deps.PaymentHandler != nil {
		router.Post("/payments", deps.PaymentHandler.CreatePayment)
	}
}
