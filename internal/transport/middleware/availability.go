package middleware

import (
	"context"
	"net/http"

	errors "github.com/mbRabaa/microservice-paiement/internal"
	"github.com/mbRabaa/microservice-paiement/internal/transport"
	"github.com/mbRabaa/microservice-paiement/pkg/metrics"
)

type Prober interface {
	Ping(ctx context.Context) error
}

// Availability probes the store once per request and answers 503 without
// calling next when the probe fails. Requests for an exempt path skip the probe.
func Availability(prober Prober, base *transport.BaseHandler, m *metrics.Metrics, exempt ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(exempt))
	for _, path := range exempt {
		if path != "" {
			skip[path] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			if err := prober.Ping(r.Context()); err != nil {
				m.ProbeFailed()
				base.HandleError(w, r, errors.NewServiceUnavailableError("Database connection problem", err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
