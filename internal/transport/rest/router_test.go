package rest_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	apperrors "github.com/mbRabaa/microservice-paiement/internal"
	"github.com/mbRabaa/microservice-paiement/internal/payment"
	"github.com/mbRabaa/microservice-paiement/internal/transport"
	"github.com/mbRabaa/microservice-paiement/internal/transport/rest"
	"github.com/mbRabaa/microservice-paiement/pkg/metrics"
)

const paymentBody = `{"amount":100,"paymentMode":"credit","clientEmail":"test@example.com","clientName":"Test User","route":"Paris-Lyon"}`

var _ = Describe("Router", func() {
	var (
		store  *memoryStore
		router *chi.Mux
		m      *metrics.Metrics
	)

	serve := func(method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, bytes.NewReader(body))
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		return recorder
	}

	decode := func(recorder *httptest.ResponseRecorder) map[string]interface{} {
		var body map[string]interface{}
		Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
		return body
	}

	BeforeEach(func() {
		store = &memoryStore{}
		m = metrics.New("test")
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		base := transport.NewBaseHandler(logger, false)
		service := payment.NewService(store, logger, m)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.RouterDeps{
			Base:           base,
			Prober:         store,
			PaymentHandler: payment.NewHandler(base, service),
			Metrics:        m,
			MetricsPath:    "/metrics",
			AllowedOrigins: []string{"http://localhost:8080"},
		})
	})

	Describe("GET /health", func() {
		It("reports OK when the database answers", func() {
			recorder := serve(http.MethodGet, "/health", nil, nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			body := decode(recorder)
			Expect(body["status"]).To(Equal(rest.HealthOK))
			Expect(body["database"]).To(Equal(rest.DatabaseConnected))
			Expect(body).To(HaveKey("timestamp"))
			Expect(body["uptime"]).To(BeNumerically(">=", 0))
			Expect(store.pings).To(Equal(1))
		})
	})

	Describe("POST /payments", func() {
		It("records the payment", func() {
			recorder := serve(http.MethodPost, "/payments", []byte(paymentBody), map[string]string{"Content-Type": "application/json"})

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			body := decode(recorder)
			Expect(body["success"]).To(BeTrue())
			Expect(body["receiptUrl"]).To(Equal("/payments/1/receipt"))
			Expect(store.insertCount()).To(Equal(1))
		})

		It("echoes a trace id", func() {
			recorder := serve(http.MethodPost, "/payments", []byte(paymentBody), map[string]string{"X-Trace-ID": "trace-123"})

			Expect(recorder.Header().Get("X-Trace-ID")).To(Equal("trace-123"))
		})
	})

	When("the database probe fails", func() {
		BeforeEach(func() {
			store.pingErr = apperrors.NewStoreError("08006", errors.New("connection refused"))
		})

		DescribeTable("every route answers 503",
			func(method, target string, body string) {
				recorder := serve(method, target, []byte(body), nil)

				Expect(recorder.Code).To(Equal(http.StatusServiceUnavailable))
				resp := decode(recorder)
				Expect(resp["success"]).To(BeFalse())
				Expect(resp["error"]).To(Equal("Service unavailable"))
				Expect(resp["message"]).To(Equal("Database connection problem"))
				Expect(store.insertCount()).To(BeZero())
			},
			Entry("health", http.MethodGet, "/health", ""),
			Entry("payments", http.MethodPost, "/payments", paymentBody),
			Entry("unknown route", http.MethodGet, "/unknown", ""),
		)

		It("still serves metrics scrapes", func() {
			serve(http.MethodGet, "/health", nil, nil)

			recorder := serve(http.MethodGet, "/metrics", nil, nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring("test_store_probe_failures_total 1"))
		})

		It("counts the failed probe", func() {
			serve(http.MethodGet, "/health", nil, nil)

			Expect(testutil.ToFloat64(m.ProbeFailures)).To(Equal(1.0))
		})
	})

	Describe("unmatched routes", func() {
		It("lists the available endpoints", func() {
			recorder := serve(http.MethodGet, "/unknown", nil, nil)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			body := decode(recorder)
			Expect(body["success"]).To(BeFalse())
			Expect(body["error"]).To(Equal("Endpoint not found"))
			Expect(body["availableEndpoints"]).To(ConsistOf("/health (GET)", "/payments (POST)"))
		})

		It("answers a known path with the wrong method the same way", func() {
			recorder := serve(http.MethodGet, "/payments", nil, nil)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			Expect(decode(recorder)["error"]).To(Equal("Endpoint not found"))
		})
	})

	Describe("CORS", func() {
		It("answers a preflight from an allowed origin", func() {
			recorder := serve(http.MethodOptions, "/payments", nil, map[string]string{
				"Origin":                        "http://localhost:8080",
				"Access-Control-Request-Method": http.MethodPost,
			})

			Expect(recorder.Code).To(BeElementOf(http.StatusOK, http.StatusNoContent))
			Expect(recorder.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:8080"))
			Expect(recorder.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring("POST"))
			Expect(recorder.Header().Get("Access-Control-Allow-Credentials")).To(Equal("true"))
			Expect(store.pings).To(BeZero())
		})

		It("does not allow other origins", func() {
			recorder := serve(http.MethodGet, "/health", nil, map[string]string{"Origin": "http://evil.example"})

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
		})
	})

	Describe("documentation and metrics", func() {
		It("serves the OpenAPI document", func() {
			recorder := serve(http.MethodGet, "/openapi.yml", nil, nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring("openapi:"))
		})

		It("exposes recorded payments", func() {
			serve(http.MethodPost, "/payments", []byte(paymentBody), nil)

			recorder := serve(http.MethodGet, "/metrics", nil, nil)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`test_payments_recorded_total{payment_mode="credit"} 1`))
		})
	})
})
