package rest

import (
	"net/http"
	"time"

	"github.com/mbRabaa/microservice-paiement/internal/transport"
)

const (
	HealthOK          = "OK"
	DatabaseConnected = "Connected"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Uptime    float64   `json:"uptime"`
}

// HealthHandler reports liveness. Database reachability has already been
// established by the availability probe when the handler runs.
type HealthHandler struct {
	*transport.BaseHandler
	startedAt time.Time
	now       func() time.Time
}

func NewHealthHandler(base *transport.BaseHandler) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		startedAt:   time.Now(),
		now:         time.Now,
	}
}

func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	h.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    HealthOK,
		Timestamp: now.UTC(),
		Database:  DatabaseConnected,
		Uptime:    now.Sub(h.startedAt).Seconds(),
	})
}
