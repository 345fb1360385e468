package payment

import (
	"net/http"

	errors "github.com/mbRabaa/microservice-paiement/internal"
	"github.com/mbRabaa/microservice-paiement/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// CreatePayment handles POST /payments
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var submission Submission
	if err := h.DecodeJSON(r, &submission); err != nil {
		h.Logger.Warn("CreatePayment: failed to parse request body", "error", err)
		h.HandleError(w, r, errors.NewValidationError("Invalid request body", errors.ErrCodeInvalidBody).
			WithDetails(err.Error()))
		return
	}

	record, err := h.Service.RecordPayment(r.Context(), &submission)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, CreatePaymentResponse{
		Success:    true,
		Payment:    record.ToResponse(),
		ReceiptURL: ReceiptURL(record.ID),
	})
}
