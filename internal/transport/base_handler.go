package transport

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	jsoniter "github.com/json-iterator/go"

	apperrors "github.com/mbRabaa/microservice-paiement/internal"
	"github.com/mbRabaa/microservice-paiement/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
	// Production withholds store error details from response bodies.
	Production bool
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger, production bool) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg, Production: production}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// DecodeJSON decodes the request body into dst. Numbers are kept as
// json.Number so loosely typed fields can be coerced later. An empty body
// leaves dst untouched.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// HandleError shapes err into the matching response envelope.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := apperrors.IsAppError(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			h.Logger.Warn("request rejected", "code", appErr.Code, "field", appErr.Field, "message", appErr.Message)
			h.WriteJSON(w, appErr.StatusCode, ValidationErrorResponse{
				Error:   appErr.Message,
				Details: appErr.Details,
			})
			return
		case apperrors.ErrorTypeUnavailable:
			h.Logger.Error("service unavailable", "error", appErr)
			h.WriteJSON(w, http.StatusServiceUnavailable, UnavailableResponse{
				Success: false,
				Error:   "Service unavailable",
				Message: appErr.Message,
			})
			return
		case apperrors.ErrorTypeNotFound:
			h.WriteJSON(w, http.StatusNotFound, NotFoundResponse{
				Success: false,
				Error:   appErr.Message,
			})
			return
		}
	}

	if storeErr, ok := apperrors.IsStoreError(err); ok {
		resp := StoreErrorResponse{
			Success: false,
			Error:   "Database error",
			Code:    storeErr.Code,
		}
		if !h.Production {
			resp.Details = storeErr.Message
		}
		h.Logger.Error("database error", "code", storeErr.Code, "error", storeErr.Message)
		h.WriteJSON(w, http.StatusInternalServerError, resp)
		return
	}

	h.Logger.Error("unhandled error", "error", err, "method", r.Method, "path", r.URL.Path)
	h.WriteJSON(w, http.StatusInternalServerError, InternalErrorResponse{
		Success:   false,
		Error:     "Internal server error",
		Timestamp: time.Now().UTC(),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// WriteNotFound answers an unmatched route with the list of known endpoints.
func (h *BaseHandler) WriteNotFound(w http.ResponseWriter, r *http.Request, endpoints []string) {
	h.Logger.Warn("endpoint not found", "method", r.Method, "path", r.URL.Path)
	h.WriteJSON(w, http.StatusNotFound, NotFoundResponse{
		Success:            false,
		Error:              apperrors.ErrEndpointNotFound.Message,
		AvailableEndpoints: endpoints,
	})
}
