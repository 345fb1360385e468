package internal

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION_ERROR"
	ErrorTypeUnavailable ErrorType = "SERVICE_UNAVAILABLE"
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypeInternal    ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeMissingField       ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidAmount      ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidPaymentMode ErrorCode = "INVALID_PAYMENT_MODE"
	ErrCodeInvalidBody        ErrorCode = "INVALID_BODY"

	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeEndpointNotFound   ErrorCode = "ENDPOINT_NOT_FOUND"
	ErrCodeUnhandled          ErrorCode = "UNHANDLED"
)

// AppError is a classified failure that the transport layer knows how to
// shape into a response envelope.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Field      string    `json:"field,omitempty"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewMissingFieldError reports a required field that is absent or falsy.
// expected describes the shape the caller should have sent.
func NewMissingFieldError(field, expected string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeMissingField,
		Field:      field,
		Message:    fmt.Sprintf("Missing field: %s", field),
		Details:    fmt.Sprintf("Expected type: %s", expected),
		StatusCode: http.StatusBadRequest,
	}
}

func NewInvalidAmountError(field, receivedType string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeInvalidAmount,
		Field:      field,
		Message:    fmt.Sprintf("%s must be a number", field),
		Details:    fmt.Sprintf("Received: %s", receivedType),
		StatusCode: http.StatusBadRequest,
	}
}

func NewInvalidPaymentModeError(field, details string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeInvalidPaymentMode,
		Field:      field,
		Message:    "Invalid payment mode",
		Details:    details,
		StatusCode: http.StatusBadRequest,
	}
}

func NewServiceUnavailableError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Code:       ErrCodeServiceUnavailable,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeUnhandled,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrEndpointNotFound = NewNotFoundError("Endpoint not found", ErrCodeEndpointNotFound)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StoreError is a failure reported by the relational store. Code and Message
// are the store's own, uninterpreted.
type StoreError struct {
	Code    string
	Message string
	Cause   error
}

func NewStoreError(code string, cause error) *StoreError {
	se := &StoreError{Code: code, Cause: cause}
	if cause != nil {
		se.Message = cause.Error()
	}
	return se
}

func (e *StoreError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("store error (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("store error: %s", e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

func IsStoreError(err error) (*StoreError, bool) {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr, true
	}
	return nil, false
}
