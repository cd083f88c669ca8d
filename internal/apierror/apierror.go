// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
)

// Machine-readable error codes mirrored by the frontend. Every 4xx carries
// one of these alongside the human-readable detail.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidRate       = "INVALID_RATE"
	CodeEmptyDocument     = "EMPTY_DOCUMENT"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeImmutableDocument = "IMMUTABLE_DOCUMENT"
	CodeAlreadyCancelled  = "ALREADY_CANCELLED"
	CodeNotFinalized      = "NOT_FINALIZED"
	CodeSequenceConflict  = "SEQUENCE_CONFLICT"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInternal          = "INTERNAL_ERROR"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func New(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: CodeValidation, Detail: "validation failed", Fields: fields}
}

// FromDomain maps a domain error from the tax/lifecycle core to an HTTP
// status and error envelope. Unrecognized errors come back as a generic 400
// so callers still get the message without a misleading code.
func FromDomain(err error) (int, *APIError) {
	var (
		invalidRate  *gst.InvalidRateError
		insufficient *gst.InsufficientStockError
		validation   *gst.ValidationError
	)
	switch {
	case errors.As(err, &invalidRate):
		return http.StatusBadRequest, New(CodeInvalidRate, invalidRate.Error())
	case errors.As(err, &insufficient):
		return http.StatusConflict, New(CodeInsufficientStock, insufficient.Error())
	case errors.As(err, &validation):
		return http.StatusBadRequest, New(CodeValidation, validation.Error())
	case errors.Is(err, gst.ErrEmptyDocument):
		return http.StatusBadRequest, New(CodeEmptyDocument, err.Error())
	case errors.Is(err, gst.ErrImmutableDocument):
		return http.StatusConflict, New(CodeImmutableDocument, err.Error())
	case errors.Is(err, gst.ErrAlreadyCancelled):
		return http.StatusConflict, New(CodeAlreadyCancelled, err.Error())
	case errors.Is(err, gst.ErrNotFinalized):
		return http.StatusConflict, New(CodeNotFinalized, err.Error())
	case errors.Is(err, gst.ErrSequenceConflict):
		return http.StatusConflict, New(CodeSequenceConflict, err.Error())
	default:
		return http.StatusBadRequest, New(CodeValidation, err.Error())
	}
}
