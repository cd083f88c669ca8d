package gst

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for invalid document state transitions. Services return
// these and handlers map them to machine-readable 4xx codes.
var (
	ErrEmptyDocument     = errors.New("document must have at least one line item")
	ErrImmutableDocument = errors.New("finalized or cancelled documents cannot be modified")
	ErrAlreadyCancelled  = errors.New("document is already cancelled")
	ErrNotFinalized      = errors.New("only finalized documents can be cancelled")
	ErrSequenceConflict  = errors.New("document number allocation conflict")
)

// InvalidRateError reports a GST rate outside the allowed set {0,5,12,18,28}.
type InvalidRateError struct {
	Rate int64
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid GST rate %d: allowed rates are 0, 5, 12, 18, 28", e.Rate)
}

// InsufficientStockError reports a sale that would drive product stock negative.
type InsufficientStockError struct {
	Product   string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: available %s, requested %s",
		e.Product, e.Available.String(), e.Requested.String())
}

// ValidationError reports a bad field value with the specific failure reason.
// Validators never coerce — a failing value is always rejected with a reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
