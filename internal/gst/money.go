// Package gst implements the tax computation core of the billing system:
// paise-exact money arithmetic, CGST/SGST vs IGST splits, document total
// aggregation, and the GSTIN/HSN/state-code validators.
//
// Everything here is pure — no database, no HTTP. Services orchestrate these
// functions inside transactions.
package gst

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Paise is an amount of money as an integer count of paise (1/100 rupee).
// All stored and transmitted amounts use this type; rupees exist only for
// display formatting.
type Paise int64

// Rupees converts to a decimal rupee value for display.
func (p Paise) Rupees() decimal.Decimal {
	return decimal.NewFromInt(int64(p)).Div(decimal.NewFromInt(100))
}

// String formats the amount as a rupee string, e.g. "₹1,180.00" without grouping.
func (p Paise) String() string {
	return fmt.Sprintf("₹%s", p.Rupees().StringFixed(2))
}

// Decimal returns the raw paise count as a decimal, for arithmetic.
func (p Paise) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(p))
}

// RoundPaise rounds a decimal paise amount to the nearest whole paisa using
// round-half-up. This is the single rounding point for all tax arithmetic:
// each tax component is rounded exactly once, at the line item level.
func RoundPaise(d decimal.Decimal) Paise {
	// decimal.Round is half-away-from-zero, which equals half-up for the
	// non-negative amounts that occur here.
	return Paise(d.Round(0).IntPart())
}
