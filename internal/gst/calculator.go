package gst

import (
	"github.com/shopspring/decimal"
)

// TaxType identifies which tax split applies to a line item.
type TaxType string

const (
	// TaxCGSTSGST is the intra-state split: CGST and SGST in equal halves.
	TaxCGSTSGST TaxType = "CGST_SGST"
	// TaxIGST is the inter-state treatment: IGST carries the full rate.
	TaxIGST TaxType = "IGST"
)

// AllowedRates are the only GST rates the system accepts.
var AllowedRates = []int64{0, 5, 12, 18, 28}

// ValidRate reports whether rate is one of the five allowed GST rates.
func ValidRate(rate int64) bool {
	for _, r := range AllowedRates {
		if r == rate {
			return true
		}
	}
	return false
}

// LineTax is the per-line tax snapshot. Each component was rounded exactly
// once; aggregation sums these integers without re-rounding.
type LineTax struct {
	Taxable  Paise
	CGST     Paise
	SGST     Paise
	IGST     Paise
	TotalTax Paise
	Total    Paise
	TaxType  TaxType
}

// ComputeLineTax calculates the tax split for one line item.
//
// Intra-state (supply state equals business state):
// cgst = sgst = round(taxable × rate / 2 / 100). Inter-state:
// igst = round(taxable × rate / 100). Rounding is half-up to the nearest
// paisa, applied once per component. Zero-rated lines still carry the tax
// type of their supply so registers break them out correctly.
func ComputeLineTax(quantity decimal.Decimal, unitRate Paise, gstRate int64, supplyStateCode, businessStateCode string) (LineTax, error) {
	if !ValidRate(gstRate) {
		return LineTax{}, &InvalidRateError{Rate: gstRate}
	}
	if !quantity.IsPositive() {
		return LineTax{}, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if unitRate < 0 {
		return LineTax{}, &ValidationError{Field: "unit_price_paise", Reason: "must not be negative"}
	}

	taxable := RoundPaise(quantity.Mul(unitRate.Decimal()))
	rate := decimal.NewFromInt(gstRate)

	var lt LineTax
	lt.Taxable = taxable

	switch {
	case supplyStateCode == businessStateCode:
		half := RoundPaise(taxable.Decimal().Mul(rate).Div(decimal.NewFromInt(200)))
		lt.CGST = half
		lt.SGST = half
		lt.TaxType = TaxCGSTSGST
	default:
		lt.IGST = RoundPaise(taxable.Decimal().Mul(rate).Div(decimal.NewFromInt(100)))
		lt.TaxType = TaxIGST
	}

	lt.TotalTax = lt.CGST + lt.SGST + lt.IGST
	lt.Total = lt.Taxable + lt.TotalTax
	return lt, nil
}

// DocumentTotals holds the document-level sums of per-line components.
// Stored on the document at creation and never recomputed afterwards.
type DocumentTotals struct {
	Subtotal   Paise
	CGST       Paise
	SGST       Paise
	IGST       Paise
	TotalTax   Paise
	GrandTotal Paise
}

// AggregateLines sums already-rounded line taxes into document totals.
// No rounding happens here: the inputs are integers.
func AggregateLines(lines []LineTax) (DocumentTotals, error) {
	if len(lines) == 0 {
		return DocumentTotals{}, ErrEmptyDocument
	}
	var t DocumentTotals
	for _, l := range lines {
		t.Subtotal += l.Taxable
		t.CGST += l.CGST
		t.SGST += l.SGST
		t.IGST += l.IGST
	}
	t.TotalTax = t.CGST + t.SGST + t.IGST
	t.GrandTotal = t.Subtotal + t.TotalTax
	return t, nil
}
