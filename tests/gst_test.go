package tests

import (
	"testing"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLineTax_IntraState18Percent(t *testing.T) {
	// ₹1000.00 at 18% within Karnataka: CGST and SGST carry 9% each.
	lt, err := gst.ComputeLineTax(decimal.NewFromInt(1), 100000, 18, "29", "29")
	require.NoError(t, err)

	assert.Equal(t, gst.Paise(100000), lt.Taxable)
	assert.Equal(t, gst.Paise(9000), lt.CGST)
	assert.Equal(t, gst.Paise(9000), lt.SGST)
	assert.Equal(t, gst.Paise(0), lt.IGST)
	assert.Equal(t, gst.Paise(18000), lt.TotalTax)
	assert.Equal(t, gst.Paise(118000), lt.Total)
	assert.Equal(t, gst.TaxCGSTSGST, lt.TaxType)
}

func TestComputeLineTax_InterState18Percent(t *testing.T) {
	// Same line shipped to Maharashtra: the full 18% rides on IGST.
	lt, err := gst.ComputeLineTax(decimal.NewFromInt(1), 100000, 18, "27", "29")
	require.NoError(t, err)

	assert.Equal(t, gst.Paise(0), lt.CGST)
	assert.Equal(t, gst.Paise(0), lt.SGST)
	assert.Equal(t, gst.Paise(18000), lt.IGST)
	assert.Equal(t, gst.Paise(18000), lt.TotalTax)
	assert.Equal(t, gst.Paise(118000), lt.Total)
	assert.Equal(t, gst.TaxIGST, lt.TaxType)
}

func TestComputeLineTax_HalfUpRounding(t *testing.T) {
	// ₹9.99 at 5% intra-state: each half is 24.975 paise, rounded up to 25.
	lt, err := gst.ComputeLineTax(decimal.NewFromInt(1), 999, 5, "29", "29")
	require.NoError(t, err)
	assert.Equal(t, gst.Paise(25), lt.CGST)
	assert.Equal(t, gst.Paise(25), lt.SGST)
	assert.Equal(t, gst.Paise(50), lt.TotalTax)

	// Inter-state the single IGST component rounds once: 49.95 → 50.
	lt, err = gst.ComputeLineTax(decimal.NewFromInt(1), 999, 5, "27", "29")
	require.NoError(t, err)
	assert.Equal(t, gst.Paise(50), lt.IGST)
}

func TestComputeLineTax_FractionalQuantity(t *testing.T) {
	// 1.5 kg at ₹33.33: taxable 4999.5 → 5000 paise, then 12% on that.
	qty := decimal.RequireFromString("1.5")
	lt, err := gst.ComputeLineTax(qty, 3333, 12, "29", "29")
	require.NoError(t, err)
	assert.Equal(t, gst.Paise(5000), lt.Taxable)
	assert.Equal(t, gst.Paise(300), lt.CGST)
	assert.Equal(t, gst.Paise(300), lt.SGST)
}

func TestComputeLineTax_ZeroRated(t *testing.T) {
	lt, err := gst.ComputeLineTax(decimal.NewFromInt(2), 50000, 0, "29", "29")
	require.NoError(t, err)
	assert.Equal(t, gst.Paise(100000), lt.Taxable)
	assert.Equal(t, gst.Paise(0), lt.TotalTax)
	// Zero-rated lines still carry the split type of their supply.
	assert.Equal(t, gst.TaxCGSTSGST, lt.TaxType)

	lt, err = gst.ComputeLineTax(decimal.NewFromInt(2), 50000, 0, "07", "29")
	require.NoError(t, err)
	assert.Equal(t, gst.TaxIGST, lt.TaxType)
}

func TestComputeLineTax_RejectsInvalidInput(t *testing.T) {
	_, err := gst.ComputeLineTax(decimal.NewFromInt(1), 1000, 17, "29", "29")
	var rateErr *gst.InvalidRateError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, int64(17), rateErr.Rate)

	_, err = gst.ComputeLineTax(decimal.Zero, 1000, 18, "29", "29")
	assert.Error(t, err)

	_, err = gst.ComputeLineTax(decimal.NewFromInt(-1), 1000, 18, "29", "29")
	assert.Error(t, err)

	_, err = gst.ComputeLineTax(decimal.NewFromInt(1), -5, 18, "29", "29")
	assert.Error(t, err)
}

func TestAggregateLines_SumsWithoutRerounding(t *testing.T) {
	// Two lines of ₹9.99 at 5% intra-state. Per-line each half rounds
	// 24.975 → 25; the document sums the rounded integers (50 + 50), it does
	// not recompute 2×999×0.025 = 49.95.
	lt, err := gst.ComputeLineTax(decimal.NewFromInt(1), 999, 5, "29", "29")
	require.NoError(t, err)

	totals, err := gst.AggregateLines([]gst.LineTax{lt, lt})
	require.NoError(t, err)
	assert.Equal(t, gst.Paise(1998), totals.Subtotal)
	assert.Equal(t, gst.Paise(50), totals.CGST)
	assert.Equal(t, gst.Paise(50), totals.SGST)
	assert.Equal(t, gst.Paise(100), totals.TotalTax)
	assert.Equal(t, gst.Paise(2098), totals.GrandTotal)
}

func TestAggregateLines_EmptyDocument(t *testing.T) {
	_, err := gst.AggregateLines(nil)
	assert.ErrorIs(t, err, gst.ErrEmptyDocument)
}

func TestAggregateLines_MixedSplits(t *testing.T) {
	intra, err := gst.ComputeLineTax(decimal.NewFromInt(1), 100000, 18, "29", "29")
	require.NoError(t, err)
	inter, err := gst.ComputeLineTax(decimal.NewFromInt(1), 100000, 18, "27", "29")
	require.NoError(t, err)

	totals, err := gst.AggregateLines([]gst.LineTax{intra, inter})
	require.NoError(t, err)
	assert.Equal(t, gst.Paise(200000), totals.Subtotal)
	assert.Equal(t, gst.Paise(9000), totals.CGST)
	assert.Equal(t, gst.Paise(9000), totals.SGST)
	assert.Equal(t, gst.Paise(18000), totals.IGST)
	assert.Equal(t, gst.Paise(36000), totals.TotalTax)
	assert.Equal(t, gst.Paise(236000), totals.GrandTotal)
}

func TestRoundPaise(t *testing.T) {
	assert.Equal(t, gst.Paise(3), gst.RoundPaise(decimal.RequireFromString("2.5")))
	assert.Equal(t, gst.Paise(2), gst.RoundPaise(decimal.RequireFromString("2.4")))
	assert.Equal(t, gst.Paise(2), gst.RoundPaise(decimal.RequireFromString("2")))
	assert.Equal(t, gst.Paise(0), gst.RoundPaise(decimal.Zero))
}

func TestPaise_Rupees(t *testing.T) {
	assert.Equal(t, "1180.00", gst.Paise(118000).Rupees().StringFixed(2))
	assert.Equal(t, "0.01", gst.Paise(1).Rupees().StringFixed(2))
}
