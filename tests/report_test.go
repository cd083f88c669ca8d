package tests

import (
	"context"
	"testing"
	"time"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/google/uuid"
)

// reportFixture drives real invoice and purchase services against shared
// stubs so that the registers read exactly what the lifecycle wrote.
type reportFixture struct {
	inv invoiceFixture
	pur purchaseFixture
	svc service.ReportService
}

func newReportFixture() *reportFixture {
	inv := newInvoiceFixture()
	pur := newPurchaseFixture()
	// Share one business profile so both number sequences draw from it.
	pur.businessRepo.profile = inv.businessRepo.profile
	return &reportFixture{
		inv: *inv,
		pur: *pur,
		svc: service.NewReportService(inv.invoiceRepo, pur.purchaseRepo),
	}
}

func (f *reportFixture) finalizedSale(t *testing.T, qty int64) {
	t.Helper()
	draft := f.inv.createDraft(t, qty)
	_, err := f.inv.svc.Finalize(context.Background(), uuid.MustParse(draft.ID))
	require.NoError(t, err)
}

func todayRange() dto.RegisterFilter {
	today := time.Now().Format("2006-01-02")
	return dto.RegisterFilter{FromDate: today, ToDate: today}
}

func TestSalesRegister(t *testing.T) {
	f := newReportFixture()
	f.finalizedSale(t, 1) // ₹1000 @18% intra
	f.finalizedSale(t, 2) // ₹2000 @18% intra

	report, err := f.svc.SalesRegister(context.Background(), todayRange())
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, 2, report.Summary.CountDocuments)
	assert.Equal(t, 0, report.Summary.CountCancelled)
	assert.Equal(t, int64(300000), report.Summary.TaxablePaise)
	assert.Equal(t, int64(27000), report.Summary.CGSTPaise)
	assert.Equal(t, int64(27000), report.Summary.SGSTPaise)
	assert.Equal(t, int64(54000), report.Summary.TotalGSTPaise)
	assert.Equal(t, int64(354000), report.Summary.GrandTotalPaise)
}

func TestSalesRegister_CancelledRowsExcludedFromSummary(t *testing.T) {
	f := newReportFixture()
	f.finalizedSale(t, 1)

	draft := f.inv.createDraft(t, 2)
	id := uuid.MustParse(draft.ID)
	_, err := f.inv.svc.Finalize(context.Background(), id)
	require.NoError(t, err)
	_, err = f.inv.svc.Cancel(context.Background(), id, "customer returned the order")
	require.NoError(t, err)

	// Without the flag cancelled documents disappear entirely.
	report, err := f.svc.SalesRegister(context.Background(), todayRange())
	require.NoError(t, err)
	assert.Len(t, report.Rows, 1)
	assert.Equal(t, int64(100000), report.Summary.TaxablePaise)

	// With the flag they are listed but still stay out of the totals.
	filter := todayRange()
	filter.IncludeCancelled = true
	report, err = f.svc.SalesRegister(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, report.Rows, 2)
	assert.Equal(t, 1, report.Summary.CountDocuments)
	assert.Equal(t, 1, report.Summary.CountCancelled)
	assert.Equal(t, int64(100000), report.Summary.TaxablePaise)
}

func TestSalesRegister_DraftsNeverAppear(t *testing.T) {
	f := newReportFixture()
	f.inv.createDraft(t, 1)

	report, err := f.svc.SalesRegister(context.Background(), todayRange())
	require.NoError(t, err)
	assert.Empty(t, report.Rows)
	assert.Equal(t, 0, report.Summary.CountDocuments)
}

func TestSalesRegister_RejectsInvertedRange(t *testing.T) {
	f := newReportFixture()
	_, err := f.svc.SalesRegister(context.Background(), dto.RegisterFilter{
		FromDate: "2026-02-01",
		ToDate:   "2026-01-01",
	})
	assert.ErrorContains(t, err, "must not precede")
}

func TestPurchaseRegister(t *testing.T) {
	f := newReportFixture()
	draft := f.pur.createDraft(t, []dto.PurchaseItemRequest{
		{ItemName: "Keyboard carton", HSNCode: "84716060", Quantity: decimal.NewFromInt(10), UnitRatePaise: 60000, GSTRate: 18},
	})
	_, err := f.pur.svc.Finalize(context.Background(), uuid.MustParse(draft.ID))
	require.NoError(t, err)

	report, err := f.svc.PurchaseRegister(context.Background(), todayRange())
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "PUR000001", report.Rows[0].PurchaseNumber)
	assert.Equal(t, "WC/2026/0042", report.Rows[0].SupplierInvoiceNo)
	assert.Equal(t, int64(600000), report.Summary.TaxablePaise)
	assert.Equal(t, int64(108000), report.Summary.IGSTPaise)
}

func TestGSTSummary_NetsOutputAgainstInput(t *testing.T) {
	f := newReportFixture()
	// Output: one intra-state sale of ₹1000 @18% → CGST 9000 + SGST 9000.
	f.finalizedSale(t, 1)
	// Input: inter-state purchase of ₹6000 @18% → IGST 108000.
	draft := f.pur.createDraft(t, []dto.PurchaseItemRequest{
		{ItemName: "Keyboard carton", HSNCode: "84716060", Quantity: decimal.NewFromInt(10), UnitRatePaise: 60000, GSTRate: 18},
	})
	_, err := f.pur.svc.Finalize(context.Background(), uuid.MustParse(draft.ID))
	require.NoError(t, err)

	summary, err := f.svc.GSTSummary(context.Background(), todayRange())
	require.NoError(t, err)

	assert.Equal(t, int64(9000), summary.OutputCGSTPaise)
	assert.Equal(t, int64(9000), summary.OutputSGSTPaise)
	assert.Equal(t, int64(0), summary.OutputIGSTPaise)
	assert.Equal(t, int64(18000), summary.OutputTotalPaise)

	assert.Equal(t, int64(108000), summary.InputIGSTPaise)
	assert.Equal(t, int64(108000), summary.InputTotalPaise)

	assert.Equal(t, int64(9000), summary.NetCGSTPaise)
	assert.Equal(t, int64(-108000), summary.NetIGSTPaise)
	assert.Equal(t, int64(-90000), summary.NetTotalPaise)
}
