package tests

import (
	"context"
	"testing"
	"time"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/google/uuid"
)

type invoiceFixture struct {
	svc          service.InvoiceService
	stock        service.StockService
	invoiceRepo  *stubInvoiceRepo
	productRepo  *stubProductRepo
	customerRepo *stubCustomerRepo
	businessRepo *stubBusinessRepo
	movementRepo *stubMovementRepo
	customer     *model.Customer
	product      *model.Product
	userID       uuid.UUID
}

func newInvoiceFixture() *invoiceFixture {
	f := &invoiceFixture{
		invoiceRepo:  newStubInvoiceRepo(),
		productRepo:  newStubProductRepo(),
		customerRepo: newStubCustomerRepo(),
		businessRepo: &stubBusinessRepo{},
		movementRepo: &stubMovementRepo{},
		userID:       uuid.New(),
	}
	f.businessRepo.profile = &model.BusinessProfile{
		ID:             uuid.New(),
		Name:           "Sharma Electronics",
		GSTIN:          "29ABCDE1234F1Z5",
		StateCode:      "29",
		Address:        "12 MG Road",
		City:           "Bengaluru",
		Pincode:        "560001",
		InvoicePrefix:  "INV",
		PurchasePrefix: "PUR",
	}
	f.customer = f.customerRepo.add(&model.Customer{
		Name:         "Ravi Traders",
		CustomerType: "B2C",
		Address:      "4 Brigade Road",
		State:        "Karnataka",
		StateCode:    "29",
		Active:       true,
	})
	f.product = f.productRepo.add(&model.Product{
		Name:          "USB Keyboard",
		HSNCode:       "84716060",
		GSTRate:       18,
		PricePaise:    100000,
		StockQuantity: decimal.NewFromInt(10),
		Unit:          "PCS",
		Active:        true,
	})
	f.stock = service.NewStockService(f.productRepo, f.movementRepo)
	f.svc = service.NewInvoiceService(f.invoiceRepo, f.productRepo, f.customerRepo, f.businessRepo, f.stock, nil)
	return f
}

func (f *invoiceFixture) createDraft(t *testing.T, qty int64) *dto.InvoiceResponse {
	t.Helper()
	resp, err := f.svc.CreateDraft(context.Background(), f.userID, dto.CreateInvoiceRequest{
		CustomerID:  f.customer.ID.String(),
		InvoiceDate: time.Now().Format("2006-01-02"),
		Items: []dto.InvoiceItemRequest{
			{ProductID: f.product.ID.String(), Quantity: decimal.NewFromInt(qty)},
		},
	})
	require.NoError(t, err)
	return resp
}

func TestInvoiceCreateDraft(t *testing.T) {
	f := newInvoiceFixture()
	resp := f.createDraft(t, 2)

	assert.Equal(t, "draft", resp.Status)
	assert.Nil(t, resp.InvoiceNumber)
	assert.Equal(t, "29", resp.PlaceOfSupply)
	assert.Equal(t, int64(200000), resp.SubtotalPaise)
	assert.Equal(t, int64(18000), resp.CGSTPaise)
	assert.Equal(t, int64(18000), resp.SGSTPaise)
	assert.Equal(t, int64(0), resp.IGSTPaise)
	assert.Equal(t, int64(236000), resp.GrandTotalPaise)

	// Draft creation never touches stock.
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, f.movementRepo.movements)
}

func TestInvoiceCreateDraft_InterState(t *testing.T) {
	f := newInvoiceFixture()
	pos := "27"
	resp, err := f.svc.CreateDraft(context.Background(), f.userID, dto.CreateInvoiceRequest{
		CustomerID:    f.customer.ID.String(),
		InvoiceDate:   time.Now().Format("2006-01-02"),
		PlaceOfSupply: &pos,
		Items: []dto.InvoiceItemRequest{
			{ProductID: f.product.ID.String(), Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.CGSTPaise)
	assert.Equal(t, int64(18000), resp.IGSTPaise)
	assert.Equal(t, "IGST", resp.Items[0].TaxType)
}

func TestInvoiceCreateDraft_RejectsFutureDate(t *testing.T) {
	f := newInvoiceFixture()
	_, err := f.svc.CreateDraft(context.Background(), f.userID, dto.CreateInvoiceRequest{
		CustomerID:  f.customer.ID.String(),
		InvoiceDate: time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
		Items: []dto.InvoiceItemRequest{
			{ProductID: f.product.ID.String(), Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorContains(t, err, "future")

	// Today's calendar date is never "future", whatever the server timezone.
	_, err = f.svc.CreateDraft(context.Background(), f.userID, dto.CreateInvoiceRequest{
		CustomerID:  f.customer.ID.String(),
		InvoiceDate: time.Now().Format("2006-01-02"),
		Items: []dto.InvoiceItemRequest{
			{ProductID: f.product.ID.String(), Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.NoError(t, err)
}

func TestInvoiceCreateDraft_RejectsClientTotalMismatch(t *testing.T) {
	f := newInvoiceFixture()
	_, err := f.svc.CreateDraft(context.Background(), f.userID, dto.CreateInvoiceRequest{
		CustomerID:  f.customer.ID.String(),
		InvoiceDate: time.Now().Format("2006-01-02"),
		Items: []dto.InvoiceItemRequest{
			{ProductID: f.product.ID.String(), Quantity: decimal.NewFromInt(1)},
		},
		ClientTotals: &dto.ClientTotals{
			SubtotalPaise:   100000,
			TotalGSTPaise:   18000,
			GrandTotalPaise: 117999, // off by one paisa
		},
	})
	var vErr *gst.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "client_totals", vErr.Field)
}

func TestInvoiceCreateDraft_RejectsInactiveProduct(t *testing.T) {
	f := newInvoiceFixture()
	f.product.Active = false
	_, err := f.svc.CreateDraft(context.Background(), f.userID, dto.CreateInvoiceRequest{
		CustomerID:  f.customer.ID.String(),
		InvoiceDate: time.Now().Format("2006-01-02"),
		Items: []dto.InvoiceItemRequest{
			{ProductID: f.product.ID.String(), Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorContains(t, err, "inactive")
}

func TestInvoiceFinalize(t *testing.T) {
	f := newInvoiceFixture()
	draft := f.createDraft(t, 3)
	id := uuid.MustParse(draft.ID)

	resp, err := f.svc.Finalize(context.Background(), id)
	require.NoError(t, err)

	require.NotNil(t, resp.InvoiceNumber)
	assert.Equal(t, "INV000001", *resp.InvoiceNumber)
	assert.Equal(t, "finalized", resp.Status)
	require.NotNil(t, resp.FinalizedAt)

	// Timestamps go out as RFC3339 UTC.
	ts, perr := time.Parse(time.RFC3339, *resp.FinalizedAt)
	require.NoError(t, perr)
	assert.Equal(t, time.UTC, ts.Location())

	// Stock deducted exactly once, with an audit movement.
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(7)))
	movements, _ := f.movementRepo.ListByReference(context.Background(), id)
	require.Len(t, movements, 1)
	assert.Equal(t, service.MovementSale, movements[0].Type)
	assert.True(t, movements[0].Quantity.Equal(decimal.NewFromInt(-3)))
	assert.True(t, movements[0].StockBefore.Equal(decimal.NewFromInt(10)))
	assert.True(t, movements[0].StockAfter.Equal(decimal.NewFromInt(7)))
}

func TestInvoiceFinalize_SequentialNumbers(t *testing.T) {
	f := newInvoiceFixture()
	first := f.createDraft(t, 1)
	second := f.createDraft(t, 1)

	r1, err := f.svc.Finalize(context.Background(), uuid.MustParse(first.ID))
	require.NoError(t, err)
	r2, err := f.svc.Finalize(context.Background(), uuid.MustParse(second.ID))
	require.NoError(t, err)

	assert.Equal(t, "INV000001", *r1.InvoiceNumber)
	assert.Equal(t, "INV000002", *r2.InvoiceNumber)
}

func TestInvoiceFinalize_InsufficientStock(t *testing.T) {
	f := newInvoiceFixture()
	draft := f.createDraft(t, 3)
	f.product.StockQuantity = decimal.NewFromInt(2)

	_, err := f.svc.Finalize(context.Background(), uuid.MustParse(draft.ID))
	var stockErr *gst.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "USB Keyboard", stockErr.Product)

	// Document stays a draft and stock is untouched.
	inv, _ := f.invoiceRepo.FindByID(context.Background(), uuid.MustParse(draft.ID))
	assert.Equal(t, model.StatusDraft, inv.Status)
	assert.Nil(t, inv.InvoiceNumber)
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(2)))
}

func TestInvoiceFinalize_Twice(t *testing.T) {
	f := newInvoiceFixture()
	draft := f.createDraft(t, 1)
	id := uuid.MustParse(draft.ID)

	_, err := f.svc.Finalize(context.Background(), id)
	require.NoError(t, err)
	_, err = f.svc.Finalize(context.Background(), id)
	assert.ErrorIs(t, err, gst.ErrImmutableDocument)

	// The second attempt allocated nothing and moved no stock.
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(9)))
	assert.Equal(t, int64(1), f.businessRepo.profile.InvoiceCounter)
}

func TestInvoiceUpdateDraft_Recomputes(t *testing.T) {
	f := newInvoiceFixture()
	draft := f.createDraft(t, 1)
	id := uuid.MustParse(draft.ID)

	resp, err := f.svc.UpdateDraft(context.Background(), id, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{
			{ProductID: f.product.ID.String(), Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500000), resp.SubtotalPaise)
	assert.Equal(t, int64(590000), resp.GrandTotalPaise)
}

func TestInvoiceUpdateDraft_PlaceOfSupplyFlipsSplit(t *testing.T) {
	f := newInvoiceFixture()
	draft := f.createDraft(t, 1)
	id := uuid.MustParse(draft.ID)

	pos := "27"
	resp, err := f.svc.UpdateDraft(context.Background(), id, dto.UpdateInvoiceRequest{
		PlaceOfSupply: &pos,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.CGSTPaise)
	assert.Equal(t, int64(18000), resp.IGSTPaise)
}

func TestInvoiceUpdate_RejectedAfterFinalize(t *testing.T) {
	f := newInvoiceFixture()
	draft := f.createDraft(t, 1)
	id := uuid.MustParse(draft.ID)

	_, err := f.svc.Finalize(context.Background(), id)
	require.NoError(t, err)

	_, err = f.svc.UpdateDraft(context.Background(), id, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{
			{ProductID: f.product.ID.String(), Quantity: decimal.NewFromInt(2)},
		},
	})
	assert.ErrorIs(t, err, gst.ErrImmutableDocument)
}

func TestInvoiceCancel_RestoresStock(t *testing.T) {
	f := newInvoiceFixture()
	draft := f.createDraft(t, 4)
	id := uuid.MustParse(draft.ID)

	_, err := f.svc.Finalize(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(6)))

	resp, err := f.svc.Cancel(context.Background(), id, "customer returned the order")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "INV000001", *resp.InvoiceNumber)

	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(10)))
	movements, _ := f.movementRepo.ListByReference(context.Background(), id)
	require.Len(t, movements, 2)
	assert.Equal(t, service.MovementCancelRestore, movements[1].Type)
	assert.True(t, movements[1].Quantity.Equal(decimal.NewFromInt(4)))
}

func TestInvoiceCancel_Guards(t *testing.T) {
	f := newInvoiceFixture()
	draft := f.createDraft(t, 1)
	id := uuid.MustParse(draft.ID)

	// Drafts cannot be cancelled, only finalized documents.
	_, err := f.svc.Cancel(context.Background(), id, "entered by mistake")
	assert.ErrorIs(t, err, gst.ErrNotFinalized)

	_, err = f.svc.Finalize(context.Background(), id)
	require.NoError(t, err)
	_, err = f.svc.Cancel(context.Background(), id, "entered by mistake")
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), id, "cancelling again")
	assert.ErrorIs(t, err, gst.ErrAlreadyCancelled)
}

func TestInvoiceCancel_NumberNotReused(t *testing.T) {
	f := newInvoiceFixture()
	first := f.createDraft(t, 1)
	id := uuid.MustParse(first.ID)

	_, err := f.svc.Finalize(context.Background(), id)
	require.NoError(t, err)
	_, err = f.svc.Cancel(context.Background(), id, "voided before dispatch")
	require.NoError(t, err)

	second := f.createDraft(t, 1)
	r2, err := f.svc.Finalize(context.Background(), uuid.MustParse(second.ID))
	require.NoError(t, err)
	assert.Equal(t, "INV000002", *r2.InvoiceNumber)
}

func TestInvoicePDF(t *testing.T) {
	f := newInvoiceFixture()
	draft := f.createDraft(t, 1)
	id := uuid.MustParse(draft.ID)

	_, _, err := f.svc.PDF(context.Background(), id)
	assert.ErrorIs(t, err, gst.ErrNotFinalized)

	_, err = f.svc.Finalize(context.Background(), id)
	require.NoError(t, err)

	data, fileName, err := f.svc.PDF(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "invoice_INV000001.pdf", fileName)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
}

func TestInvoiceInterStateFlag(t *testing.T) {
	f := newInvoiceFixture()

	intra := f.createDraft(t, 1)
	assert.False(t, f.invoiceRepo.invoices[uuid.MustParse(intra.ID)].IsInterState())

	pos := "27"
	inter, err := f.svc.CreateDraft(context.Background(), f.userID, dto.CreateInvoiceRequest{
		CustomerID:    f.customer.ID.String(),
		InvoiceDate:   time.Now().Format("2006-01-02"),
		PlaceOfSupply: &pos,
		Items: []dto.InvoiceItemRequest{
			{ProductID: f.product.ID.String(), Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.True(t, f.invoiceRepo.invoices[uuid.MustParse(inter.ID)].IsInterState())
}
