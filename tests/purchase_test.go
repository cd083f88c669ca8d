package tests

import (
	"context"
	"testing"
	"time"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type purchaseFixture struct {
	svc          service.PurchaseService
	purchaseRepo *stubPurchaseRepo
	productRepo  *stubProductRepo
	supplierRepo *stubSupplierRepo
	businessRepo *stubBusinessRepo
	movementRepo *stubMovementRepo
	supplier     *model.Supplier
	product      *model.Product
	userID       uuid.UUID
}

func newPurchaseFixture() *purchaseFixture {
	f := &purchaseFixture{
		purchaseRepo: newStubPurchaseRepo(),
		productRepo:  newStubProductRepo(),
		supplierRepo: newStubSupplierRepo(),
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
	gstin := "27AAACW1234B1Z4"
	f.supplier = f.supplierRepo.add(&model.Supplier{
		Name:         "Western Components",
		SupplierType: "REGISTERED",
		GSTIN:        &gstin,
		Address:      "8 Link Road",
		State:        "Maharashtra",
		StateCode:    "27",
		Active:       true,
	})
	f.product = f.productRepo.add(&model.Product{
		Name:          "USB Keyboard",
		HSNCode:       "84716060",
		GSTRate:       18,
		PricePaise:    100000,
		StockQuantity: decimal.NewFromInt(5),
		Unit:          "PCS",
		Active:        true,
	})
	stock := service.NewStockService(f.productRepo, f.movementRepo)
	f.svc = service.NewPurchaseService(f.purchaseRepo, f.productRepo, f.supplierRepo, f.businessRepo, stock)
	return f
}

func (f *purchaseFixture) createDraft(t *testing.T, items []dto.PurchaseItemRequest) *dto.PurchaseResponse {
	t.Helper()
	today := time.Now().Format("2006-01-02")
	resp, err := f.svc.CreateDraft(context.Background(), f.userID, dto.CreatePurchaseRequest{
		SupplierID:          f.supplier.ID.String(),
		SupplierInvoiceNo:   "WC/2026/0042",
		SupplierInvoiceDate: today,
		PurchaseDate:        today,
		Items:               items,
	})
	require.NoError(t, err)
	return resp
}

func TestPurchaseCreateDraft_InterStateInputTax(t *testing.T) {
	f := newPurchaseFixture()
	resp := f.createDraft(t, []dto.PurchaseItemRequest{
		{ItemName: "Keyboard carton", HSNCode: "84716060", Quantity: decimal.NewFromInt(10), UnitRatePaise: 60000, GSTRate: 18},
	})

	// Maharashtra supplier, Karnataka business: the input tax is IGST.
	assert.Equal(t, "draft", resp.Status)
	assert.Nil(t, resp.PurchaseNumber)
	assert.Equal(t, int64(600000), resp.SubtotalPaise)
	assert.Equal(t, int64(0), resp.CGSTPaise)
	assert.Equal(t, int64(108000), resp.IGSTPaise)
	assert.Equal(t, int64(708000), resp.GrandTotalPaise)

	// Stock only moves at finalize.
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(5)))
}

func TestPurchaseFinalize_MatchesStockByHSN(t *testing.T) {
	f := newPurchaseFixture()
	draft := f.createDraft(t, []dto.PurchaseItemRequest{
		{ItemName: "Keyboard carton", HSNCode: "84716060", Quantity: decimal.NewFromInt(10), UnitRatePaise: 60000, GSTRate: 18},
	})
	id := uuid.MustParse(draft.ID)

	resp, err := f.svc.Finalize(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, resp.PurchaseNumber)
	assert.Equal(t, "PUR000001", *resp.PurchaseNumber)
	assert.Equal(t, "finalized", resp.Status)

	// The line matched our product by HSN and raised stock 5 → 15.
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(15)))
	movements, _ := f.movementRepo.ListByReference(context.Background(), id)
	require.Len(t, movements, 1)
	assert.Equal(t, service.MovementPurchase, movements[0].Type)
	assert.True(t, movements[0].Quantity.Equal(decimal.NewFromInt(10)))
}

func TestPurchaseFinalize_UnknownHSNFailsWholeDocument(t *testing.T) {
	f := newPurchaseFixture()
	draft := f.createDraft(t, []dto.PurchaseItemRequest{
		{ItemName: "Keyboard carton", HSNCode: "84716060", Quantity: decimal.NewFromInt(10), UnitRatePaise: 60000, GSTRate: 18},
		{ItemName: "Packing straps", HSNCode: "39231090", Quantity: decimal.NewFromInt(50), UnitRatePaise: 500, GSTRate: 18},
	})
	id := uuid.MustParse(draft.ID)

	_, err := f.svc.Finalize(context.Background(), id)
	var vErr *gst.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "items", vErr.Field)
	assert.Contains(t, vErr.Reason, "39231090")

	// Nothing happened: still a draft, no number, no stock received.
	got, gerr := f.svc.Get(context.Background(), id)
	require.NoError(t, gerr)
	assert.Equal(t, "draft", got.Status)
	assert.Nil(t, got.PurchaseNumber)
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(5)))
	movements, _ := f.movementRepo.ListByReference(context.Background(), id)
	assert.Empty(t, movements)
}

func TestPurchaseFinalize_Twice(t *testing.T) {
	f := newPurchaseFixture()
	draft := f.createDraft(t, []dto.PurchaseItemRequest{
		{ItemName: "Keyboard carton", HSNCode: "84716060", Quantity: decimal.NewFromInt(1), UnitRatePaise: 60000, GSTRate: 18},
	})
	id := uuid.MustParse(draft.ID)

	_, err := f.svc.Finalize(context.Background(), id)
	require.NoError(t, err)
	_, err = f.svc.Finalize(context.Background(), id)
	assert.ErrorIs(t, err, gst.ErrImmutableDocument)
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(6)))
}

func TestPurchaseCancel_DoesNotReverseStock(t *testing.T) {
	f := newPurchaseFixture()
	draft := f.createDraft(t, []dto.PurchaseItemRequest{
		{ItemName: "Keyboard carton", HSNCode: "84716060", Quantity: decimal.NewFromInt(10), UnitRatePaise: 60000, GSTRate: 18},
	})
	id := uuid.MustParse(draft.ID)

	_, err := f.svc.Finalize(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(15)))

	resp, err := f.svc.Cancel(context.Background(), id, "supplier billed the wrong party")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)

	// Received goods stay on the shelf; corrections go through manual adjust.
	assert.True(t, f.product.StockQuantity.Equal(decimal.NewFromInt(15)))
	movements, _ := f.movementRepo.ListByReference(context.Background(), id)
	assert.Len(t, movements, 1)
}

func TestPurchaseCancel_Guards(t *testing.T) {
	f := newPurchaseFixture()
	draft := f.createDraft(t, []dto.PurchaseItemRequest{
		{ItemName: "Keyboard carton", HSNCode: "84716060", Quantity: decimal.NewFromInt(1), UnitRatePaise: 60000, GSTRate: 18},
	})
	id := uuid.MustParse(draft.ID)

	_, err := f.svc.Cancel(context.Background(), id, "never happened")
	assert.ErrorIs(t, err, gst.ErrNotFinalized)
}

func TestPurchaseUpdateDraft_RejectedAfterFinalize(t *testing.T) {
	f := newPurchaseFixture()
	draft := f.createDraft(t, []dto.PurchaseItemRequest{
		{ItemName: "Keyboard carton", HSNCode: "84716060", Quantity: decimal.NewFromInt(1), UnitRatePaise: 60000, GSTRate: 18},
	})
	id := uuid.MustParse(draft.ID)

	_, err := f.svc.Finalize(context.Background(), id)
	require.NoError(t, err)

	no := "WC/2026/0099"
	_, err = f.svc.UpdateDraft(context.Background(), id, dto.UpdatePurchaseRequest{SupplierInvoiceNo: &no})
	assert.ErrorIs(t, err, gst.ErrImmutableDocument)
}

func TestPurchaseCreateDraft_RejectsBadHSN(t *testing.T) {
	f := newPurchaseFixture()
	today := time.Now().Format("2006-01-02")
	_, err := f.svc.CreateDraft(context.Background(), f.userID, dto.CreatePurchaseRequest{
		SupplierID:          f.supplier.ID.String(),
		SupplierInvoiceNo:   "WC/2026/0042",
		SupplierInvoiceDate: today,
		PurchaseDate:        today,
		Items: []dto.PurchaseItemRequest{
			{ItemName: "Mystery item", HSNCode: "123", Quantity: decimal.NewFromInt(1), UnitRatePaise: 100, GSTRate: 18},
		},
	})
	var vErr *gst.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "hsn_code", vErr.Field)
}
