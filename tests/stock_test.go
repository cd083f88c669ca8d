package tests

import (
	"context"
	"testing"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockFixture() (service.StockService, *stubProductRepo, *stubMovementRepo, *model.Product) {
	productRepo := newStubProductRepo()
	movementRepo := &stubMovementRepo{}
	product := productRepo.add(&model.Product{
		Name:          "USB Keyboard",
		HSNCode:       "84716060",
		GSTRate:       18,
		PricePaise:    100000,
		StockQuantity: decimal.NewFromInt(10),
		Unit:          "PCS",
		Active:        true,
	})
	return service.NewStockService(productRepo, movementRepo), productRepo, movementRepo, product
}

func TestManualAdjust_Positive(t *testing.T) {
	svc, _, movements, product := newStockFixture()

	resp, err := svc.ManualAdjust(context.Background(), product.ID, dto.AdjustStockRequest{
		Delta:  decimal.NewFromInt(5),
		Reason: "stocktake surplus",
	})
	require.NoError(t, err)

	assert.Equal(t, service.MovementManualAdjust, resp.Type)
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(15)))
	require.Len(t, movements.movements, 1)
	assert.True(t, movements.movements[0].StockBefore.Equal(decimal.NewFromInt(10)))
	assert.True(t, movements.movements[0].StockAfter.Equal(decimal.NewFromInt(15)))
}

func TestManualAdjust_NegativeGuarded(t *testing.T) {
	svc, _, movements, product := newStockFixture()

	_, err := svc.ManualAdjust(context.Background(), product.ID, dto.AdjustStockRequest{
		Delta:  decimal.NewFromInt(-4),
		Reason: "breakage during transit",
	})
	require.NoError(t, err)
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(6)))

	// Going below zero is refused, stock and ledger stay put.
	_, err = svc.ManualAdjust(context.Background(), product.ID, dto.AdjustStockRequest{
		Delta:  decimal.NewFromInt(-7),
		Reason: "attempting to write off more than held",
	})
	var stockErr *gst.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(6)))
	assert.Len(t, movements.movements, 1)
}

func TestManualAdjust_RejectsZeroDelta(t *testing.T) {
	svc, _, _, product := newStockFixture()
	_, err := svc.ManualAdjust(context.Background(), product.ID, dto.AdjustStockRequest{
		Delta:  decimal.Zero,
		Reason: "no-op adjustment",
	})
	assert.Error(t, err)
}

func TestMovements_History(t *testing.T) {
	svc, _, _, product := newStockFixture()

	_, err := svc.ManualAdjust(context.Background(), product.ID, dto.AdjustStockRequest{
		Delta:  decimal.NewFromInt(2),
		Reason: "found two more in the back room",
	})
	require.NoError(t, err)
	_, err = svc.ManualAdjust(context.Background(), product.ID, dto.AdjustStockRequest{
		Delta:  decimal.NewFromInt(-1),
		Reason: "display unit written off",
	})
	require.NoError(t, err)

	history, err := svc.Movements(context.Background(), product.ID, 50)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, m := range history {
		assert.Equal(t, service.MovementManualAdjust, m.Type)
		assert.Equal(t, product.ID.String(), m.ProductID)
	}
}
