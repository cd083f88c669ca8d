package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/repository"
)

// Movement types recorded in the stock ledger.
const (
	MovementSale          = "sale"
	MovementPurchase      = "purchase"
	MovementCancelRestore = "cancel_restore"
	MovementManualAdjust  = "manual_adjust"
)

// StockService is the only path to product stock. Every change, whether from
// a document transition or a manual correction, lands as an immutable ledger
// row with before/after quantities.
type StockService interface {
	// DeductTx removes qty from stock inside tx. The decrement is guarded:
	// it fails with InsufficientStockError instead of driving stock negative.
	DeductTx(tx *gorm.DB, productID uuid.UUID, qty decimal.Decimal, reason string, refID *uuid.UUID) error
	// AddTx increases stock inside tx and records a movement of the given type.
	AddTx(tx *gorm.DB, productID uuid.UUID, qty decimal.Decimal, movType, reason string, refID *uuid.UUID) error
	// ManualAdjust applies a signed correction outside the document lifecycle.
	ManualAdjust(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.StockMovementResponse, error)
	Movements(ctx context.Context, productID uuid.UUID, limit int) ([]dto.StockMovementResponse, error)
}

type stockService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

func NewStockService(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) StockService {
	return &stockService{productRepo: productRepo, movementRepo: movementRepo}
}

func (s *stockService) DeductTx(tx *gorm.DB, productID uuid.UUID, qty decimal.Decimal, reason string, refID *uuid.UUID) error {
	p, err := s.productRepo.FindByIDTx(tx, productID)
	if err != nil {
		return fmt.Errorf("product %s not found: %w", productID, err)
	}

	ok, err := s.productRepo.DecrementStockGuardedTx(tx, productID, qty)
	if err != nil {
		return err
	}
	if !ok {
		return &gst.InsufficientStockError{
			Product:   p.Name,
			Available: p.StockQuantity,
			Requested: qty,
		}
	}

	mov := &model.StockMovement{
		ProductID:   productID,
		Type:        MovementSale,
		Quantity:    qty.Neg(),
		StockBefore: p.StockQuantity,
		StockAfter:  p.StockQuantity.Sub(qty),
		Reason:      reason,
		ReferenceID: refID,
	}
	return s.movementRepo.CreateTx(tx, mov)
}

func (s *stockService) AddTx(tx *gorm.DB, productID uuid.UUID, qty decimal.Decimal, movType, reason string, refID *uuid.UUID) error {
	p, err := s.productRepo.FindByIDTx(tx, productID)
	if err != nil {
		return fmt.Errorf("product %s not found: %w", productID, err)
	}

	if err := s.productRepo.IncrementStockTx(tx, productID, qty); err != nil {
		return err
	}

	mov := &model.StockMovement{
		ProductID:   productID,
		Type:        movType,
		Quantity:    qty,
		StockBefore: p.StockQuantity,
		StockAfter:  p.StockQuantity.Add(qty),
		Reason:      reason,
		ReferenceID: refID,
	}
	return s.movementRepo.CreateTx(tx, mov)
}

func (s *stockService) ManualAdjust(ctx context.Context, productID uuid.UUID, req dto.AdjustStockRequest) (*dto.StockMovementResponse, error) {
	if req.Delta.IsZero() {
		return nil, &gst.ValidationError{Field: "delta", Reason: "must not be zero"}
	}

	var mov model.StockMovement
	txErr := runTx(ctx, s.productRepo.DB(), func(tx *gorm.DB) error {
		p, err := s.productRepo.FindByIDTx(tx, productID)
		if err != nil {
			return errors.New("product not found")
		}

		if req.Delta.IsNegative() {
			qty := req.Delta.Abs()
			ok, err := s.productRepo.DecrementStockGuardedTx(tx, productID, qty)
			if err != nil {
				return err
			}
			if !ok {
				return &gst.InsufficientStockError{
					Product:   p.Name,
					Available: p.StockQuantity,
					Requested: qty,
				}
			}
		} else {
			if err := s.productRepo.IncrementStockTx(tx, productID, req.Delta); err != nil {
				return err
			}
		}

		mov = model.StockMovement{
			ProductID:   productID,
			Type:        MovementManualAdjust,
			Quantity:    req.Delta,
			StockBefore: p.StockQuantity,
			StockAfter:  p.StockQuantity.Add(req.Delta),
			Reason:      req.Reason,
		}
		return s.movementRepo.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movementToResponse(&mov)
	return &resp, nil
}

func (s *stockService) Movements(ctx context.Context, productID uuid.UUID, limit int) ([]dto.StockMovementResponse, error) {
	movements, err := s.movementRepo.ListByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StockMovementResponse, len(movements))
	for i := range movements {
		resp[i] = movementToResponse(&movements[i])
	}
	return resp, nil
}

func movementToResponse(m *model.StockMovement) dto.StockMovementResponse {
	var ref *string
	if m.ReferenceID != nil {
		s := m.ReferenceID.String()
		ref = &s
	}
	return dto.StockMovementResponse{
		ID:          m.ID.String(),
		ProductID:   m.ProductID.String(),
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		ReferenceID: ref,
		CreatedAt:   m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
