package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/repository"
)

type PurchaseService interface {
	CreateDraft(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	UpdateDraft(ctx context.Context, id uuid.UUID, req dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error)
	Finalize(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*dto.PurchaseResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	List(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error)
}

type purchaseService struct {
	repo         repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	businessRepo repository.BusinessRepository
	stock        StockService
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	businessRepo repository.BusinessRepository,
	stock StockService,
) PurchaseService {
	return &purchaseService{
		repo:         repo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		businessRepo: businessRepo,
		stock:        stock,
	}
}

// computePurchaseLines validates and taxes the free-form supplier lines.
// The supplier's state against ours decides the CGST/SGST vs IGST split.
func computePurchaseLines(
	items []dto.PurchaseItemRequest,
	supplierState, businessState string,
) ([]model.PurchaseItem, gst.DocumentTotals, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, gst.DocumentTotals{}, decimal.Zero, gst.ErrEmptyDocument
	}

	lines := make([]model.PurchaseItem, 0, len(items))
	taxes := make([]gst.LineTax, 0, len(items))
	totalQty := decimal.Zero

	for _, item := range items {
		if err := gst.ValidateHSN(item.HSNCode); err != nil {
			return nil, gst.DocumentTotals{}, decimal.Zero, err
		}

		lt, err := gst.ComputeLineTax(item.Quantity, gst.Paise(item.UnitRatePaise), item.GSTRate, supplierState, businessState)
		if err != nil {
			return nil, gst.DocumentTotals{}, decimal.Zero, err
		}
		taxes = append(taxes, lt)
		totalQty = totalQty.Add(item.Quantity)

		lines = append(lines, model.PurchaseItem{
			ItemName:       item.ItemName,
			HSNCode:        item.HSNCode,
			Quantity:       item.Quantity,
			UnitRatePaise:  gst.Paise(item.UnitRatePaise),
			GSTRate:        item.GSTRate,
			TaxablePaise:   lt.Taxable,
			CGSTPaise:      lt.CGST,
			SGSTPaise:      lt.SGST,
			IGSTPaise:      lt.IGST,
			TaxAmountPaise: lt.TotalTax,
			TotalPaise:     lt.Total,
			TaxType:        string(lt.TaxType),
		})
	}

	totals, err := gst.AggregateLines(taxes)
	if err != nil {
		return nil, gst.DocumentTotals{}, decimal.Zero, err
	}
	return lines, totals, totalQty, nil
}

func (s *purchaseService) CreateDraft(ctx context.Context, userID uuid.UUID, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, &gst.ValidationError{Field: "supplier_id", Reason: "must be a uuid"}
	}

	supplierInvoiceDate, err := time.Parse(dateLayout, req.SupplierInvoiceDate)
	if err != nil {
		return nil, &gst.ValidationError{Field: "supplier_invoice_date", Reason: "must be yyyy-mm-dd"}
	}
	purchaseDate, err := parseDocumentDate("purchase_date", req.PurchaseDate)
	if err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, errors.New("supplier not found")
	}
	if !supplier.Active {
		return nil, &gst.ValidationError{Field: "supplier_id", Reason: "supplier is inactive"}
	}

	business, err := s.businessRepo.Get(ctx)
	if err != nil {
		return nil, errors.New("business profile not configured")
	}

	lines, totals, totalQty, err := computePurchaseLines(req.Items, supplier.StateCode, business.StateCode)
	if err != nil {
		return nil, err
	}

	p := &model.PurchaseInvoice{
		SupplierID:          supplier.ID,
		SupplierInvoiceNo:   req.SupplierInvoiceNo,
		SupplierInvoiceDate: supplierInvoiceDate,
		PurchaseDate:        purchaseDate,
		PlaceOfSupply:       business.StateCode,
		Status:              model.StatusDraft,
		SupplierSnapshot:    supplierSnapshot(supplier),
		BusinessSnapshot:    businessSnapshot(business),
		TotalQuantity:       totalQty,
		SubtotalPaise:       totals.Subtotal,
		CGSTPaise:           totals.CGST,
		SGSTPaise:           totals.SGST,
		IGSTPaise:           totals.IGST,
		TotalGSTPaise:       totals.TotalTax,
		GrandTotalPaise:     totals.GrandTotal,
		CreatedBy:           userID,
		Items:               lines,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return purchaseToResponse(p), nil
}

func (s *purchaseService) UpdateDraft(ctx context.Context, id uuid.UUID, req dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("purchase invoice not found")
	}
	if p.Status != model.StatusDraft {
		return nil, gst.ErrImmutableDocument
	}

	if req.SupplierInvoiceNo != nil {
		p.SupplierInvoiceNo = *req.SupplierInvoiceNo
	}
	if req.SupplierInvoiceDate != nil {
		d, err := time.Parse(dateLayout, *req.SupplierInvoiceDate)
		if err != nil {
			return nil, &gst.ValidationError{Field: "supplier_invoice_date", Reason: "must be yyyy-mm-dd"}
		}
		p.SupplierInvoiceDate = d
	}
	if req.PurchaseDate != nil {
		d, err := parseDocumentDate("purchase_date", *req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		p.PurchaseDate = d
	}

	var lines []model.PurchaseItem
	replaceLines := req.Items != nil
	if replaceLines {
		var totals gst.DocumentTotals
		var totalQty decimal.Decimal
		lines, totals, totalQty, err = computePurchaseLines(req.Items, p.SupplierSnapshot.StateCode, p.BusinessSnapshot.StateCode)
		if err != nil {
			return nil, err
		}
		p.TotalQuantity = totalQty
		p.SubtotalPaise = totals.Subtotal
		p.CGSTPaise = totals.CGST
		p.SGSTPaise = totals.SGST
		p.IGSTPaise = totals.IGST
		p.TotalGSTPaise = totals.TotalTax
		p.GrandTotalPaise = totals.GrandTotal
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if replaceLines {
			if err := s.repo.ReplaceItemsTx(tx, p, lines); err != nil {
				return err
			}
		}
		return s.repo.SaveTx(tx, p)
	})
	if txErr != nil {
		return nil, txErr
	}
	return purchaseToResponse(p), nil
}

// Finalize assigns the purchase number and receives stock. Every line must
// match an active product by HSN code; unmatched HSNs fail the whole
// finalize before any stock moves or a number is allocated.
func (s *purchaseService) Finalize(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("purchase invoice not found")
	}
	if p.Status != model.StatusDraft {
		return nil, gst.ErrImmutableDocument
	}
	if len(p.Items) == 0 {
		return nil, gst.ErrEmptyDocument
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		products := make([]*model.Product, len(p.Items))
		var missing []string
		for i, item := range p.Items {
			product, err := s.productRepo.FindActiveByHSNTx(tx, item.HSNCode)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					missing = append(missing, item.HSNCode)
					continue
				}
				return err
			}
			products[i] = product
		}
		if len(missing) > 0 {
			return &gst.ValidationError{
				Field:  "items",
				Reason: "no active product for HSN " + strings.Join(missing, ", "),
			}
		}

		number, _, err := s.businessRepo.NextPurchaseNumberTx(tx)
		if err != nil {
			return err
		}

		for i, item := range p.Items {
			reason := fmt.Sprintf("Purchase %s", number)
			if err := s.stock.AddTx(tx, products[i].ID, item.Quantity, MovementPurchase, reason, &p.ID); err != nil {
				return err
			}
		}

		now := time.Now()
		p.PurchaseNumber = &number
		p.Status = model.StatusFinalized
		p.FinalizedAt = &now
		return s.repo.SaveTx(tx, p)
	})
	if txErr != nil {
		return nil, txErr
	}
	return purchaseToResponse(p), nil
}

// Cancel marks a finalized purchase cancelled for reporting. Stock received
// at finalize stays on hand; physical returns go through a manual adjustment
// with their own ledger entry.
func (s *purchaseService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("purchase invoice not found")
	}
	if p.Status == model.StatusCancelled {
		return nil, gst.ErrAlreadyCancelled
	}
	if p.Status != model.StatusFinalized {
		return nil, gst.ErrNotFinalized
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		now := time.Now()
		p.Status = model.StatusCancelled
		p.CancelledAt = &now
		p.CancellationReason = &reason
		return s.repo.SaveTx(tx, p)
	})
	if txErr != nil {
		return nil, txErr
	}
	return purchaseToResponse(p), nil
}

func (s *purchaseService) Get(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("purchase invoice not found")
	}
	return purchaseToResponse(p), nil
}

func (s *purchaseService) List(ctx context.Context, filter dto.PurchaseFilter) (*dto.PurchaseListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	purchases, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PurchaseResponse, len(purchases))
	for i := range purchases {
		data[i] = *purchaseToResponse(&purchases[i])
	}
	return &dto.PurchaseListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func supplierSnapshot(sup *model.Supplier) model.CounterpartySnapshot {
	return model.CounterpartySnapshot{
		ID:        sup.ID.String(),
		Name:      sup.Name,
		GSTIN:     sup.GSTIN,
		State:     sup.State,
		StateCode: sup.StateCode,
		Address:   sup.Address,
		Phone:     sup.Phone,
		Email:     sup.Email,
	}
}

func purchaseToResponse(p *model.PurchaseInvoice) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, len(p.Items))
	for i, li := range p.Items {
		items[i] = dto.PurchaseItemResponse{
			ItemName:       li.ItemName,
			HSNCode:        li.HSNCode,
			Quantity:       li.Quantity,
			UnitRatePaise:  int64(li.UnitRatePaise),
			GSTRate:        li.GSTRate,
			TaxablePaise:   int64(li.TaxablePaise),
			CGSTPaise:      int64(li.CGSTPaise),
			SGSTPaise:      int64(li.SGSTPaise),
			IGSTPaise:      int64(li.IGSTPaise),
			TaxAmountPaise: int64(li.TaxAmountPaise),
			TotalPaise:     int64(li.TotalPaise),
			TaxType:        li.TaxType,
		}
	}
	return &dto.PurchaseResponse{
		ID:                  p.ID.String(),
		PurchaseNumber:      p.PurchaseNumber,
		SupplierID:          p.SupplierID.String(),
		Supplier: dto.SnapshotResponse{
			Name:      p.SupplierSnapshot.Name,
			GSTIN:     p.SupplierSnapshot.GSTIN,
			State:     p.SupplierSnapshot.State,
			StateCode: p.SupplierSnapshot.StateCode,
			Address:   p.SupplierSnapshot.Address,
		},
		SupplierInvoiceNo:   p.SupplierInvoiceNo,
		SupplierInvoiceDate: p.SupplierInvoiceDate.Format(dateLayout),
		PurchaseDate:        p.PurchaseDate.Format(dateLayout),
		PlaceOfSupply:       p.PlaceOfSupply,
		Status:              p.Status,
		Items:               items,
		TotalQuantity:       p.TotalQuantity,
		SubtotalPaise:       int64(p.SubtotalPaise),
		CGSTPaise:           int64(p.CGSTPaise),
		SGSTPaise:           int64(p.SGSTPaise),
		IGSTPaise:           int64(p.IGSTPaise),
		TotalGSTPaise:       int64(p.TotalGSTPaise),
		GrandTotalPaise:     int64(p.GrandTotalPaise),
		FinalizedAt:         formatTimePtr(p.FinalizedAt),
		CancelledAt:         formatTimePtr(p.CancelledAt),
		CancellationReason:  p.CancellationReason,
		CreatedAt:           p.CreatedAt.UTC().Format(time.RFC3339),
	}
}
