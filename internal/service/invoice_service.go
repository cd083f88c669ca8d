package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/infra"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/repository"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/worker"
)

const dateLayout = "2006-01-02"

type InvoiceService interface {
	CreateDraft(ctx context.Context, userID uuid.UUID, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	UpdateDraft(ctx context.Context, id uuid.UUID, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	Finalize(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*dto.InvoiceResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error)
	PDF(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error)
}

type invoiceService struct {
	repo         repository.InvoiceRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	businessRepo repository.BusinessRepository
	stock        StockService
	dispatcher   *worker.Dispatcher
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	businessRepo repository.BusinessRepository,
	stock StockService,
	dispatcher *worker.Dispatcher,
) InvoiceService {
	return &invoiceService{
		repo:         repo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		businessRepo: businessRepo,
		stock:        stock,
		dispatcher:   dispatcher,
	}
}

// parseDocumentDate parses a yyyy-mm-dd date and rejects future dates.
// Tax documents are never issued for dates that have not happened yet.
func parseDocumentDate(field, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &gst.ValidationError{Field: field, Reason: "must be yyyy-mm-dd"}
	}
	// Compare calendar dates in server-local time; comparing instants
	// would reject "today" on timezones ahead of UTC.
	if value > time.Now().Format(dateLayout) {
		return time.Time{}, &gst.ValidationError{Field: field, Reason: "must not be in the future"}
	}
	return d, nil
}

// computeInvoiceLines resolves products and runs the tax calculator for each
// requested line. Pure pre-flight work — no writes happen here.
func (s *invoiceService) computeInvoiceLines(
	ctx context.Context,
	items []dto.InvoiceItemRequest,
	placeOfSupply, businessState string,
) ([]model.InvoiceItem, gst.DocumentTotals, error) {
	if len(items) == 0 {
		return nil, gst.DocumentTotals{}, gst.ErrEmptyDocument
	}

	lines := make([]model.InvoiceItem, 0, len(items))
	taxes := make([]gst.LineTax, 0, len(items))

	for _, item := range items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, gst.DocumentTotals{}, &gst.ValidationError{Field: "product_id", Reason: "must be a uuid"}
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, gst.DocumentTotals{}, fmt.Errorf("product %s not found", item.ProductID)
		}
		if !p.Active {
			return nil, gst.DocumentTotals{}, &gst.ValidationError{Field: "product_id", Reason: fmt.Sprintf("product %q is inactive", p.Name)}
		}

		lt, err := gst.ComputeLineTax(item.Quantity, p.PricePaise, p.GSTRate, placeOfSupply, businessState)
		if err != nil {
			return nil, gst.DocumentTotals{}, err
		}
		taxes = append(taxes, lt)

		lines = append(lines, model.InvoiceItem{
			ProductID:      p.ID,
			ProductName:    p.Name,
			Description:    item.Description,
			HSNCode:        p.HSNCode,
			Quantity:       item.Quantity,
			Unit:           p.Unit,
			UnitPricePaise: p.PricePaise,
			GSTRate:        p.GSTRate,
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
		return nil, gst.DocumentTotals{}, err
	}
	return lines, totals, nil
}

// verifyClientTotals rejects submissions whose displayed totals disagree with
// the server calculation. Client figures are display hints, never inputs.
func verifyClientTotals(ct *dto.ClientTotals, totals gst.DocumentTotals) error {
	if ct == nil {
		return nil
	}
	if ct.SubtotalPaise != int64(totals.Subtotal) ||
		ct.TotalGSTPaise != int64(totals.TotalTax) ||
		ct.GrandTotalPaise != int64(totals.GrandTotal) {
		return &gst.ValidationError{Field: "client_totals", Reason: "totals do not match server calculation"}
	}
	return nil
}

func (s *invoiceService) CreateDraft(ctx context.Context, userID uuid.UUID, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, &gst.ValidationError{Field: "customer_id", Reason: "must be a uuid"}
	}

	invoiceDate, err := parseDocumentDate("invoice_date", req.InvoiceDate)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	if !customer.Active {
		return nil, &gst.ValidationError{Field: "customer_id", Reason: "customer is inactive"}
	}

	business, err := s.businessRepo.Get(ctx)
	if err != nil {
		return nil, errors.New("business profile not configured")
	}

	placeOfSupply := customer.StateCode
	if req.PlaceOfSupply != nil && *req.PlaceOfSupply != "" {
		placeOfSupply = *req.PlaceOfSupply
	}
	if !gst.ValidStateCode(placeOfSupply) {
		return nil, &gst.ValidationError{Field: "place_of_supply", Reason: "unknown state code"}
	}

	lines, totals, err := s.computeInvoiceLines(ctx, req.Items, placeOfSupply, business.StateCode)
	if err != nil {
		return nil, err
	}
	if err := verifyClientTotals(req.ClientTotals, totals); err != nil {
		return nil, err
	}

	inv := &model.Invoice{
		InvoiceDate:      invoiceDate,
		PlaceOfSupply:    placeOfSupply,
		Status:           model.StatusDraft,
		CustomerID:       customer.ID,
		CreatedBy:        userID,
		CustomerSnapshot: customerSnapshot(customer),
		BusinessSnapshot: businessSnapshot(business),
		SubtotalPaise:    totals.Subtotal,
		CGSTPaise:        totals.CGST,
		SGSTPaise:        totals.SGST,
		IGSTPaise:        totals.IGST,
		TotalGSTPaise:    totals.TotalTax,
		GrandTotalPaise:  totals.GrandTotal,
		Items:            lines,
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return invoiceToResponse(inv), nil
}

func (s *invoiceService) UpdateDraft(ctx context.Context, id uuid.UUID, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("invoice not found")
	}
	if inv.Status != model.StatusDraft {
		return nil, gst.ErrImmutableDocument
	}

	if req.InvoiceDate != nil {
		d, err := parseDocumentDate("invoice_date", *req.InvoiceDate)
		if err != nil {
			return nil, err
		}
		inv.InvoiceDate = d
	}
	if req.PlaceOfSupply != nil && *req.PlaceOfSupply != "" {
		if !gst.ValidStateCode(*req.PlaceOfSupply) {
			return nil, &gst.ValidationError{Field: "place_of_supply", Reason: "unknown state code"}
		}
		inv.PlaceOfSupply = *req.PlaceOfSupply
	}

	replaceLines := req.Items != nil
	var lines []model.InvoiceItem
	if replaceLines || req.PlaceOfSupply != nil {
		items := req.Items
		if items == nil {
			// Place of supply changed: recompute existing lines under the new split.
			items = make([]dto.InvoiceItemRequest, len(inv.Items))
			for i, li := range inv.Items {
				items[i] = dto.InvoiceItemRequest{
					ProductID:   li.ProductID.String(),
					Quantity:    li.Quantity,
					Description: li.Description,
				}
			}
		}
		var totals gst.DocumentTotals
		lines, totals, err = s.computeInvoiceLines(ctx, items, inv.PlaceOfSupply, inv.BusinessSnapshot.StateCode)
		if err != nil {
			return nil, err
		}
		inv.SubtotalPaise = totals.Subtotal
		inv.CGSTPaise = totals.CGST
		inv.SGSTPaise = totals.SGST
		inv.IGSTPaise = totals.IGST
		inv.TotalGSTPaise = totals.TotalTax
		inv.GrandTotalPaise = totals.GrandTotal
		replaceLines = true
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if replaceLines {
			if err := s.repo.ReplaceItemsTx(tx, inv, lines); err != nil {
				return err
			}
		}
		return s.repo.SaveTx(tx, inv)
	})
	if txErr != nil {
		return nil, txErr
	}
	return invoiceToResponse(inv), nil
}

// Finalize assigns the invoice number and deducts stock, atomically. Either
// the whole document goes out the door or nothing moves: a stock shortfall on
// the last line rolls back the number allocation and every earlier deduction.
func (s *invoiceService) Finalize(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("invoice not found")
	}
	if inv.Status != model.StatusDraft {
		return nil, gst.ErrImmutableDocument
	}
	if len(inv.Items) == 0 {
		return nil, gst.ErrEmptyDocument
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		number, _, err := s.businessRepo.NextInvoiceNumberTx(tx)
		if err != nil {
			return err
		}

		for _, item := range inv.Items {
			reason := fmt.Sprintf("Sale %s", number)
			if err := s.stock.DeductTx(tx, item.ProductID, item.Quantity, reason, &inv.ID); err != nil {
				return err
			}
		}

		now := time.Now()
		inv.InvoiceNumber = &number
		inv.Status = model.StatusFinalized
		inv.FinalizedAt = &now
		return s.repo.SaveTx(tx, inv)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async PDF + email, best effort after commit.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueInvoicePDF(ctx, map[string]interface{}{
			"invoice_id": inv.ID.String(),
		})
	}

	return invoiceToResponse(inv), nil
}

// Cancel reverses a finalized invoice: stock returns via cancel_restore
// movements and the document becomes terminal. The invoice number is burned,
// never reissued.
func (s *invoiceService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("invoice not found")
	}
	if inv.Status == model.StatusCancelled {
		return nil, gst.ErrAlreadyCancelled
	}
	if inv.Status != model.StatusFinalized {
		return nil, gst.ErrNotFinalized
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range inv.Items {
			movReason := fmt.Sprintf("Cancellation of %s: %s", *inv.InvoiceNumber, reason)
			if err := s.stock.AddTx(tx, item.ProductID, item.Quantity, MovementCancelRestore, movReason, &inv.ID); err != nil {
				return err
			}
		}

		now := time.Now()
		inv.Status = model.StatusCancelled
		inv.CancelledAt = &now
		inv.CancellationReason = &reason
		return s.repo.SaveTx(tx, inv)
	})
	if txErr != nil {
		return nil, txErr
	}
	return invoiceToResponse(inv), nil
}

func (s *invoiceService) Get(ctx context.Context, id uuid.UUID) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("invoice not found")
	}
	return invoiceToResponse(inv), nil
}

// PDF renders a finalized invoice on demand from its stored snapshots.
// Returns the document bytes and a download file name.
func (s *invoiceService) PDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", errors.New("invoice not found")
	}
	if inv.Status == model.StatusDraft {
		return nil, "", gst.ErrNotFinalized
	}
	data, err := infra.InvoicePDFBytes(inv)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("invoice_%s.pdf", *inv.InvoiceNumber), nil
}

func (s *invoiceService) List(ctx context.Context, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	invoices, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		data[i] = *invoiceToResponse(&invoices[i])
	}
	return &dto.InvoiceListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func customerSnapshot(c *model.Customer) model.CounterpartySnapshot {
	return model.CounterpartySnapshot{
		ID:        c.ID.String(),
		Name:      c.Name,
		GSTIN:     c.GSTIN,
		State:     c.State,
		StateCode: c.StateCode,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
	}
}

func businessSnapshot(b *model.BusinessProfile) model.BusinessSnapshot {
	return model.BusinessSnapshot{
		Name:      b.Name,
		GSTIN:     b.GSTIN,
		StateCode: b.StateCode,
		Address:   b.Address,
		City:      b.City,
		Pincode:   b.Pincode,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func invoiceToResponse(inv *model.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, len(inv.Items))
	for i, li := range inv.Items {
		items[i] = dto.InvoiceItemResponse{
			ProductID:      li.ProductID.String(),
			ProductName:    li.ProductName,
			Description:    li.Description,
			HSNCode:        li.HSNCode,
			Quantity:       li.Quantity,
			Unit:           li.Unit,
			UnitPricePaise: int64(li.UnitPricePaise),
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
	return &dto.InvoiceResponse{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate.Format(dateLayout),
		PlaceOfSupply: inv.PlaceOfSupply,
		Status:        inv.Status,
		CustomerID:    inv.CustomerID.String(),
		Customer: dto.SnapshotResponse{
			Name:      inv.CustomerSnapshot.Name,
			GSTIN:     inv.CustomerSnapshot.GSTIN,
			State:     inv.CustomerSnapshot.State,
			StateCode: inv.CustomerSnapshot.StateCode,
			Address:   inv.CustomerSnapshot.Address,
		},
		Items:              items,
		SubtotalPaise:      int64(inv.SubtotalPaise),
		CGSTPaise:          int64(inv.CGSTPaise),
		SGSTPaise:          int64(inv.SGSTPaise),
		IGSTPaise:          int64(inv.IGSTPaise),
		TotalGSTPaise:      int64(inv.TotalGSTPaise),
		GrandTotalPaise:    int64(inv.GrandTotalPaise),
		FinalizedAt:        formatTimePtr(inv.FinalizedAt),
		CancelledAt:        formatTimePtr(inv.CancelledAt),
		CancellationReason: inv.CancellationReason,
		CreatedAt:          inv.CreatedAt.UTC().Format(time.RFC3339),
	}
}
