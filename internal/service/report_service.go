package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/repository"
)

// ReportService builds period registers from stored document totals. Nothing
// is recomputed from line items: finalize froze those numbers, reports only
// add them up. Cancelled documents appear as rows when asked for but never
// contribute to summaries.
type ReportService interface {
	SalesRegister(ctx context.Context, filter dto.RegisterFilter) (*dto.SalesRegisterResponse, error)
	PurchaseRegister(ctx context.Context, filter dto.RegisterFilter) (*dto.PurchaseRegisterResponse, error)
	GSTSummary(ctx context.Context, filter dto.RegisterFilter) (*dto.GSTSummaryResponse, error)
}

type reportService struct {
	invoiceRepo  repository.InvoiceRepository
	purchaseRepo repository.PurchaseRepository
}

func NewReportService(invoiceRepo repository.InvoiceRepository, purchaseRepo repository.PurchaseRepository) ReportService {
	return &reportService{invoiceRepo: invoiceRepo, purchaseRepo: purchaseRepo}
}

func parseRegisterRange(filter dto.RegisterFilter) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, filter.FromDate)
	if err != nil {
		return time.Time{}, time.Time{}, &gst.ValidationError{Field: "from_date", Reason: "must be yyyy-mm-dd"}
	}
	to, err := time.Parse(dateLayout, filter.ToDate)
	if err != nil {
		return time.Time{}, time.Time{}, &gst.ValidationError{Field: "to_date", Reason: "must be yyyy-mm-dd"}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, &gst.ValidationError{Field: "to_date", Reason: "must not precede from_date"}
	}
	return from, to, nil
}

func parseOptionalUUID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, &gst.ValidationError{Field: field, Reason: "must be a uuid"}
	}
	return &id, nil
}

func (s *reportService) SalesRegister(ctx context.Context, filter dto.RegisterFilter) (*dto.SalesRegisterResponse, error) {
	from, to, err := parseRegisterRange(filter)
	if err != nil {
		return nil, err
	}
	customerID, err := parseOptionalUUID("customer_id", filter.CustomerID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindFinalizedInRange(ctx, from, to, filter.IncludeCancelled, customerID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.SalesRegisterRow, 0, len(invoices))
	var summary dto.RegisterSummary

	for i := range invoices {
		inv := &invoices[i]
		number := ""
		if inv.InvoiceNumber != nil {
			number = *inv.InvoiceNumber
		}
		rows = append(rows, dto.SalesRegisterRow{
			InvoiceNumber:   number,
			InvoiceDate:     inv.InvoiceDate.Format(dateLayout),
			CustomerName:    inv.CustomerSnapshot.Name,
			CustomerGSTIN:   inv.CustomerSnapshot.GSTIN,
			PlaceOfSupply:   inv.PlaceOfSupply,
			TaxablePaise:    int64(inv.SubtotalPaise),
			CGSTPaise:       int64(inv.CGSTPaise),
			SGSTPaise:       int64(inv.SGSTPaise),
			IGSTPaise:       int64(inv.IGSTPaise),
			TotalGSTPaise:   int64(inv.TotalGSTPaise),
			GrandTotalPaise: int64(inv.GrandTotalPaise),
			Status:          inv.Status,
		})

		if inv.Status == model.StatusCancelled {
			summary.CountCancelled++
			continue
		}
		summary.CountDocuments++
		summary.TaxablePaise += int64(inv.SubtotalPaise)
		summary.CGSTPaise += int64(inv.CGSTPaise)
		summary.SGSTPaise += int64(inv.SGSTPaise)
		summary.IGSTPaise += int64(inv.IGSTPaise)
		summary.TotalGSTPaise += int64(inv.TotalGSTPaise)
		summary.GrandTotalPaise += int64(inv.GrandTotalPaise)
	}

	return &dto.SalesRegisterResponse{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
		Rows:     rows,
		Summary:  summary,
	}, nil
}

func (s *reportService) PurchaseRegister(ctx context.Context, filter dto.RegisterFilter) (*dto.PurchaseRegisterResponse, error) {
	from, to, err := parseRegisterRange(filter)
	if err != nil {
		return nil, err
	}
	supplierID, err := parseOptionalUUID("supplier_id", filter.SupplierID)
	if err != nil {
		return nil, err
	}

	purchases, err := s.purchaseRepo.FindFinalizedInRange(ctx, from, to, filter.IncludeCancelled, supplierID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.PurchaseRegisterRow, 0, len(purchases))
	var summary dto.RegisterSummary

	for i := range purchases {
		p := &purchases[i]
		number := ""
		if p.PurchaseNumber != nil {
			number = *p.PurchaseNumber
		}
		rows = append(rows, dto.PurchaseRegisterRow{
			PurchaseNumber:    number,
			SupplierInvoiceNo: p.SupplierInvoiceNo,
			InvoiceDate:       p.PurchaseDate.Format(dateLayout),
			SupplierName:      p.SupplierSnapshot.Name,
			SupplierGSTIN:     p.SupplierSnapshot.GSTIN,
			TaxablePaise:      int64(p.SubtotalPaise),
			CGSTPaise:         int64(p.CGSTPaise),
			SGSTPaise:         int64(p.SGSTPaise),
			IGSTPaise:         int64(p.IGSTPaise),
			TotalGSTPaise:     int64(p.TotalGSTPaise),
			GrandTotalPaise:   int64(p.GrandTotalPaise),
			Status:            p.Status,
		})

		if p.Status == model.StatusCancelled {
			summary.CountCancelled++
			continue
		}
		summary.CountDocuments++
		summary.TaxablePaise += int64(p.SubtotalPaise)
		summary.CGSTPaise += int64(p.CGSTPaise)
		summary.SGSTPaise += int64(p.SGSTPaise)
		summary.IGSTPaise += int64(p.IGSTPaise)
		summary.TotalGSTPaise += int64(p.TotalGSTPaise)
		summary.GrandTotalPaise += int64(p.GrandTotalPaise)
	}

	return &dto.PurchaseRegisterResponse{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
		Rows:     rows,
		Summary:  summary,
	}, nil
}

// GSTSummary nets output tax (sales) against input tax credit (purchases)
// for the period. Positive net means tax payable.
func (s *reportService) GSTSummary(ctx context.Context, filter dto.RegisterFilter) (*dto.GSTSummaryResponse, error) {
	from, to, err := parseRegisterRange(filter)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindFinalizedInRange(ctx, from, to, false, nil)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.FindFinalizedInRange(ctx, from, to, false, nil)
	if err != nil {
		return nil, err
	}

	resp := &dto.GSTSummaryResponse{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}
	for i := range invoices {
		resp.OutputCGSTPaise += int64(invoices[i].CGSTPaise)
		resp.OutputSGSTPaise += int64(invoices[i].SGSTPaise)
		resp.OutputIGSTPaise += int64(invoices[i].IGSTPaise)
	}
	for i := range purchases {
		resp.InputCGSTPaise += int64(purchases[i].CGSTPaise)
		resp.InputSGSTPaise += int64(purchases[i].SGSTPaise)
		resp.InputIGSTPaise += int64(purchases[i].IGSTPaise)
	}

	resp.OutputTotalPaise = resp.OutputCGSTPaise + resp.OutputSGSTPaise + resp.OutputIGSTPaise
	resp.InputTotalPaise = resp.InputCGSTPaise + resp.InputSGSTPaise + resp.InputIGSTPaise

	resp.NetCGSTPaise = resp.OutputCGSTPaise - resp.InputCGSTPaise
	resp.NetSGSTPaise = resp.OutputSGSTPaise - resp.InputSGSTPaise
	resp.NetIGSTPaise = resp.OutputIGSTPaise - resp.InputIGSTPaise
	resp.NetTotalPaise = resp.OutputTotalPaise - resp.InputTotalPaise

	return resp, nil
}
