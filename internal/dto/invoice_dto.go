package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type InvoiceItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity"   validate:"required"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
}

// ClientTotals are the totals the frontend displayed to the user. They are
// never trusted: the server recomputes everything and only uses these for a
// mismatch check that rejects manipulated submissions.
type ClientTotals struct {
	SubtotalPaise   int64 `json:"subtotal_paise"`
	TotalGSTPaise   int64 `json:"total_gst_paise"`
	GrandTotalPaise int64 `json:"grand_total_paise"`
}

type CreateInvoiceRequest struct {
	CustomerID  string `json:"customer_id"  validate:"required,uuid"`
	InvoiceDate string `json:"invoice_date" validate:"required,datetime=2006-01-02"`
	// PlaceOfSupply defaults to the customer's state code when omitted.
	PlaceOfSupply *string              `json:"place_of_supply" validate:"omitempty,len=2"`
	Items         []InvoiceItemRequest `json:"items"           validate:"required,min=1,dive"`
	ClientTotals  *ClientTotals        `json:"client_totals"`
}

// UpdateInvoiceRequest replaces the line items / header of a draft. Only
// drafts are editable; anything else fails with IMMUTABLE_DOCUMENT.
type UpdateInvoiceRequest struct {
	InvoiceDate   *string              `json:"invoice_date"    validate:"omitempty,datetime=2006-01-02"`
	PlaceOfSupply *string              `json:"place_of_supply" validate:"omitempty,len=2"`
	Items         []InvoiceItemRequest `json:"items"           validate:"omitempty,min=1,dive"`
}

type CancelDocumentRequest struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type InvoiceFilter struct {
	Status     string `form:"status"` // draft | finalized | cancelled | all
	FromDate   string `form:"from_date"`
	ToDate     string `form:"to_date"`
	CustomerID string `form:"customer_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InvoiceItemResponse struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Description    *string         `json:"description"`
	HSNCode        string          `json:"hsn_code"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	UnitPricePaise int64           `json:"unit_price_paise"`
	GSTRate        int64           `json:"gst_rate"`
	TaxablePaise   int64           `json:"taxable_paise"`
	CGSTPaise      int64           `json:"cgst_paise"`
	SGSTPaise      int64           `json:"sgst_paise"`
	IGSTPaise      int64           `json:"igst_paise"`
	TaxAmountPaise int64           `json:"tax_amount_paise"`
	TotalPaise     int64           `json:"total_paise"`
	TaxType        string          `json:"tax_type"`
}

type SnapshotResponse struct {
	Name      string  `json:"name"`
	GSTIN     *string `json:"gstin"`
	State     string  `json:"state"`
	StateCode string  `json:"state_code"`
	Address   string  `json:"address"`
}

type InvoiceResponse struct {
	ID                 string                `json:"id"`
	InvoiceNumber      *string               `json:"invoice_number"`
	InvoiceDate        string                `json:"invoice_date"`
	PlaceOfSupply      string                `json:"place_of_supply"`
	Status             string                `json:"status"`
	CustomerID         string                `json:"customer_id"`
	Customer           SnapshotResponse      `json:"customer"`
	Items              []InvoiceItemResponse `json:"items"`
	SubtotalPaise      int64                 `json:"subtotal_paise"`
	CGSTPaise          int64                 `json:"cgst_paise"`
	SGSTPaise          int64                 `json:"sgst_paise"`
	IGSTPaise          int64                 `json:"igst_paise"`
	TotalGSTPaise      int64                 `json:"total_gst_paise"`
	GrandTotalPaise    int64                 `json:"grand_total_paise"`
	FinalizedAt        *string               `json:"finalized_at"`
	CancelledAt        *string               `json:"cancelled_at"`
	CancellationReason *string               `json:"cancellation_reason"`
	CreatedAt          string                `json:"created_at"`
}

type InvoiceListResponse struct {
	Data  []InvoiceResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
