package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PurchaseItemRequest lines are free-form: supplier catalogues don't align
// with ours, so items carry their own name/HSN/rate and are matched to
// products by HSN code at finalize time.
type PurchaseItemRequest struct {
	ItemName      string          `json:"item_name"       validate:"required,min=1,max=255"`
	HSNCode       string          `json:"hsn_code"        validate:"required"`
	Quantity      decimal.Decimal `json:"quantity"        validate:"required"`
	UnitRatePaise int64           `json:"unit_rate_paise" validate:"min=0"`
	GSTRate       int64           `json:"gst_rate"`
}

type CreatePurchaseRequest struct {
	SupplierID          string                `json:"supplier_id"           validate:"required,uuid"`
	SupplierInvoiceNo   string                `json:"supplier_invoice_no"   validate:"required,max=100"`
	SupplierInvoiceDate string                `json:"supplier_invoice_date" validate:"required,datetime=2006-01-02"`
	PurchaseDate        string                `json:"purchase_date"         validate:"required,datetime=2006-01-02"`
	Items               []PurchaseItemRequest `json:"items"                 validate:"required,min=1,dive"`
}

type UpdatePurchaseRequest struct {
	SupplierInvoiceNo   *string               `json:"supplier_invoice_no"   validate:"omitempty,max=100"`
	SupplierInvoiceDate *string               `json:"supplier_invoice_date" validate:"omitempty,datetime=2006-01-02"`
	PurchaseDate        *string               `json:"purchase_date"         validate:"omitempty,datetime=2006-01-02"`
	Items               []PurchaseItemRequest `json:"items"                 validate:"omitempty,min=1,dive"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type PurchaseFilter struct {
	Status     string `form:"status"`
	FromDate   string `form:"from_date"`
	ToDate     string `form:"to_date"`
	SupplierID string `form:"supplier_id"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PurchaseItemResponse struct {
	ItemName       string          `json:"item_name"`
	HSNCode        string          `json:"hsn_code"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitRatePaise  int64           `json:"unit_rate_paise"`
	GSTRate        int64           `json:"gst_rate"`
	TaxablePaise   int64           `json:"taxable_paise"`
	CGSTPaise      int64           `json:"cgst_paise"`
	SGSTPaise      int64           `json:"sgst_paise"`
	IGSTPaise      int64           `json:"igst_paise"`
	TaxAmountPaise int64           `json:"tax_amount_paise"`
	TotalPaise     int64           `json:"total_paise"`
	TaxType        string          `json:"tax_type"`
}

type PurchaseResponse struct {
	ID                  string                 `json:"id"`
	PurchaseNumber      *string                `json:"purchase_number"`
	SupplierID          string                 `json:"supplier_id"`
	Supplier            SnapshotResponse       `json:"supplier"`
	SupplierInvoiceNo   string                 `json:"supplier_invoice_no"`
	SupplierInvoiceDate string                 `json:"supplier_invoice_date"`
	PurchaseDate        string                 `json:"purchase_date"`
	PlaceOfSupply       string                 `json:"place_of_supply"`
	Status              string                 `json:"status"`
	Items               []PurchaseItemResponse `json:"items"`
	TotalQuantity       decimal.Decimal        `json:"total_quantity"`
	SubtotalPaise       int64                  `json:"subtotal_paise"`
	CGSTPaise           int64                  `json:"cgst_paise"`
	SGSTPaise           int64                  `json:"sgst_paise"`
	IGSTPaise           int64                  `json:"igst_paise"`
	TotalGSTPaise       int64                  `json:"total_gst_paise"`
	GrandTotalPaise     int64                  `json:"grand_total_paise"`
	FinalizedAt         *string                `json:"finalized_at"`
	CancelledAt         *string                `json:"cancelled_at"`
	CancellationReason  *string                `json:"cancellation_reason"`
	CreatedAt           string                 `json:"created_at"`
}

type PurchaseListResponse struct {
	Data  []PurchaseResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
