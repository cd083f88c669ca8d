package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name        string  `json:"name"        validate:"required,min=2,max=255"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	HSNCode     string  `json:"hsn_code"    validate:"required"`
	GSTRate     int64   `json:"gst_rate"`
	PricePaise  int64   `json:"price_paise" validate:"min=0"`
	// StockQuantity sets the opening stock; later changes go through the
	// stock ledger, not product edits.
	StockQuantity decimal.Decimal `json:"stock_quantity" validate:"min=0"`
	Unit          string          `json:"unit"`
}

type UpdateProductRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=2,max=255"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	HSNCode     *string `json:"hsn_code"`
	GSTRate     *int64  `json:"gst_rate"`
	PricePaise  *int64  `json:"price_paise" validate:"omitempty,min=0"`
	Unit        *string `json:"unit"`
}

// AdjustStockRequest is a manual correction outside the document lifecycle
// (stocktake, breakage). It still goes through the ledger and leaves an
// audit row.
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Reason string          `json:"reason" validate:"required,min=3"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name    string `form:"name"`
	HSNCode string `form:"hsn_code"`
	Active  string `form:"active"` // "false" = inactive, "all" = everything, default active only
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	HSNCode       string          `json:"hsn_code"`
	GSTRate       int64           `json:"gst_rate"`
	PricePaise    int64           `json:"price_paise"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	Unit          string          `json:"unit"`
	Active        bool            `json:"active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
