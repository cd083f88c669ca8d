package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
)

// Product is a sellable good or service with its HSN classification and GST
// rate. Stock is mutated only by the stock ledger on behalf of a document
// transition — never directly through a master-data edit.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	HSNCode     string `gorm:"type:varchar(8);index;not null;column:hsn_code"`
	// GSTRate is one of 0, 5, 12, 18, 28
	GSTRate    int64     `gorm:"not null;column:gst_rate"`
	PricePaise gst.Paise `gorm:"not null"`
	// StockQuantity never goes negative — enforced by a guarded UPDATE in the
	// stock ledger, not by application-side checks alone.
	StockQuantity decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	Unit          string          `gorm:"type:varchar(10);not null;default:'PCS'"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
