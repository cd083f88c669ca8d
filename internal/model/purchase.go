package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
)

// PurchaseInvoice records a supplier invoice and its input GST. Finalizing
// increases product stock (matched by HSN code); cancelling a finalized
// purchase does NOT roll the stock increase back — a documented limitation,
// not a bug.
type PurchaseInvoice struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// PurchaseNumber is nil for drafts; assigned once at finalize.
	PurchaseNumber *string   `gorm:"type:varchar(20);uniqueIndex"`
	SupplierID     uuid.UUID `gorm:"type:uuid;index;not null"`

	SupplierInvoiceNo   string    `gorm:"type:varchar(100);not null"`
	SupplierInvoiceDate time.Time `gorm:"type:date;not null"`
	PurchaseDate        time.Time `gorm:"type:date;index;not null"`
	PlaceOfSupply       string    `gorm:"type:varchar(2);not null"`
	Status              string    `gorm:"type:varchar(10);index;not null;default:'draft'"`

	SupplierSnapshot CounterpartySnapshot `gorm:"type:jsonb;serializer:json;not null"`
	BusinessSnapshot BusinessSnapshot     `gorm:"type:jsonb;serializer:json;not null"`

	TotalQuantity   decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	SubtotalPaise   gst.Paise       `gorm:"not null;default:0"`
	CGSTPaise       gst.Paise       `gorm:"not null;default:0;column:cgst_paise"`
	SGSTPaise       gst.Paise       `gorm:"not null;default:0;column:sgst_paise"`
	IGSTPaise       gst.Paise       `gorm:"not null;default:0;column:igst_paise"`
	TotalGSTPaise   gst.Paise       `gorm:"not null;default:0;column:total_gst_paise"`
	GrandTotalPaise gst.Paise       `gorm:"not null;default:0"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	FinalizedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string `gorm:"type:varchar(500)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
	Supplier *Supplier      `gorm:"foreignKey:SupplierID"`
}

// PurchaseItem is one line of a purchase invoice. Items are free-form
// (supplier catalogues don't align with ours) and are matched to products by
// HSN code at finalize time.
type PurchaseItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID uuid.UUID `gorm:"type:uuid;index;not null"`

	ItemName string          `gorm:"not null"`
	HSNCode  string          `gorm:"type:varchar(8);not null;column:hsn_code"`
	Quantity decimal.Decimal `gorm:"type:decimal(14,3);not null"`

	UnitRatePaise gst.Paise `gorm:"not null"`
	GSTRate       int64     `gorm:"not null;column:gst_rate"`

	TaxablePaise   gst.Paise `gorm:"not null"`
	CGSTPaise      gst.Paise `gorm:"not null;default:0;column:cgst_paise"`
	SGSTPaise      gst.Paise `gorm:"not null;default:0;column:sgst_paise"`
	IGSTPaise      gst.Paise `gorm:"not null;default:0;column:igst_paise"`
	TaxAmountPaise gst.Paise `gorm:"not null;default:0"`
	TotalPaise     gst.Paise `gorm:"not null"`
	TaxType        string    `gorm:"type:varchar(10);not null"`

	CreatedAt time.Time
}
