package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
)

// Document statuses. The only legal transitions are
// draft → finalized → cancelled; both terminal branches require a prior
// finalize, and a finalized document's monetary fields never change again.
const (
	StatusDraft     = "draft"
	StatusFinalized = "finalized"
	StatusCancelled = "cancelled"
)

// CounterpartySnapshot is the value copy of a customer or supplier taken at
// document creation. Later edits to the master record never touch it.
type CounterpartySnapshot struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	GSTIN     *string `json:"gstin"`
	State     string  `json:"state"`
	StateCode string  `json:"state_code"`
	Address   string  `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

// BusinessSnapshot is the value copy of the business profile at document
// creation time.
type BusinessSnapshot struct {
	Name      string `json:"name"`
	GSTIN     string `json:"gstin"`
	StateCode string `json:"state_code"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Pincode   string `json:"pincode"`
}

// Invoice is a sales document. Totals are stored at creation from the tax
// calculator output and are never recomputed afterwards — reports read them
// as-is.
type Invoice struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// InvoiceNumber is nil while the document is a draft; finalize assigns it
	// exactly once from the business profile counter.
	InvoiceNumber *string   `gorm:"type:varchar(20);uniqueIndex"`
	InvoiceDate   time.Time `gorm:"type:date;index;not null"`
	PlaceOfSupply string    `gorm:"type:varchar(2);not null"`
	Status        string    `gorm:"type:varchar(10);index;not null;default:'draft'"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`

	CustomerSnapshot CounterpartySnapshot `gorm:"type:jsonb;serializer:json;not null"`
	BusinessSnapshot BusinessSnapshot     `gorm:"type:jsonb;serializer:json;not null"`

	SubtotalPaise   gst.Paise `gorm:"not null;default:0"`
	CGSTPaise       gst.Paise `gorm:"not null;default:0;column:cgst_paise"`
	SGSTPaise       gst.Paise `gorm:"not null;default:0;column:sgst_paise"`
	IGSTPaise       gst.Paise `gorm:"not null;default:0;column:igst_paise"`
	TotalGSTPaise   gst.Paise `gorm:"not null;default:0;column:total_gst_paise"`
	GrandTotalPaise gst.Paise `gorm:"not null;default:0"`

	FinalizedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string `gorm:"type:varchar(500)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Customer *Customer     `gorm:"foreignKey:CustomerID"`
}

// IsInterState reports whether IGST applies to this invoice: the place of
// supply lies outside the seller's state. Holds for zero-rated documents
// too, where all tax components are zero.
func (i *Invoice) IsInterState() bool { return i.PlaceOfSupply != i.BusinessSnapshot.StateCode }

// InvoiceItem is one line of an invoice. All product fields are value copies
// captured at creation; the ProductID reference exists only for stock
// adjustment and reporting joins.
type InvoiceItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`

	ProductName string `gorm:"not null"`
	Description *string
	HSNCode     string          `gorm:"type:varchar(8);not null;column:hsn_code"`
	Quantity    decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Unit        string          `gorm:"type:varchar(10);not null"`

	UnitPricePaise gst.Paise `gorm:"not null"`
	GSTRate        int64     `gorm:"not null;column:gst_rate"`

	TaxablePaise   gst.Paise `gorm:"not null"`
	CGSTPaise      gst.Paise `gorm:"not null;default:0;column:cgst_paise"`
	SGSTPaise      gst.Paise `gorm:"not null;default:0;column:sgst_paise"`
	IGSTPaise      gst.Paise `gorm:"not null;default:0;column:igst_paise"`
	TaxAmountPaise gst.Paise `gorm:"not null;default:0"`
	TotalPaise     gst.Paise `gorm:"not null"`
	TaxType        string    `gorm:"type:varchar(10);not null"`

	CreatedAt time.Time
}
