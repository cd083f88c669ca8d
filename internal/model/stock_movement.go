package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovement records every stock change on a product. Rows are immutable —
// cancellations create inverse entries instead of editing history.
type StockMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(20);not null"` // "sale" | "purchase" | "cancel_restore" | "manual_adjust"
	// Quantity is the signed delta: positive = stock in, negative = stock out.
	Quantity    decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	StockBefore decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	StockAfter  decimal.Decimal `gorm:"type:decimal(14,3);not null"`
	Reason      string
	// ReferenceID links to the originating invoice or purchase, if any.
	ReferenceID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
