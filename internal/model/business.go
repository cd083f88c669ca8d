package model

import (
	"time"

	"github.com/google/uuid"
)

// BusinessProfile is the single selling business of this installation.
// The document number counters live here so that number allocation can be
// serialized with a row lock inside the finalize transaction.
type BusinessProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	GSTIN     string    `gorm:"type:varchar(15);uniqueIndex;not null;column:gstin"`
	StateCode string    `gorm:"type:varchar(2);not null"`
	Address   string    `gorm:"not null"`
	City      string    `gorm:"not null"`
	Pincode   string    `gorm:"type:varchar(6);not null"`
	Phone     *string   `gorm:"type:varchar(15)"`
	Email     *string

	// Document numbering. Counters hold the last assigned number; the next
	// document gets counter+1. Numbers are never reused, even after
	// cancellation.
	InvoicePrefix   string `gorm:"type:varchar(10);not null;default:'INV'"`
	InvoiceCounter  int64  `gorm:"not null;default:0"`
	PurchasePrefix  string `gorm:"type:varchar(10);not null;default:'PUR'"`
	PurchaseCounter int64  `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BusinessProfile) TableName() string { return "business_profile" }
