package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a vendor for purchase invoices.
type Supplier struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"index;not null"`
	SupplierType string    `gorm:"type:varchar(12);not null;default:'UNREGISTERED'"` // REGISTERED | UNREGISTERED
	GSTIN        *string   `gorm:"type:varchar(15);index;column:gstin"`
	Address      string    `gorm:"not null"`
	State        string    `gorm:"not null"`
	StateCode    string    `gorm:"type:varchar(2);index;not null"`
	Phone        *string   `gorm:"type:varchar(15)"`
	Email        *string
	Active       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsRegistered reports whether the supplier is GST registered.
func (s *Supplier) IsRegistered() bool { return s.SupplierType == "REGISTERED" }
