package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a buyer. B2B customers must carry a GSTIN whose state code
// matches their declared state; B2C customers must not carry one.
type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"index;not null"`
	CustomerType string    `gorm:"type:varchar(3);not null;default:'B2C'"` // B2B | B2C
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

// IsB2B reports whether invoices to this customer are business-to-business.
func (c *Customer) IsB2B() bool { return c.CustomerType == "B2B" }
