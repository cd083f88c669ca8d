package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
)

// BusinessRepository manages the single business profile row, including
// the document number counters. Counter allocation takes a row lock so
// concurrent finalizes never observe the same counter value.
type BusinessRepository interface {
	Get(ctx context.Context) (*model.BusinessProfile, error)
	Upsert(ctx context.Context, b *model.BusinessProfile) error

	// GetForUpdateTx loads the profile with SELECT ... FOR UPDATE inside tx.
	GetForUpdateTx(tx *gorm.DB) (*model.BusinessProfile, error)
	// NextInvoiceNumberTx increments the sales counter under the row lock
	// and returns the formatted number (prefix + zero-padded counter).
	NextInvoiceNumberTx(tx *gorm.DB) (string, *model.BusinessProfile, error)
	// NextPurchaseNumberTx does the same for purchase invoices.
	NextPurchaseNumberTx(tx *gorm.DB) (string, *model.BusinessProfile, error)

	DB() *gorm.DB
}

type businessRepo struct{ db *gorm.DB }

func NewBusinessRepository(db *gorm.DB) BusinessRepository { return &businessRepo{db: db} }

func (r *businessRepo) DB() *gorm.DB { return r.db }

func (r *businessRepo) Get(ctx context.Context) (*model.BusinessProfile, error) {
	var b model.BusinessProfile
	err := r.db.WithContext(ctx).First(&b).Error
	return &b, err
}

func (r *businessRepo) Upsert(ctx context.Context, b *model.BusinessProfile) error {
	var existing model.BusinessProfile
	err := r.db.WithContext(ctx).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(b).Error
	}
	if err != nil {
		return err
	}
	b.ID = existing.ID
	// Counters are never client-settable; preserve stored values.
	b.InvoiceCounter = existing.InvoiceCounter
	b.PurchaseCounter = existing.PurchaseCounter
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *businessRepo) GetForUpdateTx(tx *gorm.DB) (*model.BusinessProfile, error) {
	var b model.BusinessProfile
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b).Error
	return &b, err
}

func (r *businessRepo) NextInvoiceNumberTx(tx *gorm.DB) (string, *model.BusinessProfile, error) {
	b, err := r.GetForUpdateTx(tx)
	if err != nil {
		return "", nil, err
	}
	b.InvoiceCounter++
	if err := tx.Model(b).Update("invoice_counter", b.InvoiceCounter).Error; err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s%06d", b.InvoicePrefix, b.InvoiceCounter), b, nil
}

func (r *businessRepo) NextPurchaseNumberTx(tx *gorm.DB) (string, *model.BusinessProfile, error) {
	b, err := r.GetForUpdateTx(tx)
	if err != nil {
		return "", nil, err
	}
	b.PurchaseCounter++
	if err := tx.Model(b).Update("purchase_counter", b.PurchaseCounter).Error; err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s%06d", b.PurchasePrefix, b.PurchaseCounter), b, nil
}
