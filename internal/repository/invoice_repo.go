package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
)

// InvoiceRepository persists sales invoices and their items. Items are
// always loaded with the invoice; an invoice without its lines is useless
// to every caller.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *model.Invoice) error
	CreateTx(tx *gorm.DB, inv *model.Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Invoice, error)
	List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error)
	SaveTx(tx *gorm.DB, inv *model.Invoice) error
	ReplaceItemsTx(tx *gorm.DB, inv *model.Invoice, items []model.InvoiceItem) error

	// FindFinalizedInRange returns finalized (and optionally cancelled)
	// invoices whose invoice_date falls within [from, to], for registers.
	FindFinalizedInRange(ctx context.Context, from, to time.Time, includeCancelled bool, customerID *uuid.UUID) ([]model.Invoice, error)

	DB() *gorm.DB
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) DB() *gorm.DB { return r.db }

func (r *invoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invoiceRepo) CreateTx(tx *gorm.DB, inv *model.Invoice) error {
	return tx.Create(inv).Error
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).Preload("Items").First(&inv, id).Error
	return &inv, err
}

func (r *invoiceRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := tx.Preload("Items").First(&inv, id).Error
	return &inv, err
}

func (r *invoiceRepo) List(ctx context.Context, filter dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Invoice{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.FromDate != "" {
		q = q.Where("invoice_date >= ?", filter.FromDate)
	}
	if filter.ToDate != "" {
		q = q.Where("invoice_date <= ?", filter.ToDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepo) SaveTx(tx *gorm.DB, inv *model.Invoice) error {
	return tx.Save(inv).Error
}

// ReplaceItemsTx swaps the invoice's line set. Draft edits replace lines
// wholesale rather than diffing them.
func (r *invoiceRepo) ReplaceItemsTx(tx *gorm.DB, inv *model.Invoice, items []model.InvoiceItem) error {
	if err := tx.Where("invoice_id = ?", inv.ID).Delete(&model.InvoiceItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].InvoiceID = inv.ID
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
	}
	inv.Items = items
	return nil
}

func (r *invoiceRepo) FindFinalizedInRange(ctx context.Context, from, to time.Time, includeCancelled bool, customerID *uuid.UUID) ([]model.Invoice, error) {
	var invoices []model.Invoice

	statuses := []string{model.StatusFinalized}
	if includeCancelled {
		statuses = append(statuses, model.StatusCancelled)
	}

	q := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Where("invoice_date >= ? AND invoice_date <= ?", from, to)
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}

	err := q.Preload("Items").Order("invoice_number ASC").Find(&invoices).Error
	return invoices, err
}
