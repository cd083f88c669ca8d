package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
)

type PurchaseRepository interface {
	Create(ctx context.Context, p *model.PurchaseInvoice) error
	CreateTx(tx *gorm.DB, p *model.PurchaseInvoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseInvoice, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PurchaseInvoice, error)
	List(ctx context.Context, filter dto.PurchaseFilter) ([]model.PurchaseInvoice, int64, error)
	SaveTx(tx *gorm.DB, p *model.PurchaseInvoice) error
	ReplaceItemsTx(tx *gorm.DB, p *model.PurchaseInvoice, items []model.PurchaseItem) error
	FindFinalizedInRange(ctx context.Context, from, to time.Time, includeCancelled bool, supplierID *uuid.UUID) ([]model.PurchaseInvoice, error)
	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) DB() *gorm.DB { return r.db }

func (r *purchaseRepo) Create(ctx context.Context, p *model.PurchaseInvoice) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.PurchaseInvoice) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseInvoice, error) {
	var p model.PurchaseInvoice
	err := r.db.WithContext(ctx).Preload("Items").First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PurchaseInvoice, error) {
	var p model.PurchaseInvoice
	err := tx.Preload("Items").First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context, filter dto.PurchaseFilter) ([]model.PurchaseInvoice, int64, error) {
	var purchases []model.PurchaseInvoice
	var total int64

	q := r.db.WithContext(ctx).Model(&model.PurchaseInvoice{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.FromDate != "" {
		q = q.Where("purchase_date >= ?", filter.FromDate)
	}
	if filter.ToDate != "" {
		q = q.Where("purchase_date <= ?", filter.ToDate)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&purchases).Error
	return purchases, total, err
}

func (r *purchaseRepo) SaveTx(tx *gorm.DB, p *model.PurchaseInvoice) error {
	return tx.Save(p).Error
}

func (r *purchaseRepo) ReplaceItemsTx(tx *gorm.DB, p *model.PurchaseInvoice, items []model.PurchaseItem) error {
	if err := tx.Where("purchase_id = ?", p.ID).Delete(&model.PurchaseItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].PurchaseID = p.ID
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
	}
	p.Items = items
	return nil
}

func (r *purchaseRepo) FindFinalizedInRange(ctx context.Context, from, to time.Time, includeCancelled bool, supplierID *uuid.UUID) ([]model.PurchaseInvoice, error) {
	var purchases []model.PurchaseInvoice

	statuses := []string{model.StatusFinalized}
	if includeCancelled {
		statuses = append(statuses, model.StatusCancelled)
	}

	q := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Where("purchase_date >= ? AND purchase_date <= ?", from, to)
	if supplierID != nil {
		q = q.Where("supplier_id = ?", *supplierID)
	}

	err := q.Preload("Items").Order("purchase_number ASC").Find(&purchases).Error
	return purchases, err
}
