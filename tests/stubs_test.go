package tests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
//
// In-memory repository stubs. Every DB() returns nil so that services run
// their transaction bodies directly (runTx passthrough).

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.add(p)
	return nil
}

// FindByID returns a copy, like a real SELECT would. The stock service reads
// StockBefore from it after the decrement mutated the stored row.
func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) FindActiveByHSNTx(_ *gorm.DB, hsn string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Active && p.HSNCode == hsn {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Active = false
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Active = true
	return nil
}

func (r *stubProductRepo) DecrementStockGuardedTx(_ *gorm.DB, id uuid.UUID, qty decimal.Decimal) (bool, error) {
	p, ok := r.products[id]
	if !ok {
		return false, errors.New("not found")
	}
	if p.StockQuantity.LessThan(qty) {
		return false, nil
	}
	p.StockQuantity = p.StockQuantity.Sub(qty)
	return true, nil
}

func (r *stubProductRepo) IncrementStockTx(_ *gorm.DB, id uuid.UUID, qty decimal.Decimal) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.StockQuantity = p.StockQuantity.Add(qty)
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) ListByProduct(_ context.Context, productID uuid.UUID, _ int) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) ListByReference(_ context.Context, referenceID uuid.UUID) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.ReferenceID != nil && *m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) DB() *gorm.DB { return nil }

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) add(c *model.Customer) *model.Customer {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return c
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	r.add(c)
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCustomerRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Customer, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubCustomerRepo) List(_ context.Context, _ dto.PartyFilter) ([]model.Customer, int64, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.customers[id]
	if !ok {
		return errors.New("not found")
	}
	c.Active = false
	return nil
}

func (r *stubCustomerRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	c, ok := r.customers[id]
	if !ok {
		return errors.New("not found")
	}
	c.Active = true
	return nil
}

func (r *stubCustomerRepo) DB() *gorm.DB { return nil }

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) add(s *model.Supplier) *model.Supplier {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return s
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	r.add(s)
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubSupplierRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Supplier, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubSupplierRepo) List(_ context.Context, _ dto.PartyFilter) ([]model.Supplier, int64, error) {
	out := make([]model.Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s, ok := r.suppliers[id]
	if !ok {
		return errors.New("not found")
	}
	s.Active = false
	return nil
}

func (r *stubSupplierRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	s, ok := r.suppliers[id]
	if !ok {
		return errors.New("not found")
	}
	s.Active = true
	return nil
}

func (r *stubSupplierRepo) DB() *gorm.DB { return nil }

var _ repository.SupplierRepository = (*stubSupplierRepo)(nil)

type stubBusinessRepo struct {
	profile *model.BusinessProfile
}

func (r *stubBusinessRepo) Get(_ context.Context) (*model.BusinessProfile, error) {
	if r.profile == nil {
		return nil, errors.New("not found")
	}
	return r.profile, nil
}

func (r *stubBusinessRepo) Upsert(_ context.Context, b *model.BusinessProfile) error {
	if r.profile != nil {
		b.ID = r.profile.ID
		b.InvoiceCounter = r.profile.InvoiceCounter
		b.PurchaseCounter = r.profile.PurchaseCounter
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.profile = b
	return nil
}

func (r *stubBusinessRepo) GetForUpdateTx(_ *gorm.DB) (*model.BusinessProfile, error) {
	return r.Get(context.Background())
}

func (r *stubBusinessRepo) NextInvoiceNumberTx(_ *gorm.DB) (string, *model.BusinessProfile, error) {
	if r.profile == nil {
		return "", nil, errors.New("not found")
	}
	r.profile.InvoiceCounter++
	return fmt.Sprintf("%s%06d", r.profile.InvoicePrefix, r.profile.InvoiceCounter), r.profile, nil
}

func (r *stubBusinessRepo) NextPurchaseNumberTx(_ *gorm.DB) (string, *model.BusinessProfile, error) {
	if r.profile == nil {
		return "", nil, errors.New("not found")
	}
	r.profile.PurchaseCounter++
	return fmt.Sprintf("%s%06d", r.profile.PurchasePrefix, r.profile.PurchaseCounter), r.profile, nil
}

func (r *stubBusinessRepo) DB() *gorm.DB { return nil }

var _ repository.BusinessRepository = (*stubBusinessRepo)(nil)

type stubInvoiceRepo struct {
	invoices map[uuid.UUID]*model.Invoice
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[uuid.UUID]*model.Invoice)}
}

func (r *stubInvoiceRepo) Create(_ context.Context, inv *model.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now()
	r.invoices[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) CreateTx(_ *gorm.DB, inv *model.Invoice) error {
	return r.Create(context.Background(), inv)
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return inv, nil
}

func (r *stubInvoiceRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Invoice, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubInvoiceRepo) List(_ context.Context, _ dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	out := make([]model.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) SaveTx(_ *gorm.DB, inv *model.Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) ReplaceItemsTx(_ *gorm.DB, inv *model.Invoice, items []model.InvoiceItem) error {
	for i := range items {
		items[i].InvoiceID = inv.ID
	}
	inv.Items = items
	return nil
}

func (r *stubInvoiceRepo) FindFinalizedInRange(_ context.Context, from, to time.Time, includeCancelled bool, customerID *uuid.UUID) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if inv.Status == model.StatusDraft {
			continue
		}
		if inv.Status == model.StatusCancelled && !includeCancelled {
			continue
		}
		if inv.InvoiceDate.Before(from) || inv.InvoiceDate.After(to) {
			continue
		}
		if customerID != nil && inv.CustomerID != *customerID {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

type stubPurchaseRepo struct {
	purchases map[uuid.UUID]*model.PurchaseInvoice
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{purchases: make(map[uuid.UUID]*model.PurchaseInvoice)}
}

func (r *stubPurchaseRepo) Create(_ context.Context, p *model.PurchaseInvoice) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.PurchaseInvoice) error {
	return r.Create(context.Background(), p)
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PurchaseInvoice, error) {
	p, ok := r.purchases[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubPurchaseRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.PurchaseInvoice, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubPurchaseRepo) List(_ context.Context, _ dto.PurchaseFilter) ([]model.PurchaseInvoice, int64, error) {
	out := make([]model.PurchaseInvoice, 0, len(r.purchases))
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPurchaseRepo) SaveTx(_ *gorm.DB, p *model.PurchaseInvoice) error {
	r.purchases[p.ID] = p
	return nil
}

func (r *stubPurchaseRepo) ReplaceItemsTx(_ *gorm.DB, p *model.PurchaseInvoice, items []model.PurchaseItem) error {
	for i := range items {
		items[i].PurchaseID = p.ID
	}
	p.Items = items
	return nil
}

func (r *stubPurchaseRepo) FindFinalizedInRange(_ context.Context, from, to time.Time, includeCancelled bool, supplierID *uuid.UUID) ([]model.PurchaseInvoice, error) {
	var out []model.PurchaseInvoice
	for _, p := range r.purchases {
		if p.Status == model.StatusDraft {
			continue
		}
		if p.Status == model.StatusCancelled && !includeCancelled {
			continue
		}
		if p.PurchaseDate.Before(from) || p.PurchaseDate.After(to) {
			continue
		}
		if supplierID != nil && p.SupplierID != *supplierID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

var _ repository.PurchaseRepository = (*stubPurchaseRepo)(nil)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return errors.New("duplicate username")
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) DB() *gorm.DB { return nil }

var _ repository.UserRepository = (*stubUserRepo)(nil)
