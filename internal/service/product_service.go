package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/repository"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := gst.ValidateHSN(req.HSNCode); err != nil {
		return nil, err
	}
	if !gst.ValidRate(req.GSTRate) {
		return nil, &gst.InvalidRateError{Rate: req.GSTRate}
	}
	if req.StockQuantity.IsNegative() {
		return nil, &gst.ValidationError{Field: "stock_quantity", Reason: "must not be negative"}
	}

	unit := req.Unit
	if unit == "" {
		unit = "PCS"
	}

	p := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		HSNCode:       req.HSNCode,
		GSTRate:       req.GSTRate,
		PricePaise:    gst.Paise(req.PricePaise),
		StockQuantity: req.StockQuantity,
		Unit:          unit,
		Active:        true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, len(products))
	for i := range products {
		data[i] = productToResponse(&products[i])
	}
	return &dto.ProductListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Update edits product master data. Stock is deliberately not editable here:
// every stock change goes through the ledger so the audit trail stays whole.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.HSNCode != nil {
		if err := gst.ValidateHSN(*req.HSNCode); err != nil {
			return nil, err
		}
		p.HSNCode = *req.HSNCode
	}
	if req.GSTRate != nil {
		if !gst.ValidRate(*req.GSTRate) {
			return nil, &gst.InvalidRateError{Rate: *req.GSTRate}
		}
		p.GSTRate = *req.GSTRate
	}
	if req.PricePaise != nil {
		if *req.PricePaise < 0 {
			return nil, &gst.ValidationError{Field: "price_paise", Reason: "must not be negative"}
		}
		p.PricePaise = gst.Paise(*req.PricePaise)
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		HSNCode:       p.HSNCode,
		GSTRate:       p.GSTRate,
		PricePaise:    int64(p.PricePaise),
		StockQuantity: p.StockQuantity,
		Unit:          p.Unit,
		Active:        p.Active,
	}
}
