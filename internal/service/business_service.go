package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/gst"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/model"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/repository"
)

type BusinessService interface {
	Get(ctx context.Context) (*dto.BusinessResponse, error)
	Upsert(ctx context.Context, req dto.UpsertBusinessRequest) (*dto.BusinessResponse, error)
}

type businessService struct {
	repo repository.BusinessRepository
}

func NewBusinessService(repo repository.BusinessRepository) BusinessService {
	return &businessService{repo: repo}
}

func (s *businessService) Get(ctx context.Context) (*dto.BusinessResponse, error) {
	b, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("business profile not configured")
		}
		return nil, err
	}
	resp := businessToResponse(b)
	return &resp, nil
}

func (s *businessService) Upsert(ctx context.Context, req dto.UpsertBusinessRequest) (*dto.BusinessResponse, error) {
	if err := gst.ValidateGSTINForState(req.GSTIN, req.StateCode); err != nil {
		return nil, err
	}
	if err := gst.ValidatePincode(req.Pincode); err != nil {
		return nil, err
	}

	b := &model.BusinessProfile{
		Name:           req.Name,
		GSTIN:          req.GSTIN,
		StateCode:      req.StateCode,
		Address:        req.Address,
		City:           req.City,
		Pincode:        req.Pincode,
		Phone:          req.Phone,
		Email:          req.Email,
		InvoicePrefix:  req.InvoicePrefix,
		PurchasePrefix: req.PurchasePrefix,
	}
	if b.InvoicePrefix == "" {
		b.InvoicePrefix = "INV"
	}
	if b.PurchasePrefix == "" {
		b.PurchasePrefix = "PUR"
	}

	if err := s.repo.Upsert(ctx, b); err != nil {
		return nil, err
	}
	resp := businessToResponse(b)
	return &resp, nil
}

func businessToResponse(b *model.BusinessProfile) dto.BusinessResponse {
	return dto.BusinessResponse{
		ID:             b.ID.String(),
		Name:           b.Name,
		GSTIN:          b.GSTIN,
		StateCode:      b.StateCode,
		StateName:      gst.StateName(b.StateCode),
		Address:        b.Address,
		City:           b.City,
		Pincode:        b.Pincode,
		Phone:          b.Phone,
		Email:          b.Email,
		InvoicePrefix:  b.InvoicePrefix,
		PurchasePrefix: b.PurchasePrefix,
	}
}
