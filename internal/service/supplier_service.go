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

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context, filter dto.PartyFilter) ([]dto.SupplierResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func validateSupplierGSTIN(supplierType string, gstin *string, stateCode string) error {
	if !gst.ValidStateCode(stateCode) {
		return &gst.ValidationError{Field: "state_code", Reason: "unknown state code"}
	}
	if supplierType == "REGISTERED" {
		if gstin == nil || *gstin == "" {
			return &gst.ValidationError{Field: "gstin", Reason: "required for registered suppliers"}
		}
		return gst.ValidateGSTINForState(*gstin, stateCode)
	}
	if gstin != nil && *gstin != "" {
		return &gst.ValidationError{Field: "gstin", Reason: "must be empty for unregistered suppliers"}
	}
	return nil
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := validateSupplierGSTIN(req.SupplierType, req.GSTIN, req.StateCode); err != nil {
		return nil, err
	}

	sup := &model.Supplier{
		Name:         req.Name,
		SupplierType: req.SupplierType,
		GSTIN:        req.GSTIN,
		Address:      req.Address,
		State:        req.State,
		StateCode:    req.StateCode,
		Phone:        req.Phone,
		Email:        req.Email,
		Active:       true,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	resp := supplierToResponse(sup)
	return &resp, nil
}

func (s *supplierService) Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("supplier not found")
	}
	resp := supplierToResponse(sup)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context, filter dto.PartyFilter) ([]dto.SupplierResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	suppliers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.SupplierResponse, len(suppliers))
	for i := range suppliers {
		resp[i] = supplierToResponse(&suppliers[i])
	}
	return resp, total, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("supplier not found")
	}

	if req.Name != nil {
		sup.Name = *req.Name
	}
	if req.SupplierType != nil {
		sup.SupplierType = *req.SupplierType
	}
	if req.GSTIN != nil {
		sup.GSTIN = req.GSTIN
	}
	if req.Address != nil {
		sup.Address = *req.Address
	}
	if req.State != nil {
		sup.State = *req.State
	}
	if req.StateCode != nil {
		sup.StateCode = *req.StateCode
	}
	if req.Phone != nil {
		sup.Phone = req.Phone
	}
	if req.Email != nil {
		sup.Email = req.Email
	}

	if err := validateSupplierGSTIN(sup.SupplierType, sup.GSTIN, sup.StateCode); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	resp := supplierToResponse(sup)
	return &resp, nil
}

func (s *supplierService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *supplierService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func supplierToResponse(sup *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:           sup.ID.String(),
		Name:         sup.Name,
		SupplierType: sup.SupplierType,
		GSTIN:        sup.GSTIN,
		Address:      sup.Address,
		State:        sup.State,
		StateCode:    sup.StateCode,
		Phone:        sup.Phone,
		Email:        sup.Email,
		Active:       sup.Active,
	}
}
