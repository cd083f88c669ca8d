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

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, filter dto.PartyFilter) ([]dto.CustomerResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

// validateCustomerGSTIN enforces the B2B/B2C registration rules: B2B
// customers carry a GSTIN registered in their declared state, B2C customers
// carry none.
func validateCustomerGSTIN(customerType string, gstin *string, stateCode string) error {
	if !gst.ValidStateCode(stateCode) {
		return &gst.ValidationError{Field: "state_code", Reason: "unknown state code"}
	}
	if customerType == "B2B" {
		if gstin == nil || *gstin == "" {
			return &gst.ValidationError{Field: "gstin", Reason: "required for B2B customers"}
		}
		return gst.ValidateGSTINForState(*gstin, stateCode)
	}
	if gstin != nil && *gstin != "" {
		return &gst.ValidationError{Field: "gstin", Reason: "must be empty for B2C customers"}
	}
	return nil
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := validateCustomerGSTIN(req.CustomerType, req.GSTIN, req.StateCode); err != nil {
		return nil, err
	}

	c := &model.Customer{
		Name:         req.Name,
		CustomerType: req.CustomerType,
		GSTIN:        req.GSTIN,
		Address:      req.Address,
		State:        req.State,
		StateCode:    req.StateCode,
		Phone:        req.Phone,
		Email:        req.Email,
		Active:       true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, filter dto.PartyFilter) ([]dto.CustomerResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.CustomerResponse, len(customers))
	for i := range customers {
		resp[i] = customerToResponse(&customers[i])
	}
	return resp, total, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("customer not found")
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.CustomerType != nil {
		c.CustomerType = *req.CustomerType
	}
	if req.GSTIN != nil {
		c.GSTIN = req.GSTIN
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.State != nil {
		c.State = *req.State
	}
	if req.StateCode != nil {
		c.StateCode = *req.StateCode
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}

	// Re-validate the resulting combination, not just changed fields.
	if err := validateCustomerGSTIN(c.CustomerType, c.GSTIN, c.StateCode); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := customerToResponse(c)
	return &resp, nil
}

func (s *customerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *customerService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func customerToResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		CustomerType: c.CustomerType,
		GSTIN:        c.GSTIN,
		Address:      c.Address,
		State:        c.State,
		StateCode:    c.StateCode,
		Phone:        c.Phone,
		Email:        c.Email,
		Active:       c.Active,
	}
}
