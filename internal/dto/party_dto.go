package dto

// Customer and supplier master data share the same shape except for the type
// discriminator, so both live here.

// ─── Customer ────────────────────────────────────────────────────────────────

type CreateCustomerRequest struct {
	Name         string  `json:"name"          validate:"required,min=2,max=255"`
	CustomerType string  `json:"customer_type" validate:"required,oneof=B2B B2C"`
	GSTIN        *string `json:"gstin"`
	Address      string  `json:"address"       validate:"required,max=500"`
	State        string  `json:"state"         validate:"required"`
	StateCode    string  `json:"state_code"    validate:"required,len=2"`
	Phone        *string `json:"phone"         validate:"omitempty,max=15"`
	Email        *string `json:"email"         validate:"omitempty,email"`
}

type UpdateCustomerRequest struct {
	Name         *string `json:"name"          validate:"omitempty,min=2,max=255"`
	CustomerType *string `json:"customer_type" validate:"omitempty,oneof=B2B B2C"`
	GSTIN        *string `json:"gstin"`
	Address      *string `json:"address"       validate:"omitempty,max=500"`
	State        *string `json:"state"`
	StateCode    *string `json:"state_code"    validate:"omitempty,len=2"`
	Phone        *string `json:"phone"         validate:"omitempty,max=15"`
	Email        *string `json:"email"         validate:"omitempty,email"`
}

type CustomerResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	CustomerType string  `json:"customer_type"`
	GSTIN        *string `json:"gstin"`
	Address      string  `json:"address"`
	State        string  `json:"state"`
	StateCode    string  `json:"state_code"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Active       bool    `json:"active"`
}

// ─── Supplier ────────────────────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name         string  `json:"name"          validate:"required,min=2,max=255"`
	SupplierType string  `json:"supplier_type" validate:"required,oneof=REGISTERED UNREGISTERED"`
	GSTIN        *string `json:"gstin"`
	Address      string  `json:"address"       validate:"required,max=500"`
	State        string  `json:"state"         validate:"required"`
	StateCode    string  `json:"state_code"    validate:"required,len=2"`
	Phone        *string `json:"phone"         validate:"omitempty,max=15"`
	Email        *string `json:"email"         validate:"omitempty,email"`
}

type UpdateSupplierRequest struct {
	Name         *string `json:"name"          validate:"omitempty,min=2,max=255"`
	SupplierType *string `json:"supplier_type" validate:"omitempty,oneof=REGISTERED UNREGISTERED"`
	GSTIN        *string `json:"gstin"`
	Address      *string `json:"address"       validate:"omitempty,max=500"`
	State        *string `json:"state"`
	StateCode    *string `json:"state_code"    validate:"omitempty,len=2"`
	Phone        *string `json:"phone"         validate:"omitempty,max=15"`
	Email        *string `json:"email"         validate:"omitempty,email"`
}

type SupplierResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SupplierType string  `json:"supplier_type"`
	GSTIN        *string `json:"gstin"`
	Address      string  `json:"address"`
	State        string  `json:"state"`
	StateCode    string  `json:"state_code"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Active       bool    `json:"active"`
}

type CustomerListResponse struct {
	Data  []CustomerResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type SupplierListResponse struct {
	Data  []SupplierResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ─── Shared filter ───────────────────────────────────────────────────────────

type PartyFilter struct {
	Name      string `form:"name"`
	GSTIN     string `form:"gstin"`
	StateCode string `form:"state_code"`
	Active    string `form:"active"` // "false" | "all" | default active only
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}
