package dto

// UpsertBusinessRequest creates or updates the single business profile.
// Counters are intentionally absent: document numbering state is only ever
// advanced by finalize, never set through the API.
type UpsertBusinessRequest struct {
	Name           string  `json:"name"            validate:"required,min=2,max=255"`
	GSTIN          string  `json:"gstin"           validate:"required,len=15"`
	StateCode      string  `json:"state_code"      validate:"required,len=2"`
	Address        string  `json:"address"         validate:"required,max=500"`
	City           string  `json:"city"            validate:"required,max=100"`
	Pincode        string  `json:"pincode"         validate:"required,len=6"`
	Phone          *string `json:"phone"           validate:"omitempty,max=15"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	InvoicePrefix  string  `json:"invoice_prefix"  validate:"omitempty,max=10"`
	PurchasePrefix string  `json:"purchase_prefix" validate:"omitempty,max=10"`
}

type BusinessResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	GSTIN          string  `json:"gstin"`
	StateCode      string  `json:"state_code"`
	StateName      string  `json:"state_name"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	Pincode        string  `json:"pincode"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	InvoicePrefix  string  `json:"invoice_prefix"`
	PurchasePrefix string  `json:"purchase_prefix"`
}
