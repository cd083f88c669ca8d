package dto

// ─── Filters ─────────────────────────────────────────────────────────────────

type RegisterFilter struct {
	FromDate         string `form:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate           string `form:"to_date"   validate:"required,datetime=2006-01-02"`
	IncludeCancelled bool   `form:"include_cancelled"`
	CustomerID       string `form:"customer_id"`
	SupplierID       string `form:"supplier_id"`
}

// ─── Sales register ──────────────────────────────────────────────────────────

type SalesRegisterRow struct {
	InvoiceNumber   string  `json:"invoice_number"`
	InvoiceDate     string  `json:"invoice_date"`
	CustomerName    string  `json:"customer_name"`
	CustomerGSTIN   *string `json:"customer_gstin"`
	PlaceOfSupply   string  `json:"place_of_supply"`
	TaxablePaise    int64   `json:"taxable_paise"`
	CGSTPaise       int64   `json:"cgst_paise"`
	SGSTPaise       int64   `json:"sgst_paise"`
	IGSTPaise       int64   `json:"igst_paise"`
	TotalGSTPaise   int64   `json:"total_gst_paise"`
	GrandTotalPaise int64   `json:"grand_total_paise"`
	Status          string  `json:"status"`
}

type RegisterSummary struct {
	TaxablePaise    int64 `json:"taxable_paise"`
	CGSTPaise       int64 `json:"cgst_paise"`
	SGSTPaise       int64 `json:"sgst_paise"`
	IGSTPaise       int64 `json:"igst_paise"`
	TotalGSTPaise   int64 `json:"total_gst_paise"`
	GrandTotalPaise int64 `json:"grand_total_paise"`
	CountDocuments  int   `json:"count_documents"`
	CountCancelled  int   `json:"count_cancelled"`
}

type SalesRegisterResponse struct {
	FromDate string             `json:"from_date"`
	ToDate   string             `json:"to_date"`
	Rows     []SalesRegisterRow `json:"rows"`
	Summary  RegisterSummary    `json:"summary"`
}

// ─── Purchase register ───────────────────────────────────────────────────────

type PurchaseRegisterRow struct {
	PurchaseNumber    string  `json:"purchase_number"`
	SupplierInvoiceNo string  `json:"supplier_invoice_no"`
	InvoiceDate       string  `json:"invoice_date"`
	SupplierName      string  `json:"supplier_name"`
	SupplierGSTIN     *string `json:"supplier_gstin"`
	TaxablePaise      int64   `json:"taxable_paise"`
	CGSTPaise         int64   `json:"cgst_paise"`
	SGSTPaise         int64   `json:"sgst_paise"`
	IGSTPaise         int64   `json:"igst_paise"`
	TotalGSTPaise     int64   `json:"total_gst_paise"`
	GrandTotalPaise   int64   `json:"grand_total_paise"`
	Status            string  `json:"status"`
}

type PurchaseRegisterResponse struct {
	FromDate string                `json:"from_date"`
	ToDate   string                `json:"to_date"`
	Rows     []PurchaseRegisterRow `json:"rows"`
	Summary  RegisterSummary       `json:"summary"`
}

// ─── GST summary ─────────────────────────────────────────────────────────────

// GSTSummaryResponse nets output GST (from sales) against input GST (from
// purchases) for the period. Positive net = payable.
type GSTSummaryResponse struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`

	OutputCGSTPaise  int64 `json:"output_cgst_paise"`
	OutputSGSTPaise  int64 `json:"output_sgst_paise"`
	OutputIGSTPaise  int64 `json:"output_igst_paise"`
	OutputTotalPaise int64 `json:"output_total_paise"`

	InputCGSTPaise  int64 `json:"input_cgst_paise"`
	InputSGSTPaise  int64 `json:"input_sgst_paise"`
	InputIGSTPaise  int64 `json:"input_igst_paise"`
	InputTotalPaise int64 `json:"input_total_paise"`

	NetCGSTPaise  int64 `json:"net_cgst_paise"`
	NetSGSTPaise  int64 `json:"net_sgst_paise"`
	NetIGSTPaise  int64 `json:"net_igst_paise"`
	NetTotalPaise int64 `json:"net_total_paise"`
}
