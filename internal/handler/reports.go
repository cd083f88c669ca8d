package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/apierror"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/infra"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func bindRegisterFilter(c *gin.Context, filter *dto.RegisterFilter) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, err.Error()))
		return false
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(apierror.CodeValidation, "from_date and to_date are required as YYYY-MM-DD"))
		return false
	}
	return true
}

// SalesRegister godoc
// @Summary      Sales register
// @Description  Finalized invoices in a date range with period totals. Pass format=xlsx for a spreadsheet download.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from_date         query string true  "YYYY-MM-DD"
// @Param        to_date           query string true  "YYYY-MM-DD"
// @Param        include_cancelled query bool   false "List cancelled rows (excluded from totals)"
// @Param        customer_id       query string false "Customer UUID"
// @Param        format            query string false "xlsx"
// @Success      200 {object} dto.SalesRegisterResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reports/sales-register [get]
func (h *ReportsHandler) SalesRegister(c *gin.Context) {
	var filter dto.RegisterFilter
	if !bindRegisterFilter(c, &filter) {
		return
	}
	report, err := h.svc.SalesRegister(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("format") == "xlsx" {
		data, err := infra.SalesRegisterXLSX(report)
		if err != nil {
			respondError(c, err)
			return
		}
		name := fmt.Sprintf("sales_register_%s_%s.xlsx", filter.FromDate, filter.ToDate)
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, xlsxContentType, data)
		return
	}
	c.JSON(http.StatusOK, report)
}

// PurchaseRegister godoc
// @Summary      Purchase register
// @Description  Finalized purchase invoices in a date range with period totals. Pass format=xlsx for a spreadsheet download.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from_date         query string true  "YYYY-MM-DD"
// @Param        to_date           query string true  "YYYY-MM-DD"
// @Param        include_cancelled query bool   false "List cancelled rows (excluded from totals)"
// @Param        supplier_id       query string false "Supplier UUID"
// @Param        format            query string false "xlsx"
// @Success      200 {object} dto.PurchaseRegisterResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reports/purchase-register [get]
func (h *ReportsHandler) PurchaseRegister(c *gin.Context) {
	var filter dto.RegisterFilter
	if !bindRegisterFilter(c, &filter) {
		return
	}
	report, err := h.svc.PurchaseRegister(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("format") == "xlsx" {
		data, err := infra.PurchaseRegisterXLSX(report)
		if err != nil {
			respondError(c, err)
			return
		}
		name := fmt.Sprintf("purchase_register_%s_%s.xlsx", filter.FromDate, filter.ToDate)
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, xlsxContentType, data)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GSTSummary godoc
// @Summary      GST summary
// @Description  Output tax from sales minus input tax from purchases for the period, per tax head.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from_date query string true "YYYY-MM-DD"
// @Param        to_date   query string true "YYYY-MM-DD"
// @Success      200 {object} dto.GSTSummaryResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/reports/gst-summary [get]
func (h *ReportsHandler) GSTSummary(c *gin.Context) {
	var filter dto.RegisterFilter
	if !bindRegisterFilter(c, &filter) {
		return
	}
	report, err := h.svc.GSTSummary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
