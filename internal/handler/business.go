package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mat-rixMJ/WEBGSTBILL/internal/dto"
	"github.com/Mat-rixMJ/WEBGSTBILL/internal/service"
)

type BusinessHandler struct{ svc service.BusinessService }

func NewBusinessHandler(svc service.BusinessService) *BusinessHandler {
	return &BusinessHandler{svc: svc}
}

// Get godoc
// @Summary      Get business profile
// @Description  Returns the seller profile used on every issued document.
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.BusinessResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/business [get]
func (h *BusinessHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Upsert godoc
// @Summary      Create or update business profile
// @Description  Single-tenant profile. Document counters survive updates. Admin only.
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpsertBusinessRequest true "Business details"
// @Success      200  {object} dto.BusinessResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/business [put]
func (h *BusinessHandler) Upsert(c *gin.Context) {
	var req dto.UpsertBusinessRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
