package handler

import (
	commissionapp "github.com/cartrade/backend/internal/application/commission"
	"github.com/gin-gonic/gin"
)

// CommissionTierHandler handles commission tier API endpoints
type CommissionTierHandler struct {
	BaseHandler
	tierService *commissionapp.TierService
}

// NewCommissionTierHandler creates a new CommissionTierHandler
func NewCommissionTierHandler(tierService *commissionapp.TierService) *CommissionTierHandler {
	return &CommissionTierHandler{
		tierService: tierService,
	}
}

// Create godoc
// @ID           createCommissionTier
// @Summary      Configure a commission tier
// @Description  Create a volume tier granting a bonus commission rate above a monthly sales count
// @Tags         commission-tiers
// @Accept       json
// @Produce      json
// @Param        request body commissionapp.CreateTierRequest true "Tier creation request"
// @Success      201 {object} dto.Response{data=commissionapp.TierResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /commission/tiers [post]
func (h *CommissionTierHandler) Create(c *gin.Context) {
	var req commissionapp.CreateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tier, err := h.tierService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, tier)
}

// GetByID godoc
// @ID           getCommissionTierById
// @Summary      Get commission tier by ID
// @Tags         commission-tiers
// @Produce      json
// @Param        id path string true "Tier ID" format(uuid)
// @Success      200 {object} dto.Response{data=commissionapp.TierResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /commission/tiers/{id} [get]
func (h *CommissionTierHandler) GetByID(c *gin.Context) {
	tierID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tier ID format")
		return
	}

	tier, err := h.tierService.GetByID(c.Request.Context(), tierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tier)
}

// List godoc
// @ID           listCommissionTiers
// @Summary      List commission tiers
// @Tags         commission-tiers
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]commissionapp.TierResponse}
// @Failure      400 {object} dto.Response
// @Router       /commission/tiers [get]
func (h *CommissionTierHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tiers, total, err := h.tierService.List(c.Request.Context(), toSharedFilter(listReq))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, tiers, total, listReq.Page, listReq.PageSize)
}

// Activate godoc
// @ID           activateCommissionTier
// @Summary      Activate a commission tier
// @Tags         commission-tiers
// @Produce      json
// @Param        id path string true "Tier ID" format(uuid)
// @Success      200 {object} dto.Response{data=commissionapp.TierResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /commission/tiers/{id}/activate [post]
func (h *CommissionTierHandler) Activate(c *gin.Context) {
	tierID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tier ID format")
		return
	}

	tier, err := h.tierService.Activate(c.Request.Context(), tierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tier)
}

// Deactivate godoc
// @ID           deactivateCommissionTier
// @Summary      Deactivate a commission tier
// @Tags         commission-tiers
// @Produce      json
// @Param        id path string true "Tier ID" format(uuid)
// @Success      200 {object} dto.Response{data=commissionapp.TierResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /commission/tiers/{id}/deactivate [post]
func (h *CommissionTierHandler) Deactivate(c *gin.Context) {
	tierID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tier ID format")
		return
	}

	tier, err := h.tierService.Deactivate(c.Request.Context(), tierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tier)
}
