package handler

import (
	"time"

	commissionapp "github.com/cartrade/backend/internal/application/commission"
	"github.com/cartrade/backend/internal/domain/commission"
	"github.com/gin-gonic/gin"
)

// SettlementHandler handles commission settlement API endpoints
type SettlementHandler struct {
	BaseHandler
	settlementService *commissionapp.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(settlementService *commissionapp.SettlementService) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
	}
}

// EnsurePeriodRequest represents a request to open a commission period
type EnsurePeriodRequest struct {
	Year  int `json:"year" binding:"required,min=2000"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

// EnsurePeriod godoc
// @ID           ensureCommissionPeriod
// @Summary      Open a commission period
// @Description  Create the commission period for a calendar month, or return the existing one
// @Tags         commission
// @Accept       json
// @Produce      json
// @Param        request body EnsurePeriodRequest true "Period request"
// @Success      200 {object} dto.Response{data=commissionapp.PeriodResponse}
// @Failure      400 {object} dto.Response
// @Router       /commission/periods [post]
func (h *SettlementHandler) EnsurePeriod(c *gin.Context) {
	var req EnsurePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	period, err := h.settlementService.EnsurePeriod(c.Request.Context(), req.Year, time.Month(req.Month))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, period)
}

// ClosePeriod godoc
// @ID           closeCommissionPeriod
// @Summary      Close a commission period
// @Description  Settle a calendar month: recompute every trader's summary from finalized sales, optionally apply tier bonuses, then lock the period
// @Tags         commission
// @Accept       json
// @Produce      json
// @Param        request body commissionapp.ClosePeriodRequest true "Period close request"
// @Success      200 {object} dto.Response{data=commissionapp.ClosePeriodResponse}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /commission/periods/close [post]
func (h *SettlementHandler) ClosePeriod(c *gin.Context) {
	var req commissionapp.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.settlementService.ClosePeriod(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ApplyTierBonuses godoc
// @ID           applyCommissionTierBonuses
// @Summary      Apply tier bonuses to an open period
// @Description  Recompute tier bonuses for every summary in the period against the active tier ladder
// @Tags         commission
// @Produce      json
// @Param        id path string true "Period ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]commissionapp.SummaryResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /commission/periods/{id}/tier-bonuses [post]
func (h *SettlementHandler) ApplyTierBonuses(c *gin.Context) {
	periodID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	summaries, err := h.settlementService.ApplyTierBonuses(c.Request.Context(), periodID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summaries)
}

// GetSummary godoc
// @ID           getCommissionSummary
// @Summary      Get a commission summary
// @Tags         commission
// @Produce      json
// @Param        id path string true "Summary ID" format(uuid)
// @Success      200 {object} dto.Response{data=commissionapp.SummaryResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /commission/summaries/{id} [get]
func (h *SettlementHandler) GetSummary(c *gin.Context) {
	summaryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid summary ID format")
		return
	}

	summary, err := h.settlementService.GetSummary(c.Request.Context(), summaryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// ListSummaries godoc
// @ID           listCommissionSummaries
// @Summary      List commission summaries
// @Tags         commission
// @Produce      json
// @Param        trader_id query string false "Trader ID" format(uuid)
// @Param        period_id query string false "Period ID" format(uuid)
// @Param        payout_status query string false "Payout status" Enums(pending, approved, paid, cancelled)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]commissionapp.SummaryResponse}
// @Failure      400 {object} dto.Response
// @Router       /commission/summaries [get]
func (h *SettlementHandler) ListSummaries(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := commission.SummaryFilter{
		Filter: toSharedFilter(listReq),
	}

	if filter.TraderID, err = parseUUIDQuery(c, "trader_id"); err != nil {
		h.BadRequest(c, "Invalid trader ID format")
		return
	}
	if filter.PeriodID, err = parseUUIDQuery(c, "period_id"); err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	if raw := c.Query("payout_status"); raw != "" {
		status := commission.PayoutStatus(raw)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid payout status")
			return
		}
		filter.PayoutStatus = &status
	}

	summaries, total, err := h.settlementService.ListSummaries(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, summaries, total, listReq.Page, listReq.PageSize)
}

// Approve godoc
// @ID           approveCommissionPayout
// @Summary      Approve a commission payout
// @Tags         commission
// @Produce      json
// @Param        id path string true "Summary ID" format(uuid)
// @Success      200 {object} dto.Response{data=commissionapp.SummaryResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /commission/summaries/{id}/approve [post]
func (h *SettlementHandler) Approve(c *gin.Context) {
	summaryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid summary ID format")
		return
	}

	summary, err := h.settlementService.Approve(c.Request.Context(), summaryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Pay godoc
// @ID           payCommission
// @Summary      Disburse an approved commission
// @Tags         commission
// @Accept       json
// @Produce      json
// @Param        id path string true "Summary ID" format(uuid)
// @Param        request body commissionapp.PayCommissionRequest true "Disbursement request"
// @Success      200 {object} dto.Response{data=commissionapp.SummaryResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /commission/summaries/{id}/pay [post]
func (h *SettlementHandler) Pay(c *gin.Context) {
	summaryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid summary ID format")
		return
	}

	var req commissionapp.PayCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.settlementService.Pay(c.Request.Context(), summaryID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// CancelPayout godoc
// @ID           cancelCommissionPayout
// @Summary      Cancel a pending or approved payout
// @Tags         commission
// @Produce      json
// @Param        id path string true "Summary ID" format(uuid)
// @Success      200 {object} dto.Response{data=commissionapp.SummaryResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /commission/summaries/{id}/cancel-payout [post]
func (h *SettlementHandler) CancelPayout(c *gin.Context) {
	summaryID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid summary ID format")
		return
	}

	summary, err := h.settlementService.CancelPayout(c.Request.Context(), summaryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// CreateAdjustment godoc
// @ID           createCommissionAdjustment
// @Summary      Record a manual commission adjustment
// @Description  Record a bonus, penalty, correction or special adjustment against a trader's open period. Adjustments are reported alongside the settled commission.
// @Tags         commission
// @Accept       json
// @Produce      json
// @Param        request body commissionapp.CreateAdjustmentRequest true "Adjustment request"
// @Success      201 {object} dto.Response{data=commissionapp.AdjustmentResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /commission/adjustments [post]
func (h *SettlementHandler) CreateAdjustment(c *gin.Context) {
	var req commissionapp.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	adjustment, err := h.settlementService.CreateAdjustment(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, adjustment)
}

// TraderStatement godoc
// @ID           getTraderCommissionStatement
// @Summary      Get a trader's period statement
// @Description  Returns the trader's settled summary together with the manual adjustment ledger for one period
// @Tags         commission
// @Produce      json
// @Param        trader_id path string true "Trader ID" format(uuid)
// @Param        period_id path string true "Period ID" format(uuid)
// @Success      200 {object} dto.Response{data=commissionapp.TraderStatementResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /commission/statements/{trader_id}/{period_id} [get]
func (h *SettlementHandler) TraderStatement(c *gin.Context) {
	traderID, err := parseIDParam(c, "trader_id")
	if err != nil {
		h.BadRequest(c, "Invalid trader ID format")
		return
	}

	periodID, err := parseIDParam(c, "period_id")
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	statement, err := h.settlementService.TraderStatement(c.Request.Context(), traderID, periodID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statement)
}
