package handler

import (
	procurementapp "github.com/cartrade/backend/internal/application/procurement"
	"github.com/cartrade/backend/internal/domain/procurement"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles purchase-related API endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *procurementapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *procurementapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

// Create godoc
// @ID           createPurchase
// @Summary      Record a supplier purchase
// @Description  Record a new vehicle purchase with FOB pricing. The exchange rate is resolved from the rate history when omitted.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        request body procurementapp.CreatePurchaseRequest true "Purchase creation request"
// @Success      201 {object} dto.Response{data=procurementapp.PurchaseResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      500 {object} dto.Response
// @Router       /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req procurementapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, purchase)
}

// GetByID godoc
// @ID           getPurchaseById
// @Summary      Get purchase by ID
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), purchaseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// GetByNumber godoc
// @ID           getPurchaseByNumber
// @Summary      Get purchase by purchase number
// @Tags         purchases
// @Produce      json
// @Param        purchase_number path string true "Purchase Number" example:"ACH-2026-0042"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /purchases/number/{purchase_number} [get]
func (h *PurchaseHandler) GetByNumber(c *gin.Context) {
	purchaseNumber := c.Param("purchase_number")
	if purchaseNumber == "" {
		h.BadRequest(c, "Purchase number is required")
		return
	}

	purchase, err := h.purchaseService.GetByNumber(c.Request.Context(), purchaseNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// List godoc
// @ID           listPurchases
// @Summary      List purchases
// @Description  Retrieve a paginated list of purchases with optional filtering
// @Tags         purchases
// @Produce      json
// @Param        search query string false "Search term (purchase number, supplier name)"
// @Param        supplier_id query string false "Supplier ID" format(uuid)
// @Param        cleared query bool false "Filter by customs clearance"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} dto.Response{data=[]procurementapp.PurchaseResponse}
// @Failure      400 {object} dto.Response
// @Router       /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplierID, err := parseUUIDQuery(c, "supplier_id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	cleared, err := parseBoolQuery(c, "cleared")
	if err != nil {
		h.BadRequest(c, "Invalid cleared value")
		return
	}

	filter := procurement.PurchaseFilter{
		Filter:     toSharedFilter(listReq),
		SupplierID: supplierID,
		Cleared:    cleared,
	}

	purchases, total, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, purchases, total, listReq.Page, listReq.PageSize)
}

// UpdatePricing godoc
// @ID           updatePurchasePricing
// @Summary      Correct purchase pricing
// @Description  Update the FOB price and exchange rate of a purchase that has not been locked by a cleared customs declaration
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Param        request body procurementapp.UpdatePurchasePricingRequest true "Pricing correction request"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /purchases/{id}/pricing [put]
func (h *PurchaseHandler) UpdatePricing(c *gin.Context) {
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req procurementapp.UpdatePurchasePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.UpdatePricing(c.Request.Context(), purchaseID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// RecordFreight godoc
// @ID           recordPurchaseFreight
// @Summary      Record freight costs
// @Description  Attach sea or air freight costs to a purchase. Replaces any previously recorded freight while the purchase is unlocked.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Param        request body procurementapp.RecordFreightRequest true "Freight cost request"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /purchases/{id}/freight [post]
func (h *PurchaseHandler) RecordFreight(c *gin.Context) {
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req procurementapp.RecordFreightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.RecordFreight(c.Request.Context(), purchaseID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// DeclareCustoms godoc
// @ID           declarePurchaseCustoms
// @Summary      File a customs declaration
// @Description  File a customs declaration against the CIF value of a purchase. Tariff and VAT rates default to the system configuration when omitted.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Param        request body procurementapp.DeclareCustomsRequest true "Customs declaration request"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /purchases/{id}/customs [post]
func (h *PurchaseHandler) DeclareCustoms(c *gin.Context) {
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req procurementapp.DeclareCustomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.DeclareCustoms(c.Request.Context(), purchaseID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// ClearCustoms godoc
// @ID           clearPurchaseCustoms
// @Summary      Clear a customs declaration
// @Description  Mark the declaration as cleared. Clearing locks the purchase pricing and moves the associated vehicles toward availability.
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Param        request body procurementapp.ClearCustomsRequest true "Customs clearance request"
// @Success      200 {object} dto.Response{data=procurementapp.PurchaseResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /purchases/{id}/customs/clear [post]
func (h *PurchaseHandler) ClearCustoms(c *gin.Context) {
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	var req procurementapp.ClearCustomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.ClearCustoms(c.Request.Context(), purchaseID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, purchase)
}

// Delete godoc
// @ID           deletePurchase
// @Summary      Delete a purchase
// @Description  Delete a purchase that has no registered vehicles and no cleared declaration
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *gin.Context) {
	purchaseID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID format")
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), purchaseID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
