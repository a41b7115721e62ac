package handler

import (
	billingapp "github.com/cartrade/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// PaymentPlanHandler handles installment plan API endpoints
type PaymentPlanHandler struct {
	BaseHandler
	planService *billingapp.PaymentPlanService
}

// NewPaymentPlanHandler creates a new PaymentPlanHandler
func NewPaymentPlanHandler(planService *billingapp.PaymentPlanService) *PaymentPlanHandler {
	return &PaymentPlanHandler{
		planService: planService,
	}
}

// Create godoc
// @ID           createPaymentPlan
// @Summary      Schedule an installment plan
// @Description  Spread the open balance of an issued invoice over equal monthly installments
// @Tags         payment-plans
// @Accept       json
// @Produce      json
// @Param        request body billingapp.CreatePaymentPlanRequest true "Payment plan request"
// @Success      201 {object} dto.Response{data=billingapp.PaymentPlanResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /payment-plans [post]
func (h *PaymentPlanHandler) Create(c *gin.Context) {
	var req billingapp.CreatePaymentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, plan)
}

// GetByID godoc
// @ID           getPaymentPlanById
// @Summary      Get payment plan by ID
// @Tags         payment-plans
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.PaymentPlanResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /payment-plans/{id} [get]
func (h *PaymentPlanHandler) GetByID(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	plan, err := h.planService.GetByID(c.Request.Context(), planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// GetByInvoice godoc
// @ID           getPaymentPlanByInvoice
// @Summary      Get the payment plan of an invoice
// @Tags         payment-plans
// @Produce      json
// @Param        invoice_id path string true "Invoice ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.PaymentPlanResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /payment-plans/invoice/{invoice_id} [get]
func (h *PaymentPlanHandler) GetByInvoice(c *gin.Context) {
	invoiceID, err := parseIDParam(c, "invoice_id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	plan, err := h.planService.GetByInvoiceID(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// List godoc
// @ID           listPaymentPlans
// @Summary      List payment plans
// @Tags         payment-plans
// @Produce      json
// @Param        status query string false "Plan status" Enums(active, completed, defaulted, cancelled)
// @Param        invoice_id query string false "Invoice ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]billingapp.PaymentPlanResponse}
// @Failure      400 {object} dto.Response
// @Router       /payment-plans [get]
func (h *PaymentPlanHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toSharedFilter(listReq)
	filter.Filters = map[string]interface{}{}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if invoiceID, err := parseUUIDQuery(c, "invoice_id"); err != nil {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	} else if invoiceID != nil {
		filter.Filters["invoice_id"] = *invoiceID
	}

	plans, total, err := h.planService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, plans, total, listReq.Page, listReq.PageSize)
}

// RecordInstallment godoc
// @ID           recordInstallmentPayment
// @Summary      Record an installment payment
// @Description  Pay down one installment. Partial payments are carried on the installment's open balance.
// @Tags         payment-plans
// @Accept       json
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Param        request body billingapp.RecordInstallmentRequest true "Installment payment request"
// @Success      200 {object} dto.Response{data=billingapp.PaymentPlanResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /payment-plans/{id}/installments [post]
func (h *PaymentPlanHandler) RecordInstallment(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	var req billingapp.RecordInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.RecordInstallmentPayment(c.Request.Context(), planID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// Complete godoc
// @ID           completePaymentPlan
// @Summary      Complete a payment plan
// @Tags         payment-plans
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.PaymentPlanResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /payment-plans/{id}/complete [post]
func (h *PaymentPlanHandler) Complete(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	plan, err := h.planService.Complete(c.Request.Context(), planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// MarkDefaulted godoc
// @ID           markPaymentPlanDefaulted
// @Summary      Mark a payment plan as defaulted
// @Tags         payment-plans
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.PaymentPlanResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /payment-plans/{id}/default [post]
func (h *PaymentPlanHandler) MarkDefaulted(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	plan, err := h.planService.MarkDefaulted(c.Request.Context(), planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// Cancel godoc
// @ID           cancelPaymentPlan
// @Summary      Cancel a payment plan
// @Tags         payment-plans
// @Produce      json
// @Param        id path string true "Plan ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.PaymentPlanResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /payment-plans/{id}/cancel [post]
func (h *PaymentPlanHandler) Cancel(c *gin.Context) {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid plan ID format")
		return
	}

	plan, err := h.planService.Cancel(c.Request.Context(), planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}
