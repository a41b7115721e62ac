package handler

import (
	"time"

	salesapp "github.com/cartrade/backend/internal/application/sales"
	"github.com/cartrade/backend/internal/domain/sales"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles sale-related API endpoints
type SaleHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// Create godoc
// @ID           createSale
// @Summary      Record a vehicle sale
// @Description  Sell an available or reserved vehicle to a customer. The margin is computed against the purchase landed cost at creation time.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body salesapp.CreateSaleRequest true "Sale creation request"
// @Success      201 {object} dto.Response{data=salesapp.SaleResponse}
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, sale)
}

// GetByID godoc
// @ID           getSaleById
// @Summary      Get sale by ID
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.SaleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// GetByNumber godoc
// @ID           getSaleByNumber
// @Summary      Get sale by sale number
// @Tags         sales
// @Produce      json
// @Param        sale_number path string true "Sale Number" example:"VTE-2026-0108"
// @Success      200 {object} dto.Response{data=salesapp.SaleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /sales/number/{sale_number} [get]
func (h *SaleHandler) GetByNumber(c *gin.Context) {
	saleNumber := c.Param("sale_number")
	if saleNumber == "" {
		h.BadRequest(c, "Sale number is required")
		return
	}

	sale, err := h.saleService.GetByNumber(c.Request.Context(), saleNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// List godoc
// @ID           listSales
// @Summary      List sales
// @Description  Retrieve a paginated list of sales with optional filtering
// @Tags         sales
// @Produce      json
// @Param        search query string false "Search term (sale number, customer name)"
// @Param        trader_id query string false "Trader ID" format(uuid)
// @Param        customer_id query string false "Customer ID" format(uuid)
// @Param        finalized query bool false "Filter by finalization"
// @Param        from query string false "Sale date lower bound (RFC 3339)" format(date-time)
// @Param        to query string false "Sale date upper bound (RFC 3339)" format(date-time)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]salesapp.SaleResponse}
// @Failure      400 {object} dto.Response
// @Router       /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := sales.SaleFilter{
		Filter: toSharedFilter(listReq),
	}

	if filter.TraderID, err = parseUUIDQuery(c, "trader_id"); err != nil {
		h.BadRequest(c, "Invalid trader ID format")
		return
	}
	if filter.CustomerID, err = parseUUIDQuery(c, "customer_id"); err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}
	if filter.Finalized, err = parseBoolQuery(c, "finalized"); err != nil {
		h.BadRequest(c, "Invalid finalized value")
		return
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "Invalid from date")
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "Invalid to date")
			return
		}
		filter.To = &to
	}

	items, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, listReq.Page, listReq.PageSize)
}

// UpdateTerms godoc
// @ID           updateSaleTerms
// @Summary      Correct the terms of a draft sale
// @Description  Update the price, down payment and commission rate of a sale that has not been finalized
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Param        request body salesapp.UpdateSaleTermsRequest true "Sale terms request"
// @Success      200 {object} dto.Response{data=salesapp.SaleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /sales/{id}/terms [put]
func (h *SaleHandler) UpdateTerms(c *gin.Context) {
	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	var req salesapp.UpdateSaleTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.UpdateTerms(c.Request.Context(), saleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// Finalize godoc
// @ID           finalizeSale
// @Summary      Finalize a sale
// @Description  Finalize the sale and mark the vehicle as sold. Finalized sales feed the trader's commission period.
// @Tags         sales
// @Produce      json
// @Param        id path string true "Sale ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.SaleResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /sales/{id}/finalize [post]
func (h *SaleHandler) Finalize(c *gin.Context) {
	saleID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.saleService.Finalize(c.Request.Context(), saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}
