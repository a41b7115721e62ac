package handler

import (
	"time"

	settingsapp "github.com/cartrade/backend/internal/application/settings"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SettingsHandler handles system configuration and exchange rate endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetConfiguration godoc
// @ID           getConfiguration
// @Summary      Get the system configuration
// @Tags         settings
// @Produce      json
// @Success      200 {object} dto.Response{data=settingsapp.ConfigurationResponse}
// @Router       /settings [get]
func (h *SettingsHandler) GetConfiguration(c *gin.Context) {
	cfg, err := h.settingsService.GetConfiguration(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cfg)
}

// UpdateRates godoc
// @ID           updateDefaultRates
// @Summary      Update the system default rates
// @Description  Change the default VAT, tariff and commission rates plus the reservation and invoice term durations
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.UpdateRatesRequest true "Rates update request"
// @Success      200 {object} dto.Response{data=settingsapp.ConfigurationResponse}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /settings/rates [put]
func (h *SettingsHandler) UpdateRates(c *gin.Context) {
	var req settingsapp.UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cfg, err := h.settingsService.UpdateRates(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cfg)
}

// UpdateCompanyInfo godoc
// @ID           updateCompanyInfo
// @Summary      Update the company identity
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.UpdateCompanyInfoRequest true "Company info request"
// @Success      200 {object} dto.Response{data=settingsapp.ConfigurationResponse}
// @Failure      400 {object} dto.Response
// @Router       /settings/company [put]
func (h *SettingsHandler) UpdateCompanyInfo(c *gin.Context) {
	var req settingsapp.UpdateCompanyInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cfg, err := h.settingsService.UpdateCompanyInfo(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cfg)
}

// RecordExchangeRate godoc
// @ID           recordExchangeRate
// @Summary      Record an exchange rate quote
// @Description  Record a dated rate quote for a currency pair. Purchases resolve their rate from the most recent quote on or before the purchase date.
// @Tags         exchange-rates
// @Accept       json
// @Produce      json
// @Param        request body settingsapp.RecordExchangeRateRequest true "Rate quote request"
// @Success      201 {object} dto.Response{data=settingsapp.ExchangeRateResponse}
// @Failure      400 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Router       /exchange-rates [post]
func (h *SettingsHandler) RecordExchangeRate(c *gin.Context) {
	var req settingsapp.RecordExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.settingsService.RecordExchangeRate(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, quote)
}

// GetLatestRate godoc
// @ID           getLatestExchangeRate
// @Summary      Get the latest rate for a currency pair
// @Tags         exchange-rates
// @Produce      json
// @Param        from query string true "Source currency" example:"USD"
// @Param        to query string true "Target currency" example:"DZD"
// @Param        as_of query string false "Effective date cutoff (RFC 3339), defaults to now" format(date-time)
// @Success      200 {object} dto.Response{data=settingsapp.ExchangeRateResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /exchange-rates/latest [get]
func (h *SettingsHandler) GetLatestRate(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		h.BadRequest(c, "from and to currencies are required")
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date")
			return
		}
		asOf = parsed
	}

	quote, err := h.settingsService.GetLatestRate(c.Request.Context(), from, to, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quote)
}

// ListRates godoc
// @ID           listExchangeRates
// @Summary      List exchange rate quotes
// @Tags         exchange-rates
// @Produce      json
// @Param        from_currency query string false "Source currency"
// @Param        to_currency query string false "Target currency"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]settingsapp.ExchangeRateResponse}
// @Failure      400 {object} dto.Response
// @Router       /exchange-rates [get]
func (h *SettingsHandler) ListRates(c *gin.Context) {
	listReq, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toSharedFilter(listReq)
	filter.Filters = map[string]interface{}{}
	if from := c.Query("from_currency"); from != "" {
		filter.Filters["from_currency"] = from
	}
	if to := c.Query("to_currency"); to != "" {
		filter.Filters["to_currency"] = to
	}

	quotes, total, err := h.settingsService.ListRates(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, quotes, total, listReq.Page, listReq.PageSize)
}

// Convert godoc
// @ID           convertToDZD
// @Summary      Convert an amount to dinars
// @Description  Convert a foreign currency amount to DZD using the rate in effect on the given date
// @Tags         exchange-rates
// @Produce      json
// @Param        currency query string true "Source currency" example:"EUR"
// @Param        amount query number true "Amount to convert"
// @Param        as_of query string false "Effective date cutoff (RFC 3339), defaults to now" format(date-time)
// @Success      200 {object} dto.Response{data=settingsapp.ConversionResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /exchange-rates/convert [get]
func (h *SettingsHandler) Convert(c *gin.Context) {
	currency := c.Query("currency")
	if currency == "" {
		h.BadRequest(c, "currency is required")
		return
	}

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		h.BadRequest(c, "Invalid amount")
		return
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "Invalid as_of date")
			return
		}
		asOf = parsed
	}

	conversion, err := h.settingsService.ConvertToDZD(c.Request.Context(), currency, amount, asOf)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, conversion)
}
