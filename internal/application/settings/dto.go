package settings

import (
	"time"

	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateRatesRequest represents a change to the system default rates
type UpdateRatesRequest struct {
	VATRate         decimal.Decimal `json:"vat_rate" binding:"required"`
	TariffRate      decimal.Decimal `json:"tariff_rate" binding:"required"`
	CommissionRate  decimal.Decimal `json:"commission_rate" binding:"required"`
	ReservationDays int             `json:"reservation_days" binding:"required,min=1"`
	InvoiceDueDays  int             `json:"invoice_due_days" binding:"required,min=1"`
}

// UpdateCompanyInfoRequest represents a change to the company identity
type UpdateCompanyInfoRequest struct {
	CompanyName    string `json:"company_name" binding:"required,min=1,max=200"`
	CompanyTaxID   string `json:"company_tax_id"`
	CompanyAddress string `json:"company_address"`
	CompanyPhone   string `json:"company_phone"`
	CompanyEmail   string `json:"company_email" binding:"omitempty,email"`
}

// RecordExchangeRateRequest represents a new dated exchange rate quote
type RecordExchangeRateRequest struct {
	FromCurrency  string          `json:"from_currency" binding:"required,min=3,max=3"`
	ToCurrency    string          `json:"to_currency" binding:"required,min=3,max=3"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	EffectiveDate time.Time       `json:"effective_date" binding:"required"`
	Source        string          `json:"source"`
	Notes         string          `json:"notes"`
}

// ConfigurationResponse is the API representation of the system settings
type ConfigurationResponse struct {
	ID                      uuid.UUID       `json:"id"`
	CompanyName             string          `json:"company_name"`
	CompanyTaxID            string          `json:"company_tax_id"`
	CompanyAddress          string          `json:"company_address"`
	CompanyPhone            string          `json:"company_phone"`
	CompanyEmail            string          `json:"company_email"`
	DefaultVATRate          decimal.Decimal `json:"default_vat_rate"`
	DefaultTariffRate       decimal.Decimal `json:"default_tariff_rate"`
	DefaultCommissionRate   decimal.Decimal `json:"default_commission_rate"`
	ReservationDurationDays int             `json:"reservation_duration_days"`
	InvoiceDueDays          int             `json:"invoice_due_days"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// ExchangeRateResponse is the API representation of one rate quote
type ExchangeRateResponse struct {
	ID            uuid.UUID       `json:"id"`
	FromCurrency  string          `json:"from_currency"`
	ToCurrency    string          `json:"to_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effective_date"`
	Source        string          `json:"source"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ConversionResponse reports one currency conversion
type ConversionResponse struct {
	FromCurrency  string          `json:"from_currency"`
	ToCurrency    string          `json:"to_currency"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveDate time.Time       `json:"effective_date"`
	Amount        decimal.Decimal `json:"amount"`
	Converted     decimal.Decimal `json:"converted"`
}

// ToConfigurationResponse converts the configuration aggregate
func ToConfigurationResponse(c *settings.SystemConfiguration) ConfigurationResponse {
	return ConfigurationResponse{
		ID:                      c.ID,
		CompanyName:             c.CompanyName,
		CompanyTaxID:            c.CompanyTaxID,
		CompanyAddress:          c.CompanyAddress,
		CompanyPhone:            c.CompanyPhone,
		CompanyEmail:            c.CompanyEmail,
		DefaultVATRate:          c.DefaultVATRate,
		DefaultTariffRate:       c.DefaultTariffRate,
		DefaultCommissionRate:   c.DefaultCommissionRate,
		ReservationDurationDays: c.ReservationDurationDays,
		InvoiceDueDays:          c.InvoiceDueDays,
		UpdatedAt:               c.UpdatedAt,
	}
}

// ToExchangeRateResponse converts a rate quote aggregate
func ToExchangeRateResponse(q *settings.ExchangeRateQuote) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:            q.ID,
		FromCurrency:  string(q.FromCurrency),
		ToCurrency:    string(q.ToCurrency),
		Rate:          q.Rate,
		EffectiveDate: q.EffectiveDate,
		Source:        q.Source,
		Notes:         q.Notes,
		CreatedAt:     q.CreatedAt,
	}
}

// ToExchangeRateResponses converts a slice of quotes
func ToExchangeRateResponses(quotes []settings.ExchangeRateQuote) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(quotes))
	for i := range quotes {
		responses[i] = ToExchangeRateResponse(&quotes[i])
	}
	return responses
}
