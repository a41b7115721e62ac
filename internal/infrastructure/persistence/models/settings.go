package models

import (
	"time"

	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SystemConfigurationModel is the persistence model for the single system
// configuration record.
type SystemConfigurationModel struct {
	AggregateModel
	CompanyName    string `gorm:"type:varchar(200);not null"`
	CompanyTaxID   string `gorm:"type:varchar(50)"`
	CompanyAddress string `gorm:"type:varchar(500)"`
	CompanyPhone   string `gorm:"type:varchar(50)"`
	CompanyEmail   string `gorm:"type:varchar(200)"`

	DefaultVATRate        decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	DefaultTariffRate     decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	DefaultCommissionRate decimal.Decimal `gorm:"type:decimal(8,4);not null"`

	ReservationDurationDays int `gorm:"not null"`
	InvoiceDueDays          int `gorm:"not null"`

	EnableEmailNotifications bool `gorm:"not null;default:false"`
	EnableOverdueAlerts      bool `gorm:"not null;default:true"`
	OverdueAlertDays         int  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SystemConfigurationModel) TableName() string {
	return "system_configurations"
}

// ToDomain converts the persistence model to a domain SystemConfiguration entity.
func (m *SystemConfigurationModel) ToDomain() *settings.SystemConfiguration {
	config := &settings.SystemConfiguration{
		CompanyName:    m.CompanyName,
		CompanyTaxID:   m.CompanyTaxID,
		CompanyAddress: m.CompanyAddress,
		CompanyPhone:   m.CompanyPhone,
		CompanyEmail:   m.CompanyEmail,

		DefaultVATRate:        m.DefaultVATRate,
		DefaultTariffRate:     m.DefaultTariffRate,
		DefaultCommissionRate: m.DefaultCommissionRate,

		ReservationDurationDays: m.ReservationDurationDays,
		InvoiceDueDays:          m.InvoiceDueDays,

		EnableEmailNotifications: m.EnableEmailNotifications,
		EnableOverdueAlerts:      m.EnableOverdueAlerts,
		OverdueAlertDays:         m.OverdueAlertDays,
	}
	m.PopulateAggregateRoot(&config.BaseAggregateRoot)
	return config
}

// SystemConfigurationModelFromDomain creates a persistence model from a domain SystemConfiguration entity.
func SystemConfigurationModelFromDomain(c *settings.SystemConfiguration) *SystemConfigurationModel {
	m := &SystemConfigurationModel{
		CompanyName:    c.CompanyName,
		CompanyTaxID:   c.CompanyTaxID,
		CompanyAddress: c.CompanyAddress,
		CompanyPhone:   c.CompanyPhone,
		CompanyEmail:   c.CompanyEmail,

		DefaultVATRate:        c.DefaultVATRate,
		DefaultTariffRate:     c.DefaultTariffRate,
		DefaultCommissionRate: c.DefaultCommissionRate,

		ReservationDurationDays: c.ReservationDurationDays,
		InvoiceDueDays:          c.InvoiceDueDays,

		EnableEmailNotifications: c.EnableEmailNotifications,
		EnableOverdueAlerts:      c.EnableOverdueAlerts,
		OverdueAlertDays:         c.OverdueAlertDays,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// ExchangeRateQuoteModel is the persistence model for an exchange rate quote.
type ExchangeRateQuoteModel struct {
	AggregateModel
	FromCurrency  valueobject.Currency `gorm:"type:varchar(3);not null;index:idx_rate_pair_date,priority:1"`
	ToCurrency    valueobject.Currency `gorm:"type:varchar(3);not null;index:idx_rate_pair_date,priority:2"`
	Rate          decimal.Decimal      `gorm:"type:decimal(18,6);not null"`
	EffectiveDate time.Time            `gorm:"not null;index:idx_rate_pair_date,priority:3"`
	Source        string               `gorm:"type:varchar(100)"`
	Notes         string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ExchangeRateQuoteModel) TableName() string {
	return "exchange_rate_quotes"
}

// ToDomain converts the persistence model to a domain ExchangeRateQuote entity.
func (m *ExchangeRateQuoteModel) ToDomain() *settings.ExchangeRateQuote {
	quote := &settings.ExchangeRateQuote{
		FromCurrency:  m.FromCurrency,
		ToCurrency:    m.ToCurrency,
		Rate:          m.Rate,
		EffectiveDate: m.EffectiveDate,
		Source:        m.Source,
		Notes:         m.Notes,
	}
	m.PopulateAggregateRoot(&quote.BaseAggregateRoot)
	return quote
}

// ExchangeRateQuoteModelFromDomain creates a persistence model from a domain ExchangeRateQuote entity.
func ExchangeRateQuoteModelFromDomain(q *settings.ExchangeRateQuote) *ExchangeRateQuoteModel {
	m := &ExchangeRateQuoteModel{
		FromCurrency:  q.FromCurrency,
		ToCurrency:    q.ToCurrency,
		Rate:          q.Rate,
		EffectiveDate: q.EffectiveDate,
		Source:        q.Source,
		Notes:         q.Notes,
	}
	m.FromDomainAggregateRoot(q.BaseAggregateRoot)
	return m
}
