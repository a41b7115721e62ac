package settings

import (
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SystemConfiguration is the single company-wide settings record. Callers
// read defaults through it; every calculator takes the rates as explicit
// input, never through an ambient lookup.
type SystemConfiguration struct {
	shared.BaseAggregateRoot
	CompanyName    string
	CompanyTaxID   string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string

	DefaultVATRate        decimal.Decimal
	DefaultTariffRate     decimal.Decimal
	DefaultCommissionRate decimal.Decimal

	ReservationDurationDays int
	InvoiceDueDays          int

	EnableEmailNotifications bool
	EnableOverdueAlerts      bool
	OverdueAlertDays         int
}

// NewSystemConfiguration creates a configuration seeded with the fallback
// defaults
func NewSystemConfiguration(companyName string) *SystemConfiguration {
	rates := shared.DefaultRates()
	return &SystemConfiguration{
		BaseAggregateRoot:        shared.NewBaseAggregateRoot(),
		CompanyName:              companyName,
		DefaultVATRate:           rates.VATRate,
		DefaultTariffRate:        rates.TariffRate,
		DefaultCommissionRate:    rates.BaseCommissionRate,
		ReservationDurationDays:  rates.ReservationDays,
		InvoiceDueDays:           rates.InvoiceDueDays,
		EnableEmailNotifications: true,
		EnableOverdueAlerts:      true,
		OverdueAlertDays:         7,
	}
}

// UpdateRates changes the default rates and durations
func (c *SystemConfiguration) UpdateRates(vatRate, tariffRate, commissionRate decimal.Decimal, reservationDays, invoiceDueDays int) error {
	if !shared.ValidRate(vatRate) {
		return shared.NewDomainError("INVALID_VAT_RATE", "VAT rate must be between 0 and 100")
	}
	if !shared.ValidRate(tariffRate) {
		return shared.NewDomainError("INVALID_TARIFF_RATE", "Tariff rate must be between 0 and 100")
	}
	if !shared.ValidRate(commissionRate) {
		return shared.NewDomainError("INVALID_COMMISSION_RATE", "Commission rate must be between 0 and 100")
	}
	if reservationDays <= 0 {
		return shared.NewDomainError("INVALID_RESERVATION_DURATION", "Reservation duration must be at least 1 day")
	}
	if invoiceDueDays <= 0 {
		return shared.NewDomainError("INVALID_DUE_DAYS", "Invoice due days must be at least 1")
	}

	c.DefaultVATRate = vatRate.Round(2)
	c.DefaultTariffRate = tariffRate.Round(2)
	c.DefaultCommissionRate = commissionRate.Round(2)
	c.ReservationDurationDays = reservationDays
	c.InvoiceDueDays = invoiceDueDays
	c.IncrementVersion()

	return nil
}

// UpdateCompanyInfo changes the company identity fields
func (c *SystemConfiguration) UpdateCompanyInfo(name, taxID, address, phone, email string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}

	c.CompanyName = name
	c.CompanyTaxID = taxID
	c.CompanyAddress = address
	c.CompanyPhone = phone
	c.CompanyEmail = email
	c.IncrementVersion()

	return nil
}

// Rates returns the configured defaults as an injectable rates bundle
func (c *SystemConfiguration) Rates() shared.RatesConfig {
	return shared.RatesConfig{
		VATRate:            c.DefaultVATRate,
		TariffRate:         c.DefaultTariffRate,
		BaseCommissionRate: c.DefaultCommissionRate,
		ReservationDays:    c.ReservationDurationDays,
		InvoiceDueDays:     c.InvoiceDueDays,
	}
}
