package shared

import "github.com/shopspring/decimal"

// RatesConfig carries the system-wide default rates that the cost and
// commission calculators depend on. It is always passed explicitly to the
// code that needs it; nothing in the domain reads settings ambiently.
type RatesConfig struct {
	VATRate            decimal.Decimal // percent, 0-100
	TariffRate         decimal.Decimal // percent, 0-100
	BaseCommissionRate decimal.Decimal // percent, 0-100
	ReservationDays    int
	InvoiceDueDays     int
}

// DefaultRates returns the documented fallback rates used when no
// system configuration row exists: VAT 19%, tariff 25%, base commission 10%,
// reservations 7 days, invoices due in 30 days.
func DefaultRates() RatesConfig {
	return RatesConfig{
		VATRate:            decimal.NewFromInt(19),
		TariffRate:         decimal.NewFromInt(25),
		BaseCommissionRate: decimal.NewFromInt(10),
		ReservationDays:    7,
		InvoiceDueDays:     30,
	}
}

// ValidRate reports whether a percentage rate lies in [0, 100].
func ValidRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThanOrEqual(decimal.NewFromInt(100))
}
