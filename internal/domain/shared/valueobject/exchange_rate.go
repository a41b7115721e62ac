package valueobject

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a dated conversion rate between two currencies.
// Rates carry 6 decimal places; converted amounts are rounded to 2.
type ExchangeRate struct {
	from          Currency
	to            Currency
	rate          decimal.Decimal
	effectiveDate time.Time
}

// NewExchangeRate creates a validated exchange rate
func NewExchangeRate(from, to Currency, rate decimal.Decimal, effectiveDate time.Time) (ExchangeRate, error) {
	if from == "" || to == "" {
		return ExchangeRate{}, fmt.Errorf("exchange rate currencies cannot be empty")
	}
	if !rate.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("exchange rate must be greater than 0, got %s", rate)
	}
	return ExchangeRate{
		from:          from,
		to:            to,
		rate:          rate.Round(6),
		effectiveDate: effectiveDate,
	}, nil
}

// From returns the source currency
func (r ExchangeRate) From() Currency {
	return r.from
}

// To returns the target currency
func (r ExchangeRate) To() Currency {
	return r.to
}

// Rate returns the numeric rate (6 decimal places)
func (r ExchangeRate) Rate() decimal.Decimal {
	return r.rate
}

// EffectiveDate returns the date the rate became effective
func (r ExchangeRate) EffectiveDate() time.Time {
	return r.effectiveDate
}

// Convert converts a Money amount from the rate's source currency into
// its target currency. Same-currency conversion is the identity.
func (r ExchangeRate) Convert(m Money) (Money, error) {
	if m.Currency() == r.to {
		return m, nil
	}
	if m.Currency() != r.from {
		return Money{}, fmt.Errorf("rate converts %s to %s, cannot convert %s", r.from, r.to, m.Currency())
	}
	converted := m.Amount().Mul(r.rate).Round(2)
	return Money{amount: converted, currency: r.to}, nil
}
