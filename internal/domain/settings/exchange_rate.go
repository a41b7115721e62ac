package settings

import (
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExchangeRateQuote is one dated entry in the exchange rate history.
// Lookups resolve the latest quote effective on or before a given date.
type ExchangeRateQuote struct {
	shared.BaseAggregateRoot
	FromCurrency  valueobject.Currency
	ToCurrency    valueobject.Currency
	Rate          decimal.Decimal // 6 decimal places
	EffectiveDate time.Time
	Source        string
	Notes         string
}

// NewExchangeRateQuote records a dated exchange rate
func NewExchangeRateQuote(
	from valueobject.Currency,
	to valueobject.Currency,
	rate decimal.Decimal,
	effectiveDate time.Time,
	source string,
	notes string,
) (*ExchangeRateQuote, error) {
	if from == "" || to == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Both currencies must be set")
	}
	if from == to {
		return nil, shared.NewDomainError("INVALID_CURRENCY_PAIR", "Source and target currencies must differ")
	}
	if !rate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_EXCHANGE_RATE", "Exchange rate must be greater than 0")
	}

	return &ExchangeRateQuote{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FromCurrency:      from,
		ToCurrency:        to,
		Rate:              rate.Round(6),
		EffectiveDate:     effectiveDate,
		Source:            source,
		Notes:             notes,
	}, nil
}

// AsValueObject converts the quote into the conversion value object
func (q *ExchangeRateQuote) AsValueObject() (valueobject.ExchangeRate, error) {
	return valueobject.NewExchangeRate(q.FromCurrency, q.ToCurrency, q.Rate, q.EffectiveDate)
}
