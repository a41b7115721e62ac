package procurement

import (
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// FreightMethod represents the mode of transport for a shipment
type FreightMethod string

const (
	FreightMethodSea FreightMethod = "sea"
	FreightMethodAir FreightMethod = "air"
)

// IsValid checks if the freight method is valid
func (m FreightMethod) IsValid() bool {
	return m == FreightMethodSea || m == FreightMethodAir
}

// FreightCost holds the shipping and logistics costs of a purchase.
// Insurance and other logistics costs are already in DZD; the freight
// cost itself is converted through its own exchange rate.
type FreightCost struct {
	shared.BaseEntity
	Method              FreightMethod
	Cost                decimal.Decimal
	Currency            valueobject.Currency
	ExchangeRate        decimal.Decimal
	InsuranceCost       decimal.Decimal // DZD
	OtherLogisticsCosts decimal.Decimal // DZD
	Total               decimal.Decimal // DZD
}

// NewFreightCost creates a freight cost record with the DZD total derived
// from cost x rate + insurance + other logistics costs.
func NewFreightCost(
	method FreightMethod,
	cost decimal.Decimal,
	currency valueobject.Currency,
	exchangeRate decimal.Decimal,
	insuranceCost decimal.Decimal,
	otherLogisticsCosts decimal.Decimal,
) (*FreightCost, error) {
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_FREIGHT_METHOD", "Freight method must be sea or air")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FREIGHT_COST", "Freight cost cannot be negative")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Freight currency cannot be empty")
	}
	if !exchangeRate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_EXCHANGE_RATE", "Freight exchange rate must be greater than 0")
	}
	if insuranceCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INSURANCE_COST", "Insurance cost cannot be negative")
	}
	if otherLogisticsCosts.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LOGISTICS_COST", "Other logistics costs cannot be negative")
	}

	localCost := cost.Mul(exchangeRate).Round(2)

	return &FreightCost{
		BaseEntity:          shared.NewBaseEntity(),
		Method:              method,
		Cost:                cost,
		Currency:            currency,
		ExchangeRate:        exchangeRate.Round(6),
		InsuranceCost:       insuranceCost,
		OtherLogisticsCosts: otherLogisticsCosts,
		Total:               localCost.Add(insuranceCost).Add(otherLogisticsCosts),
	}, nil
}

// LocalCost returns the freight cost converted to DZD, before insurance
// and other logistics costs.
func (f *FreightCost) LocalCost() decimal.Decimal {
	return f.Cost.Mul(f.ExchangeRate).Round(2)
}
