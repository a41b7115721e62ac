package procurement

import (
	"fmt"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase represents a vehicle purchase from a supplier. It is the
// aggregate root for the whole landed-cost chain and owns the optional
// freight cost and customs declaration records.
type Purchase struct {
	shared.BaseAggregateRoot
	PurchaseNumber string
	PurchaseDate   time.Time
	SupplierID     uuid.UUID
	SupplierName   string
	FOBPrice       decimal.Decimal       // price before shipping, in Currency
	Currency       valueobject.Currency  // source currency of the FOB price
	ExchangeRate   decimal.Decimal       // rate to DZD, 6 decimal places
	LocalPrice     decimal.Decimal       // FOB x rate, DZD, 2 decimal places
	Notes          string
	Locked         bool // set once a vehicle references this purchase
	Freight        *FreightCost
	Customs        *CustomsDeclaration
}

// NewPurchase creates a new purchase with the local price derived from the
// FOB price and exchange rate.
func NewPurchase(
	purchaseNumber string,
	purchaseDate time.Time,
	supplierID uuid.UUID,
	supplierName string,
	fobPrice decimal.Decimal,
	currency valueobject.Currency,
	exchangeRate decimal.Decimal,
	notes string,
) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_PURCHASE_NUMBER", "Purchase number cannot be empty")
	}
	if purchaseDate.After(endOfToday()) {
		return nil, shared.NewDomainError("INVALID_PURCHASE_DATE", "Purchase date cannot be in the future")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if fobPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FOB_PRICE", "FOB price cannot be negative")
	}
	if currency == "" {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}
	if !exchangeRate.IsPositive() {
		return nil, shared.NewDomainError("INVALID_EXCHANGE_RATE", "Exchange rate must be greater than 0")
	}

	p := &Purchase{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PurchaseNumber:    purchaseNumber,
		PurchaseDate:      purchaseDate,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		FOBPrice:          fobPrice,
		Currency:          currency,
		ExchangeRate:      exchangeRate.Round(6),
		LocalPrice:        fobPrice.Mul(exchangeRate).Round(2),
		Notes:             notes,
	}

	p.AddDomainEvent(NewPurchaseCreatedEvent(p))

	return p, nil
}

// UpdatePricing changes the FOB price and exchange rate and recomputes the
// local price. Rejected once the purchase is locked by a vehicle.
func (p *Purchase) UpdatePricing(fobPrice, exchangeRate decimal.Decimal) error {
	if p.Locked {
		return shared.NewDomainError("PURCHASE_LOCKED", "Purchase pricing is immutable once a vehicle references it")
	}
	if fobPrice.IsNegative() {
		return shared.NewDomainError("INVALID_FOB_PRICE", "FOB price cannot be negative")
	}
	if !exchangeRate.IsPositive() {
		return shared.NewDomainError("INVALID_EXCHANGE_RATE", "Exchange rate must be greater than 0")
	}

	p.FOBPrice = fobPrice
	p.ExchangeRate = exchangeRate.Round(6)
	p.LocalPrice = fobPrice.Mul(exchangeRate).Round(2)
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Lock marks the purchase as referenced by a vehicle, freezing its pricing.
func (p *Purchase) Lock() {
	if p.Locked {
		return
	}
	p.Locked = true
	p.Touch()
	p.IncrementVersion()
}

// RecordFreight attaches or replaces the freight cost record.
func (p *Purchase) RecordFreight(
	method FreightMethod,
	cost decimal.Decimal,
	currency valueobject.Currency,
	exchangeRate decimal.Decimal,
	insuranceCost decimal.Decimal,
	otherLogisticsCosts decimal.Decimal,
) error {
	freight, err := NewFreightCost(method, cost, currency, exchangeRate, insuranceCost, otherLogisticsCosts)
	if err != nil {
		return err
	}

	p.Freight = freight
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewFreightRecordedEvent(p))

	return nil
}

// DeclareCustoms creates the customs declaration for this purchase.
// Freight costs must already be recorded because they feed the CIF value,
// and a purchase can only be declared once.
func (p *Purchase) DeclareCustoms(
	declarationNumber string,
	declarationDate time.Time,
	tariffRate decimal.Decimal,
	vatRate decimal.Decimal,
	otherFees decimal.Decimal,
) error {
	if p.Freight == nil {
		return shared.NewDomainError("MISSING_FREIGHT", "Freight costs must be recorded before declaring customs")
	}
	if p.Customs != nil {
		return shared.NewDomainError("ALREADY_DECLARED", fmt.Sprintf("Purchase %s already has customs declaration %s", p.PurchaseNumber, p.Customs.DeclarationNumber))
	}

	customs, err := NewCustomsDeclaration(declarationNumber, declarationDate, p.CIFValue(), tariffRate, vatRate, otherFees)
	if err != nil {
		return err
	}

	p.Customs = customs
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewCustomsDeclaredEvent(p))

	return nil
}

// ClearCustoms marks the declaration as cleared. One-way transition.
func (p *Purchase) ClearCustoms(clearanceDate time.Time) error {
	if p.Customs == nil {
		return shared.NewDomainError("MISSING_DECLARATION", "No customs declaration exists for this purchase")
	}
	if err := p.Customs.Clear(clearanceDate); err != nil {
		return err
	}

	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewCustomsClearedEvent(p))

	return nil
}

// CIFValue is the customs value base: local purchase price plus total
// freight. It is recomputed on every call, never memoized.
func (p *Purchase) CIFValue() decimal.Decimal {
	cif := p.LocalPrice
	if p.Freight != nil {
		cif = cif.Add(p.Freight.Total)
	}
	return cif
}

// LandedCost is the running total cost of the vehicle in local stock.
// Missing freight or customs components contribute zero; the value is
// meaningful at every stage of the import pipeline.
func (p *Purchase) LandedCost() decimal.Decimal {
	total := p.LocalPrice
	if p.Freight != nil {
		total = total.Add(p.Freight.Total)
	}
	if p.Customs != nil {
		total = total.Add(p.Customs.TotalCustomsCost)
	}
	return total
}

// LandedCostMoney returns the landed cost as DZD Money
func (p *Purchase) LandedCostMoney() valueobject.Money {
	return valueobject.NewMoneyDZD(p.LandedCost())
}

// IsCleared returns true once the customs declaration has been cleared
func (p *Purchase) IsCleared() bool {
	return p.Customs != nil && p.Customs.Cleared
}

func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}
