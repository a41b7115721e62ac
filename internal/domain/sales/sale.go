package sales

import (
	"fmt"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer settles the sale
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodInstallment  PaymentMethod = "installment"
	PaymentMethodCheck        PaymentMethod = "check"
)

// IsValid checks if the payment method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodInstallment, PaymentMethodCheck:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// MarginResult holds the derived financials of a sale
type MarginResult struct {
	Margin           decimal.Decimal `json:"margin"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
}

// ComputeMargin derives margin, margin percentage and trader commission
// from a sale price and the vehicle's landed cost. Margin may be negative
// for a loss-making sale; commission is clamped at zero so traders are
// never charged for a bad deal. Margin percentage is zero when the landed
// cost is zero.
func ComputeMargin(salePrice, landedCost, commissionRate decimal.Decimal) (MarginResult, error) {
	if !salePrice.IsPositive() {
		return MarginResult{}, shared.NewDomainError("INVALID_SALE_PRICE", "Sale price must be greater than 0")
	}
	if landedCost.IsNegative() {
		return MarginResult{}, shared.NewDomainError("INVALID_LANDED_COST", "Landed cost cannot be negative")
	}
	if !shared.ValidRate(commissionRate) {
		return MarginResult{}, shared.NewDomainError("INVALID_COMMISSION_RATE", "Commission rate must be between 0 and 100")
	}

	margin := salePrice.Sub(landedCost)

	marginPct := decimal.Zero
	if landedCost.IsPositive() {
		marginPct = margin.Div(landedCost).Mul(decimal.NewFromInt(100)).Round(2)
	}

	commission := decimal.Zero
	if margin.IsPositive() {
		commission = margin.Mul(commissionRate).Div(decimal.NewFromInt(100)).Round(2)
	}

	return MarginResult{
		Margin:           margin,
		MarginPercentage: marginPct,
		CommissionAmount: commission,
	}, nil
}

// Sale represents a vehicle sale to a customer. Each vehicle can be sold
// exactly once; the landed cost is snapshotted at sale time so the margin
// does not drift if the purchase record is later touched.
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber       string
	SaleDate         time.Time
	VehicleID        uuid.UUID
	CustomerID       uuid.UUID
	CustomerName     string
	TraderID         uuid.UUID
	SalePrice        decimal.Decimal
	PaymentMethod    PaymentMethod
	DownPayment      decimal.Decimal
	CommissionRate   decimal.Decimal
	LandedCost       decimal.Decimal // snapshot of the vehicle's landed cost
	Margin           decimal.Decimal
	MarginPercentage decimal.Decimal
	CommissionAmount decimal.Decimal
	IsFinalized      bool
	Notes            string
}

// NewSale creates a new sale with margin and commission derived from the
// vehicle's landed cost
func NewSale(
	saleNumber string,
	saleDate time.Time,
	vehicleID uuid.UUID,
	customerID uuid.UUID,
	customerName string,
	traderID uuid.UUID,
	salePrice decimal.Decimal,
	paymentMethod PaymentMethod,
	downPayment decimal.Decimal,
	commissionRate decimal.Decimal,
	landedCost decimal.Decimal,
	notes string,
) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if saleDate.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_SALE_DATE", "Sale date cannot be in the future")
	}
	if vehicleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VEHICLE", "Vehicle ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if traderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRADER", "Trader ID cannot be empty")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Invalid payment method: %s", paymentMethod))
	}
	if downPayment.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DOWN_PAYMENT", "Down payment cannot be negative")
	}
	if downPayment.GreaterThan(salePrice) {
		return nil, shared.NewDomainError("DOWN_PAYMENT_EXCEEDS_PRICE", "Down payment cannot exceed the sale price")
	}

	result, err := ComputeMargin(salePrice, landedCost, commissionRate)
	if err != nil {
		return nil, err
	}

	s := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleNumber:        saleNumber,
		SaleDate:          saleDate,
		VehicleID:         vehicleID,
		CustomerID:        customerID,
		CustomerName:      customerName,
		TraderID:          traderID,
		SalePrice:         salePrice,
		PaymentMethod:     paymentMethod,
		DownPayment:       downPayment,
		CommissionRate:    commissionRate.Round(2),
		LandedCost:        landedCost,
		Margin:            result.Margin,
		MarginPercentage:  result.MarginPercentage,
		CommissionAmount:  result.CommissionAmount,
		Notes:             notes,
	}

	s.AddDomainEvent(NewSaleCreatedEvent(s))

	return s, nil
}

// UpdateTerms changes the price, commission rate or down payment and
// recomputes the derived financials. Rejected once the sale is finalized.
func (s *Sale) UpdateTerms(salePrice, downPayment, commissionRate decimal.Decimal) error {
	if s.IsFinalized {
		return shared.NewDomainError("SALE_FINALIZED", fmt.Sprintf("Sale %s is finalized and cannot be changed", s.SaleNumber))
	}
	if downPayment.IsNegative() {
		return shared.NewDomainError("INVALID_DOWN_PAYMENT", "Down payment cannot be negative")
	}
	if downPayment.GreaterThan(salePrice) {
		return shared.NewDomainError("DOWN_PAYMENT_EXCEEDS_PRICE", "Down payment cannot exceed the sale price")
	}

	result, err := ComputeMargin(salePrice, s.LandedCost, commissionRate)
	if err != nil {
		return err
	}

	s.SalePrice = salePrice
	s.DownPayment = downPayment
	s.CommissionRate = commissionRate.Round(2)
	s.Margin = result.Margin
	s.MarginPercentage = result.MarginPercentage
	s.CommissionAmount = result.CommissionAmount
	s.Touch()
	s.IncrementVersion()

	return nil
}

// Finalize marks the sale as final. One-way; finalized sales feed the
// commission period close.
func (s *Sale) Finalize() error {
	if s.IsFinalized {
		return shared.NewDomainError("ALREADY_FINALIZED", fmt.Sprintf("Sale %s is already finalized", s.SaleNumber))
	}

	s.IsFinalized = true
	s.Touch()
	s.IncrementVersion()
	s.AddDomainEvent(NewSaleFinalizedEvent(s))

	return nil
}

// RemainingBalance is the amount still owed after the down payment
func (s *Sale) RemainingBalance() decimal.Decimal {
	return s.SalePrice.Sub(s.DownPayment)
}

// IsProfitable reports whether the sale made money
func (s *Sale) IsProfitable() bool {
	return s.Margin.IsPositive()
}
