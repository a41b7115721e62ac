package sales

import (
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleCreatedEvent is raised when a sale is recorded. The fleet side
// reacts by marking the vehicle as sold.
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID           uuid.UUID       `json:"sale_id"`
	SaleNumber       string          `json:"sale_number"`
	VehicleID        uuid.UUID       `json:"vehicle_id"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	TraderID         uuid.UUID       `json:"trader_id"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	Margin           decimal.Decimal `json:"margin"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
}

// EventType returns the event type name
func (e *SaleCreatedEvent) EventType() string {
	return "SaleCreated"
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("SaleCreated", "Sale", s.ID),
		SaleID:           s.ID,
		SaleNumber:       s.SaleNumber,
		VehicleID:        s.VehicleID,
		CustomerID:       s.CustomerID,
		TraderID:         s.TraderID,
		SalePrice:        s.SalePrice,
		Margin:           s.Margin,
		CommissionAmount: s.CommissionAmount,
	}
}

// SaleFinalizedEvent is raised when a sale is finalized and becomes
// eligible for commission aggregation
type SaleFinalizedEvent struct {
	shared.BaseDomainEvent
	SaleID           uuid.UUID       `json:"sale_id"`
	SaleNumber       string          `json:"sale_number"`
	TraderID         uuid.UUID       `json:"trader_id"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	Margin           decimal.Decimal `json:"margin"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
}

// EventType returns the event type name
func (e *SaleFinalizedEvent) EventType() string {
	return "SaleFinalized"
}

// NewSaleFinalizedEvent creates a new SaleFinalizedEvent
func NewSaleFinalizedEvent(s *Sale) *SaleFinalizedEvent {
	return &SaleFinalizedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("SaleFinalized", "Sale", s.ID),
		SaleID:           s.ID,
		SaleNumber:       s.SaleNumber,
		TraderID:         s.TraderID,
		SalePrice:        s.SalePrice,
		Margin:           s.Margin,
		CommissionAmount: s.CommissionAmount,
	}
}
