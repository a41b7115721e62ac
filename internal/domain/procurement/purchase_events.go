package procurement

import (
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseCreatedEvent is raised when a new purchase is recorded
type PurchaseCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseID     uuid.UUID       `json:"purchase_id"`
	PurchaseNumber string          `json:"purchase_number"`
	SupplierID     uuid.UUID       `json:"supplier_id"`
	FOBPrice       decimal.Decimal `json:"fob_price"`
	Currency       string          `json:"currency"`
	LocalPrice     decimal.Decimal `json:"local_price"`
}

// EventType returns the event type name
func (e *PurchaseCreatedEvent) EventType() string {
	return "PurchaseCreated"
}

// NewPurchaseCreatedEvent creates a new PurchaseCreatedEvent
func NewPurchaseCreatedEvent(p *Purchase) *PurchaseCreatedEvent {
	return &PurchaseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PurchaseCreated", "Purchase", p.ID),
		PurchaseID:      p.ID,
		PurchaseNumber:  p.PurchaseNumber,
		SupplierID:      p.SupplierID,
		FOBPrice:        p.FOBPrice,
		Currency:        string(p.Currency),
		LocalPrice:      p.LocalPrice,
	}
}

// FreightRecordedEvent is raised when freight costs are recorded for a purchase
type FreightRecordedEvent struct {
	shared.BaseDomainEvent
	PurchaseID   uuid.UUID       `json:"purchase_id"`
	Method       FreightMethod   `json:"method"`
	FreightTotal decimal.Decimal `json:"freight_total"`
	LandedCost   decimal.Decimal `json:"landed_cost"`
}

// EventType returns the event type name
func (e *FreightRecordedEvent) EventType() string {
	return "FreightRecorded"
}

// NewFreightRecordedEvent creates a new FreightRecordedEvent
func NewFreightRecordedEvent(p *Purchase) *FreightRecordedEvent {
	return &FreightRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("FreightRecorded", "Purchase", p.ID),
		PurchaseID:      p.ID,
		Method:          p.Freight.Method,
		FreightTotal:    p.Freight.Total,
		LandedCost:      p.LandedCost(),
	}
}

// CustomsDeclaredEvent is raised when a customs declaration is filed
type CustomsDeclaredEvent struct {
	shared.BaseDomainEvent
	PurchaseID        uuid.UUID       `json:"purchase_id"`
	DeclarationNumber string          `json:"declaration_number"`
	CIFValue          decimal.Decimal `json:"cif_value"`
	ImportDuty        decimal.Decimal `json:"import_duty"`
	VATAmount         decimal.Decimal `json:"vat_amount"`
	TotalCustomsCost  decimal.Decimal `json:"total_customs_cost"`
}

// EventType returns the event type name
func (e *CustomsDeclaredEvent) EventType() string {
	return "CustomsDeclared"
}

// NewCustomsDeclaredEvent creates a new CustomsDeclaredEvent
func NewCustomsDeclaredEvent(p *Purchase) *CustomsDeclaredEvent {
	return &CustomsDeclaredEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent("CustomsDeclared", "Purchase", p.ID),
		PurchaseID:        p.ID,
		DeclarationNumber: p.Customs.DeclarationNumber,
		CIFValue:          p.Customs.CIFValue,
		ImportDuty:        p.Customs.ImportDuty,
		VATAmount:         p.Customs.VATAmount,
		TotalCustomsCost:  p.Customs.TotalCustomsCost,
	}
}

// CustomsClearedEvent is raised when a customs declaration is cleared.
// The fleet side reacts by moving the vehicle to available.
type CustomsClearedEvent struct {
	shared.BaseDomainEvent
	PurchaseID        uuid.UUID       `json:"purchase_id"`
	DeclarationNumber string          `json:"declaration_number"`
	ClearanceDate     time.Time       `json:"clearance_date"`
	LandedCost        decimal.Decimal `json:"landed_cost"`
}

// EventType returns the event type name
func (e *CustomsClearedEvent) EventType() string {
	return "CustomsCleared"
}

// NewCustomsClearedEvent creates a new CustomsClearedEvent
func NewCustomsClearedEvent(p *Purchase) *CustomsClearedEvent {
	clearedAt := time.Now()
	if p.Customs.ClearanceDate != nil {
		clearedAt = *p.Customs.ClearanceDate
	}
	return &CustomsClearedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent("CustomsCleared", "Purchase", p.ID),
		PurchaseID:        p.ID,
		DeclarationNumber: p.Customs.DeclarationNumber,
		ClearanceDate:     clearedAt,
		LandedCost:        p.LandedCost(),
	}
}
