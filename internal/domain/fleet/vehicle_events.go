package fleet

import (
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VehicleCreatedEvent is raised when a vehicle enters the import pipeline
type VehicleCreatedEvent struct {
	shared.BaseDomainEvent
	VehicleID  uuid.UUID `json:"vehicle_id"`
	VIN        string    `json:"vin"`
	Make       string    `json:"make"`
	Model      string    `json:"model"`
	Year       int       `json:"year"`
	PurchaseID uuid.UUID `json:"purchase_id"`
}

// EventType returns the event type name
func (e *VehicleCreatedEvent) EventType() string {
	return "VehicleCreated"
}

// NewVehicleCreatedEvent creates a new VehicleCreatedEvent
func NewVehicleCreatedEvent(v *Vehicle) *VehicleCreatedEvent {
	return &VehicleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("VehicleCreated", "Vehicle", v.ID),
		VehicleID:       v.ID,
		VIN:             v.VIN,
		Make:            v.Make,
		Model:           v.Model,
		Year:            v.Year,
		PurchaseID:      v.PurchaseID,
	}
}

// VehicleStatusChangedEvent is raised on pipeline transitions that carry
// no extra payload of their own
type VehicleStatusChangedEvent struct {
	shared.BaseDomainEvent
	VehicleID  uuid.UUID     `json:"vehicle_id"`
	VIN        string        `json:"vin"`
	FromStatus VehicleStatus `json:"from_status"`
	ToStatus   VehicleStatus `json:"to_status"`
}

// EventType returns the event type name
func (e *VehicleStatusChangedEvent) EventType() string {
	return "VehicleStatusChanged"
}

// NewVehicleStatusChangedEvent creates a new VehicleStatusChangedEvent
func NewVehicleStatusChangedEvent(v *Vehicle, from, to VehicleStatus) *VehicleStatusChangedEvent {
	return &VehicleStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("VehicleStatusChanged", "Vehicle", v.ID),
		VehicleID:       v.ID,
		VIN:             v.VIN,
		FromStatus:      from,
		ToStatus:        to,
	}
}

// VehicleReservedEvent is raised when a trader reserves a vehicle
type VehicleReservedEvent struct {
	shared.BaseDomainEvent
	VehicleID uuid.UUID `json:"vehicle_id"`
	VIN       string    `json:"vin"`
	TraderID  uuid.UUID `json:"trader_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// EventType returns the event type name
func (e *VehicleReservedEvent) EventType() string {
	return "VehicleReserved"
}

// NewVehicleReservedEvent creates a new VehicleReservedEvent
func NewVehicleReservedEvent(v *Vehicle, traderID uuid.UUID, expiresAt time.Time) *VehicleReservedEvent {
	return &VehicleReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("VehicleReserved", "Vehicle", v.ID),
		VehicleID:       v.ID,
		VIN:             v.VIN,
		TraderID:        traderID,
		ExpiresAt:       expiresAt,
	}
}

// ReservationReleasedEvent is raised when a reservation ends without a sale,
// either released explicitly or expired
type ReservationReleasedEvent struct {
	shared.BaseDomainEvent
	VehicleID uuid.UUID  `json:"vehicle_id"`
	VIN       string     `json:"vin"`
	TraderID  *uuid.UUID `json:"trader_id,omitempty"`
	Reason    string     `json:"reason"`
}

// EventType returns the event type name
func (e *ReservationReleasedEvent) EventType() string {
	return "ReservationReleased"
}

// NewReservationReleasedEvent creates a new ReservationReleasedEvent
func NewReservationReleasedEvent(v *Vehicle, traderID *uuid.UUID, reason string) *ReservationReleasedEvent {
	return &ReservationReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ReservationReleased", "Vehicle", v.ID),
		VehicleID:       v.ID,
		VIN:             v.VIN,
		TraderID:        traderID,
		Reason:          reason,
	}
}

// VehicleSoldEvent is raised when a vehicle is marked as sold
type VehicleSoldEvent struct {
	shared.BaseDomainEvent
	VehicleID  uuid.UUID `json:"vehicle_id"`
	VIN        string    `json:"vin"`
	PurchaseID uuid.UUID `json:"purchase_id"`
}

// EventType returns the event type name
func (e *VehicleSoldEvent) EventType() string {
	return "VehicleSold"
}

// NewVehicleSoldEvent creates a new VehicleSoldEvent
func NewVehicleSoldEvent(v *Vehicle) *VehicleSoldEvent {
	return &VehicleSoldEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("VehicleSold", "Vehicle", v.ID),
		VehicleID:       v.ID,
		VIN:             v.VIN,
		PurchaseID:      v.PurchaseID,
	}
}
