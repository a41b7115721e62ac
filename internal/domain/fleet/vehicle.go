package fleet

import (
	"fmt"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VehicleStatus represents the lifecycle state of a vehicle in stock
type VehicleStatus string

const (
	VehicleStatusInTransit VehicleStatus = "in_transit"
	VehicleStatusAtCustoms VehicleStatus = "at_customs"
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusReserved  VehicleStatus = "reserved"
	VehicleStatusSold      VehicleStatus = "sold"
)

// IsValid checks if the status is a valid VehicleStatus
func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleStatusInTransit, VehicleStatusAtCustoms, VehicleStatusAvailable,
		VehicleStatusReserved, VehicleStatusSold:
		return true
	}
	return false
}

// String returns the string representation of VehicleStatus
func (s VehicleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s VehicleStatus) CanTransitionTo(target VehicleStatus) bool {
	switch s {
	case VehicleStatusInTransit:
		return target == VehicleStatusAtCustoms
	case VehicleStatusAtCustoms:
		return target == VehicleStatusAvailable
	case VehicleStatusAvailable:
		return target == VehicleStatusReserved || target == VehicleStatusSold
	case VehicleStatusReserved:
		return target == VehicleStatusAvailable || target == VehicleStatusSold
	case VehicleStatusSold:
		return false // Terminal state
	}
	return false
}

// IsTerminal returns true if the vehicle has left the stock for good
func (s VehicleStatus) IsTerminal() bool {
	return s == VehicleStatusSold
}

// CanBeSold returns true if a sale may reference the vehicle in this status
func (s VehicleStatus) CanBeSold() bool {
	return s == VehicleStatusAvailable || s == VehicleStatusReserved
}

// Vehicle represents a vehicle in the import pipeline. Each vehicle
// references exactly one purchase, which carries the landed-cost chain.
type Vehicle struct {
	shared.BaseAggregateRoot
	VIN                string // VIN or chassis number, unique
	Make               string
	Model              string
	Year               int
	Color              string
	EngineType         string
	Specifications     string
	PurchaseID         uuid.UUID
	Status             VehicleStatus
	ReservedBy         *uuid.UUID
	ReservationDate    *time.Time
	ReservationExpires *time.Time
}

const minVINLength = 10

// NewVehicle creates a new vehicle in transit
func NewVehicle(vin, make, model string, year int, color, engineType, specifications string, purchaseID uuid.UUID) (*Vehicle, error) {
	if len(vin) < minVINLength {
		return nil, shared.NewDomainError("INVALID_VIN", fmt.Sprintf("VIN/chassis number must be at least %d characters", minVINLength))
	}
	if make == "" {
		return nil, shared.NewDomainError("INVALID_MAKE", "Vehicle make cannot be empty")
	}
	if model == "" {
		return nil, shared.NewDomainError("INVALID_MODEL", "Vehicle model cannot be empty")
	}
	currentYear := time.Now().Year()
	if year < 2000 || year > currentYear+1 {
		return nil, shared.NewDomainError("INVALID_YEAR", fmt.Sprintf("Year must be between 2000 and %d", currentYear+1))
	}
	if purchaseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE", "Purchase ID cannot be empty")
	}

	v := &Vehicle{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VIN:               vin,
		Make:              make,
		Model:             model,
		Year:              year,
		Color:             color,
		EngineType:        engineType,
		Specifications:    specifications,
		PurchaseID:        purchaseID,
		Status:            VehicleStatusInTransit,
	}

	v.AddDomainEvent(NewVehicleCreatedEvent(v))

	return v, nil
}

// ArriveAtCustoms moves the vehicle from transit to the customs stage
func (v *Vehicle) ArriveAtCustoms() error {
	return v.transitionTo(VehicleStatusAtCustoms)
}

// MarkAvailable releases the vehicle into sellable stock. Called when the
// purchase's customs declaration is cleared.
func (v *Vehicle) MarkAvailable() error {
	return v.transitionTo(VehicleStatusAvailable)
}

// Reserve holds the vehicle for a trader for the given number of days
func (v *Vehicle) Reserve(traderID uuid.UUID, days int) error {
	if traderID == uuid.Nil {
		return shared.NewDomainError("INVALID_TRADER", "Trader ID cannot be empty")
	}
	if days <= 0 {
		return shared.NewDomainError("INVALID_RESERVATION_DURATION", "Reservation duration must be at least 1 day")
	}
	if v.Status != VehicleStatusAvailable {
		return shared.NewDomainError("VEHICLE_NOT_AVAILABLE", fmt.Sprintf("Vehicle %s cannot be reserved in status %s", v.VIN, v.Status))
	}

	now := time.Now()
	expires := now.AddDate(0, 0, days)
	v.Status = VehicleStatusReserved
	v.ReservedBy = &traderID
	v.ReservationDate = &now
	v.ReservationExpires = &expires
	v.UpdatedAt = now
	v.IncrementVersion()
	v.AddDomainEvent(NewVehicleReservedEvent(v, traderID, expires))

	return nil
}

// ReleaseReservation returns a reserved vehicle to available stock
func (v *Vehicle) ReleaseReservation() error {
	return v.releaseReservation("released")
}

// ExpireReservation releases the reservation because it ran out. Rejected
// while the reservation is still active.
func (v *Vehicle) ExpireReservation(now time.Time) error {
	if v.Status != VehicleStatusReserved {
		return shared.NewDomainError("NOT_RESERVED", fmt.Sprintf("Vehicle %s is not reserved", v.VIN))
	}
	if v.ReservationExpires != nil && now.Before(*v.ReservationExpires) {
		return shared.NewDomainError("RESERVATION_ACTIVE", fmt.Sprintf("Reservation on vehicle %s has not expired yet", v.VIN))
	}
	return v.releaseReservation("expired")
}

func (v *Vehicle) releaseReservation(reason string) error {
	if v.Status != VehicleStatusReserved {
		return shared.NewDomainError("NOT_RESERVED", fmt.Sprintf("Vehicle %s is not reserved", v.VIN))
	}

	releasedFrom := v.ReservedBy
	v.Status = VehicleStatusAvailable
	v.ReservedBy = nil
	v.ReservationDate = nil
	v.ReservationExpires = nil
	v.Touch()
	v.IncrementVersion()
	v.AddDomainEvent(NewReservationReleasedEvent(v, releasedFrom, reason))

	return nil
}

// MarkSold flips the vehicle to sold. Allowed from available or reserved;
// any active reservation is cleared.
func (v *Vehicle) MarkSold() error {
	if !v.Status.CanBeSold() {
		return shared.NewDomainError("VEHICLE_NOT_SELLABLE", fmt.Sprintf("Vehicle %s cannot be sold in status %s", v.VIN, v.Status))
	}

	v.Status = VehicleStatusSold
	v.ReservedBy = nil
	v.ReservationDate = nil
	v.ReservationExpires = nil
	v.Touch()
	v.IncrementVersion()
	v.AddDomainEvent(NewVehicleSoldEvent(v))

	return nil
}

// IsReservationExpired reports whether an active reservation has run out
func (v *Vehicle) IsReservationExpired(now time.Time) bool {
	if v.Status != VehicleStatusReserved || v.ReservationExpires == nil {
		return false
	}
	return now.After(*v.ReservationExpires)
}

// DaysInStock returns the number of days since the vehicle entered stock.
// For sold vehicles the caller supplies the sale date to stop the clock.
func (v *Vehicle) DaysInStock(asOf time.Time) int {
	days := int(asOf.Sub(v.CreatedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsSlowMoving reports whether an available vehicle has sat in stock
// longer than the threshold.
func (v *Vehicle) IsSlowMoving(asOf time.Time, thresholdDays int) bool {
	return v.Status == VehicleStatusAvailable && v.DaysInStock(asOf) > thresholdDays
}

func (v *Vehicle) transitionTo(target VehicleStatus) error {
	if !v.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", fmt.Sprintf("Vehicle %s cannot transition from %s to %s", v.VIN, v.Status, target))
	}

	from := v.Status
	v.Status = target
	v.Touch()
	v.IncrementVersion()
	v.AddDomainEvent(NewVehicleStatusChangedEvent(v, from, target))

	return nil
}
