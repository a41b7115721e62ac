package fleet

import (
	"time"

	"github.com/cartrade/backend/internal/domain/fleet"
	"github.com/google/uuid"
)

// CreateVehicleRequest represents a request to register an imported vehicle
type CreateVehicleRequest struct {
	VIN            string    `json:"vin" binding:"required,min=10,max=50"`
	Make           string    `json:"make" binding:"required,min=1,max=100"`
	Model          string    `json:"model" binding:"required,min=1,max=100"`
	Year           int       `json:"year" binding:"required"`
	Color          string    `json:"color"`
	EngineType     string    `json:"engine_type"`
	Specifications string    `json:"specifications"`
	PurchaseID     uuid.UUID `json:"purchase_id" binding:"required"`
}

// ReserveVehicleRequest represents a request to hold a vehicle for a trader
type ReserveVehicleRequest struct {
	TraderID uuid.UUID `json:"trader_id" binding:"required"`
	Days     *int      `json:"days"` // system default when omitted
}

// VehicleResponse is the API representation of a vehicle
type VehicleResponse struct {
	ID                 uuid.UUID  `json:"id"`
	VIN                string     `json:"vin"`
	Make               string     `json:"make"`
	Model              string     `json:"model"`
	Year               int        `json:"year"`
	Color              string     `json:"color"`
	EngineType         string     `json:"engine_type"`
	Specifications     string     `json:"specifications"`
	PurchaseID         uuid.UUID  `json:"purchase_id"`
	Status             string     `json:"status"`
	ReservedBy         *uuid.UUID `json:"reserved_by,omitempty"`
	ReservationDate    *time.Time `json:"reservation_date,omitempty"`
	ReservationExpires *time.Time `json:"reservation_expires,omitempty"`
	DaysInStock        int        `json:"days_in_stock"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ToVehicleResponse converts a vehicle aggregate to its API representation
func ToVehicleResponse(v *fleet.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                 v.ID,
		VIN:                v.VIN,
		Make:               v.Make,
		Model:              v.Model,
		Year:               v.Year,
		Color:              v.Color,
		EngineType:         v.EngineType,
		Specifications:     v.Specifications,
		PurchaseID:         v.PurchaseID,
		Status:             v.Status.String(),
		ReservedBy:         v.ReservedBy,
		ReservationDate:    v.ReservationDate,
		ReservationExpires: v.ReservationExpires,
		DaysInStock:        v.DaysInStock(time.Now()),
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

// ToVehicleResponses converts a slice of vehicles
func ToVehicleResponses(vehicles []fleet.Vehicle) []VehicleResponse {
	responses := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		responses[i] = ToVehicleResponse(&vehicles[i])
	}
	return responses
}
