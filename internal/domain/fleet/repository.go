package fleet

import (
	"context"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VehicleFilter holds query options for listing vehicles
type VehicleFilter struct {
	shared.Filter
	Status     *VehicleStatus
	Make       string
	PurchaseID *uuid.UUID
}

// VehicleRepository provides access to the vehicle aggregate
type VehicleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	FindByVIN(ctx context.Context, vin string) (*Vehicle, error)
	FindByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]Vehicle, error)
	FindAll(ctx context.Context, filter VehicleFilter) ([]Vehicle, int64, error)
	FindExpiredReservations(ctx context.Context, asOf time.Time) ([]Vehicle, error)
	Save(ctx context.Context, vehicle *Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
}
