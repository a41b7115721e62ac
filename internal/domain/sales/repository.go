package sales

import (
	"context"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleFilter holds query options for listing sales
type SaleFilter struct {
	shared.Filter
	TraderID   *uuid.UUID
	CustomerID *uuid.UUID
	Finalized  *bool
	From       *time.Time
	To         *time.Time
}

// SaleRepository provides access to the sale aggregate
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByNumber(ctx context.Context, saleNumber string) (*Sale, error)
	FindByVehicleID(ctx context.Context, vehicleID uuid.UUID) (*Sale, error)
	FindAll(ctx context.Context, filter SaleFilter) ([]Sale, int64, error)
	// FindFinalizedByTraderAndPeriod returns the trader's finalized sales
	// whose sale date falls inside the given calendar month.
	FindFinalizedByTraderAndPeriod(ctx context.Context, traderID uuid.UUID, year int, month time.Month) ([]Sale, error)
	FindTraderIDsWithSalesInPeriod(ctx context.Context, year int, month time.Month) ([]uuid.UUID, error)
	Save(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
}
