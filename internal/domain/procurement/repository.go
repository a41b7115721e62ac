package procurement

import (
	"context"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseFilter holds query options for listing purchases
type PurchaseFilter struct {
	shared.Filter
	SupplierID *uuid.UUID
	Cleared    *bool
}

// PurchaseRepository provides access to the purchase aggregate
type PurchaseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindByNumber(ctx context.Context, purchaseNumber string) (*Purchase, error)
	FindAll(ctx context.Context, filter PurchaseFilter) ([]Purchase, int64, error)
	Save(ctx context.Context, purchase *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
}
