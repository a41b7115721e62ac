package commission

import (
	"context"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TierRepository provides access to the configured commission tiers
type TierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CommissionTier, error)
	// FindActive returns active tiers ordered by ascending minimum sales
	// count, ready for resolution.
	FindActive(ctx context.Context) ([]CommissionTier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]CommissionTier, int64, error)
	Save(ctx context.Context, tier *CommissionTier) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PeriodRepository provides access to commission periods
type PeriodRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CommissionPeriod, error)
	FindByYearMonth(ctx context.Context, year int, month time.Month) (*CommissionPeriod, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]CommissionPeriod, int64, error)
	Save(ctx context.Context, period *CommissionPeriod) error
}

// SummaryFilter holds query options for listing summaries
type SummaryFilter struct {
	shared.Filter
	TraderID     *uuid.UUID
	PeriodID     *uuid.UUID
	PayoutStatus *PayoutStatus
}

// SummaryRepository provides access to per-trader period summaries
type SummaryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CommissionSummary, error)
	FindByTraderAndPeriod(ctx context.Context, traderID, periodID uuid.UUID) (*CommissionSummary, error)
	FindByPeriod(ctx context.Context, periodID uuid.UUID) ([]CommissionSummary, error)
	FindAll(ctx context.Context, filter SummaryFilter) ([]CommissionSummary, int64, error)
	Save(ctx context.Context, summary *CommissionSummary) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdjustmentRepository provides access to the manual adjustment ledger
type AdjustmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CommissionAdjustment, error)
	FindByTraderAndPeriod(ctx context.Context, traderID, periodID uuid.UUID) ([]CommissionAdjustment, error)
	FindByPeriod(ctx context.Context, periodID uuid.UUID) ([]CommissionAdjustment, error)
	Save(ctx context.Context, adjustment *CommissionAdjustment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
