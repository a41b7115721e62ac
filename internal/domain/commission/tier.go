package commission

import (
	"sort"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CommissionTier is a sales-volume band granting a flat commission rate.
// Bands are configured non-overlapping and resolved in ascending order of
// their minimum sales count.
type CommissionTier struct {
	shared.BaseAggregateRoot
	Name           string
	MinSalesCount  int
	MaxSalesCount  *int // nil means open-ended upper band
	CommissionRate decimal.Decimal
	IsActive       bool
}

// NewCommissionTier creates a new tier band
func NewCommissionTier(name string, minSalesCount int, maxSalesCount *int, commissionRate decimal.Decimal) (*CommissionTier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TIER_NAME", "Tier name cannot be empty")
	}
	if minSalesCount < 0 {
		return nil, shared.NewDomainError("INVALID_TIER_RANGE", "Minimum sales count cannot be negative")
	}
	if maxSalesCount != nil && *maxSalesCount < minSalesCount {
		return nil, shared.NewDomainError("INVALID_TIER_RANGE", "Maximum sales count cannot be below the minimum")
	}
	if !shared.ValidRate(commissionRate) {
		return nil, shared.NewDomainError("INVALID_COMMISSION_RATE", "Commission rate must be between 0 and 100")
	}

	return &CommissionTier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		MinSalesCount:     minSalesCount,
		MaxSalesCount:     maxSalesCount,
		CommissionRate:    commissionRate.Round(2),
		IsActive:          true,
	}, nil
}

// AppliesTo reports whether the band contains the given sales count.
// The upper bound is inclusive; a nil upper bound is open-ended.
func (t *CommissionTier) AppliesTo(salesCount int) bool {
	if salesCount < t.MinSalesCount {
		return false
	}
	if t.MaxSalesCount != nil && salesCount > *t.MaxSalesCount {
		return false
	}
	return true
}

// Deactivate removes the tier from resolution without deleting it
func (t *CommissionTier) Deactivate() {
	if !t.IsActive {
		return
	}
	t.IsActive = false
	t.IncrementVersion()
}

// Activate returns the tier to the resolution set
func (t *CommissionTier) Activate() {
	if t.IsActive {
		return
	}
	t.IsActive = true
	t.IncrementVersion()
}

// ResolveTier returns the first active tier containing the sales count,
// scanning in ascending order of minimum sales count. Returns nil when no
// band matches.
func ResolveTier(salesCount int, tiers []CommissionTier) *CommissionTier {
	if salesCount < 0 {
		return nil
	}

	ordered := make([]CommissionTier, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MinSalesCount < ordered[j].MinSalesCount
	})

	for i := range ordered {
		if ordered[i].IsActive && ordered[i].AppliesTo(salesCount) {
			tier := ordered[i]
			return &tier
		}
	}
	return nil
}

// BonusRate is the tier rate above the base commission rate, floored at
// zero so low tiers never reduce the base commission
func BonusRate(tier *CommissionTier, baseRate decimal.Decimal) decimal.Decimal {
	if tier == nil {
		return decimal.Zero
	}
	bonus := tier.CommissionRate.Sub(baseRate)
	if bonus.IsNegative() {
		return decimal.Zero
	}
	return bonus
}

// ComputeTierBonus derives the tier bonus amount from a period's total
// margin
func ComputeTierBonus(totalMargin decimal.Decimal, tier *CommissionTier, baseRate decimal.Decimal) decimal.Decimal {
	rate := BonusRate(tier, baseRate)
	if rate.IsZero() || !totalMargin.IsPositive() {
		return decimal.Zero
	}
	return totalMargin.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
}
