package commission

import (
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdjustmentType categorizes a manual commission adjustment
type AdjustmentType string

const (
	AdjustmentTypeBonus      AdjustmentType = "bonus"
	AdjustmentTypePenalty    AdjustmentType = "penalty"
	AdjustmentTypeCorrection AdjustmentType = "correction"
	AdjustmentTypeSpecial    AdjustmentType = "special"
)

// IsValid checks if the type is a valid AdjustmentType
func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentTypeBonus, AdjustmentTypePenalty, AdjustmentTypeCorrection, AdjustmentTypeSpecial:
		return true
	}
	return false
}

// String returns the string representation of AdjustmentType
func (t AdjustmentType) String() string {
	return string(t)
}

// CommissionAdjustment is a manual signed delta against a trader's period.
// Adjustments form a reporting ledger alongside the summary; they are not
// folded into the summary's total commission.
type CommissionAdjustment struct {
	shared.BaseAggregateRoot
	TraderID   uuid.UUID
	PeriodID   uuid.UUID
	Type       AdjustmentType
	Amount     decimal.Decimal // negative for penalties
	Reason     string
	ApprovedBy uuid.UUID
}

// NewCommissionAdjustment creates a new manual adjustment
func NewCommissionAdjustment(
	traderID uuid.UUID,
	periodID uuid.UUID,
	adjustmentType AdjustmentType,
	amount decimal.Decimal,
	reason string,
	approvedBy uuid.UUID,
) (*CommissionAdjustment, error) {
	if traderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRADER", "Trader ID cannot be empty")
	}
	if periodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period ID cannot be empty")
	}
	if !adjustmentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", "Invalid adjustment type")
	}
	if amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_ADJUSTMENT_AMOUNT", "Adjustment amount cannot be zero")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_ADJUSTMENT_REASON", "Adjustment reason cannot be empty")
	}
	if approvedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_APPROVER", "Approving user cannot be empty")
	}

	return &CommissionAdjustment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TraderID:          traderID,
		PeriodID:          periodID,
		Type:              adjustmentType,
		Amount:            amount,
		Reason:            reason,
		ApprovedBy:        approvedBy,
	}, nil
}

// NetAdjustment sums a set of adjustments into one signed figure for
// reporting
func NetAdjustment(adjustments []CommissionAdjustment) decimal.Decimal {
	total := decimal.Zero
	for i := range adjustments {
		total = total.Add(adjustments[i].Amount)
	}
	return total
}
