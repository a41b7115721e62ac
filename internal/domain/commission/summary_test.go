package commission

import (
	"testing"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSummary(t *testing.T) *CommissionSummary {
	s, err := NewCommissionSummary(uuid.New(), uuid.New())
	require.NoError(t, err)
	return s
}

func recomputedSummary(t *testing.T) *CommissionSummary {
	s := createTestSummary(t)
	// 8 finalized sales at a 2.4M average, 1M total margin, 100k base
	require.NoError(t, s.Recompute(8, decimal.NewFromInt(19200000), decimal.NewFromInt(1000000), decimal.NewFromInt(100000)))
	return s
}

func TestNewCommissionSummary(t *testing.T) {
	s := createTestSummary(t)

	assert.Equal(t, PayoutStatusPending, s.PayoutStatus)
	assert.True(t, s.TotalCommission.IsZero())
	assert.Nil(t, s.Payment)
}

func TestCommissionSummary_Recompute(t *testing.T) {
	s := recomputedSummary(t)

	assert.Equal(t, 8, s.SalesCount)
	assert.True(t, s.BaseCommission.Equal(decimal.NewFromInt(100000)))
	assert.True(t, s.TierBonus.IsZero(), "recompute resets the tier bonus")
	assert.True(t, s.TotalCommission.Equal(s.BaseCommission), "total falls back to base until the bonus is reapplied")
}

func TestCommissionSummary_Recompute_Overwrites(t *testing.T) {
	s := recomputedSummary(t)
	require.NoError(t, s.ApplyTierBonus(standardTiers(t), decimal.NewFromInt(10)))
	require.True(t, s.TierBonus.IsPositive())

	require.NoError(t, s.Recompute(3, decimal.NewFromInt(7200000), decimal.NewFromInt(400000), decimal.NewFromInt(40000)))

	assert.Equal(t, 3, s.SalesCount)
	assert.True(t, s.TierBonus.IsZero())
	assert.True(t, s.TotalCommission.Equal(decimal.NewFromInt(40000)))
}

func TestCommissionSummary_ApplyTierBonus(t *testing.T) {
	s := recomputedSummary(t)

	require.NoError(t, s.ApplyTierBonus(standardTiers(t), decimal.NewFromInt(10)))

	// 8 sales resolves Silver at 12%: bonus rate 2% on the 1M margin
	assert.True(t, s.TierBonus.Equal(decimal.NewFromInt(20000)), "got %s", s.TierBonus)
	assert.True(t, s.TotalCommission.Equal(decimal.NewFromInt(120000)))
}

func TestCommissionSummary_ApplyTierBonus_NoTier(t *testing.T) {
	s := createTestSummary(t)
	require.NoError(t, s.Recompute(25, decimal.NewFromInt(60000000), decimal.NewFromInt(3000000), decimal.NewFromInt(300000)))

	require.NoError(t, s.ApplyTierBonus(standardTiers(t), decimal.NewFromInt(10)))

	assert.True(t, s.TierBonus.IsZero(), "no band above 20 sales")
	assert.True(t, s.TotalCommission.Equal(s.BaseCommission))
}

func TestPayoutStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    PayoutStatus
		to      PayoutStatus
		allowed bool
	}{
		{PayoutStatusPending, PayoutStatusApproved, true},
		{PayoutStatusPending, PayoutStatusCancelled, true},
		{PayoutStatusPending, PayoutStatusPaid, true},
		{PayoutStatusApproved, PayoutStatusPaid, true},
		{PayoutStatusApproved, PayoutStatusCancelled, false},
		{PayoutStatusApproved, PayoutStatusPending, false},
		{PayoutStatusPaid, PayoutStatusPending, false},
		{PayoutStatusCancelled, PayoutStatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCommissionSummary_PayoutWorkflow(t *testing.T) {
	s := recomputedSummary(t)

	require.NoError(t, s.Approve())
	assert.Equal(t, PayoutStatusApproved, s.PayoutStatus)

	assert.Error(t, s.Approve(), "approving twice is rejected")
	assert.Error(t, s.CancelPayout(), "approved payout cannot be cancelled")

	payment, err := s.RecordPayment(time.Now(), s.TotalCommission, PayoutMethodBankTransfer, "VIR-2024-0815", uuid.New(), "")
	require.NoError(t, err)

	assert.Equal(t, PayoutStatusPaid, s.PayoutStatus)
	assert.Equal(t, "VIR-2024-0815", s.PayoutReference)
	require.NotNil(t, s.PayoutDate)
	assert.True(t, payment.AmountPaid.Equal(s.TotalCommission))
}

func TestCommissionSummary_CancelPayout(t *testing.T) {
	s := recomputedSummary(t)

	require.NoError(t, s.CancelPayout())
	assert.Equal(t, PayoutStatusCancelled, s.PayoutStatus)

	err := s.Recompute(1, decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(1))
	require.Error(t, err, "cancelled summary is frozen")
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PAYOUT_SETTLED", domainErr.Code)
}

func TestCommissionSummary_RecordPayment_ForcesPaid(t *testing.T) {
	// paying directly from pending is allowed: a payment existing forces
	// the payout to paid
	s := recomputedSummary(t)

	_, err := s.RecordPayment(time.Now(), s.TotalCommission, PayoutMethodCash, "", uuid.New(), "")
	require.NoError(t, err)
	assert.Equal(t, PayoutStatusPaid, s.PayoutStatus)

	_, err = s.RecordPayment(time.Now(), s.TotalCommission, PayoutMethodCash, "", uuid.New(), "")
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_PAID", domainErr.Code)
}

func TestCommissionSummary_RecordPayment_Validation(t *testing.T) {
	s := recomputedSummary(t)

	_, err := s.RecordPayment(time.Now().AddDate(0, 0, 1), decimal.NewFromInt(1), PayoutMethodCash, "", uuid.New(), "")
	assert.Error(t, err, "future date")

	_, err = s.RecordPayment(time.Now(), decimal.NewFromInt(-1), PayoutMethodCash, "", uuid.New(), "")
	assert.Error(t, err, "negative amount")

	_, err = s.RecordPayment(time.Now(), decimal.NewFromInt(1), "crypto", "", uuid.New(), "")
	assert.Error(t, err, "bad method")

	_, err = s.RecordPayment(time.Now(), decimal.NewFromInt(1), PayoutMethodCash, "", uuid.Nil, "")
	assert.Error(t, err, "nil payer")
}

func TestCommissionSummary_Averages(t *testing.T) {
	s := recomputedSummary(t)
	require.NoError(t, s.ApplyTierBonus(standardTiers(t), decimal.NewFromInt(10)))

	// 120,000 total commission over 1,000,000 margin
	assert.True(t, s.AverageCommissionRate().Equal(decimal.NewFromInt(12)))
	// 19,200,000 over 8 sales
	assert.True(t, s.AverageSaleValue().Equal(decimal.NewFromInt(2400000)))

	empty := createTestSummary(t)
	assert.True(t, empty.AverageCommissionRate().IsZero())
	assert.True(t, empty.AverageSaleValue().IsZero())
}
