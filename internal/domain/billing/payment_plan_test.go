package billing

import (
	"testing"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPlan(t *testing.T, total, down decimal.Decimal, n int, start time.Time) *PaymentPlan {
	plan, err := NewPaymentPlan(uuid.New(), total, down, n, start, "")
	require.NoError(t, err)
	return plan
}

func TestNewPaymentPlan(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	plan := createTestPlan(t, decimal.NewFromInt(300000), decimal.Zero, 6, start)

	assert.True(t, plan.RemainingAmount.Equal(decimal.NewFromInt(300000)))
	assert.True(t, plan.InstallmentAmount.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, PlanStatusActive, plan.Status)
	require.Len(t, plan.Installments, 6)

	for k, inst := range plan.Installments {
		assert.Equal(t, k+1, inst.InstallmentNumber)
		assert.True(t, inst.Amount.Equal(decimal.NewFromInt(50000)), "installment %d: got %s", k+1, inst.Amount)
		want := time.Date(2024, time.January+time.Month(k), 1, 0, 0, 0, 0, time.UTC)
		assert.True(t, inst.DueDate.Equal(want), "installment %d due %s, want %s", k+1, inst.DueDate, want)
		assert.Equal(t, InstallmentStatusPending, inst.Status(start))
	}
}

func TestNewPaymentPlan_RemainderDistribution(t *testing.T) {
	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	plan := createTestPlan(t, decimal.NewFromInt(100000), decimal.Zero, 3, start)

	// 100,000 / 3: earlier installments absorb the leftover cent
	assert.True(t, plan.Installments[0].Amount.Equal(decimal.NewFromFloat(33333.34)))
	assert.True(t, plan.Installments[1].Amount.Equal(decimal.NewFromFloat(33333.33)))
	assert.True(t, plan.Installments[2].Amount.Equal(decimal.NewFromFloat(33333.33)))

	sum := decimal.Zero
	for _, inst := range plan.Installments {
		sum = sum.Add(inst.Amount)
	}
	assert.True(t, sum.Equal(plan.RemainingAmount), "schedule must sum exactly to the remaining amount")
}

func TestNewPaymentPlan_WithDownPayment(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	plan := createTestPlan(t, decimal.NewFromInt(2800000), decimal.NewFromInt(800000), 4, start)

	assert.True(t, plan.RemainingAmount.Equal(decimal.NewFromInt(2000000)))
	assert.True(t, plan.InstallmentAmount.Equal(decimal.NewFromInt(500000)))
	assert.True(t, plan.OutstandingBalance().Equal(decimal.NewFromInt(2000000)))
}

func TestNewPaymentPlan_MonthEndClamping(t *testing.T) {
	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	plan := createTestPlan(t, decimal.NewFromInt(90000), decimal.Zero, 3, start)

	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), plan.Installments[0].DueDate)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), plan.Installments[1].DueDate, "leap year February clamps to the 29th")
	assert.Equal(t, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), plan.Installments[2].DueDate)
}

func TestNewPaymentPlan_Validation(t *testing.T) {
	invoiceID := uuid.New()
	start := time.Now()

	tests := []struct {
		name     string
		create   func() (*PaymentPlan, error)
		wantCode string
	}{
		{"nil invoice", func() (*PaymentPlan, error) {
			return NewPaymentPlan(uuid.Nil, decimal.NewFromInt(100), decimal.Zero, 2, start, "")
		}, "INVALID_INVOICE"},
		{"zero total", func() (*PaymentPlan, error) {
			return NewPaymentPlan(invoiceID, decimal.Zero, decimal.Zero, 2, start, "")
		}, "INVALID_TOTAL"},
		{"negative down payment", func() (*PaymentPlan, error) {
			return NewPaymentPlan(invoiceID, decimal.NewFromInt(100), decimal.NewFromInt(-1), 2, start, "")
		}, "INVALID_DOWN_PAYMENT"},
		{"down payment above total", func() (*PaymentPlan, error) {
			return NewPaymentPlan(invoiceID, decimal.NewFromInt(100), decimal.NewFromInt(101), 2, start, "")
		}, "DOWN_PAYMENT_EXCEEDS_TOTAL"},
		{"zero installments", func() (*PaymentPlan, error) {
			return NewPaymentPlan(invoiceID, decimal.NewFromInt(100), decimal.Zero, 0, start, "")
		}, "INVALID_INSTALLMENT_COUNT"},
		{"down payment equals total", func() (*PaymentPlan, error) {
			return NewPaymentPlan(invoiceID, decimal.NewFromInt(100), decimal.NewFromInt(100), 2, start, "")
		}, "NOTHING_TO_SCHEDULE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.create()
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestPaymentPlan_RecordInstallmentPayment(t *testing.T) {
	start := time.Now().AddDate(0, -2, 0)
	plan := createTestPlan(t, decimal.NewFromInt(300000), decimal.Zero, 6, start)

	require.NoError(t, plan.RecordInstallmentPayment(1, decimal.NewFromInt(50000), time.Now()))

	first := plan.Installments[0]
	assert.True(t, first.BalanceDue.IsZero())
	assert.Equal(t, InstallmentStatusPaid, first.Status(time.Now()))
	require.NotNil(t, first.PaymentDate)
	assert.True(t, plan.OutstandingBalance().Equal(decimal.NewFromInt(250000)))
}

func TestPaymentPlan_RecordInstallmentPayment_Partial(t *testing.T) {
	start := time.Now()
	plan := createTestPlan(t, decimal.NewFromInt(300000), decimal.Zero, 6, start)

	require.NoError(t, plan.RecordInstallmentPayment(1, decimal.NewFromInt(20000), time.Now()))

	first := plan.Installments[0]
	assert.True(t, first.BalanceDue.Equal(decimal.NewFromInt(30000)))
	assert.Equal(t, InstallmentStatusPartial, first.Status(time.Now()))
	assert.Nil(t, first.PaymentDate)
}

func TestPaymentPlan_RecordInstallmentPayment_Errors(t *testing.T) {
	plan := createTestPlan(t, decimal.NewFromInt(300000), decimal.Zero, 6, time.Now())

	assert.Error(t, plan.RecordInstallmentPayment(0, decimal.NewFromInt(1), time.Now()), "installment number out of range")
	assert.Error(t, plan.RecordInstallmentPayment(7, decimal.NewFromInt(1), time.Now()), "installment number out of range")
	assert.Error(t, plan.RecordInstallmentPayment(1, decimal.Zero, time.Now()), "zero amount")
	assert.Error(t, plan.RecordInstallmentPayment(1, decimal.NewFromInt(1), time.Now().AddDate(0, 0, 1)), "future date")

	err := plan.RecordInstallmentPayment(1, decimal.NewFromInt(50001), time.Now())
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXCEEDS_BALANCE", domainErr.Code)
}

func TestInstallment_OverdueDerivation(t *testing.T) {
	start := time.Now().AddDate(0, -3, 0)
	plan := createTestPlan(t, decimal.NewFromInt(300000), decimal.Zero, 6, start)

	now := time.Now()
	assert.Equal(t, InstallmentStatusOverdue, plan.Installments[0].Status(now))
	assert.Equal(t, InstallmentStatusOverdue, plan.Installments[2].Status(now))
	assert.Equal(t, InstallmentStatusPending, plan.Installments[5].Status(now))

	overdue := plan.OverdueInstallments(now)
	assert.Len(t, overdue, 3)

	// paying an overdue installment clears it
	require.NoError(t, plan.RecordInstallmentPayment(1, decimal.NewFromInt(50000), now))
	assert.Equal(t, InstallmentStatusPaid, plan.Installments[0].Status(now))
	assert.Len(t, plan.OverdueInstallments(now), 2)
}

func TestPaymentPlan_Lifecycle(t *testing.T) {
	t.Run("complete requires settlement", func(t *testing.T) {
		plan := createTestPlan(t, decimal.NewFromInt(100000), decimal.Zero, 2, time.Now())

		err := plan.Complete()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PLAN_NOT_SETTLED", domainErr.Code)

		require.NoError(t, plan.RecordInstallmentPayment(1, decimal.NewFromInt(50000), time.Now()))
		require.NoError(t, plan.RecordInstallmentPayment(2, decimal.NewFromInt(50000), time.Now()))
		require.NoError(t, plan.Complete())
		assert.Equal(t, PlanStatusCompleted, plan.Status)
	})

	t.Run("defaulted plan can be cancelled", func(t *testing.T) {
		plan := createTestPlan(t, decimal.NewFromInt(100000), decimal.Zero, 2, time.Now())

		require.NoError(t, plan.MarkDefaulted())
		assert.Equal(t, PlanStatusDefaulted, plan.Status)

		assert.Error(t, plan.RecordInstallmentPayment(1, decimal.NewFromInt(1), time.Now()), "defaulted plan rejects payments")

		require.NoError(t, plan.Cancel())
		assert.Equal(t, PlanStatusCancelled, plan.Status)
		assert.Error(t, plan.Cancel(), "cancelled is terminal")
	})
}
