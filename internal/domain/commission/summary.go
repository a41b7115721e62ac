package commission

import (
	"fmt"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutStatus is the state of a summary's payout workflow
type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusApproved  PayoutStatus = "approved"
	PayoutStatusPaid      PayoutStatus = "paid"
	PayoutStatusCancelled PayoutStatus = "cancelled"
)

// IsValid checks if the status is a valid PayoutStatus
func (s PayoutStatus) IsValid() bool {
	switch s {
	case PayoutStatusPending, PayoutStatusApproved, PayoutStatusPaid, PayoutStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PayoutStatus
func (s PayoutStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PayoutStatus) CanTransitionTo(target PayoutStatus) bool {
	switch s {
	case PayoutStatusPending:
		return target == PayoutStatusApproved || target == PayoutStatusCancelled || target == PayoutStatusPaid
	case PayoutStatusApproved:
		return target == PayoutStatusPaid
	case PayoutStatusPaid, PayoutStatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true once the payout can no longer move
func (s PayoutStatus) IsTerminal() bool {
	return s == PayoutStatusPaid || s == PayoutStatusCancelled
}

// PayoutMethod is how a commission payout was disbursed
type PayoutMethod string

const (
	PayoutMethodBankTransfer PayoutMethod = "bank_transfer"
	PayoutMethodCash         PayoutMethod = "cash"
	PayoutMethodCheck        PayoutMethod = "check"
)

// IsValid checks if the method is a valid PayoutMethod
func (m PayoutMethod) IsValid() bool {
	switch m {
	case PayoutMethodBankTransfer, PayoutMethodCash, PayoutMethodCheck:
		return true
	}
	return false
}

// CommissionPayment is the disbursement record for a settled summary
type CommissionPayment struct {
	ID            uuid.UUID       `json:"id"`
	SummaryID     uuid.UUID       `json:"summary_id"`
	PaymentDate   time.Time       `json:"payment_date"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Method        PayoutMethod    `json:"method"`
	BankReference string          `json:"bank_reference"`
	Notes         string          `json:"notes"`
	PaidBy        uuid.UUID       `json:"paid_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CommissionSummary aggregates one trader's commission for one period.
// The close path recomputes the base figures from finalized sales; the
// tier bonus is an explicit second step, never applied implicitly.
type CommissionSummary struct {
	shared.BaseAggregateRoot
	TraderID        uuid.UUID
	PeriodID        uuid.UUID
	SalesCount      int
	TotalSalesValue decimal.Decimal
	TotalMargin     decimal.Decimal
	BaseCommission  decimal.Decimal
	TierBonus       decimal.Decimal
	TotalCommission decimal.Decimal
	PayoutStatus    PayoutStatus
	PayoutDate      *time.Time
	PayoutReference string
	Notes           string
	Payment         *CommissionPayment
}

// NewCommissionSummary creates an empty summary for a trader and period
func NewCommissionSummary(traderID, periodID uuid.UUID) (*CommissionSummary, error) {
	if traderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRADER", "Trader ID cannot be empty")
	}
	if periodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period ID cannot be empty")
	}

	return &CommissionSummary{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TraderID:          traderID,
		PeriodID:          periodID,
		TotalSalesValue:   decimal.Zero,
		TotalMargin:       decimal.Zero,
		BaseCommission:    decimal.Zero,
		TierBonus:         decimal.Zero,
		TotalCommission:   decimal.Zero,
		PayoutStatus:      PayoutStatusPending,
	}, nil
}

// Recompute overwrites the summary from a fresh scan of the trader's
// finalized sales. The tier bonus is reset: the total falls back to the
// base commission until ApplyTierBonus is called again.
func (s *CommissionSummary) Recompute(salesCount int, totalSalesValue, totalMargin, baseCommission decimal.Decimal) error {
	if s.PayoutStatus.IsTerminal() {
		return shared.NewDomainError("PAYOUT_SETTLED", fmt.Sprintf("Summary payout is %s and can no longer be recomputed", s.PayoutStatus))
	}
	if salesCount < 0 {
		return shared.NewDomainError("INVALID_SALES_COUNT", "Sales count cannot be negative")
	}
	if baseCommission.IsNegative() {
		return shared.NewDomainError("INVALID_BASE_COMMISSION", "Base commission cannot be negative")
	}

	s.SalesCount = salesCount
	s.TotalSalesValue = totalSalesValue
	s.TotalMargin = totalMargin
	s.BaseCommission = baseCommission
	s.TierBonus = decimal.Zero
	s.TotalCommission = baseCommission
	s.Touch()
	s.IncrementVersion()

	return nil
}

// ApplyTierBonus resolves the trader's tier from the period sales count
// and folds the bonus into the total commission
func (s *CommissionSummary) ApplyTierBonus(tiers []CommissionTier, baseRate decimal.Decimal) error {
	if s.PayoutStatus.IsTerminal() {
		return shared.NewDomainError("PAYOUT_SETTLED", fmt.Sprintf("Summary payout is %s and can no longer change", s.PayoutStatus))
	}

	tier := ResolveTier(s.SalesCount, tiers)
	s.TierBonus = ComputeTierBonus(s.TotalMargin, tier, baseRate)
	s.TotalCommission = s.BaseCommission.Add(s.TierBonus)
	s.Touch()
	s.IncrementVersion()

	return nil
}

// Approve moves the payout from pending to approved
func (s *CommissionSummary) Approve() error {
	return s.transitionPayout(PayoutStatusApproved)
}

// CancelPayout voids a pending payout
func (s *CommissionSummary) CancelPayout() error {
	return s.transitionPayout(PayoutStatusCancelled)
}

// RecordPayment attaches the disbursement record. A payment existing
// forces the payout to paid.
func (s *CommissionSummary) RecordPayment(
	paymentDate time.Time,
	amountPaid decimal.Decimal,
	method PayoutMethod,
	bankReference string,
	paidBy uuid.UUID,
	notes string,
) (*CommissionPayment, error) {
	if s.Payment != nil {
		return nil, shared.NewDomainError("ALREADY_PAID", "Summary already has a commission payment")
	}
	if !s.PayoutStatus.CanTransitionTo(PayoutStatusPaid) {
		return nil, shared.NewDomainError("INVALID_STATUS_TRANSITION", fmt.Sprintf("Payout cannot move from %s to paid", s.PayoutStatus))
	}
	if paymentDate.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_PAYMENT_DATE", "Payment date cannot be in the future")
	}
	if amountPaid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Amount paid cannot be negative")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYOUT_METHOD", fmt.Sprintf("Invalid payout method: %s", method))
	}
	if paidBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYER", "Paying user cannot be empty")
	}

	payment := &CommissionPayment{
		ID:            uuid.New(),
		SummaryID:     s.ID,
		PaymentDate:   paymentDate,
		AmountPaid:    amountPaid,
		Method:        method,
		BankReference: bankReference,
		Notes:         notes,
		PaidBy:        paidBy,
		CreatedAt:     time.Now(),
	}

	s.Payment = payment
	s.PayoutStatus = PayoutStatusPaid
	s.PayoutDate = &paymentDate
	s.PayoutReference = bankReference
	s.Touch()
	s.IncrementVersion()
	s.AddDomainEvent(NewCommissionPaidEvent(s, payment))

	return payment, nil
}

// AverageCommissionRate is total commission over total margin, as a
// percentage. Zero when there is no margin.
func (s *CommissionSummary) AverageCommissionRate() decimal.Decimal {
	if !s.TotalMargin.IsPositive() {
		return decimal.Zero
	}
	return s.TotalCommission.Div(s.TotalMargin).Mul(decimal.NewFromInt(100)).Round(2)
}

// AverageSaleValue is the mean sale price across the period
func (s *CommissionSummary) AverageSaleValue() decimal.Decimal {
	if s.SalesCount == 0 {
		return decimal.Zero
	}
	return s.TotalSalesValue.Div(decimal.NewFromInt(int64(s.SalesCount))).Round(2)
}

func (s *CommissionSummary) transitionPayout(target PayoutStatus) error {
	if !s.PayoutStatus.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", fmt.Sprintf("Payout cannot move from %s to %s", s.PayoutStatus, target))
	}

	from := s.PayoutStatus
	s.PayoutStatus = target
	s.Touch()
	s.IncrementVersion()
	s.AddDomainEvent(NewPayoutStatusChangedEvent(s, from, target))

	return nil
}
