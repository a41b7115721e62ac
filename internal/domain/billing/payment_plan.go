package billing

import (
	"fmt"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanStatus represents the lifecycle state of a payment plan
type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusDefaulted PlanStatus = "defaulted"
	PlanStatusCancelled PlanStatus = "cancelled"
)

// IsValid checks if the status is a valid PlanStatus
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanStatusActive, PlanStatusCompleted, PlanStatusDefaulted, PlanStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PlanStatus
func (s PlanStatus) String() string {
	return string(s)
}

// IsTerminal returns true when the plan can no longer change
func (s PlanStatus) IsTerminal() bool {
	return s == PlanStatusCompleted || s == PlanStatusCancelled
}

// InstallmentStatus is the derived state of a single installment
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
	InstallmentStatusPartial InstallmentStatus = "partial"
	InstallmentStatusOverdue InstallmentStatus = "overdue"
)

// Installment is one monthly slice of a payment plan
type Installment struct {
	ID                uuid.UUID       `json:"id"`
	PlanID            uuid.UUID       `json:"plan_id"`
	InstallmentNumber int             `json:"installment_number"`
	DueDate           time.Time       `json:"due_date"`
	Amount            decimal.Decimal `json:"amount"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	BalanceDue        decimal.Decimal `json:"balance_due"`
	PaymentDate       *time.Time      `json:"payment_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Status derives the installment state from its balance and due date
func (i *Installment) Status(asOf time.Time) InstallmentStatus {
	switch {
	case i.BalanceDue.LessThanOrEqual(decimal.Zero):
		return InstallmentStatusPaid
	case i.AmountPaid.IsPositive():
		return InstallmentStatusPartial
	case i.DueDate.Before(truncateToDay(asOf)):
		return InstallmentStatusOverdue
	default:
		return InstallmentStatusPending
	}
}

// IsOverdue reports whether the installment is unpaid past its due date
func (i *Installment) IsOverdue(asOf time.Time) bool {
	return i.BalanceDue.IsPositive() && i.DueDate.Before(truncateToDay(asOf))
}

// DaysOverdue returns how many days past due the installment is
func (i *Installment) DaysOverdue(asOf time.Time) int {
	if !i.IsOverdue(asOf) {
		return 0
	}
	return int(truncateToDay(asOf).Sub(i.DueDate).Hours() / 24)
}

// PaymentPlan splits an invoice total into equal monthly installments.
// When the remaining amount does not divide evenly, earlier installments
// absorb the leftover cents so the schedule sums to the exact total.
type PaymentPlan struct {
	shared.BaseAggregateRoot
	InvoiceID            uuid.UUID
	TotalAmount          decimal.Decimal
	DownPayment          decimal.Decimal
	RemainingAmount      decimal.Decimal
	NumberOfInstallments int
	InstallmentAmount    decimal.Decimal // nominal monthly amount, before cent distribution
	StartDate            time.Time
	Status               PlanStatus
	Notes                string
	Installments         []Installment
}

// NewPaymentPlan creates a plan and generates its installment schedule
func NewPaymentPlan(
	invoiceID uuid.UUID,
	totalAmount decimal.Decimal,
	downPayment decimal.Decimal,
	numberOfInstallments int,
	startDate time.Time,
	notes string,
) (*PaymentPlan, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !totalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Plan total must be greater than 0")
	}
	if downPayment.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DOWN_PAYMENT", "Down payment cannot be negative")
	}
	if downPayment.GreaterThan(totalAmount) {
		return nil, shared.NewDomainError("DOWN_PAYMENT_EXCEEDS_TOTAL", "Down payment cannot exceed the plan total")
	}
	if numberOfInstallments <= 0 {
		return nil, shared.NewDomainError("INVALID_INSTALLMENT_COUNT", "Number of installments must be at least 1")
	}

	remaining := totalAmount.Sub(downPayment)
	if !remaining.IsPositive() {
		return nil, shared.NewDomainError("NOTHING_TO_SCHEDULE", "Remaining amount after down payment must be greater than 0")
	}

	parts, err := valueobject.NewMoneyDZD(remaining).Allocate(numberOfInstallments)
	if err != nil {
		return nil, err
	}

	plan := &PaymentPlan{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		InvoiceID:            invoiceID,
		TotalAmount:          totalAmount,
		DownPayment:          downPayment,
		RemainingAmount:      remaining,
		NumberOfInstallments: numberOfInstallments,
		InstallmentAmount:    remaining.Div(decimal.NewFromInt(int64(numberOfInstallments))).Round(2),
		StartDate:            startDate,
		Status:               PlanStatusActive,
		Notes:                notes,
	}

	plan.Installments = make([]Installment, numberOfInstallments)
	for k := 0; k < numberOfInstallments; k++ {
		amount := parts[k].Amount()
		plan.Installments[k] = Installment{
			ID:                uuid.New(),
			PlanID:            plan.ID,
			InstallmentNumber: k + 1,
			DueDate:           addMonths(startDate, k),
			Amount:            amount,
			AmountPaid:        decimal.Zero,
			BalanceDue:        amount,
			CreatedAt:         time.Now(),
		}
	}

	plan.AddDomainEvent(NewPaymentPlanCreatedEvent(plan))

	return plan, nil
}

// RecordInstallmentPayment applies a payment to one installment. Overpaying
// a single installment is rejected; the payment date is stamped when the
// installment settles in full.
func (p *PaymentPlan) RecordInstallmentPayment(installmentNumber int, amount decimal.Decimal, paymentDate time.Time) error {
	if p.Status != PlanStatusActive {
		return shared.NewDomainError("PLAN_NOT_ACTIVE", fmt.Sprintf("Payment plan is %s", p.Status))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount must be greater than 0")
	}
	if paymentDate.After(time.Now()) {
		return shared.NewDomainError("INVALID_PAYMENT_DATE", "Payment date cannot be in the future")
	}

	idx := installmentNumber - 1
	if idx < 0 || idx >= len(p.Installments) {
		return shared.NewDomainError("INVALID_INSTALLMENT", fmt.Sprintf("No installment number %d", installmentNumber))
	}

	inst := &p.Installments[idx]
	if amount.GreaterThan(inst.BalanceDue) {
		return shared.NewDomainError("EXCEEDS_BALANCE", fmt.Sprintf("Payment of %s exceeds the installment balance of %s", amount.StringFixed(2), inst.BalanceDue.StringFixed(2)))
	}

	inst.AmountPaid = inst.AmountPaid.Add(amount)
	inst.BalanceDue = inst.Amount.Sub(inst.AmountPaid)
	if inst.BalanceDue.LessThanOrEqual(decimal.Zero) && inst.PaymentDate == nil {
		inst.PaymentDate = &paymentDate
	}

	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewInstallmentPaidEvent(p, inst, amount))

	return nil
}

// OutstandingBalance is the sum of all unpaid installment balances
func (p *PaymentPlan) OutstandingBalance() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Installments {
		total = total.Add(p.Installments[i].BalanceDue)
	}
	return total
}

// OverdueInstallments returns the installments unpaid past their due date
func (p *PaymentPlan) OverdueInstallments(asOf time.Time) []Installment {
	var overdue []Installment
	for i := range p.Installments {
		if p.Installments[i].IsOverdue(asOf) {
			overdue = append(overdue, p.Installments[i])
		}
	}
	return overdue
}

// Complete marks the plan as finished. Rejected while a balance remains.
func (p *PaymentPlan) Complete() error {
	if p.Status != PlanStatusActive {
		return shared.NewDomainError("PLAN_NOT_ACTIVE", fmt.Sprintf("Payment plan is %s", p.Status))
	}
	if p.OutstandingBalance().IsPositive() {
		return shared.NewDomainError("PLAN_NOT_SETTLED", fmt.Sprintf("Plan still has %s outstanding", p.OutstandingBalance().StringFixed(2)))
	}

	p.Status = PlanStatusCompleted
	p.Touch()
	p.IncrementVersion()

	return nil
}

// MarkDefaulted flags the plan as in default. The decision of when a
// customer has defaulted belongs to the caller, typically after reviewing
// the overdue installments.
func (p *PaymentPlan) MarkDefaulted() error {
	if p.Status != PlanStatusActive {
		return shared.NewDomainError("PLAN_NOT_ACTIVE", fmt.Sprintf("Payment plan is %s", p.Status))
	}

	p.Status = PlanStatusDefaulted
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Cancel voids the plan. Allowed from active or defaulted.
func (p *PaymentPlan) Cancel() error {
	if p.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", fmt.Sprintf("Payment plan is %s", p.Status))
	}

	p.Status = PlanStatusCancelled
	p.Touch()
	p.IncrementVersion()

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// addMonths advances by whole months, clamping the day to the end of the
// target month so a schedule starting Jan 31 lands on Feb 28/29, not Mar 3.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
