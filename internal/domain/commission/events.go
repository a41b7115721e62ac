package commission

import (
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodClosedEvent is raised when a commission period is frozen
type PeriodClosedEvent struct {
	shared.BaseDomainEvent
	PeriodID uuid.UUID  `json:"period_id"`
	Year     int        `json:"year"`
	Month    int        `json:"month"`
	ClosedBy *uuid.UUID `json:"closed_by,omitempty"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`
}

// EventType returns the event type name
func (e *PeriodClosedEvent) EventType() string {
	return "CommissionPeriodClosed"
}

// NewPeriodClosedEvent creates a new PeriodClosedEvent
func NewPeriodClosedEvent(p *CommissionPeriod) *PeriodClosedEvent {
	return &PeriodClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CommissionPeriodClosed", "CommissionPeriod", p.ID),
		PeriodID:        p.ID,
		Year:            p.Year,
		Month:           int(p.Month),
		ClosedBy:        p.ClosedBy,
		ClosedAt:        p.ClosedAt,
	}
}

// PayoutStatusChangedEvent is raised on payout workflow transitions
type PayoutStatusChangedEvent struct {
	shared.BaseDomainEvent
	SummaryID  uuid.UUID    `json:"summary_id"`
	TraderID   uuid.UUID    `json:"trader_id"`
	PeriodID   uuid.UUID    `json:"period_id"`
	FromStatus PayoutStatus `json:"from_status"`
	ToStatus   PayoutStatus `json:"to_status"`
}

// EventType returns the event type name
func (e *PayoutStatusChangedEvent) EventType() string {
	return "PayoutStatusChanged"
}

// NewPayoutStatusChangedEvent creates a new PayoutStatusChangedEvent
func NewPayoutStatusChangedEvent(s *CommissionSummary, from, to PayoutStatus) *PayoutStatusChangedEvent {
	return &PayoutStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PayoutStatusChanged", "CommissionSummary", s.ID),
		SummaryID:       s.ID,
		TraderID:        s.TraderID,
		PeriodID:        s.PeriodID,
		FromStatus:      from,
		ToStatus:        to,
	}
}

// CommissionPaidEvent is raised when a trader's commission is disbursed
type CommissionPaidEvent struct {
	shared.BaseDomainEvent
	SummaryID  uuid.UUID       `json:"summary_id"`
	TraderID   uuid.UUID       `json:"trader_id"`
	PeriodID   uuid.UUID       `json:"period_id"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Method     PayoutMethod    `json:"method"`
}

// EventType returns the event type name
func (e *CommissionPaidEvent) EventType() string {
	return "CommissionPaid"
}

// NewCommissionPaidEvent creates a new CommissionPaidEvent
func NewCommissionPaidEvent(s *CommissionSummary, payment *CommissionPayment) *CommissionPaidEvent {
	return &CommissionPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CommissionPaid", "CommissionSummary", s.ID),
		SummaryID:       s.ID,
		TraderID:        s.TraderID,
		PeriodID:        s.PeriodID,
		AmountPaid:      payment.AmountPaid,
		Method:          payment.Method,
	}
}
