package commission

import (
	"fmt"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CommissionPeriod is one calendar month of commission accounting. Closing
// is a one-way transition that freezes the period; the close orchestration
// recomputes every trader's summary for the month.
type CommissionPeriod struct {
	shared.BaseAggregateRoot
	Year     int
	Month    time.Month
	IsClosed bool
	ClosedAt *time.Time
	ClosedBy *uuid.UUID
}

// NewCommissionPeriod creates an open period for the given month
func NewCommissionPeriod(year int, month time.Month) (*CommissionPeriod, error) {
	if year < 2000 {
		return nil, shared.NewDomainError("INVALID_PERIOD_YEAR", "Year must be 2000 or later")
	}
	if month < time.January || month > time.December {
		return nil, shared.NewDomainError("INVALID_PERIOD_MONTH", "Month must be between 1 and 12")
	}

	return &CommissionPeriod{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Year:              year,
		Month:             month,
	}, nil
}

// Close freezes the period. Closing an already-closed period is an error,
// never a silent re-close.
func (p *CommissionPeriod) Close(closedBy uuid.UUID) error {
	if p.IsClosed {
		return shared.ErrPeriodClosed
	}
	if closedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_CLOSER", "Closing user cannot be empty")
	}

	now := time.Now()
	p.IsClosed = true
	p.ClosedAt = &now
	p.ClosedBy = &closedBy
	p.UpdatedAt = now
	p.IncrementVersion()
	p.AddDomainEvent(NewPeriodClosedEvent(p))

	return nil
}

// Contains reports whether a date falls inside the period's month
func (p *CommissionPeriod) Contains(date time.Time) bool {
	return date.Year() == p.Year && date.Month() == p.Month
}

// Label returns the period as "YYYY-MM"
func (p *CommissionPeriod) Label() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
