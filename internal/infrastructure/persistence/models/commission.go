package models

import (
	"time"

	"github.com/cartrade/backend/internal/domain/commission"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionTierModel is the persistence model for the CommissionTier aggregate root.
type CommissionTierModel struct {
	AggregateModel
	Name           string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	MinSalesCount  int             `gorm:"not null"`
	MaxSalesCount  *int            `gorm:""`
	CommissionRate decimal.Decimal `gorm:"type:decimal(8,4);not null"`
	IsActive       bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CommissionTierModel) TableName() string {
	return "commission_tiers"
}

// ToDomain converts the persistence model to a domain CommissionTier entity.
func (m *CommissionTierModel) ToDomain() *commission.CommissionTier {
	tier := &commission.CommissionTier{
		Name:           m.Name,
		MinSalesCount:  m.MinSalesCount,
		MaxSalesCount:  m.MaxSalesCount,
		CommissionRate: m.CommissionRate,
		IsActive:       m.IsActive,
	}
	m.PopulateAggregateRoot(&tier.BaseAggregateRoot)
	return tier
}

// CommissionTierModelFromDomain creates a persistence model from a domain CommissionTier entity.
func CommissionTierModelFromDomain(t *commission.CommissionTier) *CommissionTierModel {
	m := &CommissionTierModel{
		Name:           t.Name,
		MinSalesCount:  t.MinSalesCount,
		MaxSalesCount:  t.MaxSalesCount,
		CommissionRate: t.CommissionRate,
		IsActive:       t.IsActive,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// CommissionPeriodModel is the persistence model for the CommissionPeriod aggregate root.
type CommissionPeriodModel struct {
	AggregateModel
	Year     int        `gorm:"not null;uniqueIndex:idx_commission_period_year_month,priority:1"`
	Month    int        `gorm:"not null;uniqueIndex:idx_commission_period_year_month,priority:2"`
	IsClosed bool       `gorm:"not null;default:false"`
	ClosedAt *time.Time `gorm:""`
	ClosedBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (CommissionPeriodModel) TableName() string {
	return "commission_periods"
}

// ToDomain converts the persistence model to a domain CommissionPeriod entity.
func (m *CommissionPeriodModel) ToDomain() *commission.CommissionPeriod {
	period := &commission.CommissionPeriod{
		Year:     m.Year,
		Month:    time.Month(m.Month),
		IsClosed: m.IsClosed,
		ClosedAt: m.ClosedAt,
		ClosedBy: m.ClosedBy,
	}
	m.PopulateAggregateRoot(&period.BaseAggregateRoot)
	return period
}

// CommissionPeriodModelFromDomain creates a persistence model from a domain CommissionPeriod entity.
func CommissionPeriodModelFromDomain(p *commission.CommissionPeriod) *CommissionPeriodModel {
	m := &CommissionPeriodModel{
		Year:     p.Year,
		Month:    int(p.Month),
		IsClosed: p.IsClosed,
		ClosedAt: p.ClosedAt,
		ClosedBy: p.ClosedBy,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// CommissionSummaryModel is the persistence model for the CommissionSummary aggregate root.
type CommissionSummaryModel struct {
	AggregateModel
	TraderID        uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_commission_summary_trader_period,priority:1"`
	PeriodID        uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex:idx_commission_summary_trader_period,priority:2;index"`
	SalesCount      int                     `gorm:"not null;default:0"`
	TotalSalesValue decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	TotalMargin     decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	BaseCommission  decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	TierBonus       decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	TotalCommission decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	PayoutStatus    commission.PayoutStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PayoutDate      *time.Time
	PayoutReference string                  `gorm:"type:varchar(100)"`
	Notes           string                  `gorm:"type:text"`
	Payment         *CommissionPaymentModel `gorm:"foreignKey:SummaryID;references:ID"`
}

// TableName returns the table name for GORM
func (CommissionSummaryModel) TableName() string {
	return "commission_summaries"
}

// ToDomain converts the persistence model to a domain CommissionSummary entity.
func (m *CommissionSummaryModel) ToDomain() *commission.CommissionSummary {
	summary := &commission.CommissionSummary{
		TraderID:        m.TraderID,
		PeriodID:        m.PeriodID,
		SalesCount:      m.SalesCount,
		TotalSalesValue: m.TotalSalesValue,
		TotalMargin:     m.TotalMargin,
		BaseCommission:  m.BaseCommission,
		TierBonus:       m.TierBonus,
		TotalCommission: m.TotalCommission,
		PayoutStatus:    m.PayoutStatus,
		PayoutDate:      m.PayoutDate,
		PayoutReference: m.PayoutReference,
		Notes:           m.Notes,
	}
	m.PopulateAggregateRoot(&summary.BaseAggregateRoot)
	if m.Payment != nil {
		payment := m.Payment.ToDomain()
		summary.Payment = &payment
	}
	return summary
}

// CommissionSummaryModelFromDomain creates a persistence model from a domain CommissionSummary entity.
func CommissionSummaryModelFromDomain(s *commission.CommissionSummary) *CommissionSummaryModel {
	m := &CommissionSummaryModel{
		TraderID:        s.TraderID,
		PeriodID:        s.PeriodID,
		SalesCount:      s.SalesCount,
		TotalSalesValue: s.TotalSalesValue,
		TotalMargin:     s.TotalMargin,
		BaseCommission:  s.BaseCommission,
		TierBonus:       s.TierBonus,
		TotalCommission: s.TotalCommission,
		PayoutStatus:    s.PayoutStatus,
		PayoutDate:      s.PayoutDate,
		PayoutReference: s.PayoutReference,
		Notes:           s.Notes,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	if s.Payment != nil {
		payment := CommissionPaymentModelFromDomain(*s.Payment)
		m.Payment = &payment
	}
	return m
}

// CommissionPaymentModel is the persistence model for a settled commission payout.
type CommissionPaymentModel struct {
	ID            uuid.UUID               `gorm:"type:uuid;primary_key"`
	SummaryID     uuid.UUID               `gorm:"type:uuid;not null;uniqueIndex"`
	PaymentDate   time.Time               `gorm:"not null"`
	AmountPaid    decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	Method        commission.PayoutMethod `gorm:"type:varchar(20);not null"`
	BankReference string                  `gorm:"type:varchar(100)"`
	Notes         string                  `gorm:"type:text"`
	PaidBy        uuid.UUID               `gorm:"type:uuid;not null"`
	CreatedAt     time.Time               `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CommissionPaymentModel) TableName() string {
	return "commission_payments"
}

// ToDomain converts the persistence model to a domain CommissionPayment value.
func (m *CommissionPaymentModel) ToDomain() commission.CommissionPayment {
	return commission.CommissionPayment{
		ID:            m.ID,
		SummaryID:     m.SummaryID,
		PaymentDate:   m.PaymentDate,
		AmountPaid:    m.AmountPaid,
		Method:        m.Method,
		BankReference: m.BankReference,
		Notes:         m.Notes,
		PaidBy:        m.PaidBy,
		CreatedAt:     m.CreatedAt,
	}
}

// CommissionPaymentModelFromDomain creates a persistence model from a domain CommissionPayment value.
func CommissionPaymentModelFromDomain(p commission.CommissionPayment) CommissionPaymentModel {
	return CommissionPaymentModel{
		ID:            p.ID,
		SummaryID:     p.SummaryID,
		PaymentDate:   p.PaymentDate,
		AmountPaid:    p.AmountPaid,
		Method:        p.Method,
		BankReference: p.BankReference,
		Notes:         p.Notes,
		PaidBy:        p.PaidBy,
		CreatedAt:     p.CreatedAt,
	}
}

// CommissionAdjustmentModel is the persistence model for the CommissionAdjustment aggregate root.
type CommissionAdjustmentModel struct {
	AggregateModel
	TraderID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	PeriodID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Type       commission.AdjustmentType `gorm:"type:varchar(20);not null"`
	Amount     decimal.Decimal           `gorm:"type:decimal(18,2);not null"`
	Reason     string                    `gorm:"type:varchar(500);not null"`
	ApprovedBy uuid.UUID                 `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (CommissionAdjustmentModel) TableName() string {
	return "commission_adjustments"
}

// ToDomain converts the persistence model to a domain CommissionAdjustment entity.
func (m *CommissionAdjustmentModel) ToDomain() *commission.CommissionAdjustment {
	adjustment := &commission.CommissionAdjustment{
		TraderID:   m.TraderID,
		PeriodID:   m.PeriodID,
		Type:       m.Type,
		Amount:     m.Amount,
		Reason:     m.Reason,
		ApprovedBy: m.ApprovedBy,
	}
	m.PopulateAggregateRoot(&adjustment.BaseAggregateRoot)
	return adjustment
}

// CommissionAdjustmentModelFromDomain creates a persistence model from a domain CommissionAdjustment entity.
func CommissionAdjustmentModelFromDomain(a *commission.CommissionAdjustment) *CommissionAdjustmentModel {
	m := &CommissionAdjustmentModel{
		TraderID:   a.TraderID,
		PeriodID:   a.PeriodID,
		Type:       a.Type,
		Amount:     a.Amount,
		Reason:     a.Reason,
		ApprovedBy: a.ApprovedBy,
	}
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	return m
}
