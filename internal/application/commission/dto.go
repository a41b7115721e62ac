package commission

import (
	"time"

	"github.com/cartrade/backend/internal/domain/commission"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTierRequest represents a request to configure a commission tier
type CreateTierRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=100"`
	MinSalesCount  int             `json:"min_sales_count"`
	MaxSalesCount  *int            `json:"max_sales_count"` // nil means open-ended
	CommissionRate decimal.Decimal `json:"commission_rate" binding:"required"`
}

// ClosePeriodRequest represents a request to settle a calendar month
type ClosePeriodRequest struct {
	Year           int       `json:"year" binding:"required,min=2000"`
	Month          int       `json:"month" binding:"required,min=1,max=12"`
	ClosedBy       uuid.UUID `json:"closed_by" binding:"required"`
	ApplyTierBonus bool      `json:"apply_tier_bonus"`
}

// PayCommissionRequest represents a commission disbursement
type PayCommissionRequest struct {
	PaymentDate   time.Time       `json:"payment_date" binding:"required"`
	AmountPaid    decimal.Decimal `json:"amount_paid" binding:"required"`
	Method        string          `json:"method" binding:"required,oneof=bank_transfer cash check"`
	BankReference string          `json:"bank_reference"`
	PaidBy        uuid.UUID       `json:"paid_by" binding:"required"`
	Notes         string          `json:"notes"`
}

// CreateAdjustmentRequest represents a manual commission adjustment
type CreateAdjustmentRequest struct {
	TraderID   uuid.UUID       `json:"trader_id" binding:"required"`
	PeriodID   uuid.UUID       `json:"period_id" binding:"required"`
	Type       string          `json:"type" binding:"required,oneof=bonus penalty correction special"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Reason     string          `json:"reason" binding:"required,min=1,max=500"`
	ApprovedBy uuid.UUID       `json:"approved_by" binding:"required"`
}

// TierResponse is the API representation of a commission tier
type TierResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	MinSalesCount  int             `json:"min_sales_count"`
	MaxSalesCount  *int            `json:"max_sales_count,omitempty"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PeriodResponse is the API representation of a commission period
type PeriodResponse struct {
	ID       uuid.UUID  `json:"id"`
	Year     int        `json:"year"`
	Month    int        `json:"month"`
	Label    string     `json:"label"`
	IsClosed bool       `json:"is_closed"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`
	ClosedBy *uuid.UUID `json:"closed_by,omitempty"`
}

// CommissionPaymentResponse is the disbursement record of a summary
type CommissionPaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	PaymentDate   time.Time       `json:"payment_date"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Method        string          `json:"method"`
	BankReference string          `json:"bank_reference"`
	PaidBy        uuid.UUID       `json:"paid_by"`
	Notes         string          `json:"notes"`
}

// SummaryResponse is the API representation of a trader's period summary
type SummaryResponse struct {
	ID              uuid.UUID                  `json:"id"`
	TraderID        uuid.UUID                  `json:"trader_id"`
	PeriodID        uuid.UUID                  `json:"period_id"`
	SalesCount      int                        `json:"sales_count"`
	TotalSalesValue decimal.Decimal            `json:"total_sales_value"`
	TotalMargin     decimal.Decimal            `json:"total_margin"`
	BaseCommission  decimal.Decimal            `json:"base_commission"`
	TierBonus       decimal.Decimal            `json:"tier_bonus"`
	TotalCommission decimal.Decimal            `json:"total_commission"`
	PayoutStatus    string                     `json:"payout_status"`
	PayoutDate      *time.Time                 `json:"payout_date,omitempty"`
	PayoutReference string                     `json:"payout_reference,omitempty"`
	Payment         *CommissionPaymentResponse `json:"payment,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// AdjustmentResponse is the API representation of a manual adjustment
type AdjustmentResponse struct {
	ID         uuid.UUID       `json:"id"`
	TraderID   uuid.UUID       `json:"trader_id"`
	PeriodID   uuid.UUID       `json:"period_id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	ApprovedBy uuid.UUID       `json:"approved_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TraderStatementResponse combines a trader's summary with the manual
// adjustment ledger for one period. Adjustments are reported alongside
// the settled commission, never folded into it.
type TraderStatementResponse struct {
	Summary       SummaryResponse      `json:"summary"`
	Adjustments   []AdjustmentResponse `json:"adjustments"`
	NetAdjustment decimal.Decimal      `json:"net_adjustment"`
}

// ClosePeriodResponse reports the outcome of a period close
type ClosePeriodResponse struct {
	Period    PeriodResponse    `json:"period"`
	Summaries []SummaryResponse `json:"summaries"`
}

// ToTierResponse converts a tier aggregate
func ToTierResponse(t *commission.CommissionTier) TierResponse {
	return TierResponse{
		ID:             t.ID,
		Name:           t.Name,
		MinSalesCount:  t.MinSalesCount,
		MaxSalesCount:  t.MaxSalesCount,
		CommissionRate: t.CommissionRate,
		IsActive:       t.IsActive,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToTierResponses converts a slice of tiers
func ToTierResponses(tiers []commission.CommissionTier) []TierResponse {
	responses := make([]TierResponse, len(tiers))
	for i := range tiers {
		responses[i] = ToTierResponse(&tiers[i])
	}
	return responses
}

// ToPeriodResponse converts a period aggregate
func ToPeriodResponse(p *commission.CommissionPeriod) PeriodResponse {
	return PeriodResponse{
		ID:       p.ID,
		Year:     p.Year,
		Month:    int(p.Month),
		Label:    p.Label(),
		IsClosed: p.IsClosed,
		ClosedAt: p.ClosedAt,
		ClosedBy: p.ClosedBy,
	}
}

// ToSummaryResponse converts a summary aggregate
func ToSummaryResponse(s *commission.CommissionSummary) SummaryResponse {
	resp := SummaryResponse{
		ID:              s.ID,
		TraderID:        s.TraderID,
		PeriodID:        s.PeriodID,
		SalesCount:      s.SalesCount,
		TotalSalesValue: s.TotalSalesValue,
		TotalMargin:     s.TotalMargin,
		BaseCommission:  s.BaseCommission,
		TierBonus:       s.TierBonus,
		TotalCommission: s.TotalCommission,
		PayoutStatus:    s.PayoutStatus.String(),
		PayoutDate:      s.PayoutDate,
		PayoutReference: s.PayoutReference,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}

	if s.Payment != nil {
		resp.Payment = &CommissionPaymentResponse{
			ID:            s.Payment.ID,
			PaymentDate:   s.Payment.PaymentDate,
			AmountPaid:    s.Payment.AmountPaid,
			Method:        string(s.Payment.Method),
			BankReference: s.Payment.BankReference,
			PaidBy:        s.Payment.PaidBy,
			Notes:         s.Payment.Notes,
		}
	}

	return resp
}

// ToSummaryResponses converts a slice of summaries
func ToSummaryResponses(summaries []commission.CommissionSummary) []SummaryResponse {
	responses := make([]SummaryResponse, len(summaries))
	for i := range summaries {
		responses[i] = ToSummaryResponse(&summaries[i])
	}
	return responses
}

// ToAdjustmentResponse converts an adjustment aggregate
func ToAdjustmentResponse(a *commission.CommissionAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:         a.ID,
		TraderID:   a.TraderID,
		PeriodID:   a.PeriodID,
		Type:       a.Type.String(),
		Amount:     a.Amount,
		Reason:     a.Reason,
		ApprovedBy: a.ApprovedBy,
		CreatedAt:  a.CreatedAt,
	}
}

// ToAdjustmentResponses converts a slice of adjustments
func ToAdjustmentResponses(adjustments []commission.CommissionAdjustment) []AdjustmentResponse {
	responses := make([]AdjustmentResponse, len(adjustments))
	for i := range adjustments {
		responses[i] = ToAdjustmentResponse(&adjustments[i])
	}
	return responses
}
