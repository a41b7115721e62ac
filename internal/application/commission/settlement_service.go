package commission

import (
	"context"
	"time"

	"github.com/cartrade/backend/internal/domain/commission"
	"github.com/cartrade/backend/internal/domain/sales"
	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettlementService orchestrates the monthly commission close and the
// payout lifecycle of the resulting summaries
type SettlementService struct {
	periodRepo     commission.PeriodRepository
	summaryRepo    commission.SummaryRepository
	tierRepo       commission.TierRepository
	adjustmentRepo commission.AdjustmentRepository
	saleRepo       sales.SaleRepository
	configRepo     settings.ConfigurationRepository
	txManager      shared.TransactionManager
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	periodRepo commission.PeriodRepository,
	summaryRepo commission.SummaryRepository,
	tierRepo commission.TierRepository,
	adjustmentRepo commission.AdjustmentRepository,
	saleRepo sales.SaleRepository,
	configRepo settings.ConfigurationRepository,
	logger *zap.Logger,
) *SettlementService {
	return &SettlementService{
		periodRepo:     periodRepo,
		summaryRepo:    summaryRepo,
		tierRepo:       tierRepo,
		adjustmentRepo: adjustmentRepo,
		saleRepo:       saleRepo,
		configRepo:     configRepo,
		txManager:      shared.PassthroughTxManager{},
		logger:         logger,
	}
}

// WithTransactionManager makes the period close run inside one storage
// transaction
func (s *SettlementService) WithTransactionManager(txManager shared.TransactionManager) *SettlementService {
	s.txManager = txManager
	return s
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SettlementService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// EnsurePeriod returns the period for the given month, creating it when
// it does not exist yet
func (s *SettlementService) EnsurePeriod(ctx context.Context, year int, month time.Month) (*PeriodResponse, error) {
	period, err := s.ensurePeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	response := ToPeriodResponse(period)
	return &response, nil
}

// ClosePeriod freezes a calendar month and recomputes every trader's
// summary from their finalized sales in that month. The tier bonus is
// only applied when explicitly requested.
func (s *SettlementService) ClosePeriod(ctx context.Context, req ClosePeriodRequest) (*ClosePeriodResponse, error) {
	month := time.Month(req.Month)

	period, err := s.ensurePeriod(ctx, req.Year, month)
	if err != nil {
		return nil, err
	}

	if err := period.Close(req.ClosedBy); err != nil {
		return nil, err
	}

	traderIDs, err := s.saleRepo.FindTraderIDsWithSalesInPeriod(ctx, req.Year, month)
	if err != nil {
		return nil, err
	}

	var tiers []commission.CommissionTier
	var baseRate decimal.Decimal
	if req.ApplyTierBonus {
		tiers, err = s.tierRepo.FindActive(ctx)
		if err != nil {
			return nil, err
		}
		config, err := s.configRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		baseRate = config.Rates().BaseCommissionRate
	}

	// The close is all-or-nothing: every summary write and the period
	// flag commit together or not at all.
	summaries := make([]SummaryResponse, 0, len(traderIDs))
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, traderID := range traderIDs {
			summary, err := s.recomputeSummary(txCtx, traderID, period, tiers, baseRate, req.ApplyTierBonus)
			if err != nil {
				return err
			}
			summaries = append(summaries, ToSummaryResponse(summary))
		}
		return s.periodRepo.Save(txCtx, period)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, period)

	s.logger.Info("commission period closed",
		zap.String("period", period.Label()),
		zap.Int("traders", len(traderIDs)),
	)

	return &ClosePeriodResponse{
		Period:    ToPeriodResponse(period),
		Summaries: summaries,
	}, nil
}

// ApplyTierBonuses resolves and applies the tier bonus for every summary
// of a period. Separate from the close so bonuses stay an explicit step.
func (s *SettlementService) ApplyTierBonuses(ctx context.Context, periodID uuid.UUID) ([]SummaryResponse, error) {
	summaries, err := s.summaryRepo.FindByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	tiers, err := s.tierRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	config, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	baseRate := config.Rates().BaseCommissionRate

	responses := make([]SummaryResponse, 0, len(summaries))
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		for i := range summaries {
			summary := &summaries[i]
			if err := summary.ApplyTierBonus(tiers, baseRate); err != nil {
				return err
			}
			if err := s.summaryRepo.Save(txCtx, summary); err != nil {
				return err
			}
			responses = append(responses, ToSummaryResponse(summary))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}

// Approve moves a summary's payout from pending to approved
func (s *SettlementService) Approve(ctx context.Context, summaryID uuid.UUID) (*SummaryResponse, error) {
	return s.mutateSummary(ctx, summaryID, func(summary *commission.CommissionSummary) error {
		return summary.Approve()
	})
}

// CancelPayout voids a summary's payout
func (s *SettlementService) CancelPayout(ctx context.Context, summaryID uuid.UUID) (*SummaryResponse, error) {
	return s.mutateSummary(ctx, summaryID, func(summary *commission.CommissionSummary) error {
		return summary.CancelPayout()
	})
}

// Pay records the commission disbursement and settles the payout
func (s *SettlementService) Pay(ctx context.Context, summaryID uuid.UUID, req PayCommissionRequest) (*SummaryResponse, error) {
	return s.mutateSummary(ctx, summaryID, func(summary *commission.CommissionSummary) error {
		_, err := summary.RecordPayment(
			req.PaymentDate,
			req.AmountPaid,
			commission.PayoutMethod(req.Method),
			req.BankReference,
			req.PaidBy,
			req.Notes,
		)
		return err
	})
}

// CreateAdjustment records a manual adjustment in the period's ledger
func (s *SettlementService) CreateAdjustment(ctx context.Context, req CreateAdjustmentRequest) (*AdjustmentResponse, error) {
	period, err := s.periodRepo.FindByID(ctx, req.PeriodID)
	if err != nil {
		return nil, err
	}
	if period.IsClosed {
		return nil, shared.ErrPeriodClosed
	}

	adjustment, err := commission.NewCommissionAdjustment(
		req.TraderID,
		req.PeriodID,
		commission.AdjustmentType(req.Type),
		req.Amount,
		req.Reason,
		req.ApprovedBy,
	)
	if err != nil {
		return nil, err
	}

	if err := s.adjustmentRepo.Save(ctx, adjustment); err != nil {
		return nil, err
	}

	response := ToAdjustmentResponse(adjustment)
	return &response, nil
}

// GetSummary retrieves a summary by ID
func (s *SettlementService) GetSummary(ctx context.Context, summaryID uuid.UUID) (*SummaryResponse, error) {
	summary, err := s.summaryRepo.FindByID(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	response := ToSummaryResponse(summary)
	return &response, nil
}

// ListSummaries retrieves summaries with filtering and pagination
func (s *SettlementService) ListSummaries(ctx context.Context, filter commission.SummaryFilter) ([]SummaryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	summaries, total, err := s.summaryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToSummaryResponses(summaries), total, nil
}

// TraderStatement returns a trader's summary for a period together with
// the manual adjustment ledger
func (s *SettlementService) TraderStatement(ctx context.Context, traderID, periodID uuid.UUID) (*TraderStatementResponse, error) {
	summary, err := s.summaryRepo.FindByTraderAndPeriod(ctx, traderID, periodID)
	if err != nil {
		return nil, err
	}

	adjustments, err := s.adjustmentRepo.FindByTraderAndPeriod(ctx, traderID, periodID)
	if err != nil {
		return nil, err
	}

	return &TraderStatementResponse{
		Summary:       ToSummaryResponse(summary),
		Adjustments:   ToAdjustmentResponses(adjustments),
		NetAdjustment: commission.NetAdjustment(adjustments),
	}, nil
}

func (s *SettlementService) ensurePeriod(ctx context.Context, year int, month time.Month) (*commission.CommissionPeriod, error) {
	period, err := s.periodRepo.FindByYearMonth(ctx, year, month)
	if err == nil && period != nil {
		return period, nil
	}

	period, err = commission.NewCommissionPeriod(year, month)
	if err != nil {
		return nil, err
	}
	if err := s.periodRepo.Save(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

// recomputeSummary scans one trader's finalized sales in the period and
// overwrites their summary figures
func (s *SettlementService) recomputeSummary(
	ctx context.Context,
	traderID uuid.UUID,
	period *commission.CommissionPeriod,
	tiers []commission.CommissionTier,
	baseRate decimal.Decimal,
	applyTierBonus bool,
) (*commission.CommissionSummary, error) {
	periodSales, err := s.saleRepo.FindFinalizedByTraderAndPeriod(ctx, traderID, period.Year, period.Month)
	if err != nil {
		return nil, err
	}

	totalValue := decimal.Zero
	totalMargin := decimal.Zero
	baseCommission := decimal.Zero
	for i := range periodSales {
		totalValue = totalValue.Add(periodSales[i].SalePrice)
		totalMargin = totalMargin.Add(periodSales[i].Margin)
		baseCommission = baseCommission.Add(periodSales[i].CommissionAmount)
	}

	summary, err := s.summaryRepo.FindByTraderAndPeriod(ctx, traderID, period.ID)
	if err != nil || summary == nil {
		summary, err = commission.NewCommissionSummary(traderID, period.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := summary.Recompute(len(periodSales), totalValue, totalMargin, baseCommission); err != nil {
		return nil, err
	}

	if applyTierBonus {
		if err := summary.ApplyTierBonus(tiers, baseRate); err != nil {
			return nil, err
		}
	}

	if err := s.summaryRepo.Save(ctx, summary); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *SettlementService) mutateSummary(ctx context.Context, summaryID uuid.UUID, op func(*commission.CommissionSummary) error) (*SummaryResponse, error) {
	summary, err := s.summaryRepo.FindByID(ctx, summaryID)
	if err != nil {
		return nil, err
	}

	if err := op(summary); err != nil {
		return nil, err
	}

	if err := s.summaryRepo.Save(ctx, summary); err != nil {
		return nil, err
	}

	s.publishSummaryEvents(ctx, summary)

	response := ToSummaryResponse(summary)
	return &response, nil
}

func (s *SettlementService) publishEvents(ctx context.Context, period *commission.CommissionPeriod) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range period.GetDomainEvents() {
		// Event handling is async; a publish failure must not fail the
		// write that already happened.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	period.ClearDomainEvents()
}

func (s *SettlementService) publishSummaryEvents(ctx context.Context, summary *commission.CommissionSummary) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range summary.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	summary.ClearDomainEvents()
}
