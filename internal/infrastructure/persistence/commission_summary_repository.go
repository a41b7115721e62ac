package persistence

import (
	"context"
	"errors"

	"github.com/cartrade/backend/internal/domain/commission"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSummaryRepository implements SummaryRepository using GORM
type GormSummaryRepository struct {
	db *gorm.DB
}

// NewGormSummaryRepository creates a new GormSummaryRepository
func NewGormSummaryRepository(db *gorm.DB) *GormSummaryRepository {
	return &GormSummaryRepository{db: db}
}

// FindByID finds a commission summary by its ID
func (r *GormSummaryRepository) FindByID(ctx context.Context, id uuid.UUID) (*commission.CommissionSummary, error) {
	var model models.CommissionSummaryModel
	if err := session(ctx, r.db).
		Preload("Payment").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTraderAndPeriod finds the trader's summary for a specific period
func (r *GormSummaryRepository) FindByTraderAndPeriod(ctx context.Context, traderID, periodID uuid.UUID) (*commission.CommissionSummary, error) {
	var model models.CommissionSummaryModel
	if err := session(ctx, r.db).
		Preload("Payment").
		Where("trader_id = ? AND period_id = ?", traderID, periodID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod finds all summaries settled for a period
func (r *GormSummaryRepository) FindByPeriod(ctx context.Context, periodID uuid.UUID) ([]commission.CommissionSummary, error) {
	var summaryModels []models.CommissionSummaryModel
	if err := session(ctx, r.db).
		Preload("Payment").
		Where("period_id = ?", periodID).
		Order("total_commission DESC").
		Find(&summaryModels).Error; err != nil {
		return nil, err
	}
	return toDomainSummaries(summaryModels), nil
}

// FindAll finds summaries matching the filter, returning the total count
// before pagination
func (r *GormSummaryRepository) FindAll(ctx context.Context, filter commission.SummaryFilter) ([]commission.CommissionSummary, int64, error) {
	query := session(ctx, r.db).Model(&models.CommissionSummaryModel{})

	if filter.TraderID != nil {
		query = query.Where("trader_id = ?", *filter.TraderID)
	}
	if filter.PeriodID != nil {
		query = query.Where("period_id = ?", *filter.PeriodID)
	}
	if filter.PayoutStatus != nil {
		query = query.Where("payout_status = ?", *filter.PayoutStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPageAndOrder(query, filter.Filter, SummarySortFields)

	var summaryModels []models.CommissionSummaryModel
	if err := query.Preload("Payment").Find(&summaryModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainSummaries(summaryModels), total, nil
}

// Save creates or updates a commission summary with its payout record
func (r *GormSummaryRepository) Save(ctx context.Context, summary *commission.CommissionSummary) error {
	return session(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		model := models.CommissionSummaryModelFromDomain(summary)

		if err := tx.Omit("Payment").Save(model).Error; err != nil {
			return err
		}
		if model.Payment != nil {
			if err := tx.Save(model.Payment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a commission summary with its payout record
func (r *GormSummaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return session(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("summary_id = ?", id).
			Delete(&models.CommissionPaymentModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CommissionSummaryModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func toDomainSummaries(summaryModels []models.CommissionSummaryModel) []commission.CommissionSummary {
	summaries := make([]commission.CommissionSummary, len(summaryModels))
	for i, model := range summaryModels {
		summaries[i] = *model.ToDomain()
	}
	return summaries
}

// Ensure GormSummaryRepository implements the domain interface
var _ commission.SummaryRepository = (*GormSummaryRepository)(nil)
