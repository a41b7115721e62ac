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

// GormAdjustmentRepository implements AdjustmentRepository using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// FindByID finds a commission adjustment by its ID
func (r *GormAdjustmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*commission.CommissionAdjustment, error) {
	var model models.CommissionAdjustmentModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTraderAndPeriod finds the trader's adjustments for a specific period
func (r *GormAdjustmentRepository) FindByTraderAndPeriod(ctx context.Context, traderID, periodID uuid.UUID) ([]commission.CommissionAdjustment, error) {
	var adjustmentModels []models.CommissionAdjustmentModel
	if err := session(ctx, r.db).
		Where("trader_id = ? AND period_id = ?", traderID, periodID).
		Order("created_at ASC").
		Find(&adjustmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainAdjustments(adjustmentModels), nil
}

// FindByPeriod finds all adjustments recorded in a period
func (r *GormAdjustmentRepository) FindByPeriod(ctx context.Context, periodID uuid.UUID) ([]commission.CommissionAdjustment, error) {
	var adjustmentModels []models.CommissionAdjustmentModel
	if err := session(ctx, r.db).
		Where("period_id = ?", periodID).
		Order("created_at ASC").
		Find(&adjustmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainAdjustments(adjustmentModels), nil
}

// Save creates or updates a commission adjustment
func (r *GormAdjustmentRepository) Save(ctx context.Context, adjustment *commission.CommissionAdjustment) error {
	model := models.CommissionAdjustmentModelFromDomain(adjustment)
	return session(ctx, r.db).Save(model).Error
}

// Delete removes a commission adjustment
func (r *GormAdjustmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := session(ctx, r.db).Delete(&models.CommissionAdjustmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainAdjustments(adjustmentModels []models.CommissionAdjustmentModel) []commission.CommissionAdjustment {
	adjustments := make([]commission.CommissionAdjustment, len(adjustmentModels))
	for i, model := range adjustmentModels {
		adjustments[i] = *model.ToDomain()
	}
	return adjustments
}

// Ensure GormAdjustmentRepository implements the domain interface
var _ commission.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
