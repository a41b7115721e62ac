package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cartrade/backend/internal/domain/commission"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPeriodRepository implements PeriodRepository using GORM
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewGormPeriodRepository creates a new GormPeriodRepository
func NewGormPeriodRepository(db *gorm.DB) *GormPeriodRepository {
	return &GormPeriodRepository{db: db}
}

// FindByID finds a commission period by its ID
func (r *GormPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*commission.CommissionPeriod, error) {
	var model models.CommissionPeriodModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByYearMonth finds the period covering a specific calendar month
func (r *GormPeriodRepository) FindByYearMonth(ctx context.Context, year int, month time.Month) (*commission.CommissionPeriod, error) {
	var model models.CommissionPeriodModel
	if err := session(ctx, r.db).
		Where("year = ? AND month = ?", year, int(month)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds commission periods, returning the total count before pagination
func (r *GormPeriodRepository) FindAll(ctx context.Context, filter shared.Filter) ([]commission.CommissionPeriod, int64, error) {
	query := session(ctx, r.db).Model(&models.CommissionPeriodModel{})

	for key, value := range filter.Filters {
		switch key {
		case "year":
			query = query.Where("year = ?", value)
		case "is_closed":
			query = query.Where("is_closed = ?", value)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var periodModels []models.CommissionPeriodModel
	if err := query.Order("year DESC, month DESC").Find(&periodModels).Error; err != nil {
		return nil, 0, err
	}

	periods := make([]commission.CommissionPeriod, len(periodModels))
	for i, model := range periodModels {
		periods[i] = *model.ToDomain()
	}
	return periods, total, nil
}

// Save creates or updates a commission period
func (r *GormPeriodRepository) Save(ctx context.Context, period *commission.CommissionPeriod) error {
	model := models.CommissionPeriodModelFromDomain(period)
	return session(ctx, r.db).Save(model).Error
}

// Ensure GormPeriodRepository implements the domain interface
var _ commission.PeriodRepository = (*GormPeriodRepository)(nil)
