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

// GormTierRepository implements TierRepository using GORM
type GormTierRepository struct {
	db *gorm.DB
}

// NewGormTierRepository creates a new GormTierRepository
func NewGormTierRepository(db *gorm.DB) *GormTierRepository {
	return &GormTierRepository{db: db}
}

// FindByID finds a commission tier by its ID
func (r *GormTierRepository) FindByID(ctx context.Context, id uuid.UUID) (*commission.CommissionTier, error) {
	var model models.CommissionTierModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive returns active tiers ordered by ascending minimum sales count
func (r *GormTierRepository) FindActive(ctx context.Context) ([]commission.CommissionTier, error) {
	var tierModels []models.CommissionTierModel
	if err := session(ctx, r.db).
		Where("is_active = true").
		Order("min_sales_count ASC").
		Find(&tierModels).Error; err != nil {
		return nil, err
	}
	return toDomainTiers(tierModels), nil
}

// FindAll finds commission tiers, returning the total count before pagination
func (r *GormTierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]commission.CommissionTier, int64, error) {
	query := session(ctx, r.db).Model(&models.CommissionTierModel{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPageAndOrder(query, filter, TierSortFields)

	var tierModels []models.CommissionTierModel
	if err := query.Find(&tierModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainTiers(tierModels), total, nil
}

// Save creates or updates a commission tier
func (r *GormTierRepository) Save(ctx context.Context, tier *commission.CommissionTier) error {
	model := models.CommissionTierModelFromDomain(tier)
	return session(ctx, r.db).Save(model).Error
}

// Delete removes a commission tier
func (r *GormTierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := session(ctx, r.db).Delete(&models.CommissionTierModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainTiers(tierModels []models.CommissionTierModel) []commission.CommissionTier {
	tiers := make([]commission.CommissionTier, len(tierModels))
	for i, model := range tierModels {
		tiers[i] = *model.ToDomain()
	}
	return tiers
}

// Ensure GormTierRepository implements the domain interface
var _ commission.TierRepository = (*GormTierRepository)(nil)
