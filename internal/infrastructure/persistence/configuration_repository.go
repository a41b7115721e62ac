package persistence

import (
	"context"
	"errors"

	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormConfigurationRepository implements ConfigurationRepository using GORM.
// The configuration is a single row; Get creates the default record on
// first access.
type GormConfigurationRepository struct {
	db *gorm.DB
}

// NewGormConfigurationRepository creates a new GormConfigurationRepository
func NewGormConfigurationRepository(db *gorm.DB) *GormConfigurationRepository {
	return &GormConfigurationRepository{db: db}
}

// Get returns the current configuration, creating the default record on
// first access
func (r *GormConfigurationRepository) Get(ctx context.Context) (*settings.SystemConfiguration, error) {
	var model models.SystemConfigurationModel
	err := session(ctx, r.db).Order("created_at ASC").First(&model).Error
	if err == nil {
		return model.ToDomain(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	config := settings.NewSystemConfiguration("CarTrade DZ")
	if err := r.Save(ctx, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save creates or updates the configuration record
func (r *GormConfigurationRepository) Save(ctx context.Context, config *settings.SystemConfiguration) error {
	model := models.SystemConfigurationModelFromDomain(config)
	return session(ctx, r.db).Save(model).Error
}

// Ensure GormConfigurationRepository implements the domain interface
var _ settings.ConfigurationRepository = (*GormConfigurationRepository)(nil)
