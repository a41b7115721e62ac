package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/cartrade/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExchangeRateRepository implements ExchangeRateRepository using GORM
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// FindByID finds an exchange rate quote by its ID
func (r *GormExchangeRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*settings.ExchangeRateQuote, error) {
	var model models.ExchangeRateQuoteModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatest returns the most recent quote for the pair effective on or
// before the given date
func (r *GormExchangeRateRepository) FindLatest(ctx context.Context, from, to valueobject.Currency, asOf time.Time) (*settings.ExchangeRateQuote, error) {
	var model models.ExchangeRateQuoteModel
	if err := session(ctx, r.db).
		Where("from_currency = ? AND to_currency = ? AND effective_date <= ?", from, to, asOf).
		Order("effective_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds exchange rate quotes, returning the total count before
// pagination
func (r *GormExchangeRateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]settings.ExchangeRateQuote, int64, error) {
	query := session(ctx, r.db).Model(&models.ExchangeRateQuoteModel{})

	for key, value := range filter.Filters {
		switch key {
		case "from_currency":
			query = query.Where("from_currency = ?", value)
		case "to_currency":
			query = query.Where("to_currency = ?", value)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPageAndOrder(query, filter, ExchangeRateSortFields)

	var quoteModels []models.ExchangeRateQuoteModel
	if err := query.Find(&quoteModels).Error; err != nil {
		return nil, 0, err
	}

	quotes := make([]settings.ExchangeRateQuote, len(quoteModels))
	for i, model := range quoteModels {
		quotes[i] = *model.ToDomain()
	}
	return quotes, total, nil
}

// Save creates or updates an exchange rate quote
func (r *GormExchangeRateRepository) Save(ctx context.Context, quote *settings.ExchangeRateQuote) error {
	model := models.ExchangeRateQuoteModelFromDomain(quote)
	return session(ctx, r.db).Save(model).Error
}

// Delete removes an exchange rate quote
func (r *GormExchangeRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := session(ctx, r.db).Delete(&models.ExchangeRateQuoteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormExchangeRateRepository implements the domain interface
var _ settings.ExchangeRateRepository = (*GormExchangeRateRepository)(nil)
