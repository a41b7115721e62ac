package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cartrade/backend/internal/domain/sales"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by its ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a sale by its sale number
func (r *GormSaleRepository) FindByNumber(ctx context.Context, saleNumber string) (*sales.Sale, error) {
	var model models.SaleModel
	if err := session(ctx, r.db).Where("sale_number = ?", saleNumber).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByVehicleID finds the sale bound to a vehicle
func (r *GormSaleRepository) FindByVehicleID(ctx context.Context, vehicleID uuid.UUID) (*sales.Sale, error) {
	var model models.SaleModel
	if err := session(ctx, r.db).Where("vehicle_id = ?", vehicleID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds sales matching the filter, returning the total count before
// pagination
func (r *GormSaleRepository) FindAll(ctx context.Context, filter sales.SaleFilter) ([]sales.Sale, int64, error) {
	query := session(ctx, r.db).Model(&models.SaleModel{})

	if filter.TraderID != nil {
		query = query.Where("trader_id = ?", *filter.TraderID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Finalized != nil {
		query = query.Where("is_finalized = ?", *filter.Finalized)
	}
	if filter.From != nil {
		query = query.Where("sale_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("sale_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("sale_number ILIKE ? OR customer_name ILIKE ?",
			searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPageAndOrder(query, filter.Filter, SaleSortFields)

	var saleModels []models.SaleModel
	if err := query.Find(&saleModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainSales(saleModels), total, nil
}

// FindFinalizedByTraderAndPeriod returns the trader's finalized sales whose
// sale date falls inside the given calendar month
func (r *GormSaleRepository) FindFinalizedByTraderAndPeriod(ctx context.Context, traderID uuid.UUID, year int, month time.Month) ([]sales.Sale, error) {
	start, end := monthBounds(year, month)

	var saleModels []models.SaleModel
	if err := session(ctx, r.db).
		Where("trader_id = ? AND is_finalized = true AND sale_date >= ? AND sale_date < ?",
			traderID, start, end).
		Order("sale_date ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toDomainSales(saleModels), nil
}

// FindTraderIDsWithSalesInPeriod returns the distinct traders with finalized
// sales inside the given calendar month
func (r *GormSaleRepository) FindTraderIDsWithSalesInPeriod(ctx context.Context, year int, month time.Month) ([]uuid.UUID, error) {
	start, end := monthBounds(year, month)

	var traderIDs []uuid.UUID
	if err := session(ctx, r.db).
		Model(&models.SaleModel{}).
		Distinct("trader_id").
		Where("is_finalized = true AND sale_date >= ? AND sale_date < ?", start, end).
		Pluck("trader_id", &traderIDs).Error; err != nil {
		return nil, err
	}
	return traderIDs, nil
}

// Save creates or updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return session(ctx, r.db).Save(model).Error
}

// Delete removes a sale
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := session(ctx, r.db).Delete(&models.SaleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// monthBounds returns the half-open [start, end) interval of a calendar month in UTC
func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func toDomainSales(saleModels []models.SaleModel) []sales.Sale {
	result := make([]sales.Sale, len(saleModels))
	for i, model := range saleModels {
		result[i] = *model.ToDomain()
	}
	return result
}

// Ensure GormSaleRepository implements the domain interface
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
