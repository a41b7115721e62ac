package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cartrade/backend/internal/domain/fleet"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVehicleRepository implements VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID finds a vehicle by its ID
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Vehicle, error) {
	var model models.VehicleModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByVIN finds a vehicle by its VIN
func (r *GormVehicleRepository) FindByVIN(ctx context.Context, vin string) (*fleet.Vehicle, error) {
	var model models.VehicleModel
	if err := session(ctx, r.db).Where("vin = ?", vin).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPurchaseID finds all vehicles belonging to a purchase
func (r *GormVehicleRepository) FindByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]fleet.Vehicle, error) {
	var vehicleModels []models.VehicleModel
	if err := session(ctx, r.db).
		Where("purchase_id = ?", purchaseID).
		Order("created_at ASC").
		Find(&vehicleModels).Error; err != nil {
		return nil, err
	}
	return toDomainVehicles(vehicleModels), nil
}

// FindAll finds vehicles matching the filter, returning the total count
// before pagination
func (r *GormVehicleRepository) FindAll(ctx context.Context, filter fleet.VehicleFilter) ([]fleet.Vehicle, int64, error) {
	query := session(ctx, r.db).Model(&models.VehicleModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Make != "" {
		query = query.Where("make ILIKE ?", filter.Make)
	}
	if filter.PurchaseID != nil {
		query = query.Where("purchase_id = ?", *filter.PurchaseID)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("vin ILIKE ? OR make ILIKE ? OR model ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPageAndOrder(query, filter.Filter, VehicleSortFields)

	var vehicleModels []models.VehicleModel
	if err := query.Find(&vehicleModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainVehicles(vehicleModels), total, nil
}

// FindExpiredReservations finds reserved vehicles whose hold expired on or
// before the given time
func (r *GormVehicleRepository) FindExpiredReservations(ctx context.Context, asOf time.Time) ([]fleet.Vehicle, error) {
	var vehicleModels []models.VehicleModel
	if err := session(ctx, r.db).
		Where("status = ? AND reservation_expires <= ?", fleet.VehicleStatusReserved, asOf).
		Find(&vehicleModels).Error; err != nil {
		return nil, err
	}
	return toDomainVehicles(vehicleModels), nil
}

// Save creates or updates a vehicle
func (r *GormVehicleRepository) Save(ctx context.Context, vehicle *fleet.Vehicle) error {
	model := models.VehicleModelFromDomain(vehicle)
	return session(ctx, r.db).Save(model).Error
}

// Delete removes a vehicle
func (r *GormVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := session(ctx, r.db).Delete(&models.VehicleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainVehicles(vehicleModels []models.VehicleModel) []fleet.Vehicle {
	vehicles := make([]fleet.Vehicle, len(vehicleModels))
	for i, model := range vehicleModels {
		vehicles[i] = *model.ToDomain()
	}
	return vehicles
}

// Ensure GormVehicleRepository implements the domain interface
var _ fleet.VehicleRepository = (*GormVehicleRepository)(nil)
