package persistence

import (
	"context"
	"errors"

	"github.com/cartrade/backend/internal/domain/procurement"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Purchase, error) {
	var model models.PurchaseModel
	if err := session(ctx, r.db).
		Preload("Freight").
		Preload("Customs").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a purchase by its purchase number
func (r *GormPurchaseRepository) FindByNumber(ctx context.Context, purchaseNumber string) (*procurement.Purchase, error) {
	var model models.PurchaseModel
	if err := session(ctx, r.db).
		Preload("Freight").
		Preload("Customs").
		Where("purchase_number = ?", purchaseNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds purchases matching the filter, returning the total count
// before pagination
func (r *GormPurchaseRepository) FindAll(ctx context.Context, filter procurement.PurchaseFilter) ([]procurement.Purchase, int64, error) {
	query := session(ctx, r.db).Model(&models.PurchaseModel{})

	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Cleared != nil {
		cleared := r.db.Model(&models.CustomsDeclarationModel{}).
			Select("1").
			Where("customs_declarations.purchase_id = purchases.id AND customs_declarations.cleared = true")
		if *filter.Cleared {
			query = query.Where("EXISTS (?)", cleared)
		} else {
			query = query.Where("NOT EXISTS (?)", cleared)
		}
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("purchase_number ILIKE ? OR supplier_name ILIKE ?",
			searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPageAndOrder(query, filter.Filter, PurchaseSortFields)

	var purchaseModels []models.PurchaseModel
	if err := query.Preload("Freight").Preload("Customs").Find(&purchaseModels).Error; err != nil {
		return nil, 0, err
	}

	purchases := make([]procurement.Purchase, len(purchaseModels))
	for i, model := range purchaseModels {
		purchases[i] = *model.ToDomain()
	}
	return purchases, total, nil
}

// Save creates or updates a purchase with its freight and customs records
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *procurement.Purchase) error {
	return session(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		model := models.PurchaseModelFromDomain(purchase)

		if err := tx.Omit("Freight", "Customs").Save(model).Error; err != nil {
			return err
		}

		if model.Freight != nil {
			if err := tx.Save(model.Freight).Error; err != nil {
				return err
			}
		}
		if model.Customs != nil {
			if err := tx.Save(model.Customs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a purchase with its freight and customs records
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return session(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).
			Delete(&models.FreightCostModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("purchase_id = ?", id).
			Delete(&models.CustomsDeclarationModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.PurchaseModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyPageAndOrder applies pagination and whitelisted ordering to a query
func applyPageAndOrder(query *gorm.DB, filter shared.Filter, sortFields map[string]bool) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, sortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			return query.Order(sortField + " " + sortOrder)
		}
	}
	return query.Order("created_at DESC")
}

// Ensure GormPurchaseRepository implements the domain interface
var _ procurement.PurchaseRepository = (*GormPurchaseRepository)(nil)
