package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cartrade/backend/internal/domain/billing"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentPlanRepository implements PaymentPlanRepository using GORM
type GormPaymentPlanRepository struct {
	db *gorm.DB
}

// NewGormPaymentPlanRepository creates a new GormPaymentPlanRepository
func NewGormPaymentPlanRepository(db *gorm.DB) *GormPaymentPlanRepository {
	return &GormPaymentPlanRepository{db: db}
}

// FindByID finds a payment plan by its ID with installments
func (r *GormPaymentPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.PaymentPlan, error) {
	var model models.PaymentPlanModel
	if err := session(ctx, r.db).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoiceID finds the payment plan attached to an invoice
func (r *GormPaymentPlanRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*billing.PaymentPlan, error) {
	var model models.PaymentPlanModel
	if err := session(ctx, r.db).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number ASC")
		}).
		Where("invoice_id = ?", invoiceID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds payment plans matching the filter, returning the total count
// before pagination
func (r *GormPaymentPlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.PaymentPlan, int64, error) {
	query := session(ctx, r.db).Model(&models.PaymentPlanModel{})

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "invoice_id":
			query = query.Where("invoice_id = ?", value)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPageAndOrder(query, filter, PaymentPlanSortFields)

	var planModels []models.PaymentPlanModel
	if err := query.Preload("Installments", func(db *gorm.DB) *gorm.DB {
		return db.Order("installment_number ASC")
	}).Find(&planModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainPlans(planModels), total, nil
}

// FindWithOverdueInstallments finds active plans holding at least one unpaid
// installment past its due date
func (r *GormPaymentPlanRepository) FindWithOverdueInstallments(ctx context.Context, asOf time.Time) ([]billing.PaymentPlan, error) {
	overdue := r.db.Model(&models.InstallmentModel{}).
		Select("1").
		Where("installments.plan_id = payment_plans.id AND installments.due_date < ? AND installments.balance_due > 0", asOf)

	var planModels []models.PaymentPlanModel
	if err := session(ctx, r.db).
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number ASC")
		}).
		Where("status = ?", billing.PlanStatusActive).
		Where("EXISTS (?)", overdue).
		Find(&planModels).Error; err != nil {
		return nil, err
	}
	return toDomainPlans(planModels), nil
}

// Save creates or updates a payment plan with its installments
func (r *GormPaymentPlanRepository) Save(ctx context.Context, plan *billing.PaymentPlan) error {
	return session(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		model := models.PaymentPlanModelFromDomain(plan)

		if err := tx.Omit("Installments").Save(model).Error; err != nil {
			return err
		}

		for i := range model.Installments {
			if err := tx.Save(&model.Installments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a payment plan with its installments
func (r *GormPaymentPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return session(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).
			Delete(&models.InstallmentModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.PaymentPlanModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func toDomainPlans(planModels []models.PaymentPlanModel) []billing.PaymentPlan {
	plans := make([]billing.PaymentPlan, len(planModels))
	for i, model := range planModels {
		plans[i] = *model.ToDomain()
	}
	return plans
}

// Ensure GormPaymentPlanRepository implements the domain interface
var _ billing.PaymentPlanRepository = (*GormPaymentPlanRepository)(nil)
