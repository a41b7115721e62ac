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

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID with payments
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := session(ctx, r.db).
		Preload("Payments").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by its invoice number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := session(ctx, r.db).
		Preload("Payments").
		Where("invoice_number = ?", invoiceNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySaleID finds the invoice issued for a sale
func (r *GormInvoiceRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := session(ctx, r.db).
		Preload("Payments").
		Where("sale_id = ?", saleID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds invoices matching the filter, returning the total count
// before pagination
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, int64, error) {
	query := session(ctx, r.db).Model(&models.InvoiceModel{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date < ?", *filter.DueBefore)
	}
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number ILIKE ? OR customer_name ILIKE ?",
			searchPattern, searchPattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPageAndOrder(query, filter.Filter, InvoiceSortFields)

	var invoiceModels []models.InvoiceModel
	if err := query.Preload("Payments").Find(&invoiceModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainInvoices(invoiceModels), total, nil
}

// FindOverdue finds issued invoices whose due date passed with a balance
// still owing
func (r *GormInvoiceRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := session(ctx, r.db).
		Preload("Payments").
		Where("status = ? AND due_date < ? AND balance_due > 0", billing.InvoiceStatusIssued, asOf).
		Order("due_date ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(invoiceModels), nil
}

// Save creates or updates an invoice with its payments
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return session(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		model := models.InvoiceModelFromDomain(invoice)

		if err := tx.Omit("Payments").Save(model).Error; err != nil {
			return err
		}

		// Payments may be amended, so delete the ones no longer on the
		// aggregate before saving the current set
		if invoice.ID != uuid.Nil {
			currentIDs := make([]uuid.UUID, len(invoice.Payments))
			for i, payment := range invoice.Payments {
				currentIDs[i] = payment.ID
			}
			if len(currentIDs) > 0 {
				if err := tx.Where("invoice_id = ? AND id NOT IN ?", invoice.ID, currentIDs).
					Delete(&models.PaymentModel{}).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Where("invoice_id = ?", invoice.ID).
					Delete(&models.PaymentModel{}).Error; err != nil {
					return err
				}
			}
		}

		for i := range model.Payments {
			if err := tx.Save(&model.Payments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an invoice with its payments
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return session(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).
			Delete(&models.PaymentModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.InvoiceModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func toDomainInvoices(invoiceModels []models.InvoiceModel) []billing.Invoice {
	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices
}

// Ensure GormInvoiceRepository implements the domain interface
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
