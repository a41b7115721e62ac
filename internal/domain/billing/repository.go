package billing

import (
	"context"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceFilter holds query options for listing invoices
type InvoiceFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	Status     *InvoiceStatus
	DueBefore  *time.Time
}

// InvoiceRepository provides access to the invoice aggregate, payments
// included
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	FindBySaleID(ctx context.Context, saleID uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, int64, error)
	FindOverdue(ctx context.Context, asOf time.Time) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentPlanRepository provides access to payment plans and their
// installments
type PaymentPlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentPlan, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*PaymentPlan, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PaymentPlan, int64, error)
	FindWithOverdueInstallments(ctx context.Context, asOf time.Time) ([]PaymentPlan, error)
	Save(ctx context.Context, plan *PaymentPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
}
