package billing

import (
	"context"
	"time"

	"github.com/cartrade/backend/internal/domain/billing"
	"github.com/cartrade/backend/internal/domain/sales"
	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceService handles invoicing and payment business operations
type InvoiceService struct {
	invoiceRepo    billing.InvoiceRepository
	saleRepo       sales.SaleRepository
	configRepo     settings.ConfigurationRepository
	eventPublisher shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	saleRepo sales.SaleRepository,
	configRepo settings.ConfigurationRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		saleRepo:    saleRepo,
		configRepo:  configRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateForSale issues a draft invoice for a sale. The total is the sale
// price VAT inclusive; due date and VAT rate fall back to the system
// configuration when omitted.
func (s *InvoiceService) CreateForSale(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, req.SaleID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.invoiceRepo.FindBySaleID(ctx, req.SaleID); err == nil && existing != nil {
		return nil, shared.NewDomainError("SALE_ALREADY_INVOICED", "Sale "+sale.SaleNumber+" already has invoice "+existing.InvoiceNumber)
	}

	vatRate := req.VATRate
	dueDate := req.DueDate
	if vatRate == nil || dueDate == nil {
		config, err := s.configRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		rates := config.Rates()
		if vatRate == nil {
			vatRate = &rates.VATRate
		}
		if dueDate == nil {
			d := req.InvoiceDate.AddDate(0, 0, rates.InvoiceDueDays)
			dueDate = &d
		}
	}

	invoice, err := billing.NewInvoice(
		req.InvoiceNumber,
		req.InvoiceDate,
		*dueDate,
		sale.ID,
		sale.CustomerID,
		sale.CustomerName,
		sale.SalePrice,
		*vatRate,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Issue moves a draft invoice to issued
func (s *InvoiceService) Issue(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(inv *billing.Invoice) error {
		return inv.Issue()
	})
}

// Cancel voids an invoice that has no confirmed payments
func (s *InvoiceService) Cancel(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(inv *billing.Invoice) error {
		return inv.Cancel()
	})
}

// RecordPayment applies a payment to an invoice
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(inv *billing.Invoice) error {
		_, err := inv.RecordPayment(
			req.PaymentNumber,
			req.PaymentDate,
			req.Amount,
			billing.PaymentMethod(req.Method),
			req.BankReference,
			req.Notes,
		)
		return err
	})
}

// AmendPayment corrects the amount or date of a recorded payment
func (s *InvoiceService) AmendPayment(ctx context.Context, invoiceID, paymentID uuid.UUID, req AmendPaymentRequest) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(inv *billing.Invoice) error {
		return inv.AmendPayment(paymentID, req.Amount, req.PaymentDate)
	})
}

// UnconfirmPayment withdraws a payment from the invoice balance
func (s *InvoiceService) UnconfirmPayment(ctx context.Context, invoiceID, paymentID uuid.UUID) (*InvoiceResponse, error) {
	return s.mutate(ctx, invoiceID, func(inv *billing.Invoice) error {
		return inv.UnconfirmPayment(paymentID)
	})
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByNumber retrieves an invoice by its invoice number
func (s *InvoiceService) GetByNumber(ctx context.Context, invoiceNumber string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter billing.InvoiceFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	invoices, total, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceResponses(invoices), total, nil
}

// ListOverdue retrieves issued invoices whose due date has passed
func (s *InvoiceService) ListOverdue(ctx context.Context, asOf time.Time) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindOverdue(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

func (s *InvoiceService) mutate(ctx context.Context, invoiceID uuid.UUID, op func(*billing.Invoice) error) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := op(invoice); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

func (s *InvoiceService) publishEvents(ctx context.Context, invoice *billing.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range invoice.GetDomainEvents() {
		// Event handling is async; a publish failure must not fail the
		// write that already happened.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	invoice.ClearDomainEvents()
}
