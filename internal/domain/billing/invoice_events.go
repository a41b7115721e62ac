package billing

import (
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceCreatedEvent is raised when an invoice is drafted
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	SaleID        uuid.UUID       `json:"sale_id"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	TotalTTC      decimal.Decimal `json:"total_ttc"`
	DueDate       time.Time       `json:"due_date"`
}

// EventType returns the event type name
func (e *InvoiceCreatedEvent) EventType() string {
	return "InvoiceCreated"
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceCreated", "Invoice", inv.ID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		SaleID:          inv.SaleID,
		CustomerID:      inv.CustomerID,
		TotalTTC:        inv.TotalTTC,
		DueDate:         inv.DueDate,
	}
}

// InvoiceIssuedEvent is raised when a draft invoice is issued
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalTTC      decimal.Decimal `json:"total_ttc"`
	DueDate       time.Time       `json:"due_date"`
}

// EventType returns the event type name
func (e *InvoiceIssuedEvent) EventType() string {
	return "InvoiceIssued"
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(inv *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceIssued", "Invoice", inv.ID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		TotalTTC:        inv.TotalTTC,
		DueDate:         inv.DueDate,
	}
}

// InvoiceCancelledEvent is raised when an invoice is voided
type InvoiceCancelledEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID `json:"invoice_id"`
	InvoiceNumber string    `json:"invoice_number"`
}

// EventType returns the event type name
func (e *InvoiceCancelledEvent) EventType() string {
	return "InvoiceCancelled"
}

// NewInvoiceCancelledEvent creates a new InvoiceCancelledEvent
func NewInvoiceCancelledEvent(inv *Invoice) *InvoiceCancelledEvent {
	return &InvoiceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceCancelled", "Invoice", inv.ID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
	}
}

// PaymentRecordedEvent is raised for every payment applied to an invoice
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	PaymentNumber string          `json:"payment_number"`
	Amount        decimal.Decimal `json:"amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return "PaymentRecorded"
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(inv *Invoice, payment *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentRecorded", "Invoice", inv.ID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		PaymentID:       payment.ID,
		PaymentNumber:   payment.PaymentNumber,
		Amount:          payment.Amount,
		AmountPaid:      inv.AmountPaid,
		BalanceDue:      inv.BalanceDue,
	}
}

// InvoicePaidEvent is raised when the balance reaches zero
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalTTC      decimal.Decimal `json:"total_ttc"`
}

// EventType returns the event type name
func (e *InvoicePaidEvent) EventType() string {
	return "InvoicePaid"
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoicePaid", "Invoice", inv.ID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		TotalTTC:        inv.TotalTTC,
	}
}

// PaymentPlanCreatedEvent is raised when an installment schedule is generated
type PaymentPlanCreatedEvent struct {
	shared.BaseDomainEvent
	PlanID               uuid.UUID       `json:"plan_id"`
	InvoiceID            uuid.UUID       `json:"invoice_id"`
	RemainingAmount      decimal.Decimal `json:"remaining_amount"`
	NumberOfInstallments int             `json:"number_of_installments"`
	StartDate            time.Time       `json:"start_date"`
}

// EventType returns the event type name
func (e *PaymentPlanCreatedEvent) EventType() string {
	return "PaymentPlanCreated"
}

// NewPaymentPlanCreatedEvent creates a new PaymentPlanCreatedEvent
func NewPaymentPlanCreatedEvent(p *PaymentPlan) *PaymentPlanCreatedEvent {
	return &PaymentPlanCreatedEvent{
		BaseDomainEvent:      shared.NewBaseDomainEvent("PaymentPlanCreated", "PaymentPlan", p.ID),
		PlanID:               p.ID,
		InvoiceID:            p.InvoiceID,
		RemainingAmount:      p.RemainingAmount,
		NumberOfInstallments: p.NumberOfInstallments,
		StartDate:            p.StartDate,
	}
}

// InstallmentPaidEvent is raised when a payment is applied to an installment
type InstallmentPaidEvent struct {
	shared.BaseDomainEvent
	PlanID            uuid.UUID       `json:"plan_id"`
	InvoiceID         uuid.UUID       `json:"invoice_id"`
	InstallmentNumber int             `json:"installment_number"`
	Amount            decimal.Decimal `json:"amount"`
	BalanceDue        decimal.Decimal `json:"balance_due"`
}

// EventType returns the event type name
func (e *InstallmentPaidEvent) EventType() string {
	return "InstallmentPaid"
}

// NewInstallmentPaidEvent creates a new InstallmentPaidEvent
func NewInstallmentPaidEvent(p *PaymentPlan, inst *Installment, amount decimal.Decimal) *InstallmentPaidEvent {
	return &InstallmentPaidEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent("InstallmentPaid", "PaymentPlan", p.ID),
		PlanID:            p.ID,
		InvoiceID:         p.InvoiceID,
		InstallmentNumber: inst.InstallmentNumber,
		Amount:            amount,
		BalanceDue:        inst.BalanceDue,
	}
}
