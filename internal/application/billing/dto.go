package billing

import (
	"time"

	"github.com/cartrade/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest represents a request to invoice a sale
type CreateInvoiceRequest struct {
	InvoiceNumber string           `json:"invoice_number" binding:"required,min=1,max=50"`
	InvoiceDate   time.Time        `json:"invoice_date" binding:"required"`
	DueDate       *time.Time       `json:"due_date"` // invoice date + configured term when omitted
	SaleID        uuid.UUID        `json:"sale_id" binding:"required"`
	VATRate       *decimal.Decimal `json:"vat_rate"` // system default when omitted
	Notes         string           `json:"notes"`
}

// RecordPaymentRequest represents a payment against an invoice
type RecordPaymentRequest struct {
	PaymentNumber string          `json:"payment_number" binding:"required,min=1,max=50"`
	PaymentDate   time.Time       `json:"payment_date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Method        string          `json:"method" binding:"required,oneof=cash bank_transfer check card other"`
	BankReference string          `json:"bank_reference"`
	Notes         string          `json:"notes"`
}

// AmendPaymentRequest represents a correction to a recorded payment
type AmendPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"payment_date" binding:"required"`
}

// CreatePaymentPlanRequest represents a request to schedule installments
// for an invoice balance
type CreatePaymentPlanRequest struct {
	InvoiceID            uuid.UUID       `json:"invoice_id" binding:"required"`
	DownPayment          decimal.Decimal `json:"down_payment"`
	NumberOfInstallments int             `json:"number_of_installments" binding:"required,min=1,max=60"`
	StartDate            time.Time       `json:"start_date" binding:"required"`
	Notes                string          `json:"notes"`
}

// RecordInstallmentRequest represents a payment against one installment
type RecordInstallmentRequest struct {
	InstallmentNumber int             `json:"installment_number" binding:"required,min=1"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate       time.Time       `json:"payment_date" binding:"required"`
}

// PaymentResponse is the API representation of an invoice payment
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	PaymentNumber string          `json:"payment_number"`
	PaymentDate   time.Time       `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	BankReference string          `json:"bank_reference"`
	Notes         string          `json:"notes"`
	IsConfirmed   bool            `json:"is_confirmed"`
}

// InvoiceResponse is the API representation of an invoice
type InvoiceResponse struct {
	ID            uuid.UUID         `json:"id"`
	InvoiceNumber string            `json:"invoice_number"`
	InvoiceDate   time.Time         `json:"invoice_date"`
	DueDate       time.Time         `json:"due_date"`
	SaleID        uuid.UUID         `json:"sale_id"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	CustomerName  string            `json:"customer_name"`
	SubtotalHT    decimal.Decimal   `json:"subtotal_ht"`
	VATRate       decimal.Decimal   `json:"vat_rate"`
	VATAmount     decimal.Decimal   `json:"vat_amount"`
	TotalTTC      decimal.Decimal   `json:"total_ttc"`
	AmountPaid    decimal.Decimal   `json:"amount_paid"`
	BalanceDue    decimal.Decimal   `json:"balance_due"`
	Status        string            `json:"status"`
	IsOverdue     bool              `json:"is_overdue"`
	Notes         string            `json:"notes"`
	Payments      []PaymentResponse `json:"payments"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// InstallmentResponse is the API representation of one installment
type InstallmentResponse struct {
	ID                uuid.UUID       `json:"id"`
	InstallmentNumber int             `json:"installment_number"`
	DueDate           time.Time       `json:"due_date"`
	Amount            decimal.Decimal `json:"amount"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	BalanceDue        decimal.Decimal `json:"balance_due"`
	Status            string          `json:"status"`
	PaymentDate       *time.Time      `json:"payment_date,omitempty"`
}

// PaymentPlanResponse is the API representation of a payment plan
type PaymentPlanResponse struct {
	ID                   uuid.UUID             `json:"id"`
	InvoiceID            uuid.UUID             `json:"invoice_id"`
	TotalAmount          decimal.Decimal       `json:"total_amount"`
	DownPayment          decimal.Decimal       `json:"down_payment"`
	RemainingAmount      decimal.Decimal       `json:"remaining_amount"`
	NumberOfInstallments int                   `json:"number_of_installments"`
	InstallmentAmount    decimal.Decimal       `json:"installment_amount"`
	StartDate            time.Time             `json:"start_date"`
	Status               string                `json:"status"`
	OutstandingBalance   decimal.Decimal       `json:"outstanding_balance"`
	Notes                string                `json:"notes"`
	Installments         []InstallmentResponse `json:"installments"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// ToPaymentResponse converts a payment entity
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		PaymentNumber: p.PaymentNumber,
		PaymentDate:   p.PaymentDate,
		Amount:        p.Amount,
		Method:        p.Method.String(),
		BankReference: p.BankReference,
		Notes:         p.Notes,
		IsConfirmed:   p.IsConfirmed,
	}
}

// ToInvoiceResponse converts an invoice aggregate to its API representation
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	payments := make([]PaymentResponse, len(inv.Payments))
	for i := range inv.Payments {
		payments[i] = ToPaymentResponse(&inv.Payments[i])
	}

	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		SaleID:        inv.SaleID,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		SubtotalHT:    inv.SubtotalHT,
		VATRate:       inv.VATRate,
		VATAmount:     inv.VATAmount,
		TotalTTC:      inv.TotalTTC,
		AmountPaid:    inv.AmountPaid,
		BalanceDue:    inv.BalanceDue,
		Status:        inv.Status.String(),
		IsOverdue:     inv.IsOverdue(time.Now()),
		Notes:         inv.Notes,
		Payments:      payments,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// ToPaymentPlanResponse converts a payment plan aggregate to its API
// representation
func ToPaymentPlanResponse(plan *billing.PaymentPlan) PaymentPlanResponse {
	now := time.Now()
	installments := make([]InstallmentResponse, len(plan.Installments))
	for i := range plan.Installments {
		inst := &plan.Installments[i]
		installments[i] = InstallmentResponse{
			ID:                inst.ID,
			InstallmentNumber: inst.InstallmentNumber,
			DueDate:           inst.DueDate,
			Amount:            inst.Amount,
			AmountPaid:        inst.AmountPaid,
			BalanceDue:        inst.BalanceDue,
			Status:            string(inst.Status(now)),
			PaymentDate:       inst.PaymentDate,
		}
	}

	return PaymentPlanResponse{
		ID:                   plan.ID,
		InvoiceID:            plan.InvoiceID,
		TotalAmount:          plan.TotalAmount,
		DownPayment:          plan.DownPayment,
		RemainingAmount:      plan.RemainingAmount,
		NumberOfInstallments: plan.NumberOfInstallments,
		InstallmentAmount:    plan.InstallmentAmount,
		StartDate:            plan.StartDate,
		Status:               plan.Status.String(),
		OutstandingBalance:   plan.OutstandingBalance(),
		Notes:                plan.Notes,
		Installments:         installments,
		CreatedAt:            plan.CreatedAt,
		UpdatedAt:            plan.UpdatedAt,
	}
}

// ToPaymentPlanResponses converts a slice of payment plans
func ToPaymentPlanResponses(plans []billing.PaymentPlan) []PaymentPlanResponse {
	responses := make([]PaymentPlanResponse, len(plans))
	for i := range plans {
		responses[i] = ToPaymentPlanResponse(&plans[i])
	}
	return responses
}
