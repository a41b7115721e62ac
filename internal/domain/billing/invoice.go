package billing

import (
	"fmt"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the invoice can no longer accept payments
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusCancelled
}

// Invoice represents a customer invoice for a vehicle sale. It is the
// aggregate root for its payment records: every payment mutation goes
// through the invoice so the running balance and status stay consistent.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string
	InvoiceDate   time.Time
	DueDate       time.Time
	SaleID        uuid.UUID
	CustomerID    uuid.UUID
	CustomerName  string
	SubtotalHT    decimal.Decimal // total excluding VAT
	VATRate       decimal.Decimal
	VATAmount     decimal.Decimal
	TotalTTC      decimal.Decimal // total including VAT
	AmountPaid    decimal.Decimal
	BalanceDue    decimal.Decimal
	Status        InvoiceStatus
	Notes         string
	Payments      []Payment
}

// NewInvoice creates a new draft invoice. The total is VAT inclusive; the
// subtotal and VAT amount are derived from it.
func NewInvoice(
	invoiceNumber string,
	invoiceDate time.Time,
	dueDate time.Time,
	saleID uuid.UUID,
	customerID uuid.UUID,
	customerName string,
	totalTTC decimal.Decimal,
	vatRate decimal.Decimal,
	notes string,
) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if dueDate.Before(invoiceDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before the invoice date")
	}
	if !totalTTC.IsPositive() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Invoice total must be greater than 0")
	}
	if !shared.ValidRate(vatRate) {
		return nil, shared.NewDomainError("INVALID_VAT_RATE", "VAT rate must be between 0 and 100")
	}

	subtotal := totalTTC.Div(decimal.NewFromInt(1).Add(vatRate.Div(decimal.NewFromInt(100)))).Round(2)

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		InvoiceDate:       invoiceDate,
		DueDate:           dueDate,
		SaleID:            saleID,
		CustomerID:        customerID,
		CustomerName:      customerName,
		SubtotalHT:        subtotal,
		VATRate:           vatRate.Round(2),
		VATAmount:         totalTTC.Sub(subtotal),
		TotalTTC:          totalTTC,
		AmountPaid:        decimal.Zero,
		BalanceDue:        totalTTC,
		Status:            InvoiceStatusDraft,
		Notes:             notes,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// Issue moves a draft invoice to issued
func (inv *Invoice) Issue() error {
	if inv.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", fmt.Sprintf("Invoice %s cannot be issued in status %s", inv.InvoiceNumber, inv.Status))
	}

	inv.Status = InvoiceStatusIssued
	inv.Touch()
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceIssuedEvent(inv))

	return nil
}

// Cancel voids the invoice. Only allowed while nothing has been paid.
func (inv *Invoice) Cancel() error {
	if inv.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", fmt.Sprintf("Invoice %s is already cancelled", inv.InvoiceNumber))
	}
	if inv.AmountPaid.IsPositive() {
		return shared.NewDomainError("INVOICE_HAS_PAYMENTS", fmt.Sprintf("Invoice %s has recorded payments and cannot be cancelled", inv.InvoiceNumber))
	}

	inv.Status = InvoiceStatusCancelled
	inv.Touch()
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceCancelledEvent(inv))

	return nil
}

// RecordPayment appends a confirmed payment and recomputes the balance.
// The payment amount may not exceed the current outstanding balance; a
// payment for exactly the balance settles the invoice.
func (inv *Invoice) RecordPayment(
	paymentNumber string,
	paymentDate time.Time,
	amount decimal.Decimal,
	method PaymentMethod,
	bankReference string,
	notes string,
) (*Payment, error) {
	if inv.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVOICE_CANCELLED", fmt.Sprintf("Invoice %s is cancelled", inv.InvoiceNumber))
	}

	payment, err := newPayment(inv.ID, paymentNumber, paymentDate, amount, method, bankReference, notes)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(inv.BalanceDue) {
		return nil, shared.NewDomainError("EXCEEDS_BALANCE", fmt.Sprintf("Payment of %s exceeds the outstanding balance of %s", amount.StringFixed(2), inv.BalanceDue.StringFixed(2)))
	}

	inv.Payments = append(inv.Payments, *payment)
	inv.recalculateBalance()
	inv.Touch()
	inv.IncrementVersion()
	inv.AddDomainEvent(NewPaymentRecordedEvent(inv, payment))
	if inv.Status == InvoiceStatusPaid {
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	}

	return payment, nil
}

// AmendPayment corrects the amount and date of an existing payment. The
// new amount is validated against the balance with the payment's own prior
// amount added back, so corrections within the existing envelope pass.
func (inv *Invoice) AmendPayment(paymentID uuid.UUID, amount decimal.Decimal, paymentDate time.Time) error {
	if inv.Status.IsTerminal() {
		return shared.NewDomainError("INVOICE_CANCELLED", fmt.Sprintf("Invoice %s is cancelled", inv.InvoiceNumber))
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount must be greater than 0")
	}
	if paymentDate.After(time.Now()) {
		return shared.NewDomainError("INVALID_PAYMENT_DATE", "Payment date cannot be in the future")
	}

	idx := inv.paymentIndex(paymentID)
	if idx < 0 {
		return shared.ErrNotFound
	}

	available := inv.BalanceDue
	if inv.Payments[idx].IsConfirmed {
		available = available.Add(inv.Payments[idx].Amount)
	}
	if amount.GreaterThan(available) {
		return shared.NewDomainError("EXCEEDS_BALANCE", fmt.Sprintf("Payment of %s exceeds the outstanding balance of %s", amount.StringFixed(2), available.StringFixed(2)))
	}

	inv.Payments[idx].Amount = amount
	inv.Payments[idx].PaymentDate = paymentDate
	inv.recalculateBalance()
	inv.Touch()
	inv.IncrementVersion()

	return nil
}

// UnconfirmPayment drops a payment out of the confirmed set, for example
// when a check bounces. The balance is recomputed without it.
func (inv *Invoice) UnconfirmPayment(paymentID uuid.UUID) error {
	idx := inv.paymentIndex(paymentID)
	if idx < 0 {
		return shared.ErrNotFound
	}
	if !inv.Payments[idx].IsConfirmed {
		return shared.NewDomainError("PAYMENT_NOT_CONFIRMED", "Payment is already unconfirmed")
	}

	inv.Payments[idx].IsConfirmed = false
	inv.recalculateBalance()
	inv.Touch()
	inv.IncrementVersion()

	return nil
}

// recalculateBalance recomputes amount paid as the sum of confirmed
// payments and re-derives balance and status.
func (inv *Invoice) recalculateBalance() {
	total := decimal.Zero
	for i := range inv.Payments {
		if inv.Payments[i].IsConfirmed {
			total = total.Add(inv.Payments[i].Amount)
		}
	}

	inv.AmountPaid = total
	inv.BalanceDue = inv.TotalTTC.Sub(total)

	switch {
	case inv.BalanceDue.LessThanOrEqual(decimal.Zero):
		inv.Status = InvoiceStatusPaid
	case inv.AmountPaid.IsPositive():
		inv.Status = InvoiceStatusIssued
	case inv.Status == InvoiceStatusPaid:
		// all payments withdrawn, fall back to issued
		inv.Status = InvoiceStatusIssued
	}
}

func (inv *Invoice) paymentIndex(paymentID uuid.UUID) int {
	for i := range inv.Payments {
		if inv.Payments[i].ID == paymentID {
			return i
		}
	}
	return -1
}

// IsOverdue reports whether the invoice is issued, past due, and still
// carries a balance
func (inv *Invoice) IsOverdue(asOf time.Time) bool {
	return inv.Status == InvoiceStatusIssued && asOf.After(inv.DueDate) && inv.BalanceDue.IsPositive()
}

// DaysOverdue returns how many days past due the invoice is, zero when
// not overdue
func (inv *Invoice) DaysOverdue(asOf time.Time) int {
	if !inv.IsOverdue(asOf) {
		return 0
	}
	return int(asOf.Sub(inv.DueDate).Hours() / 24)
}
