package billing

import (
	"fmt"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment against an invoice was made
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCheck, PaymentMethodCard, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// Payment is a record of money received against an invoice. Payments live
// inside the invoice aggregate and are confirmed by default.
type Payment struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	PaymentNumber string          `json:"payment_number"`
	PaymentDate   time.Time       `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	BankReference string          `json:"bank_reference"`
	Notes         string          `json:"notes"`
	IsConfirmed   bool            `json:"is_confirmed"`
	CreatedAt     time.Time       `json:"created_at"`
}

func newPayment(
	invoiceID uuid.UUID,
	paymentNumber string,
	paymentDate time.Time,
	amount decimal.Decimal,
	method PaymentMethod,
	bankReference string,
	notes string,
) (*Payment, error) {
	if paymentNumber == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_NUMBER", "Payment number cannot be empty")
	}
	if paymentDate.After(time.Now()) {
		return nil, shared.NewDomainError("INVALID_PAYMENT_DATE", "Payment date cannot be in the future")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "Payment amount must be greater than 0")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Invalid payment method: %s", method))
	}

	return &Payment{
		ID:            uuid.New(),
		InvoiceID:     invoiceID,
		PaymentNumber: paymentNumber,
		PaymentDate:   paymentDate,
		Amount:        amount,
		Method:        method,
		BankReference: bankReference,
		Notes:         notes,
		IsConfirmed:   true,
		CreatedAt:     time.Now(),
	}, nil
}
