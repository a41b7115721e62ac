package billing

import (
	"testing"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInvoice(t *testing.T) *Invoice {
	inv, err := NewInvoice(
		"INV-20240220-001",
		time.Now().AddDate(0, 0, -10),
		time.Now().AddDate(0, 0, 20),
		uuid.New(),
		uuid.New(),
		"Benali Karim",
		decimal.NewFromInt(2800000),
		decimal.NewFromInt(19),
		"",
	)
	require.NoError(t, err)
	return inv
}

func recordPayment(t *testing.T, inv *Invoice, number string, amount decimal.Decimal) *Payment {
	p, err := inv.RecordPayment(number, time.Now(), amount, PaymentMethodBankTransfer, "", "")
	require.NoError(t, err)
	return p
}

func TestNewInvoice(t *testing.T) {
	inv := createTestInvoice(t)

	// TTC 2,800,000 at 19% VAT
	assert.True(t, inv.SubtotalHT.Equal(decimal.NewFromFloat(2352941.18)), "subtotal: got %s", inv.SubtotalHT)
	assert.True(t, inv.VATAmount.Equal(decimal.NewFromFloat(447058.82)), "vat: got %s", inv.VATAmount)
	assert.True(t, inv.SubtotalHT.Add(inv.VATAmount).Equal(inv.TotalTTC), "HT + VAT must equal TTC exactly")
	assert.True(t, inv.BalanceDue.Equal(inv.TotalTTC))
	assert.Equal(t, InvoiceStatusDraft, inv.Status)
}

func TestNewInvoice_Validation(t *testing.T) {
	saleID, customerID := uuid.New(), uuid.New()
	now := time.Now()

	tests := []struct {
		name     string
		create   func() (*Invoice, error)
		wantCode string
	}{
		{"empty number", func() (*Invoice, error) {
			return NewInvoice("", now, now, saleID, customerID, "C", decimal.NewFromInt(1), decimal.NewFromInt(19), "")
		}, "INVALID_INVOICE_NUMBER"},
		{"nil sale", func() (*Invoice, error) {
			return NewInvoice("I-1", now, now, uuid.Nil, customerID, "C", decimal.NewFromInt(1), decimal.NewFromInt(19), "")
		}, "INVALID_SALE"},
		{"due before invoice date", func() (*Invoice, error) {
			return NewInvoice("I-1", now, now.AddDate(0, 0, -1), saleID, customerID, "C", decimal.NewFromInt(1), decimal.NewFromInt(19), "")
		}, "INVALID_DUE_DATE"},
		{"zero total", func() (*Invoice, error) {
			return NewInvoice("I-1", now, now, saleID, customerID, "C", decimal.Zero, decimal.NewFromInt(19), "")
		}, "INVALID_TOTAL"},
		{"vat above 100", func() (*Invoice, error) {
			return NewInvoice("I-1", now, now, saleID, customerID, "C", decimal.NewFromInt(1), decimal.NewFromInt(101), "")
		}, "INVALID_VAT_RATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.create()
			require.Error(t, err)
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestInvoice_Issue(t *testing.T) {
	inv := createTestInvoice(t)

	require.NoError(t, inv.Issue())
	assert.Equal(t, InvoiceStatusIssued, inv.Status)

	assert.Error(t, inv.Issue(), "issuing twice is rejected")
}

func TestInvoice_Cancel(t *testing.T) {
	t.Run("unpaid invoice cancels", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.Cancel())
		assert.Equal(t, InvoiceStatusCancelled, inv.Status)
	})

	t.Run("paid invoice cannot cancel", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.Issue())
		recordPayment(t, inv, "PAY-001", decimal.NewFromInt(100000))

		err := inv.Cancel()
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVOICE_HAS_PAYMENTS", domainErr.Code)
	})

	t.Run("cancelled invoice rejects payments", func(t *testing.T) {
		inv := createTestInvoice(t)
		require.NoError(t, inv.Cancel())

		_, err := inv.RecordPayment("PAY-001", time.Now(), decimal.NewFromInt(1), PaymentMethodCash, "", "")
		assert.Error(t, err)
	})
}

func TestInvoice_RecordPayment(t *testing.T) {
	inv := createTestInvoice(t)
	require.NoError(t, inv.Issue())

	recordPayment(t, inv, "PAY-20240221-001", decimal.NewFromInt(1000000))

	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, inv.BalanceDue.Equal(decimal.NewFromInt(1800000)))
	assert.Equal(t, InvoiceStatusIssued, inv.Status, "partially paid invoice stays issued")
}

func TestInvoice_RecordPayment_SettlesExactly(t *testing.T) {
	inv := createTestInvoice(t)
	require.NoError(t, inv.Issue())

	recordPayment(t, inv, "PAY-001", decimal.NewFromInt(1000000))
	recordPayment(t, inv, "PAY-002", decimal.NewFromInt(1800000))

	assert.True(t, inv.BalanceDue.IsZero())
	assert.Equal(t, InvoiceStatusPaid, inv.Status)

	events := inv.GetDomainEvents()
	var sawPaid bool
	for _, e := range events {
		if e.EventType() == "InvoicePaid" {
			sawPaid = true
		}
	}
	assert.True(t, sawPaid)
}

func TestInvoice_RecordPayment_OneCentTooMuch(t *testing.T) {
	inv := createTestInvoice(t)
	require.NoError(t, inv.Issue())

	_, err := inv.RecordPayment("PAY-001", time.Now(), inv.BalanceDue.Add(decimal.NewFromFloat(0.01)), PaymentMethodCash, "", "")
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXCEEDS_BALANCE", domainErr.Code)
	assert.True(t, inv.AmountPaid.IsZero(), "rejected payment must not mutate the invoice")
}

func TestInvoice_RecordPayment_Validation(t *testing.T) {
	inv := createTestInvoice(t)
	require.NoError(t, inv.Issue())

	_, err := inv.RecordPayment("", time.Now(), decimal.NewFromInt(1), PaymentMethodCash, "", "")
	assert.Error(t, err, "empty payment number")

	_, err = inv.RecordPayment("PAY-001", time.Now().AddDate(0, 0, 1), decimal.NewFromInt(1), PaymentMethodCash, "", "")
	assert.Error(t, err, "future date")

	_, err = inv.RecordPayment("PAY-001", time.Now(), decimal.Zero, PaymentMethodCash, "", "")
	assert.Error(t, err, "zero amount")

	_, err = inv.RecordPayment("PAY-001", time.Now(), decimal.NewFromInt(1), "crypto", "", "")
	assert.Error(t, err, "bad method")
}

func TestInvoice_AmendPayment(t *testing.T) {
	inv := createTestInvoice(t)
	require.NoError(t, inv.Issue())
	p := recordPayment(t, inv, "PAY-001", decimal.NewFromInt(2800000))
	require.Equal(t, InvoiceStatusPaid, inv.Status)

	// lowering the amount within the envelope succeeds even though the
	// naive balance check would see zero remaining
	require.NoError(t, inv.AmendPayment(p.ID, decimal.NewFromInt(2000000), time.Now()))

	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(2000000)))
	assert.True(t, inv.BalanceDue.Equal(decimal.NewFromInt(800000)))
	assert.Equal(t, InvoiceStatusIssued, inv.Status, "no longer settled after the correction")

	// raising it above the invoice total is rejected
	err := inv.AmendPayment(p.ID, decimal.NewFromInt(2800001), time.Now())
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXCEEDS_BALANCE", domainErr.Code)
}

func TestInvoice_AmendPayment_NotFound(t *testing.T) {
	inv := createTestInvoice(t)
	err := inv.AmendPayment(uuid.New(), decimal.NewFromInt(1), time.Now())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInvoice_UnconfirmPayment(t *testing.T) {
	inv := createTestInvoice(t)
	require.NoError(t, inv.Issue())
	p := recordPayment(t, inv, "PAY-001", decimal.NewFromInt(2800000))
	require.Equal(t, InvoiceStatusPaid, inv.Status)

	require.NoError(t, inv.UnconfirmPayment(p.ID))

	assert.True(t, inv.AmountPaid.IsZero())
	assert.True(t, inv.BalanceDue.Equal(inv.TotalTTC))
	assert.Equal(t, InvoiceStatusIssued, inv.Status)

	assert.Error(t, inv.UnconfirmPayment(p.ID), "already unconfirmed")
}

func TestInvoice_IsOverdue(t *testing.T) {
	inv := createTestInvoice(t)

	assert.False(t, inv.IsOverdue(time.Now()), "draft invoice is never overdue")

	require.NoError(t, inv.Issue())
	assert.False(t, inv.IsOverdue(time.Now()), "not yet past due date")

	after := time.Now().AddDate(0, 0, 25)
	assert.True(t, inv.IsOverdue(after))
	assert.Equal(t, 5, inv.DaysOverdue(after))

	recordPayment(t, inv, "PAY-001", inv.BalanceDue)
	assert.False(t, inv.IsOverdue(after), "paid invoice is not overdue")
	assert.Equal(t, 0, inv.DaysOverdue(after))
}
