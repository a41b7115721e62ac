package billing

import (
	"context"
	"testing"
	"time"

	"github.com/cartrade/backend/internal/domain/billing"
	"github.com/cartrade/backend/internal/domain/sales"
	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]billing.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]billing.Invoice, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of sales.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByNumber(ctx context.Context, saleNumber string) (*sales.Sale, error) {
	args := m.Called(ctx, saleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByVehicleID(ctx context.Context, vehicleID uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter sales.SaleFilter) ([]sales.Sale, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]sales.Sale), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaleRepository) FindFinalizedByTraderAndPeriod(ctx context.Context, traderID uuid.UUID, year int, month time.Month) ([]sales.Sale, error) {
	args := m.Called(ctx, traderID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindTraderIDsWithSalesInPeriod(ctx context.Context, year int, month time.Month) ([]uuid.UUID, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockConfigurationRepository is a mock implementation of
// settings.ConfigurationRepository
type MockConfigurationRepository struct {
	mock.Mock
}

func (m *MockConfigurationRepository) Get(ctx context.Context) (*settings.SystemConfiguration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.SystemConfiguration), args.Error(1)
}

func (m *MockConfigurationRepository) Save(ctx context.Context, config *settings.SystemConfiguration) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func newInvoiceService(t *testing.T) (*InvoiceService, *MockInvoiceRepository, *MockSaleRepository, *MockConfigurationRepository) {
	t.Helper()
	invoiceRepo := new(MockInvoiceRepository)
	saleRepo := new(MockSaleRepository)
	configRepo := new(MockConfigurationRepository)
	service := NewInvoiceService(invoiceRepo, saleRepo, configRepo)
	return service, invoiceRepo, saleRepo, configRepo
}

func testSale(t *testing.T) *sales.Sale {
	t.Helper()
	sale, err := sales.NewSale(
		"SAL-2024-001",
		time.Now().AddDate(0, 0, -5),
		uuid.New(), uuid.New(), "Karim Benali", uuid.New(),
		decimal.NewFromInt(2800000),
		sales.PaymentMethodCash,
		decimal.Zero,
		decimal.NewFromInt(10),
		decimal.RequireFromString("2321243.75"),
		"",
	)
	require.NoError(t, err)
	require.NoError(t, sale.Finalize())
	sale.ClearDomainEvents()
	return sale
}

func issuedInvoice(t *testing.T) *billing.Invoice {
	t.Helper()
	invoice, err := billing.NewInvoice(
		"INV-2024-001",
		time.Now().AddDate(0, 0, -10),
		time.Now().AddDate(0, 0, 20),
		uuid.New(), uuid.New(), "Karim Benali",
		decimal.NewFromInt(2800000),
		decimal.NewFromInt(19),
		"",
	)
	require.NoError(t, err)
	require.NoError(t, invoice.Issue())
	invoice.ClearDomainEvents()
	return invoice
}

func TestInvoiceService_CreateForSale(t *testing.T) {
	ctx := context.Background()

	t.Run("derives the tax split and defaults from configuration", func(t *testing.T) {
		service, invoiceRepo, saleRepo, configRepo := newInvoiceService(t)

		sale := testSale(t)
		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		invoiceRepo.On("FindBySaleID", ctx, sale.ID).Return(nil, shared.ErrNotFound)
		configRepo.On("Get", ctx).Return(settings.NewSystemConfiguration("Atlas Motors"), nil)
		invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)

		invoiceDate := time.Now().AddDate(0, 0, -1)
		resp, err := service.CreateForSale(ctx, CreateInvoiceRequest{
			InvoiceNumber: "INV-2024-010",
			InvoiceDate:   invoiceDate,
			SaleID:        sale.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "2352941.18", resp.SubtotalHT.StringFixed(2))
		assert.Equal(t, "447058.82", resp.VATAmount.StringFixed(2))
		assert.Equal(t, "2800000.00", resp.TotalTTC.StringFixed(2))
		assert.Equal(t, invoiceDate.AddDate(0, 0, 30).Unix(), resp.DueDate.Unix())
		assert.Equal(t, "draft", resp.Status)
	})

	t.Run("rejects invoicing a sale twice", func(t *testing.T) {
		service, invoiceRepo, saleRepo, _ := newInvoiceService(t)

		sale := testSale(t)
		existing := issuedInvoice(t)
		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		invoiceRepo.On("FindBySaleID", ctx, sale.ID).Return(existing, nil)

		_, err := service.CreateForSale(ctx, CreateInvoiceRequest{
			InvoiceNumber: "INV-2024-011",
			InvoiceDate:   time.Now(),
			SaleID:        sale.ID,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SALE_ALREADY_INVOICED", domainErr.Code)
	})
}

func TestInvoiceService_RecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("settles the invoice when the balance is paid in full", func(t *testing.T) {
		service, invoiceRepo, _, _ := newInvoiceService(t)

		invoice := issuedInvoice(t)
		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
		invoiceRepo.On("Save", ctx, invoice).Return(nil)

		resp, err := service.RecordPayment(ctx, invoice.ID, RecordPaymentRequest{
			PaymentNumber: "PAY-2024-001",
			PaymentDate:   time.Now().AddDate(0, 0, -1),
			Amount:        decimal.NewFromInt(2800000),
			Method:        "bank_transfer",
			BankReference: "VIR-889201",
		})

		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
		assert.Equal(t, "0.00", resp.BalanceDue.StringFixed(2))
		require.Len(t, resp.Payments, 1)
	})

	t.Run("rejects a payment exceeding the balance", func(t *testing.T) {
		service, invoiceRepo, _, _ := newInvoiceService(t)

		invoice := issuedInvoice(t)
		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)

		_, err := service.RecordPayment(ctx, invoice.ID, RecordPaymentRequest{
			PaymentNumber: "PAY-2024-002",
			PaymentDate:   time.Now(),
			Amount:        decimal.RequireFromString("2800000.01"),
			Method:        "cash",
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCEEDS_BALANCE", domainErr.Code)
	})

	t.Run("partial payment keeps the invoice issued", func(t *testing.T) {
		service, invoiceRepo, _, _ := newInvoiceService(t)

		invoice := issuedInvoice(t)
		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
		invoiceRepo.On("Save", ctx, invoice).Return(nil)

		resp, err := service.RecordPayment(ctx, invoice.ID, RecordPaymentRequest{
			PaymentNumber: "PAY-2024-003",
			PaymentDate:   time.Now().AddDate(0, 0, -1),
			Amount:        decimal.NewFromInt(1000000),
			Method:        "cash",
		})

		require.NoError(t, err)
		assert.Equal(t, "issued", resp.Status)
		assert.Equal(t, "1800000.00", resp.BalanceDue.StringFixed(2))
	})
}

func TestInvoiceService_Cancel(t *testing.T) {
	ctx := context.Background()
	service, invoiceRepo, _, _ := newInvoiceService(t)

	invoice := issuedInvoice(t)
	_, err := invoice.RecordPayment("PAY-2024-004", time.Now().AddDate(0, 0, -1), decimal.NewFromInt(500000), billing.PaymentMethodCash, "", "")
	require.NoError(t, err)
	invoice.ClearDomainEvents()

	invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)

	_, err = service.Cancel(ctx, invoice.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVOICE_HAS_PAYMENTS", domainErr.Code)
}
