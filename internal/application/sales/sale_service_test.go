package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cartrade/backend/internal/domain/fleet"
	"github.com/cartrade/backend/internal/domain/procurement"
	"github.com/cartrade/backend/internal/domain/sales"
	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSaleRepository is a mock implementation of SaleRepository
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

// MockVehicleRepository is a mock implementation of fleet.VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByVIN(ctx context.Context, vin string) (*fleet.Vehicle, error) {
	args := m.Called(ctx, vin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByPurchaseID(ctx context.Context, purchaseID uuid.UUID) ([]fleet.Vehicle, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindAll(ctx context.Context, filter fleet.VehicleFilter) ([]fleet.Vehicle, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]fleet.Vehicle), args.Get(1).(int64), args.Error(2)
}

func (m *MockVehicleRepository) FindExpiredReservations(ctx context.Context, asOf time.Time) ([]fleet.Vehicle, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Save(ctx context.Context, vehicle *fleet.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPurchaseRepository is a mock implementation of
// procurement.PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByNumber(ctx context.Context, purchaseNumber string) (*procurement.Purchase, error) {
	args := m.Called(ctx, purchaseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, filter procurement.PurchaseFilter) ([]procurement.Purchase, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]procurement.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *procurement.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
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

func newTestService(t *testing.T) (*SaleService, *MockSaleRepository, *MockVehicleRepository, *MockPurchaseRepository, *MockConfigurationRepository) {
	t.Helper()
	saleRepo := new(MockSaleRepository)
	vehicleRepo := new(MockVehicleRepository)
	purchaseRepo := new(MockPurchaseRepository)
	configRepo := new(MockConfigurationRepository)
	service := NewSaleService(saleRepo, vehicleRepo, purchaseRepo, configRepo)
	return service, saleRepo, vehicleRepo, purchaseRepo, configRepo
}

type txScopeKey struct{}

// recordingTxManager marks the transaction context and records whether
// the scope committed or rolled back
type recordingTxManager struct {
	committed  bool
	rolledBack bool
}

func (m *recordingTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(context.WithValue(ctx, txScopeKey{}, true)); err != nil {
		m.rolledBack = true
		return err
	}
	m.committed = true
	return nil
}

// inTxScope matches only contexts derived from the transaction scope
func inTxScope() interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		inScope, _ := ctx.Value(txScopeKey{}).(bool)
		return inScope
	})
}

// clearedPurchase builds a purchase with freight recorded and customs
// cleared so the landed cost covers the whole chain
func clearedPurchase(t *testing.T) *procurement.Purchase {
	t.Helper()

	purchase, err := procurement.NewPurchase(
		"PUR-2024-001",
		time.Now().AddDate(0, -2, 0),
		uuid.New(),
		"Gulf Auto Trading FZE",
		decimal.NewFromInt(10000),
		valueobject.USD,
		decimal.NewFromFloat(135.5),
		"",
	)
	require.NoError(t, err)

	err = purchase.RecordFreight(
		procurement.FreightMethodSea,
		decimal.NewFromInt(1000),
		valueobject.USD,
		decimal.NewFromFloat(135.5),
		decimal.NewFromInt(50000),
		decimal.NewFromInt(20000),
	)
	require.NoError(t, err)

	err = purchase.DeclareCustoms(
		"DCL-2024-001",
		time.Now().AddDate(0, -1, 0),
		decimal.NewFromInt(25),
		decimal.NewFromInt(19),
		decimal.Zero,
	)
	require.NoError(t, err)
	require.NoError(t, purchase.ClearCustoms(time.Now().AddDate(0, 0, -10)))
	purchase.ClearDomainEvents()

	return purchase
}

func availableVehicle(t *testing.T, purchaseID uuid.UUID) *fleet.Vehicle {
	t.Helper()
	vehicle, err := fleet.NewVehicle("JTDKN3DU8A0123456", "Toyota", "Corolla", 2024, "White", "1.6L petrol", "", purchaseID)
	require.NoError(t, err)
	require.NoError(t, vehicle.ArriveAtCustoms())
	require.NoError(t, vehicle.MarkAvailable())
	vehicle.ClearDomainEvents()
	return vehicle
}

func TestSaleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots landed cost and marks vehicle sold", func(t *testing.T) {
		service, saleRepo, vehicleRepo, purchaseRepo, _ := newTestService(t)

		purchase := clearedPurchase(t)
		vehicle := availableVehicle(t, purchase.ID)

		vehicleRepo.On("FindByID", ctx, vehicle.ID).Return(vehicle, nil)
		purchaseRepo.On("FindByID", ctx, purchase.ID).Return(purchase, nil)
		saleRepo.On("Save", ctx, mock.AnythingOfType("*sales.Sale")).Return(nil)
		vehicleRepo.On("Save", ctx, vehicle).Return(nil)

		rate := decimal.NewFromInt(12)
		resp, err := service.Create(ctx, CreateSaleRequest{
			SaleNumber:     "SAL-2024-001",
			SaleDate:       time.Now().AddDate(0, 0, -1),
			VehicleID:      vehicle.ID,
			CustomerID:     uuid.New(),
			CustomerName:   "Karim Benali",
			TraderID:       uuid.New(),
			SalePrice:      decimal.NewFromInt(2800000),
			PaymentMethod:  "cash",
			DownPayment:    decimal.Zero,
			CommissionRate: &rate,
		})

		require.NoError(t, err)
		assert.Equal(t, "2321243.75", resp.LandedCost.StringFixed(2))
		assert.Equal(t, "478756.25", resp.Margin.StringFixed(2))
		assert.Equal(t, "57450.75", resp.CommissionAmount.StringFixed(2))
		assert.Equal(t, fleet.VehicleStatusSold, vehicle.Status)
		saleRepo.AssertExpectations(t)
		vehicleRepo.AssertExpectations(t)
	})

	t.Run("defaults the commission rate from configuration", func(t *testing.T) {
		service, saleRepo, vehicleRepo, purchaseRepo, configRepo := newTestService(t)

		purchase := clearedPurchase(t)
		vehicle := availableVehicle(t, purchase.ID)

		vehicleRepo.On("FindByID", ctx, vehicle.ID).Return(vehicle, nil)
		purchaseRepo.On("FindByID", ctx, purchase.ID).Return(purchase, nil)
		configRepo.On("Get", ctx).Return(settings.NewSystemConfiguration("Atlas Motors"), nil)
		saleRepo.On("Save", ctx, mock.AnythingOfType("*sales.Sale")).Return(nil)
		vehicleRepo.On("Save", ctx, vehicle).Return(nil)

		resp, err := service.Create(ctx, CreateSaleRequest{
			SaleNumber:    "SAL-2024-002",
			SaleDate:      time.Now().AddDate(0, 0, -1),
			VehicleID:     vehicle.ID,
			CustomerID:    uuid.New(),
			CustomerName:  "Karim Benali",
			TraderID:      uuid.New(),
			SalePrice:     decimal.NewFromInt(2800000),
			PaymentMethod: "cash",
		})

		require.NoError(t, err)
		assert.Equal(t, "10.00", resp.CommissionRate.StringFixed(2))
		configRepo.AssertExpectations(t)
	})

	t.Run("rejects a vehicle that cannot be sold", func(t *testing.T) {
		service, _, vehicleRepo, _, _ := newTestService(t)

		purchase := clearedPurchase(t)
		vehicle, err := fleet.NewVehicle("JTDKN3DU8A0654321", "Toyota", "Yaris", 2024, "", "", "", purchase.ID)
		require.NoError(t, err)

		vehicleRepo.On("FindByID", ctx, vehicle.ID).Return(vehicle, nil)

		rate := decimal.NewFromInt(10)
		_, err = service.Create(ctx, CreateSaleRequest{
			SaleNumber:     "SAL-2024-003",
			SaleDate:       time.Now(),
			VehicleID:      vehicle.ID,
			CustomerID:     uuid.New(),
			CustomerName:   "Karim Benali",
			TraderID:       uuid.New(),
			SalePrice:      decimal.NewFromInt(2800000),
			PaymentMethod:  "cash",
			CommissionRate: &rate,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VEHICLE_NOT_SELLABLE", domainErr.Code)
	})

	t.Run("propagates vehicle lookup errors", func(t *testing.T) {
		service, _, vehicleRepo, _, _ := newTestService(t)

		vehicleID := uuid.New()
		vehicleRepo.On("FindByID", ctx, vehicleID).Return(nil, errors.New("not found"))

		_, err := service.Create(ctx, CreateSaleRequest{
			SaleNumber:    "SAL-2024-004",
			SaleDate:      time.Now(),
			VehicleID:     vehicleID,
			CustomerID:    uuid.New(),
			CustomerName:  "Karim Benali",
			TraderID:      uuid.New(),
			SalePrice:     decimal.NewFromInt(2800000),
			PaymentMethod: "cash",
		})
		assert.Error(t, err)
	})

	t.Run("persists sale and vehicle in one transaction", func(t *testing.T) {
		service, saleRepo, vehicleRepo, purchaseRepo, _ := newTestService(t)
		tx := &recordingTxManager{}
		service.WithTransactionManager(tx)

		purchase := clearedPurchase(t)
		vehicle := availableVehicle(t, purchase.ID)

		vehicleRepo.On("FindByID", ctx, vehicle.ID).Return(vehicle, nil)
		purchaseRepo.On("FindByID", ctx, purchase.ID).Return(purchase, nil)
		// Both writes must go through the transaction context; a save on
		// the plain context would not match and fail the test.
		saleRepo.On("Save", inTxScope(), mock.AnythingOfType("*sales.Sale")).Return(nil)
		vehicleRepo.On("Save", inTxScope(), vehicle).Return(nil)

		rate := decimal.NewFromInt(12)
		_, err := service.Create(ctx, CreateSaleRequest{
			SaleNumber:     "SAL-2024-005",
			SaleDate:       time.Now().AddDate(0, 0, -1),
			VehicleID:      vehicle.ID,
			CustomerID:     uuid.New(),
			CustomerName:   "Karim Benali",
			TraderID:       uuid.New(),
			SalePrice:      decimal.NewFromInt(2800000),
			PaymentMethod:  "cash",
			DownPayment:    decimal.Zero,
			CommissionRate: &rate,
		})

		require.NoError(t, err)
		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)
		saleRepo.AssertExpectations(t)
		vehicleRepo.AssertExpectations(t)
	})

	t.Run("rolls back the sale when the vehicle write fails", func(t *testing.T) {
		service, saleRepo, vehicleRepo, purchaseRepo, _ := newTestService(t)
		tx := &recordingTxManager{}
		service.WithTransactionManager(tx)

		purchase := clearedPurchase(t)
		vehicle := availableVehicle(t, purchase.ID)

		vehicleRepo.On("FindByID", ctx, vehicle.ID).Return(vehicle, nil)
		purchaseRepo.On("FindByID", ctx, purchase.ID).Return(purchase, nil)
		saleRepo.On("Save", inTxScope(), mock.AnythingOfType("*sales.Sale")).Return(nil)
		vehicleRepo.On("Save", inTxScope(), vehicle).Return(assert.AnError)

		rate := decimal.NewFromInt(12)
		_, err := service.Create(ctx, CreateSaleRequest{
			SaleNumber:     "SAL-2024-006",
			SaleDate:       time.Now().AddDate(0, 0, -1),
			VehicleID:      vehicle.ID,
			CustomerID:     uuid.New(),
			CustomerName:   "Karim Benali",
			TraderID:       uuid.New(),
			SalePrice:      decimal.NewFromInt(2800000),
			PaymentMethod:  "cash",
			DownPayment:    decimal.Zero,
			CommissionRate: &rate,
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.True(t, tx.rolledBack)
		assert.False(t, tx.committed)
	})
}

func TestSaleService_Finalize(t *testing.T) {
	ctx := context.Background()

	t.Run("finalizes a draft sale", func(t *testing.T) {
		service, saleRepo, _, _, _ := newTestService(t)

		sale, err := sales.NewSale(
			"SAL-2024-010",
			time.Now().AddDate(0, 0, -1),
			uuid.New(), uuid.New(), "Karim Benali", uuid.New(),
			decimal.NewFromInt(2800000),
			sales.PaymentMethodCash,
			decimal.Zero,
			decimal.NewFromInt(10),
			decimal.NewFromInt(2321244),
			"",
		)
		require.NoError(t, err)
		sale.ClearDomainEvents()

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
		saleRepo.On("Save", ctx, sale).Return(nil)

		resp, err := service.Finalize(ctx, sale.ID)
		require.NoError(t, err)
		assert.True(t, resp.IsFinalized)
	})

	t.Run("rejects finalizing twice", func(t *testing.T) {
		service, saleRepo, _, _, _ := newTestService(t)

		sale, err := sales.NewSale(
			"SAL-2024-011",
			time.Now().AddDate(0, 0, -1),
			uuid.New(), uuid.New(), "Karim Benali", uuid.New(),
			decimal.NewFromInt(2800000),
			sales.PaymentMethodCash,
			decimal.Zero,
			decimal.NewFromInt(10),
			decimal.NewFromInt(2321244),
			"",
		)
		require.NoError(t, err)
		require.NoError(t, sale.Finalize())
		sale.ClearDomainEvents()

		saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)

		_, err = service.Finalize(ctx, sale.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_FINALIZED", domainErr.Code)
	})
}

func TestSaleService_UpdateTerms(t *testing.T) {
	ctx := context.Background()
	service, saleRepo, _, _, _ := newTestService(t)

	sale, err := sales.NewSale(
		"SAL-2024-020",
		time.Now().AddDate(0, 0, -1),
		uuid.New(), uuid.New(), "Karim Benali", uuid.New(),
		decimal.NewFromInt(2800000),
		sales.PaymentMethodCash,
		decimal.Zero,
		decimal.NewFromInt(12),
		decimal.RequireFromString("2321243.75"),
		"",
	)
	require.NoError(t, err)
	sale.ClearDomainEvents()

	saleRepo.On("FindByID", ctx, sale.ID).Return(sale, nil)
	saleRepo.On("Save", ctx, sale).Return(nil)

	resp, err := service.UpdateTerms(ctx, sale.ID, UpdateSaleTermsRequest{
		SalePrice:      decimal.NewFromInt(2900000),
		DownPayment:    decimal.NewFromInt(500000),
		CommissionRate: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "578756.25", resp.Margin.StringFixed(2))
	assert.Equal(t, "57875.63", resp.CommissionAmount.StringFixed(2))
	assert.Equal(t, "2400000.00", resp.RemainingBalance.StringFixed(2))
}
