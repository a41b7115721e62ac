package fleet

import (
	"context"
	"testing"
	"time"

	"github.com/cartrade/backend/internal/domain/fleet"
	"github.com/cartrade/backend/internal/domain/procurement"
	"github.com/cartrade/backend/internal/domain/settings"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVehicleRepository is a mock implementation of VehicleRepository
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

func newVehicleService(t *testing.T) (*VehicleService, *MockVehicleRepository, *MockPurchaseRepository, *MockConfigurationRepository) {
	t.Helper()
	vehicleRepo := new(MockVehicleRepository)
	purchaseRepo := new(MockPurchaseRepository)
	configRepo := new(MockConfigurationRepository)
	service := NewVehicleService(vehicleRepo, purchaseRepo, configRepo)
	return service, vehicleRepo, purchaseRepo, configRepo
}

func testPurchase(t *testing.T) *procurement.Purchase {
	t.Helper()
	purchase, err := procurement.NewPurchase(
		"PUR-2024-001",
		time.Now().AddDate(0, -1, 0),
		uuid.New(),
		"Gulf Auto Trading FZE",
		decimal.NewFromInt(10000),
		valueobject.USD,
		decimal.NewFromFloat(135.5),
		"",
	)
	require.NoError(t, err)
	purchase.ClearDomainEvents()
	return purchase
}

func TestVehicleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the purchase when the first vehicle is attached", func(t *testing.T) {
		service, vehicleRepo, purchaseRepo, _ := newVehicleService(t)

		purchase := testPurchase(t)
		require.False(t, purchase.Locked)

		purchaseRepo.On("FindByID", ctx, purchase.ID).Return(purchase, nil)
		vehicleRepo.On("FindByVIN", ctx, "JTDKN3DU8A0123456").Return(nil, shared.ErrNotFound)
		purchaseRepo.On("Save", ctx, purchase).Return(nil)
		vehicleRepo.On("Save", ctx, mock.AnythingOfType("*fleet.Vehicle")).Return(nil)

		resp, err := service.Create(ctx, CreateVehicleRequest{
			VIN:        "JTDKN3DU8A0123456",
			Make:       "Toyota",
			Model:      "Corolla",
			Year:       2024,
			Color:      "White",
			PurchaseID: purchase.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "in_transit", resp.Status)
		assert.True(t, purchase.Locked)
		purchaseRepo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate VIN", func(t *testing.T) {
		service, vehicleRepo, purchaseRepo, _ := newVehicleService(t)

		purchase := testPurchase(t)
		existing, err := fleet.NewVehicle("JTDKN3DU8A0123456", "Toyota", "Corolla", 2024, "", "", "", purchase.ID)
		require.NoError(t, err)

		purchaseRepo.On("FindByID", ctx, purchase.ID).Return(purchase, nil)
		vehicleRepo.On("FindByVIN", ctx, "JTDKN3DU8A0123456").Return(existing, nil)

		_, err = service.Create(ctx, CreateVehicleRequest{
			VIN:        "JTDKN3DU8A0123456",
			Make:       "Toyota",
			Model:      "Corolla",
			Year:       2024,
			PurchaseID: purchase.ID,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_VIN", domainErr.Code)
	})
}

func TestVehicleService_Reserve(t *testing.T) {
	ctx := context.Background()

	availableVehicle := func(t *testing.T) *fleet.Vehicle {
		t.Helper()
		vehicle, err := fleet.NewVehicle("JTDKN3DU8A0123456", "Toyota", "Corolla", 2024, "", "", "", uuid.New())
		require.NoError(t, err)
		require.NoError(t, vehicle.ArriveAtCustoms())
		require.NoError(t, vehicle.MarkAvailable())
		vehicle.ClearDomainEvents()
		return vehicle
	}

	t.Run("defaults the hold window from configuration", func(t *testing.T) {
		service, vehicleRepo, _, configRepo := newVehicleService(t)

		vehicle := availableVehicle(t)
		vehicleRepo.On("FindByID", ctx, vehicle.ID).Return(vehicle, nil)
		configRepo.On("Get", ctx).Return(settings.NewSystemConfiguration("Atlas Motors"), nil)
		vehicleRepo.On("Save", ctx, vehicle).Return(nil)

		traderID := uuid.New()
		resp, err := service.Reserve(ctx, vehicle.ID, ReserveVehicleRequest{TraderID: traderID})

		require.NoError(t, err)
		assert.Equal(t, "reserved", resp.Status)
		require.NotNil(t, resp.ReservationExpires)
		expected := time.Now().AddDate(0, 0, 7)
		assert.WithinDuration(t, expected, *resp.ReservationExpires, time.Minute)
	})

	t.Run("honours an explicit hold window", func(t *testing.T) {
		service, vehicleRepo, _, _ := newVehicleService(t)

		vehicle := availableVehicle(t)
		vehicleRepo.On("FindByID", ctx, vehicle.ID).Return(vehicle, nil)
		vehicleRepo.On("Save", ctx, vehicle).Return(nil)

		days := 3
		resp, err := service.Reserve(ctx, vehicle.ID, ReserveVehicleRequest{TraderID: uuid.New(), Days: &days})

		require.NoError(t, err)
		require.NotNil(t, resp.ReservationExpires)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 3), *resp.ReservationExpires, time.Minute)
	})
}

func TestVehicleService_ReleaseExpired(t *testing.T) {
	ctx := context.Background()
	service, vehicleRepo, _, _ := newVehicleService(t)

	vehicle, err := fleet.NewVehicle("JTDKN3DU8A0123456", "Toyota", "Corolla", 2024, "", "", "", uuid.New())
	require.NoError(t, err)
	require.NoError(t, vehicle.ArriveAtCustoms())
	require.NoError(t, vehicle.MarkAvailable())
	require.NoError(t, vehicle.Reserve(uuid.New(), 1))
	vehicle.ClearDomainEvents()

	after := time.Now().AddDate(0, 0, 2)
	vehicleRepo.On("FindExpiredReservations", ctx, after).Return([]fleet.Vehicle{*vehicle}, nil)
	vehicleRepo.On("Save", ctx, mock.AnythingOfType("*fleet.Vehicle")).Return(nil)

	released, err := service.ReleaseExpired(ctx, after)
	require.NoError(t, err)
	assert.Equal(t, 1, released)
}
