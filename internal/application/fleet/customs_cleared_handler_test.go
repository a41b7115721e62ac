package fleet

import (
	"context"
	"testing"
	"time"

	"github.com/cartrade/backend/internal/domain/fleet"
	"github.com/cartrade/backend/internal/domain/procurement"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func clearedPurchaseEvent(t *testing.T) *procurement.CustomsClearedEvent {
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
	require.NoError(t, purchase.RecordFreight(
		procurement.FreightMethodSea,
		decimal.NewFromInt(1000),
		valueobject.USD,
		decimal.NewFromFloat(135.5),
		decimal.NewFromInt(50000),
		decimal.NewFromInt(20000),
	))
	require.NoError(t, purchase.DeclareCustoms(
		"DCL-2024-001",
		time.Now().AddDate(0, -1, 0),
		decimal.NewFromInt(25),
		decimal.NewFromInt(19),
		decimal.Zero,
	))
	require.NoError(t, purchase.ClearCustoms(time.Now().AddDate(0, 0, -1)))

	return procurement.NewCustomsClearedEvent(purchase)
}

func vehicleInStatus(t *testing.T, purchaseID uuid.UUID, status fleet.VehicleStatus) fleet.Vehicle {
	t.Helper()
	vehicle, err := fleet.NewVehicle("JTDKN3DU8A0123456", "Toyota", "Corolla", 2024, "White", "1.6L petrol", "", purchaseID)
	require.NoError(t, err)
	if status == fleet.VehicleStatusAtCustoms || status == fleet.VehicleStatusAvailable {
		require.NoError(t, vehicle.ArriveAtCustoms())
	}
	if status == fleet.VehicleStatusAvailable {
		require.NoError(t, vehicle.MarkAvailable())
	}
	vehicle.ClearDomainEvents()
	return *vehicle
}

func TestCustomsClearedHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("releases at-customs vehicles of the purchase", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepository)
		handler := NewCustomsClearedHandler(zap.NewNop(), vehicleRepo)

		event := clearedPurchaseEvent(t)
		atCustoms := vehicleInStatus(t, event.PurchaseID, fleet.VehicleStatusAtCustoms)
		inTransit := vehicleInStatus(t, event.PurchaseID, fleet.VehicleStatusInTransit)

		vehicleRepo.On("FindByPurchaseID", ctx, event.PurchaseID).Return([]fleet.Vehicle{atCustoms, inTransit}, nil)
		vehicleRepo.On("Save", ctx, mock.MatchedBy(func(v *fleet.Vehicle) bool {
			return v.Status == fleet.VehicleStatusAvailable
		})).Return(nil)

		err := handler.Handle(ctx, event)
		require.NoError(t, err)

		// only the at-customs vehicle is saved; the in-transit one waits
		vehicleRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("rejects foreign event types", func(t *testing.T) {
		vehicleRepo := new(MockVehicleRepository)
		handler := NewCustomsClearedHandler(zap.NewNop(), vehicleRepo)

		vehicle := vehicleInStatus(t, uuid.New(), fleet.VehicleStatusInTransit)
		err := handler.Handle(ctx, fleet.NewVehicleCreatedEvent(&vehicle))
		assert.Error(t, err)
	})

	t.Run("subscribes to customs clearance", func(t *testing.T) {
		handler := NewCustomsClearedHandler(zap.NewNop(), new(MockVehicleRepository))
		assert.Equal(t, []string{"CustomsCleared"}, handler.EventTypes())
	})
}
