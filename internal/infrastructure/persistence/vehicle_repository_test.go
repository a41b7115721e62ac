package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cartrade/backend/internal/domain/fleet"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM DB backed by a mocked SQL connection
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func vehicleColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version",
		"vin", "make", "model", "year", "color", "engine_type",
		"specifications", "purchase_id", "status",
		"reserved_by", "reservation_date", "reservation_expires",
	}
}

func TestGormVehicleRepository_FindByID(t *testing.T) {
	t.Run("finds existing vehicle", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormVehicleRepository(gormDB)

		vehicleID := uuid.New()
		purchaseID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(vehicleColumns()).
			AddRow(vehicleID, now, now, 1,
				"VF1RFB00566123456", "Renault", "Clio V", 2024, "Gris", "1.0 TCe",
				"", purchaseID, "available", nil, nil, nil)

		mock.ExpectQuery(`SELECT \* FROM "vehicles" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(vehicleID, 1).
			WillReturnRows(rows)

		vehicle, err := repo.FindByID(context.Background(), vehicleID)

		require.NoError(t, err)
		assert.Equal(t, vehicleID, vehicle.ID)
		assert.Equal(t, "VF1RFB00566123456", vehicle.VIN)
		assert.Equal(t, fleet.VehicleStatusAvailable, vehicle.Status)
		assert.Equal(t, purchaseID, vehicle.PurchaseID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing vehicle to ErrNotFound", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormVehicleRepository(gormDB)

		vehicleID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "vehicles" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(vehicleID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		vehicle, err := repo.FindByID(context.Background(), vehicleID)

		assert.Nil(t, vehicle)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormVehicleRepository_FindByVIN(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormVehicleRepository(gormDB)

	vehicleID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(vehicleColumns()).
		AddRow(vehicleID, now, now, 1,
			"WVWZZZ1KZAW000001", "Volkswagen", "Golf 8", 2023, "Noir", "1.5 TSI",
			"", uuid.New(), "in_transit", nil, nil, nil)

	mock.ExpectQuery(`SELECT \* FROM "vehicles" WHERE vin = \$1 ORDER BY .* LIMIT .*`).
		WithArgs("WVWZZZ1KZAW000001", 1).
		WillReturnRows(rows)

	vehicle, err := repo.FindByVIN(context.Background(), "WVWZZZ1KZAW000001")

	require.NoError(t, err)
	assert.Equal(t, vehicleID, vehicle.ID)
	assert.Equal(t, fleet.VehicleStatusInTransit, vehicle.Status)
}

func TestGormVehicleRepository_FindExpiredReservations(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormVehicleRepository(gormDB)

	asOf := time.Date(2024, 8, 15, 12, 0, 0, 0, time.UTC)
	traderID := uuid.New()
	reservedAt := asOf.AddDate(0, 0, -10)
	expiredAt := asOf.AddDate(0, 0, -3)

	rows := sqlmock.NewRows(vehicleColumns()).
		AddRow(uuid.New(), reservedAt, reservedAt, 2,
			"JTDBR32E720000001", "Toyota", "Corolla", 2022, "Blanc", "1.8 Hybrid",
			"", uuid.New(), "reserved", traderID, reservedAt, expiredAt)

	mock.ExpectQuery(`SELECT \* FROM "vehicles" WHERE status = \$1 AND reservation_expires <= \$2`).
		WithArgs("reserved", asOf).
		WillReturnRows(rows)

	vehicles, err := repo.FindExpiredReservations(context.Background(), asOf)

	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, fleet.VehicleStatusReserved, vehicles[0].Status)
	require.NotNil(t, vehicles[0].ReservedBy)
	assert.Equal(t, traderID, *vehicles[0].ReservedBy)
}

func TestGormVehicleRepository_Delete(t *testing.T) {
	t.Run("deletes existing vehicle", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormVehicleRepository(gormDB)

		vehicleID := uuid.New()
		mock.ExpectExec(`DELETE FROM "vehicles" WHERE id = \$1`).
			WithArgs(vehicleID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), vehicleID)
		assert.NoError(t, err)
	})

	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormVehicleRepository(gormDB)

		vehicleID := uuid.New()
		mock.ExpectExec(`DELETE FROM "vehicles" WHERE id = \$1`).
			WithArgs(vehicleID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), vehicleID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
