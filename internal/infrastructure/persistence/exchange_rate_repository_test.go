package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func quoteColumns() []string {
	return []string{
		"id", "created_at", "updated_at", "version",
		"from_currency", "to_currency", "rate", "effective_date", "source", "notes",
	}
}

func TestGormExchangeRateRepository_FindLatest(t *testing.T) {
	t.Run("returns most recent quote on or before the date", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormExchangeRateRepository(gormDB)

		asOf := time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC)
		effective := time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)
		quoteID := uuid.New()

		rows := sqlmock.NewRows(quoteColumns()).
			AddRow(quoteID, effective, effective, 1,
				"USD", "DZD", decimal.RequireFromString("135.500000"), effective,
				"Banque d'Algérie", "")

		mock.ExpectQuery(`SELECT \* FROM "exchange_rate_quotes" WHERE from_currency = \$1 AND to_currency = \$2 AND effective_date <= \$3 ORDER BY effective_date DESC,.* LIMIT .*`).
			WithArgs("USD", "DZD", asOf, 1).
			WillReturnRows(rows)

		quote, err := repo.FindLatest(context.Background(), valueobject.USD, valueobject.DZD, asOf)

		require.NoError(t, err)
		assert.Equal(t, quoteID, quote.ID)
		assert.Equal(t, valueobject.USD, quote.FromCurrency)
		assert.True(t, quote.Rate.Equal(decimal.RequireFromString("135.5")))
		assert.Equal(t, "Banque d'Algérie", quote.Source)
	})

	t.Run("maps missing quote to ErrNotFound", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormExchangeRateRepository(gormDB)

		asOf := time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT \* FROM "exchange_rate_quotes"`).
			WillReturnError(gorm.ErrRecordNotFound)

		quote, err := repo.FindLatest(context.Background(), valueobject.EUR, valueobject.DZD, asOf)

		assert.Nil(t, quote)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
