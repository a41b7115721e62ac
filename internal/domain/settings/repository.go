package settings

import (
	"context"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/cartrade/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ConfigurationRepository stores the single system configuration row
type ConfigurationRepository interface {
	// Get returns the current configuration, creating the default record
	// on first access.
	Get(ctx context.Context) (*SystemConfiguration, error)
	Save(ctx context.Context, config *SystemConfiguration) error
}

// ExchangeRateRepository provides access to the exchange rate history
type ExchangeRateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExchangeRateQuote, error)
	// FindLatest returns the most recent quote for the pair effective on
	// or before the given date.
	FindLatest(ctx context.Context, from, to valueobject.Currency, asOf time.Time) (*ExchangeRateQuote, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ExchangeRateQuote, int64, error)
	Save(ctx context.Context, quote *ExchangeRateQuote) error
	Delete(ctx context.Context, id uuid.UUID) error
}
