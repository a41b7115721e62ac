package commission

import (
	"testing"
	"time"

	"github.com/cartrade/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommissionPeriod(t *testing.T) {
	p, err := NewCommissionPeriod(2024, time.March)
	require.NoError(t, err)

	assert.False(t, p.IsClosed)
	assert.Equal(t, "2024-03", p.Label())
}

func TestNewCommissionPeriod_Validation(t *testing.T) {
	_, err := NewCommissionPeriod(1999, time.March)
	assert.Error(t, err)

	_, err = NewCommissionPeriod(2024, time.Month(0))
	assert.Error(t, err)

	_, err = NewCommissionPeriod(2024, time.Month(13))
	assert.Error(t, err)
}

func TestCommissionPeriod_Close(t *testing.T) {
	p, err := NewCommissionPeriod(2024, time.March)
	require.NoError(t, err)
	closer := uuid.New()

	require.NoError(t, p.Close(closer))

	assert.True(t, p.IsClosed)
	require.NotNil(t, p.ClosedBy)
	assert.Equal(t, closer, *p.ClosedBy)
	assert.NotNil(t, p.ClosedAt)

	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "CommissionPeriodClosed", events[0].EventType())
}

func TestCommissionPeriod_Close_AlreadyClosed(t *testing.T) {
	p, err := NewCommissionPeriod(2024, time.March)
	require.NoError(t, err)
	require.NoError(t, p.Close(uuid.New()))

	err = p.Close(uuid.New())
	assert.ErrorIs(t, err, shared.ErrPeriodClosed)
}

func TestCommissionPeriod_Close_NilCloser(t *testing.T) {
	p, err := NewCommissionPeriod(2024, time.March)
	require.NoError(t, err)

	assert.Error(t, p.Close(uuid.Nil))
	assert.False(t, p.IsClosed)
}

func TestCommissionPeriod_Contains(t *testing.T) {
	p, err := NewCommissionPeriod(2024, time.March)
	require.NoError(t, err)

	assert.True(t, p.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)))
}
