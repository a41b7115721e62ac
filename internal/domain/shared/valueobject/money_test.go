package valueobject

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromFloat(100.50), DZD)
	require.NoError(t, err)
	assert.Equal(t, DZD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))

	_, err = NewMoney(decimal.NewFromInt(1), "")
	assert.Error(t, err)
}

func TestMoney_AddSubtract(t *testing.T) {
	a := NewMoneyDZDFromFloat(1355000)
	b := NewMoneyDZDFromFloat(205500)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(1560500)))

	diff, err := sum.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Equals(a))

	usd, err := NewMoneyFromFloat(100, USD)
	require.NoError(t, err)
	_, err = a.Add(usd)
	assert.Error(t, err)
	_, err = a.Subtract(usd)
	assert.Error(t, err)
}

func TestMoney_CalculatePercentage(t *testing.T) {
	cif := NewMoneyDZDFromFloat(1560500)
	duty := cif.CalculatePercentage(decimal.NewFromInt(25))
	assert.True(t, duty.Amount().Equal(decimal.NewFromInt(390125)))
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyDZDFromFloat(10)
	b := NewMoneyDZDFromFloat(20)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	gte, err := a.GreaterThanOrEqual(a)
	require.NoError(t, err)
	assert.True(t, gte)

	assert.True(t, ZeroDZD().IsZero())
	assert.True(t, a.IsPositive())
	assert.True(t, a.Negate().IsNegative())
}

func TestMoney_Allocate(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		m := NewMoneyDZDFromFloat(300000)
		parts, err := m.Allocate(6)
		require.NoError(t, err)
		require.Len(t, parts, 6)
		for _, p := range parts {
			assert.True(t, p.Amount().Equal(decimal.NewFromInt(50000)))
		}
	})

	t.Run("remainder goes to earliest parts", func(t *testing.T) {
		m := NewMoneyDZDFromFloat(100000)
		parts, err := m.Allocate(3)
		require.NoError(t, err)
		require.Len(t, parts, 3)

		total := ZeroDZD()
		for _, p := range parts {
			total = total.MustAdd(p)
		}
		assert.True(t, total.Equals(m), "parts must sum exactly to the original amount")
		// first part absorbs the extra cent
		assert.True(t, parts[0].Amount().GreaterThanOrEqual(parts[2].Amount()))
	})

	t.Run("invalid parts", func(t *testing.T) {
		_, err := NewMoneyDZDFromFloat(100).Allocate(0)
		assert.Error(t, err)
	})
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyDZDFromFloat(1234.56)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("99.95"))
	assert.Equal(t, DefaultCurrency, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(99.95)))

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}

func TestExchangeRate_Convert(t *testing.T) {
	rate, err := NewExchangeRate(USD, DZD, decimal.NewFromFloat(135.5), time.Now())
	require.NoError(t, err)

	fob, err := NewMoneyFromFloat(10000, USD)
	require.NoError(t, err)

	local, err := rate.Convert(fob)
	require.NoError(t, err)
	assert.Equal(t, DZD, local.Currency())
	assert.True(t, local.Amount().Equal(decimal.NewFromInt(1355000)))
}

func TestExchangeRate_ConvertSameCurrency(t *testing.T) {
	rate, err := NewExchangeRate(USD, DZD, decimal.NewFromFloat(135.5), time.Now())
	require.NoError(t, err)

	local := NewMoneyDZDFromFloat(500)
	got, err := rate.Convert(local)
	require.NoError(t, err)
	assert.True(t, got.Equals(local))
}

func TestExchangeRate_Validation(t *testing.T) {
	_, err := NewExchangeRate(USD, DZD, decimal.Zero, time.Now())
	assert.Error(t, err)

	_, err = NewExchangeRate("", DZD, decimal.NewFromInt(1), time.Now())
	assert.Error(t, err)

	rate, err := NewExchangeRate(USD, DZD, decimal.NewFromFloat(135.5), time.Now())
	require.NoError(t, err)
	eur, err := NewMoneyFromFloat(100, EUR)
	require.NoError(t, err)
	_, err = rate.Convert(eur)
	assert.Error(t, err)
}
