package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
)

func TestNewCoinConverter(t *testing.T) {
	_, err := NewCoinConverter(0)
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	c, err := NewCoinConverter(10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), c.Rate())
}

func TestCoinConverter_RoundTrip(t *testing.T) {
	for _, rate := range []int64{1, 3, 7, 10, 100, 1000} {
		c, err := NewCoinConverter(rate)
		require.NoError(t, err)

		for k := int64(0); k <= 500; k++ {
			coins := k * rate
			amount := c.ToCurrency(coins)
			assert.True(t, amount.Equal(decimal.NewFromInt(k)), "rate %d coins %d", rate, coins)
			assert.Equal(t, coins, c.ToCoins(amount), "rate %d coins %d", rate, coins)
		}
	}
}

func TestCoinConverter_Rounding(t *testing.T) {
	c, err := NewCoinConverter(3)
	require.NoError(t, err)

	testCases := []struct {
		coins    int64
		expected string
	}{
		{1, "0.33"},  // 0.333..
		{2, "0.67"},  // 0.666.. rounds half up
		{4, "1.33"},  // 1.333..
		{5, "1.67"},  // 1.666..
		{2000, "666.67"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, c.Format(tc.coins), "coins %d", tc.coins)
	}

	c200, err := NewCoinConverter(200)
	require.NoError(t, err)
	// 1 coin at 200 per unit is exactly 0.005, which rounds half up
	assert.Equal(t, "0.01", c200.Format(1))

	// currency to coins floors
	assert.Equal(t, int64(2), c.ToCoins(decimal.RequireFromString("0.99")))
	assert.Equal(t, int64(0), c200.ToCoins(decimal.RequireFromString("0.004")))
}

func TestCoinConverter_Matches(t *testing.T) {
	c, err := NewCoinConverter(10)
	require.NoError(t, err)

	assert.True(t, c.Matches(2000, decimal.RequireFromString("200")))
	assert.True(t, c.Matches(2005, decimal.RequireFromString("200.50")))
	assert.False(t, c.Matches(2000, decimal.RequireFromString("199.99")))
	assert.False(t, c.Matches(2000, decimal.RequireFromString("200.001")))
}
