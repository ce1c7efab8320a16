package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
)

// CurrencyDecimalPlaces is the precision of every stored or displayed rupee figure
const CurrencyDecimalPlaces = 2

// CoinConverter converts between coins and currency at a fixed platform rate.
//
// Coins to currency rounds half up to two places. Currency to coins rounds down,
// so a payout never credits more coins than were paid for. Every multiple of the
// rate round-trips exactly.
type CoinConverter struct {
	coinsPerUnit decimal.Decimal
}

// NewCoinConverter creates a converter for the given number of coins per currency unit
func NewCoinConverter(coinsPerUnit int64) (*CoinConverter, error) {
	if coinsPerUnit <= 0 {
		return nil, fmt.Errorf("%w: coins per unit must be positive, got %d", errs.ErrInvalidAmount, coinsPerUnit)
	}
	return &CoinConverter{coinsPerUnit: decimal.NewFromInt(coinsPerUnit)}, nil
}

// Rate returns the number of coins per currency unit
func (c *CoinConverter) Rate() int64 {
	return c.coinsPerUnit.IntPart()
}

// ToCurrency converts coins to currency, rounded half up to two places
func (c *CoinConverter) ToCurrency(coins int64) decimal.Decimal {
	return decimal.NewFromInt(coins).DivRound(c.coinsPerUnit, CurrencyDecimalPlaces)
}

// ToCoins converts a currency amount to whole coins, rounding down
func (c *CoinConverter) ToCoins(amount decimal.Decimal) int64 {
	return amount.Mul(c.coinsPerUnit).Floor().IntPart()
}

// Matches reports whether amount is the converted value of coins
func (c *CoinConverter) Matches(coins int64, amount decimal.Decimal) bool {
	return c.ToCurrency(coins).Equal(amount.Round(CurrencyDecimalPlaces)) && amount.Equal(amount.Round(CurrencyDecimalPlaces))
}

// Format renders the currency value of coins with two decimal places
func (c *CoinConverter) Format(coins int64) string {
	return c.ToCurrency(coins).StringFixed(CurrencyDecimalPlaces)
}
