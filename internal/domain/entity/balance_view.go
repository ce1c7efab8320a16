package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpenderBalance is the stored counter view returned by balance queries
type SpenderBalance struct {
	UserID         string
	Balance        int64
	TotalPurchased int64
	TotalSpent     int64
	LastUpdated    time.Time
}

// EarnerBalance is the stored counter view returned by earnings queries
type EarnerBalance struct {
	CreatorID     string
	Balance       int64
	BalanceRupees decimal.Decimal
	TotalEarned   int64
	Withdrawn     int64
	LastUpdated   time.Time
}

// SpenderToBalance converts a spender account into its query view
func SpenderToBalance(a *SpenderAccount) SpenderBalance {
	return SpenderBalance{
		UserID:         a.UserID,
		Balance:        a.CoinBalance(),
		TotalPurchased: a.TotalCoinsPurchased,
		TotalSpent:     a.TotalCoinsSpent,
		LastUpdated:    a.UpdatedAt,
	}
}

// EarnerToBalance converts an earner account into its query view
func EarnerToBalance(a *EarnerAccount, converter *CoinConverter) EarnerBalance {
	return EarnerBalance{
		CreatorID:     a.CreatorID,
		Balance:       a.CoinBalance(),
		BalanceRupees: converter.ToCurrency(a.CoinBalance()),
		TotalEarned:   a.TotalCoinsEarned,
		Withdrawn:     a.CoinsWithdrawn,
		LastUpdated:   a.UpdatedAt,
	}
}
