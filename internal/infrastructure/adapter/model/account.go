package model

import (
	"time"
)

// SpenderAccount is the database row of a user's spendable balance
type SpenderAccount struct {
	UserID              string    `gorm:"primaryKey;size:64"`
	CoinBalance         int64     `gorm:"not null;default:0;index"`
	TotalCoinsPurchased int64     `gorm:"not null;default:0"`
	TotalCoinsSpent     int64     `gorm:"not null;default:0"`
	Version             int64     `gorm:"not null;default:0"`
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName specifies the table name for SpenderAccount
func (SpenderAccount) TableName() string {
	return "spender_accounts"
}

// EarnerAccount is the database row of a creator's earnings
type EarnerAccount struct {
	CreatorID        string    `gorm:"primaryKey;size:64"`
	CoinBalance      int64     `gorm:"not null;default:0;index"`
	TotalCoinsEarned int64     `gorm:"not null;default:0"`
	CoinsWithdrawn   int64     `gorm:"not null;default:0"`
	Version          int64     `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName specifies the table name for EarnerAccount
func (EarnerAccount) TableName() string {
	return "earner_accounts"
}
