package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the database row of one append-only ledger record.
// Uniqueness of payment and event ids is enforced by partial indexes created in migrations.
type LedgerEntry struct {
	ID              string              `gorm:"primaryKey;size:36"`
	UserID          string              `gorm:"not null;size:64;index"`
	TransactionType string              `gorm:"not null;size:16;index"`
	CoinAmount      int64               `gorm:"not null"`
	RupeeAmount     decimal.NullDecimal `gorm:"type:numeric(18,2)"`
	ContentType     string              `gorm:"size:16"`
	ContentID       string              `gorm:"size:128"`
	PaymentID       string              `gorm:"size:128;not null;default:''"`
	EventID         string              `gorm:"size:128;not null;default:'';index"`
	RefundOf        string              `gorm:"size:36;not null;default:'';index"`
	Status          string              `gorm:"not null;size:16;index"`
	Description     string              `gorm:"type:text"`
	CreatedAt       time.Time           `gorm:"not null;index"`
	UpdatedAt       time.Time           `gorm:"not null"`
}

// TableName specifies the table name for LedgerEntry
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
