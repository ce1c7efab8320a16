package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
)

// BalanceResponse represents a spender balance
type BalanceResponse struct {
	UserID         string    `json:"userId"`
	Balance        int64     `json:"balance"`
	TotalPurchased int64     `json:"totalPurchased"`
	TotalSpent     int64     `json:"totalSpent"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// NewBalanceResponse converts a spender balance view
func NewBalanceResponse(b *entity.SpenderBalance) BalanceResponse {
	return BalanceResponse{
		UserID:         b.UserID,
		Balance:        b.Balance,
		TotalPurchased: b.TotalPurchased,
		TotalSpent:     b.TotalSpent,
		LastUpdated:    b.LastUpdated,
	}
}

// EarningsResponse represents a creator's earner balance
type EarningsResponse struct {
	CreatorID     string          `json:"creatorId"`
	Balance       int64           `json:"balance"`
	BalanceRupees decimal.Decimal `json:"balanceRupees"`
	TotalEarned   int64           `json:"totalEarned"`
	Withdrawn     int64           `json:"withdrawn"`
	LastUpdated   time.Time       `json:"lastUpdated"`
}

// NewEarningsResponse converts an earner balance view
func NewEarningsResponse(b *entity.EarnerBalance) EarningsResponse {
	return EarningsResponse{
		CreatorID:     b.CreatorID,
		Balance:       b.Balance,
		BalanceRupees: b.BalanceRupees,
		TotalEarned:   b.TotalEarned,
		Withdrawn:     b.Withdrawn,
		LastUpdated:   b.LastUpdated,
	}
}

// AccountResponse is returned when a spender account is opened
type AccountResponse struct {
	UserID    string    `json:"userId"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReconciliationResponse reports stored counters against ledger totals
type ReconciliationResponse struct {
	UserID     string              `json:"userId"`
	CheckedAt  time.Time           `json:"checkedAt"`
	Entries    int64               `json:"entries"`
	Consistent bool                `json:"consistent"`
	Drifts     []entity.FieldDrift `json:"drifts"`
}

// NewReconciliationResponse converts a reconciliation report
func NewReconciliationResponse(r *entity.ReconciliationReport) ReconciliationResponse {
	drifts := r.Drifts
	if drifts == nil {
		drifts = []entity.FieldDrift{}
	}
	return ReconciliationResponse{
		UserID:     r.UserID,
		CheckedAt:  r.CheckedAt,
		Entries:    r.Totals.Entries,
		Consistent: !r.HasDrift(),
		Drifts:     drifts,
	}
}
