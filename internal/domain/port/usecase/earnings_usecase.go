package usecase

import (
	"context"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
)

// EarningRequest credits a creator for one content sale
type EarningRequest struct {
	CreatorID   string `validate:"required,max=64"`
	CoinAmount  int64
	ContentType string `validate:"required,oneof=video series"`
	ContentID   string `validate:"required,max=128"`
	Description string `validate:"max=512"`
	EventID     string `validate:"max=128"`
}

// EarningResult is the outcome of a recorded earning
type EarningResult struct {
	Transaction      *entity.LedgerEntry
	NewEarnerBalance int64
}

// EarningsUseCase defines the only path that increases a creator's earnings
type EarningsUseCase interface {
	// RecordEarning credits a creator in its own unit
	RecordEarning(ctx context.Context, req EarningRequest) (*EarningResult, error)

	// Credit performs the earning inside the unit carried by ctx, without notifying subscribers
	Credit(ctx context.Context, req EarningRequest) (*EarningResult, error)
}
