package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
)

// WithdrawalRequest asks to pay out earner coins
type WithdrawalRequest struct {
	CreatorID  string `validate:"required,max=64"`
	CoinAmount int64
	// RupeeEquivalent is optional; when set it must equal the converted coin amount
	RupeeEquivalent *decimal.Decimal `validate:"-"`
	PaymentID       string           `validate:"max=128"`
	Description     string           `validate:"max=512"`
}

// WithdrawalResult is the outcome of a settled withdrawal
type WithdrawalResult struct {
	Transaction      *entity.LedgerEntry
	NewEarnerBalance int64
	Duplicate        bool
}

// WithdrawalUseCase defines payout settlement against earner balances
type WithdrawalUseCase interface {
	// Withdraw settles a payout in its own unit
	Withdraw(ctx context.Context, req WithdrawalRequest) (*WithdrawalResult, error)

	// Settle performs the withdrawal inside the unit carried by ctx, without notifying subscribers
	Settle(ctx context.Context, req WithdrawalRequest) (*WithdrawalResult, error)
}
