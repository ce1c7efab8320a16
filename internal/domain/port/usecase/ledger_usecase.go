package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
)

// CreateTransactionRequest is the input of the transaction dispatch
type CreateTransactionRequest struct {
	UserID      string           `validate:"required,max=64"`
	Type        string           `validate:"required"`
	CoinAmount  int64
	RupeeAmount *decimal.Decimal `validate:"-"`
	ContentType string           `validate:"omitempty,oneof=video series"`
	ContentID   string           `validate:"required_with=ContentType,max=128"`
	PaymentID   string           `validate:"max=128"`
	RefundOf    string           `validate:"omitempty,uuid"`
	Description string           `validate:"max=512"`
	// Async records the entry as pending without moving balances
	Async bool
}

// TransactionResult is the outcome of a ledger write
type TransactionResult struct {
	Success     bool
	Transaction *entity.LedgerEntry
	NewBalance  int64
	// Duplicate is set when the request replayed an already applied payment or event
	Duplicate bool
}

// ContentPurchaseRequest debits a viewer and credits a creator as one business event
type ContentPurchaseRequest struct {
	EventID     string `validate:"required,max=128"`
	ViewerID    string `validate:"required,max=64"`
	CreatorID   string `validate:"required,max=64"`
	CoinAmount  int64
	ContentType string `validate:"required,oneof=video series"`
	ContentID   string `validate:"required,max=128"`
	Description string `validate:"max=512"`
}

// ContentPurchaseResult carries both halves of a settled content purchase
type ContentPurchaseResult struct {
	Spend            *entity.LedgerEntry
	Earn             *entity.LedgerEntry
	NewViewerBalance int64
	NewEarnerBalance int64
	Duplicate        bool
}

// LedgerUseCase defines the balance-mutating operations on spender accounts
type LedgerUseCase interface {
	// CreateTransaction validates, records and applies one ledger entry
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*TransactionResult, error)

	// Mutate adds or subtracts coins on a locked spender row inside the unit in ctx.
	// It fails with ErrInvalidRequest when ctx carries no unit.
	Mutate(ctx context.Context, userID string, op entity.MutationOp, amount int64) (int64, error)

	// CompletePending applies a pending entry and marks it completed
	CompletePending(ctx context.Context, entryID string) (*TransactionResult, error)

	// FailPending marks a pending entry failed without touching balances
	FailPending(ctx context.Context, entryID string) (*TransactionResult, error)

	// SettleContentPurchase runs the viewer spend and creator earning in one unit
	SettleContentPurchase(ctx context.Context, req ContentPurchaseRequest) (*ContentPurchaseResult, error)
}
