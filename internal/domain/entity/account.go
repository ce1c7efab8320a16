package entity

import (
	"fmt"
	"math"
	"time"

	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// MutationOp is the direction of a balance mutation
type MutationOp string

const (
	OpAdd      MutationOp = "add"
	OpSubtract MutationOp = "subtract"
)

// RefundPolicy decides what a refund does to the spend counter
type RefundPolicy string

const (
	// RefundRestoreBalance credits the balance and leaves totalCoinsSpent untouched
	RefundRestoreBalance RefundPolicy = "restore_balance"
	// RefundReverseSpend credits the balance and decrements totalCoinsSpent, floored at zero
	RefundReverseSpend RefundPolicy = "reverse_spend"
)

// ParseRefundPolicy validates a configured policy name
func ParseRefundPolicy(s string) (RefundPolicy, error) {
	switch p := RefundPolicy(s); p {
	case RefundRestoreBalance, RefundReverseSpend:
		return p, nil
	case "":
		return RefundRestoreBalance, nil
	default:
		return "", fmt.Errorf("unknown refund policy %q", s)
	}
}

// mutateBalance applies op to balance, refusing to go below zero
func mutateBalance(accountID string, balance int64, op MutationOp, amount int64) (int64, error) {
	if amount <= 0 {
		return balance, fmt.Errorf("%w: %d", errs.ErrInvalidAmount, amount)
	}
	switch op {
	case OpAdd:
		if err := checkCounter("balance of "+accountID, balance, amount); err != nil {
			return balance, err
		}
		return balance + amount, nil
	case OpSubtract:
		if balance < amount {
			return balance, errs.NewInsufficientBalanceError(accountID, amount, balance)
		}
		return balance - amount, nil
	default:
		return balance, fmt.Errorf("%w: unknown mutation %q", errs.ErrInvalidRequest, op)
	}
}

// checkCounter refuses an addition that would overflow a running total
func checkCounter(name string, total, amount int64) error {
	if amount > 0 && total > math.MaxInt64-amount {
		return fmt.Errorf("%w: adding %d to the %s would overflow", errs.ErrInvalidAmount, amount, name)
	}
	return nil
}

// SpenderAccount is the balance view of a user consuming coins
type SpenderAccount struct {
	UserID              string
	coinBalance         int64 // never negative
	TotalCoinsPurchased int64
	TotalCoinsSpent     int64
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewSpenderAccount opens an empty spender account
func NewSpenderAccount(userID string, timeProvider coreport.TimeProvider) (*SpenderAccount, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", errs.ErrInvalidRequest)
	}
	now := timeProvider.Now()
	return &SpenderAccount{UserID: userID, CreatedAt: now, UpdatedAt: now}, nil
}

// RestoreSpenderAccount rebuilds an account from persisted fields
func RestoreSpenderAccount(userID string, balance, purchased, spent, version int64, createdAt, updatedAt time.Time) *SpenderAccount {
	return &SpenderAccount{
		UserID:              userID,
		coinBalance:         balance,
		TotalCoinsPurchased: purchased,
		TotalCoinsSpent:     spent,
		Version:             version,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}
}

// CoinBalance returns the current balance
func (a *SpenderAccount) CoinBalance() int64 {
	return a.coinBalance
}

// Mutate adds or subtracts amount and returns the new balance.
// The account is unchanged when an error is returned.
func (a *SpenderAccount) Mutate(op MutationOp, amount int64, timeProvider coreport.TimeProvider) (int64, error) {
	balance, err := mutateBalance(a.UserID, a.coinBalance, op, amount)
	if err != nil {
		return a.coinBalance, err
	}
	a.coinBalance = balance
	a.UpdatedAt = timeProvider.Now()
	return balance, nil
}

// CanSpend reports whether amount can be debited right now
func (a *SpenderAccount) CanSpend(amount int64) bool {
	return a.coinBalance >= amount
}

// ApplyPurchase credits purchased coins
func (a *SpenderAccount) ApplyPurchase(amount int64, timeProvider coreport.TimeProvider) (int64, error) {
	if err := checkCounter("totalCoinsPurchased", a.TotalCoinsPurchased, amount); err != nil {
		return a.coinBalance, err
	}
	balance, err := a.Mutate(OpAdd, amount, timeProvider)
	if err != nil {
		return balance, err
	}
	a.TotalCoinsPurchased += amount
	return balance, nil
}

// ApplySpend debits spent coins
func (a *SpenderAccount) ApplySpend(amount int64, timeProvider coreport.TimeProvider) (int64, error) {
	if err := checkCounter("totalCoinsSpent", a.TotalCoinsSpent, amount); err != nil {
		return a.coinBalance, err
	}
	balance, err := a.Mutate(OpSubtract, amount, timeProvider)
	if err != nil {
		return balance, err
	}
	a.TotalCoinsSpent += amount
	return balance, nil
}

// ApplyRefund credits refunded coins; the spend counter follows policy
func (a *SpenderAccount) ApplyRefund(amount int64, policy RefundPolicy, timeProvider coreport.TimeProvider) (int64, error) {
	balance, err := a.Mutate(OpAdd, amount, timeProvider)
	if err != nil {
		return balance, err
	}
	if policy == RefundReverseSpend {
		a.TotalCoinsSpent -= amount
		if a.TotalCoinsSpent < 0 {
			a.TotalCoinsSpent = 0
		}
	}
	return balance, nil
}

// EarnerAccount is the balance view of a creator accumulating coins
type EarnerAccount struct {
	CreatorID        string
	coinBalance      int64 // never negative
	TotalCoinsEarned int64
	CoinsWithdrawn   int64
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewEarnerAccount opens an empty earner account
func NewEarnerAccount(creatorID string, timeProvider coreport.TimeProvider) (*EarnerAccount, error) {
	if creatorID == "" {
		return nil, fmt.Errorf("%w: creator id is required", errs.ErrInvalidRequest)
	}
	now := timeProvider.Now()
	return &EarnerAccount{CreatorID: creatorID, CreatedAt: now, UpdatedAt: now}, nil
}

// RestoreEarnerAccount rebuilds an account from persisted fields
func RestoreEarnerAccount(creatorID string, balance, earned, withdrawn, version int64, createdAt, updatedAt time.Time) *EarnerAccount {
	return &EarnerAccount{
		CreatorID:        creatorID,
		coinBalance:      balance,
		TotalCoinsEarned: earned,
		CoinsWithdrawn:   withdrawn,
		Version:          version,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

// CoinBalance returns the current balance
func (a *EarnerAccount) CoinBalance() int64 {
	return a.coinBalance
}

// Mutate adds or subtracts amount and returns the new balance.
// The account is unchanged when an error is returned.
func (a *EarnerAccount) Mutate(op MutationOp, amount int64, timeProvider coreport.TimeProvider) (int64, error) {
	balance, err := mutateBalance(a.CreatorID, a.coinBalance, op, amount)
	if err != nil {
		return a.coinBalance, err
	}
	a.coinBalance = balance
	a.UpdatedAt = timeProvider.Now()
	return balance, nil
}

// ApplyEarning credits coins earned from a content sale
func (a *EarnerAccount) ApplyEarning(amount int64, timeProvider coreport.TimeProvider) (int64, error) {
	if err := checkCounter("totalCoinsEarned", a.TotalCoinsEarned, amount); err != nil {
		return a.coinBalance, err
	}
	balance, err := a.Mutate(OpAdd, amount, timeProvider)
	if err != nil {
		return balance, err
	}
	a.TotalCoinsEarned += amount
	return balance, nil
}

// ApplyWithdrawal debits coins paid out
func (a *EarnerAccount) ApplyWithdrawal(amount int64, timeProvider coreport.TimeProvider) (int64, error) {
	if err := checkCounter("coinsWithdrawn", a.CoinsWithdrawn, amount); err != nil {
		return a.coinBalance, err
	}
	balance, err := a.Mutate(OpSubtract, amount, timeProvider)
	if err != nil {
		return balance, err
	}
	a.CoinsWithdrawn += amount
	return balance, nil
}
