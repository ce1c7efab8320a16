package core

import (
	"context"
	"time"
)

// AccountKind distinguishes the two balance views a user can hold
type AccountKind string

const (
	AccountKindSpender AccountKind = "spender"
	AccountKindEarner  AccountKind = "earner"
)

// BalanceChange describes one committed balance movement
type BalanceChange struct {
	AccountID       string      `json:"accountId"`
	Kind            AccountKind `json:"kind"`
	EntryID         string      `json:"entryId"`
	TransactionType string      `json:"transactionType"`
	Delta           int64       `json:"delta"`
	Balance         int64       `json:"balance"`
	OccurredAt      time.Time   `json:"occurredAt"`
}

// BalanceNotifier publishes balance changes after the unit that produced them committed.
// Implementations must not block the ledger on slow consumers.
type BalanceNotifier interface {
	Publish(ctx context.Context, change BalanceChange) error
}
