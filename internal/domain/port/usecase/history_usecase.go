package usecase

import (
	"context"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
)

// HistoryQuery pages and filters an account's ledger
type HistoryQuery struct {
	Limit           int
	Offset          int
	TransactionType string
	Status          string
}

// HistoryPage is one page of an account's ledger, newest first
type HistoryPage struct {
	Entries []*entity.LedgerEntry
	Total   int64
	Limit   int
	Offset  int
}

// HistoryUseCase defines the read-only views over the ledger
type HistoryUseCase interface {
	GetHistory(ctx context.Context, userID string, query HistoryQuery) (*HistoryPage, error)
	GetBalance(ctx context.Context, userID string) (*entity.SpenderBalance, error)
	GetEarnings(ctx context.Context, creatorID string) (*entity.EarnerBalance, error)
	Reconcile(ctx context.Context, userID string) (*entity.ReconciliationReport, error)
	// ReconcileAll checks every account and returns only the reports with drift
	ReconcileAll(ctx context.Context) ([]*entity.ReconciliationReport, error)
}
