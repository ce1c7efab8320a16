package persistence

import (
	"context"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
)

// HistoryFilter selects and pages ledger entries for one user
type HistoryFilter struct {
	UserID string
	Type   entity.TransactionType // empty for all
	Status entity.EntryStatus     // empty for all
	Limit  int
	Offset int
}

// LedgerRepository defines the methods to append and query ledger entries
type LedgerRepository interface {
	// Create appends a new entry
	//
	// Possible errors:
	// - ErrDuplicatePayment: If an active entry of the same type already carries the payment id or event id
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, entry *entity.LedgerEntry) error

	// UpdateStatus persists a status transition already applied to entry
	//
	// Possible errors:
	// - ErrEntryNotFound: If the entry doesn't exist
	UpdateStatus(ctx context.Context, entry *entity.LedgerEntry) error

	// GetByID retrieves an entry by id
	//
	// Possible errors:
	// - ErrEntryNotFound: If the entry doesn't exist
	GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error)

	// FindActiveByPaymentID returns the pending or completed entry of txType carrying
	// paymentID, or nil when there is none
	FindActiveByPaymentID(ctx context.Context, txType entity.TransactionType, paymentID string) (*entity.LedgerEntry, error)

	// FindByEventID returns every entry of one business event
	FindByEventID(ctx context.Context, eventID string) ([]*entity.LedgerEntry, error)

	// List returns a newest-first page and the total number of matching entries
	List(ctx context.Context, filter HistoryFilter) ([]*entity.LedgerEntry, int64, error)

	// SumRefunds returns the coins already refunded against a spend entry
	SumRefunds(ctx context.Context, spendEntryID string) (int64, error)

	// Totals sums the applied entries of one user by type
	Totals(ctx context.Context, userID string) (entity.LedgerTotals, error)
}
