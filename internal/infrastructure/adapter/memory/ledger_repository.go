package memory

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
)

// LedgerRepository implements persistence.LedgerRepository over a Store
type LedgerRepository struct {
	store   *Store
	journal *journal
}

var _ persistence.LedgerRepository = (*LedgerRepository)(nil)

// NewLedgerRepository creates a repository reading and writing store outside any unit
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

func isActive(status entity.EntryStatus) bool {
	return status == entity.StatusPending || status == entity.StatusCompleted
}

func isApplied(status entity.EntryStatus) bool {
	return status == entity.StatusCompleted || status == entity.StatusRefunded
}

// Create appends an entry, enforcing the same uniqueness the database indexes do
func (r *LedgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.byID[entry.ID]; ok {
		return fmt.Errorf("%w: entry %s already exists", errs.ErrConstraintViolation, entry.ID)
	}
	for _, e := range r.store.entries {
		if e.Type != entry.Type {
			continue
		}
		if entry.PaymentID != "" && e.PaymentID == entry.PaymentID && isActive(e.Status) && isActive(entry.Status) {
			return errs.NewDuplicatePaymentError(entry.PaymentID, e.ID)
		}
		if entry.EventID != "" && e.EventID == entry.EventID {
			return errs.NewDuplicatePaymentError(entry.EventID, e.ID)
		}
	}

	cp := *entry
	r.store.byID[entry.ID] = len(r.store.entries)
	r.store.entries = append(r.store.entries, &cp)
	id := entry.ID
	r.journal.record(func(s *Store) { s.removeEntry(id) })
	return nil
}

// UpdateStatus stores the entry's new status
func (r *LedgerRepository) UpdateStatus(ctx context.Context, entry *entity.LedgerEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx, ok := r.store.byID[entry.ID]
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrEntryNotFound, entry.ID)
	}
	stored := r.store.entries[idx]
	prevStatus, prevUpdatedAt := stored.Status, stored.UpdatedAt
	stored.Status = entry.Status
	stored.UpdatedAt = entry.UpdatedAt
	r.journal.record(func(*Store) {
		stored.Status = prevStatus
		stored.UpdatedAt = prevUpdatedAt
	})
	return nil
}

// GetByID returns a copy of one entry
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx, ok := r.store.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrEntryNotFound, id)
	}
	cp := *r.store.entries[idx]
	return &cp, nil
}

// FindActiveByPaymentID returns the pending or completed entry carrying paymentID
func (r *LedgerRepository) FindActiveByPaymentID(ctx context.Context, txType entity.TransactionType, paymentID string) (*entity.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, e := range r.store.entries {
		if e.Type == txType && e.PaymentID == paymentID && isActive(e.Status) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

// FindByEventID returns the entries of one business event in insertion order
func (r *LedgerRepository) FindByEventID(ctx context.Context, eventID string) ([]*entity.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var found []*entity.LedgerEntry
	for _, e := range r.store.entries {
		if e.EventID == eventID {
			cp := *e
			found = append(found, &cp)
		}
	}
	return found, nil
}

// List returns a newest-first page of the user's entries
func (r *LedgerRepository) List(ctx context.Context, filter persistence.HistoryFilter) ([]*entity.LedgerEntry, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var (
		page  []*entity.LedgerEntry
		total int64
	)
	for i := len(r.store.entries) - 1; i >= 0; i-- {
		e := r.store.entries[i]
		if e.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if total >= int64(filter.Offset) && (filter.Limit <= 0 || len(page) < filter.Limit) {
			cp := *e
			page = append(page, &cp)
		}
		total++
	}
	return page, total, nil
}

// SumRefunds adds up the completed refunds that reverse spendEntryID
func (r *LedgerRepository) SumRefunds(ctx context.Context, spendEntryID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var sum int64
	for _, e := range r.store.entries {
		if e.Type == entity.TypeRefund && e.RefundOf == spendEntryID && e.Status == entity.StatusCompleted {
			sum += e.CoinAmount
		}
	}
	return sum, nil
}

// Totals sums the user's applied entries by type
func (r *LedgerRepository) Totals(ctx context.Context, userID string) (entity.LedgerTotals, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var totals entity.LedgerTotals
	for _, e := range r.store.entries {
		if e.UserID != userID || !isApplied(e.Status) {
			continue
		}
		addToTotals(&totals, e.Type, e.CoinAmount)
	}
	return totals, nil
}

func addToTotals(totals *entity.LedgerTotals, txType entity.TransactionType, amount int64) {
	switch txType {
	case entity.TypePurchase:
		totals.Purchased += amount
	case entity.TypeSpend:
		totals.Spent += amount
	case entity.TypeRefund:
		totals.Refunded += amount
	case entity.TypeEarn:
		totals.Earned += amount
	case entity.TypeWithdraw:
		totals.Withdrawn += amount
	}
	totals.Entries++
}
