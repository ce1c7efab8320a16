package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
)

// AccountRepository implements persistence.AccountRepository over a Store
type AccountRepository struct {
	store   *Store
	journal *journal
}

var _ persistence.AccountRepository = (*AccountRepository)(nil)

// NewAccountRepository creates a repository reading and writing store outside any unit
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// GetSpender returns a copy of the user's spender row
func (r *AccountRepository) GetSpender(ctx context.Context, userID string) (*entity.SpenderAccount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	acc, ok := r.store.spenders[userID]
	if !ok {
		return nil, fmt.Errorf("%w: spender %s", errs.ErrAccountNotFound, userID)
	}
	cp := *acc
	return &cp, nil
}

// GetSpenderForUpdate is GetSpender; the unit mutex already excludes other writers
func (r *AccountRepository) GetSpenderForUpdate(ctx context.Context, userID string) (*entity.SpenderAccount, error) {
	return r.GetSpender(ctx, userID)
}

// CreateSpender inserts a spender row
func (r *AccountRepository) CreateSpender(ctx context.Context, account *entity.SpenderAccount) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.spenders[account.UserID]; ok {
		return errs.ErrDuplicateAccount
	}
	cp := *account
	r.store.spenders[account.UserID] = &cp
	id := account.UserID
	r.journal.record(func(s *Store) { delete(s.spenders, id) })
	return nil
}

// SaveSpender writes the row back if its version is unchanged
func (r *AccountRepository) SaveSpender(ctx context.Context, account *entity.SpenderAccount) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.spenders[account.UserID]
	if !ok {
		return fmt.Errorf("%w: spender %s", errs.ErrAccountNotFound, account.UserID)
	}
	if stored.Version != account.Version {
		return errs.ErrConcurrentUpdate
	}
	if account.CoinBalance() < 0 {
		return errs.ErrConstraintViolation
	}
	account.Version++
	cp := *account
	r.store.spenders[account.UserID] = &cp
	id := account.UserID
	r.journal.record(func(s *Store) { s.spenders[id] = stored })
	return nil
}

// GetEarner returns a copy of the creator's earner row
func (r *AccountRepository) GetEarner(ctx context.Context, creatorID string) (*entity.EarnerAccount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	acc, ok := r.store.earners[creatorID]
	if !ok {
		return nil, fmt.Errorf("%w: earner %s", errs.ErrAccountNotFound, creatorID)
	}
	cp := *acc
	return &cp, nil
}

// GetEarnerForUpdate is GetEarner; the unit mutex already excludes other writers
func (r *AccountRepository) GetEarnerForUpdate(ctx context.Context, creatorID string) (*entity.EarnerAccount, error) {
	return r.GetEarner(ctx, creatorID)
}

// CreateEarner inserts an earner row
func (r *AccountRepository) CreateEarner(ctx context.Context, account *entity.EarnerAccount) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.earners[account.CreatorID]; ok {
		return errs.ErrDuplicateAccount
	}
	cp := *account
	r.store.earners[account.CreatorID] = &cp
	id := account.CreatorID
	r.journal.record(func(s *Store) { delete(s.earners, id) })
	return nil
}

// SaveEarner writes the row back if its version is unchanged
func (r *AccountRepository) SaveEarner(ctx context.Context, account *entity.EarnerAccount) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.earners[account.CreatorID]
	if !ok {
		return fmt.Errorf("%w: earner %s", errs.ErrAccountNotFound, account.CreatorID)
	}
	if stored.Version != account.Version {
		return errs.ErrConcurrentUpdate
	}
	if account.CoinBalance() < 0 {
		return errs.ErrConstraintViolation
	}
	account.Version++
	cp := *account
	r.store.earners[account.CreatorID] = &cp
	id := account.CreatorID
	r.journal.record(func(s *Store) { s.earners[id] = stored })
	return nil
}

// ListAccountIDs pages through account holders in id order
func (r *AccountRepository) ListAccountIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	r.store.mu.RLock()
	ids := r.store.accountIDs()
	r.store.mu.RUnlock()

	start := sort.SearchStrings(ids, afterID)
	if start < len(ids) && ids[start] == afterID {
		start++
	}
	end := len(ids)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return append([]string(nil), ids[start:end]...), nil
}
