package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
)

type contextKey string

const unitKey contextKey = "memory-unit"

// UnitOfWork runs units one at a time against a Store
type UnitOfWork struct {
	store        *Store
	mu           sync.Mutex
	maxAttempts  uint64
	timeout      coreport.Duration
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates a unit of work over store. A zero timeout disables the unit deadline.
func NewUnitOfWork(store *Store, timeout coreport.Duration, timeProvider coreport.TimeProvider, logger coreport.Logger) *UnitOfWork {
	return &UnitOfWork{
		store:        store,
		maxAttempts:  5,
		timeout:      timeout,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Store returns the underlying store
func (u *UnitOfWork) Store() *Store {
	return u.store
}

// RunInTransaction runs fn with the units serialised; an error undoes the writes fn made
func (u *UnitOfWork) RunInTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if u.InTransaction(ctx) {
		return fn(ctx)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Millisecond
	b.MaxInterval = 20 * time.Millisecond

	attempt := 0
	op := func() error {
		attempt++
		err := u.runOnce(ctx, fn)
		if err == nil || !errs.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		u.logger.Warn("Unit conflicted, retrying", map[string]any{
			"attempt":     attempt,
			"error":       err.Error(),
			"retry_after": next.String(),
		})
	}

	return backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(b, u.maxAttempts-1), ctx), notify)
}

func (u *UnitOfWork) runOnce(ctx context.Context, fn func(txCtx context.Context) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = u.timeProvider.WithTimeout(ctx, u.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	j := &journal{}
	txCtx := context.WithValue(ctx, unitKey, j)

	err := fn(txCtx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		u.store.rollback(j)
		return err
	}
	return nil
}

// InTransaction reports whether ctx is bound to a unit of this package
func (u *UnitOfWork) InTransaction(ctx context.Context) bool {
	return journalFrom(ctx) != nil
}

func journalFrom(ctx context.Context) *journal {
	j, _ := ctx.Value(unitKey).(*journal)
	return j
}

// GetAccountRepository returns an account repository recording into the unit in ctx, if any
func (u *UnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return &AccountRepository{store: u.store, journal: journalFrom(ctx)}
}

// GetLedgerRepository returns a ledger repository recording into the unit in ctx, if any
func (u *UnitOfWork) GetLedgerRepository(ctx context.Context) persistence.LedgerRepository {
	return &LedgerRepository{store: u.store, journal: journalFrom(ctx)}
}
