package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOptions tune how units run
type UnitOptions struct {
	// Timeout bounds one attempt; zero disables it
	Timeout coreport.Duration
	// MaxAttempts bounds how often a conflicting unit runs, including the first run
	MaxAttempts uint64
	// InitialBackoff is the wait before the first retry
	InitialBackoff time.Duration
	// MaxBackoff caps the wait between retries
	MaxBackoff time.Duration
	// TxOptions are passed to BEGIN; nil uses the server default
	TxOptions *sql.TxOptions
}

// DefaultUnitOptions returns the options used when none are configured
func DefaultUnitOptions() UnitOptions {
	return UnitOptions{
		Timeout:        5 * coreport.Second,
		MaxAttempts:    5,
		InitialBackoff: 5 * time.Millisecond,
		MaxBackoff:     200 * time.Millisecond,
		TxOptions:      &sql.TxOptions{Isolation: sql.LevelReadCommitted},
	}
}

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	opts         UnitOptions
	classifier   *repository.ErrorClassifier
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, opts UnitOptions, logger coreport.Logger, timeProvider coreport.TimeProvider) *UnitOfWork {
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 1
	}
	return &UnitOfWork{
		db:           db,
		opts:         opts,
		classifier:   repository.NewErrorClassifier(),
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// RunInTransaction runs fn in one database transaction and retries the whole unit on
// a concurrent update, deadlock or serialization failure. A ctx that already carries
// a transaction joins it and leaves commit and retry to the outermost unit.
func (u *UnitOfWork) RunInTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if u.InTransaction(ctx) {
		return fn(ctx)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = u.opts.InitialBackoff
	b.MaxInterval = u.opts.MaxBackoff

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
		u.logger.Warn("Database unit conflicted, retrying", map[string]any{
			"attempt":      attempt,
			"max_attempts": u.opts.MaxAttempts,
			"error":        err.Error(),
			"retry_after":  next.String(),
		})
	}

	err := backoff.RetryNotify(op, backoff.WithContext(backoff.WithMaxRetries(b, u.opts.MaxAttempts-1), ctx), notify)
	if err != nil && errs.IsRetryable(err) {
		u.logger.Error("Database unit still conflicting after all attempts", map[string]any{
			"attempts": attempt,
			"error":    err.Error(),
		})
	}
	return err
}

func (u *UnitOfWork) runOnce(ctx context.Context, fn func(txCtx context.Context) error) error {
	if u.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = u.timeProvider.WithTimeout(ctx, u.opts.Timeout)
		defer cancel()
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	}, u.opts.TxOptions)
	if err == nil {
		return nil
	}

	u.logger.Debug("Database unit rolled back", map[string]any{"error": err.Error()})

	// Serialization failures can surface at COMMIT, outside every repository call
	if !errs.IsRetryable(err) && u.classifier.IsLockError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConcurrentUpdate, err.Error())
	}
	return err
}

// InTransaction reports whether ctx carries a transaction opened by RunInTransaction
func (u *UnitOfWork) InTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return ok && tx != nil
}

// GetAccountRepository returns an account repository bound to the transaction in ctx
func (u *UnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return repository.NewAccountRepository(u.getDbFromContext(ctx), u.logger)
}

// GetLedgerRepository returns a ledger repository bound to the transaction in ctx
func (u *UnitOfWork) GetLedgerRepository(ctx context.Context) persistence.LedgerRepository {
	return repository.NewLedgerRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
