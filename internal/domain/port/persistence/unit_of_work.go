package persistence

import (
	"context"
)

// UnitOfWork coordinates repository operations that must commit together
type UnitOfWork interface {
	// RunInTransaction runs fn inside one atomic unit. fn receives a context bound to
	// the unit; any error from fn rolls the whole unit back. A unit that fails on a
	// concurrent update or serialization conflict is retried with a fresh unit.
	// Calling it with a context already bound to a unit joins that unit.
	RunInTransaction(ctx context.Context, fn func(txCtx context.Context) error) error

	// InTransaction reports whether ctx is bound to a running unit
	InTransaction(ctx context.Context) bool

	// GetAccountRepository returns an account repository bound to the unit in ctx, if any
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetLedgerRepository returns a ledger repository bound to the unit in ctx, if any
	GetLedgerRepository(ctx context.Context) LedgerRepository
}
