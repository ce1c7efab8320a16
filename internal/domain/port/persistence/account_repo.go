package persistence

import (
	"context"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
)

// AccountRepository defines the methods to read and write spender and earner balance rows
type AccountRepository interface {
	// GetSpender reads a spender account without locking
	//
	// Possible errors:
	// - ErrAccountNotFound: If the user has no spender row
	// - ErrDatabaseConnection: If database connection fails
	GetSpender(ctx context.Context, userID string) (*entity.SpenderAccount, error)

	// GetSpenderForUpdate reads a spender account and holds its row lock until the unit ends.
	// Must be called inside a unit of work.
	//
	// Possible errors:
	// - ErrAccountNotFound: If the user has no spender row
	// - ErrDatabaseConnection: If database connection fails
	GetSpenderForUpdate(ctx context.Context, userID string) (*entity.SpenderAccount, error)

	// CreateSpender inserts a new spender row
	//
	// Possible errors:
	// - ErrDuplicateAccount: If the row already exists
	CreateSpender(ctx context.Context, account *entity.SpenderAccount) error

	// SaveSpender writes balance and counters back if the stored version still matches
	// account.Version, then increments account.Version.
	//
	// Possible errors:
	// - ErrConcurrentUpdate: If the row changed since it was read
	// - ErrConstraintViolation: If the write would break a balance check
	SaveSpender(ctx context.Context, account *entity.SpenderAccount) error

	// GetEarner reads an earner account without locking
	GetEarner(ctx context.Context, creatorID string) (*entity.EarnerAccount, error)

	// GetEarnerForUpdate reads an earner account and holds its row lock until the unit ends
	GetEarnerForUpdate(ctx context.Context, creatorID string) (*entity.EarnerAccount, error)

	// CreateEarner inserts a new earner row
	CreateEarner(ctx context.Context, account *entity.EarnerAccount) error

	// SaveEarner writes an earner account with the same version check as SaveSpender
	SaveEarner(ctx context.Context, account *entity.EarnerAccount) error

	// ListAccountIDs pages through every user that holds a spender or earner account, ordered by id
	ListAccountIDs(ctx context.Context, afterID string, limit int) ([]string, error)
}
