package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// PostgreSQL error codes the ledger reacts to
const (
	sqlStateUniqueViolation      = "23505"
	sqlStateCheckViolation       = "23514"
	sqlStateForeignKeyViolation  = "23503"
	sqlStateNotNullViolation     = "23502"
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateQueryCanceled        = "57014"
	sqlStateConnectionClass      = "08"
)

// ErrorClassifier sorts driver errors into the categories repositories map to domain errors.
// The SQLSTATE code is used when the driver provides one; the message text otherwise.
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

func sqlState(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsLockError(err):
		return LockError
	case c.IsConstraintError(err):
		return ConstraintError
	case c.IsConnectionError(err):
		return ConnectionError
	case c.IsTransientError(err):
		return TransientError
	default:
		return ""
	}
}

// IsDuplicateKeyError checks if the error is a unique violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if pgErr, ok := sqlState(err); ok {
		return pgErr.Code == sqlStateUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// IsLockError checks if the error is a lock or serialization conflict
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}
	if pgErr, ok := sqlState(err); ok {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
			return true
		}
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "lock timeout")
}

// IsConstraintError checks if the error violates a check, foreign key or not-null constraint
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if pgErr, ok := sqlState(err); ok {
		switch pgErr.Code {
		case sqlStateCheckViolation, sqlStateForeignKeyViolation, sqlStateNotNullViolation:
			return true
		}
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "check constraint") || strings.Contains(msg, "foreign key")
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if pgErr, ok := sqlState(err); ok {
		return strings.HasPrefix(pgErr.Code, sqlStateConnectionClass)
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "dial")
}

// IsTransientError checks if an error may succeed when retried as is
func (c *ErrorClassifier) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgErr, ok := sqlState(err); ok {
		return pgErr.Code == sqlStateQueryCanceled
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "EOF") || strings.Contains(msg, "server closed")
}

// constraintName returns the violated constraint when the driver reports it
func constraintName(err error) string {
	if pgErr, ok := sqlState(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}

// mapError translates a driver error to the domain error repositories return.
// notFound is the domain error for gorm.ErrRecordNotFound.
func (c *ErrorClassifier) mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch c.Classify(err) {
	case LockError:
		return fmt.Errorf("%w: %s", errs.ErrConcurrentUpdate, err.Error())
	case ConstraintError:
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	case DuplicateKeyError:
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	default:
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
}
