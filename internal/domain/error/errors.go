package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance     = 4001
	CodeInvalidAmount           = 4002
	CodeInvalidRequest          = 4003
	CodeDuplicatePayment        = 4004
	CodeConstraintViolation     = 4005
	CodeBelowMinimumWithdrawal  = 4007
	CodeInvalidStatusTransition = 4009
	CodeAccountNotFound         = 4040
	CodeEntryNotFound           = 4041
	CodeConcurrentUpdate        = 4230

	// 5xxx - Server errors
	CodeInternalServer         = 5000
	CodeUnknownTransactionType = 5001
	CodeDatabaseConnection     = 5003
)

// Base error types
var (
	// ErrInvalidAmount is returned for non-positive or out-of-range coin amounts
	ErrInvalidAmount = errors.New("invalid coin amount")

	// ErrInsufficientBalance is returned when a debit would drive a balance negative
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrBelowMinimumWithdrawal is returned when a payout request is under the platform floor
	ErrBelowMinimumWithdrawal = errors.New("withdrawal below minimum")

	// ErrAccountNotFound is returned when the referenced user or creator has no account row
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount is returned when opening an account that already exists
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrDuplicatePayment is returned when a payment id already has a completed entry
	ErrDuplicatePayment = errors.New("payment already applied")

	// ErrUnknownTransactionType is a contract violation: dispatch received a type outside the five kinds
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrInvalidStatusTransition is returned when an entry status cannot move to the requested state
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrEntryNotFound is returned when a ledger entry does not exist
	ErrEntryNotFound = errors.New("ledger entry not found")

	// ErrConcurrentUpdate is returned when an account row changed between read and write
	ErrConcurrentUpdate = errors.New("account modified concurrently")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem talking to the store
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrDuplicatePayment):
		return CodeDuplicatePayment
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrBelowMinimumWithdrawal):
		return CodeBelowMinimumWithdrawal
	case errors.Is(err, ErrInvalidStatusTransition):
		return CodeInvalidStatusTransition
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrEntryNotFound):
		return CodeEntryNotFound
	case errors.Is(err, ErrConcurrentUpdate):
		return CodeConcurrentUpdate
	case errors.Is(err, ErrUnknownTransactionType):
		return CodeUnknownTransactionType
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError carries the exact shortfall of a rejected debit
type InsufficientBalanceError struct {
	AccountID string
	Required  int64
	Available int64
}

// Shortfall is the number of coins missing for the debit to succeed
func (e *InsufficientBalanceError) Shortfall() int64 {
	return e.Required - e.Available
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for account %s: required %d, available %d, shortfall %d",
		e.AccountID, e.Required, e.Available, e.Shortfall())
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_balance",
		"account_id": e.AccountID,
		"required":   e.Required,
		"available":  e.Available,
		"shortfall":  e.Shortfall(),
		"error_code": CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(accountID string, required, available int64) error {
	return &InsufficientBalanceError{
		AccountID: accountID,
		Required:  required,
		Available: available,
	}
}

// BelowMinimumError reports how far a withdrawal request is under the floor
type BelowMinimumError struct {
	Requested int64
	Minimum   int64
}

// Missing is the number of coins the request lacks to reach the floor
func (e *BelowMinimumError) Missing() int64 {
	return e.Minimum - e.Requested
}

// Error implements the error interface
func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("withdrawal of %d coins is below the minimum of %d", e.Requested, e.Minimum)
}

// Is checks if the target error is an ErrBelowMinimumWithdrawal
func (e *BelowMinimumError) Is(target error) bool {
	return target == ErrBelowMinimumWithdrawal
}

// LogFields returns a map of fields for structured logging
func (e *BelowMinimumError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "below_minimum_withdrawal",
		"requested":  e.Requested,
		"minimum":    e.Minimum,
		"missing":    e.Missing(),
		"error_code": CodeBelowMinimumWithdrawal,
	}
}

// NewBelowMinimumError creates a new below-minimum withdrawal error
func NewBelowMinimumError(requested, minimum int64) error {
	return &BelowMinimumError{Requested: requested, Minimum: minimum}
}

// DuplicatePaymentError identifies the entry that already settled a payment id
type DuplicatePaymentError struct {
	PaymentID string
	EntryID   string
}

// Error implements the error interface
func (e *DuplicatePaymentError) Error() string {
	return fmt.Sprintf("payment %s already applied by entry %s", e.PaymentID, e.EntryID)
}

// Is checks if the target error is an ErrDuplicatePayment
func (e *DuplicatePaymentError) Is(target error) bool {
	return target == ErrDuplicatePayment
}

// LogFields returns a map of fields for structured logging
func (e *DuplicatePaymentError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "duplicate_payment",
		"payment_id": e.PaymentID,
		"entry_id":   e.EntryID,
		"error_code": CodeDuplicatePayment,
	}
}

// NewDuplicatePaymentError creates a new duplicate payment error
func NewDuplicatePaymentError(paymentID, entryID string) error {
	return &DuplicatePaymentError{PaymentID: paymentID, EntryID: entryID}
}

// LedgerError wraps a failure with the ledger operation that produced it
type LedgerError struct {
	Operation string
	AccountID string
	Amount    int64
	Err       error
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s failed for account %s (amount: %d): %v", e.Operation, e.AccountID, e.Amount, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "ledger_error",
		"operation":  e.Operation,
		"account_id": e.AccountID,
		"amount":     e.Amount,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewLedgerError creates a ledger error wrapping err
func NewLedgerError(operation, accountID string, amount int64, err error) error {
	return &LedgerError{Operation: operation, AccountID: accountID, Amount: amount, Err: err}
}

// LogFields extracts structured fields from err when it carries them
func LogFields(err error) map[string]any {
	var lf interface{ LogFields() map[string]any }
	if errors.As(err, &lf) {
		return lf.LogFields()
	}
	return map[string]any{"error": err.Error(), "error_code": ErrorCode(err)}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsDuplicatePaymentError checks if the error is a duplicate payment error
func IsDuplicatePaymentError(err error) bool {
	return errors.Is(err, ErrDuplicatePayment)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrEntryNotFound)
}

// IsBusinessError reports whether err is a validation or business-rule failure
// that callers can present directly rather than as a generic retry message.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrBelowMinimumWithdrawal) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrDuplicatePayment) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidStatusTransition) ||
		errors.Is(err, ErrEntryNotFound)
}

// IsRetryable reports whether a failed unit may succeed if run again
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentUpdate)
}
