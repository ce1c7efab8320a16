package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// TransactionType is the economic event a ledger entry records
type TransactionType string

// Transaction types
const (
	TypePurchase TransactionType = "purchase"
	TypeSpend    TransactionType = "spend"
	TypeEarn     TransactionType = "earn"
	TypeRefund   TransactionType = "refund"
	TypeWithdraw TransactionType = "withdraw"
)

// EntryStatus defines possible status values for a ledger entry
type EntryStatus string

// EntryStatus constants
const (
	StatusPending   EntryStatus = "pending"
	StatusCompleted EntryStatus = "completed"
	StatusFailed    EntryStatus = "failed"
	StatusRefunded  EntryStatus = "refunded"
)

// ContentType identifies the kind of content an entry was paid for
type ContentType string

// Content types
const (
	ContentVideo  ContentType = "video"
	ContentSeries ContentType = "series"
)

// ParseTransactionType validates a raw type string
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TypePurchase, TypeSpend, TypeEarn, TypeRefund, TypeWithdraw:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrUnknownTransactionType, s)
	}
}

// ParseEntryStatus validates a raw status string
func ParseEntryStatus(s string) (EntryStatus, error) {
	switch st := EntryStatus(s); st {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", errs.ErrInvalidRequest, s)
	}
}

// ParseContentType validates a raw content type; the empty string means no content reference
func ParseContentType(s string) (ContentType, error) {
	switch ct := ContentType(s); ct {
	case "", ContentVideo, ContentSeries:
		return ct, nil
	default:
		return "", fmt.Errorf("%w: unknown content type %q", errs.ErrInvalidRequest, s)
	}
}

// OwnerKind reports which account kind entries of this type belong to
func (t TransactionType) OwnerKind() coreport.AccountKind {
	if t == TypeEarn || t == TypeWithdraw {
		return coreport.AccountKindEarner
	}
	return coreport.AccountKindSpender
}

// LedgerEntry is an append-only record of one economic event.
// Only Status and UpdatedAt change after creation.
type LedgerEntry struct {
	ID          string
	UserID      string
	Type        TransactionType
	CoinAmount  int64
	RupeeAmount decimal.NullDecimal
	ContentType ContentType
	ContentID   string
	PaymentID   string
	EventID     string
	RefundOf    string
	Status      EntryStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EntryOption configures optional ledger entry fields
type EntryOption func(*LedgerEntry)

// WithRupeeAmount records the real-currency equivalent
func WithRupeeAmount(amount decimal.Decimal) EntryOption {
	return func(e *LedgerEntry) {
		e.RupeeAmount = decimal.NewNullDecimal(amount.Round(2))
	}
}

// WithContent links the entry to a content item
func WithContent(contentType ContentType, contentID string) EntryOption {
	return func(e *LedgerEntry) {
		e.ContentType = contentType
		e.ContentID = contentID
	}
}

// WithPaymentID sets the external payment reference used for idempotency
func WithPaymentID(paymentID string) EntryOption {
	return func(e *LedgerEntry) {
		e.PaymentID = paymentID
	}
}

// WithEventID links the entry to a business event spanning several entries
func WithEventID(eventID string) EntryOption {
	return func(e *LedgerEntry) {
		e.EventID = eventID
	}
}

// WithRefundOf names the spend entry a refund reverses
func WithRefundOf(entryID string) EntryOption {
	return func(e *LedgerEntry) {
		e.RefundOf = entryID
	}
}

// WithDescription sets a human-readable description
func WithDescription(description string) EntryOption {
	return func(e *LedgerEntry) {
		e.Description = description
	}
}

// WithStatus overrides the initial status (completed by default)
func WithStatus(status EntryStatus) EntryOption {
	return func(e *LedgerEntry) {
		e.Status = status
	}
}

// NewLedgerEntry creates a new entry with basic validation
func NewLedgerEntry(
	userID string,
	txType TransactionType,
	coinAmount int64,
	timeProvider coreport.TimeProvider,
	opts ...EntryOption,
) (*LedgerEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", errs.ErrInvalidRequest)
	}
	if _, err := ParseTransactionType(string(txType)); err != nil {
		return nil, err
	}
	if coinAmount <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidAmount, coinAmount)
	}

	now := timeProvider.Now()
	entry := &LedgerEntry{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       txType,
		CoinAmount: coinAmount,
		Status:     StatusCompleted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(entry)
	}

	if _, err := ParseContentType(string(entry.ContentType)); err != nil {
		return nil, err
	}
	if entry.ContentType != "" && entry.ContentID == "" {
		return nil, fmt.Errorf("%w: content id is required with a content type", errs.ErrInvalidRequest)
	}
	if entry.Status != StatusPending && entry.Status != StatusCompleted {
		return nil, fmt.Errorf("%w: new entries start pending or completed", errs.ErrInvalidStatusTransition)
	}

	return entry, nil
}

// CanTransition reports whether an entry may move from one status to another
func CanTransition(from, to EntryStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusCompleted || to == StatusFailed
	case StatusCompleted:
		return to == StatusRefunded
	default:
		return false
	}
}

// TransitionTo advances the entry status
func (e *LedgerEntry) TransitionTo(status EntryStatus, timeProvider coreport.TimeProvider) error {
	if !CanTransition(e.Status, status) {
		return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidStatusTransition, e.Status, status)
	}
	if status == StatusRefunded && e.Type != TypeSpend {
		return fmt.Errorf("%w: only spend entries can be refunded", errs.ErrInvalidStatusTransition)
	}
	e.Status = status
	e.UpdatedAt = timeProvider.Now()
	return nil
}

// IsCompleted returns true once the entry's effect has been applied
func (e *LedgerEntry) IsCompleted() bool {
	return e.Status == StatusCompleted
}

// IsPending returns true if the entry awaits settlement
func (e *LedgerEntry) IsPending() bool {
	return e.Status == StatusPending
}

// SignedAmount returns the entry's effect on its owner's balance
func (e *LedgerEntry) SignedAmount() int64 {
	if e.Type == TypeSpend || e.Type == TypeWithdraw {
		return -e.CoinAmount
	}
	return e.CoinAmount
}

// BalanceChange describes the applied entry for balance subscribers
func (e *LedgerEntry) BalanceChange(newBalance int64) coreport.BalanceChange {
	return coreport.BalanceChange{
		AccountID:       e.UserID,
		Kind:            e.Type.OwnerKind(),
		EntryID:         e.ID,
		TransactionType: string(e.Type),
		Delta:           e.SignedAmount(),
		Balance:         newBalance,
		OccurredAt:      e.UpdatedAt,
	}
}
