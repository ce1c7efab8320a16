package ledger

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
)

// IdempotencyHandler detects replays of external payments and business events
type IdempotencyHandler struct{}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler() *IdempotencyHandler {
	return &IdempotencyHandler{}
}

// CheckPayment returns the active entry of txType that already carries paymentID, or nil.
// An empty payment id is never a replay.
func (h *IdempotencyHandler) CheckPayment(
	ctx context.Context,
	repo persistence.LedgerRepository,
	txType entity.TransactionType,
	paymentID string,
) (*entity.LedgerEntry, error) {
	if paymentID == "" {
		return nil, nil
	}
	existing, err := repo.FindActiveByPaymentID(ctx, txType, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check payment %s: %w", paymentID, err)
	}
	return existing, nil
}

// CheckEvent returns the applied spend and earn entries of a content purchase event.
// Both are nil when the event has not been settled.
func (h *IdempotencyHandler) CheckEvent(
	ctx context.Context,
	repo persistence.LedgerRepository,
	eventID string,
) (spend *entity.LedgerEntry, earn *entity.LedgerEntry, err error) {
	entries, err := repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check event %s: %w", eventID, err)
	}
	for _, e := range entries {
		if e.Status != entity.StatusCompleted && e.Status != entity.StatusRefunded {
			continue
		}
		switch e.Type {
		case entity.TypeSpend:
			spend = e
		case entity.TypeEarn:
			earn = e
		}
	}
	return spend, earn, nil
}
