package ledger

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
)

// checkRefundTarget verifies a refund of amount may reverse the spend entry refundOf.
// It must run before the refund entry itself is stored as completed.
func (s *Service) checkRefundTarget(
	ctx context.Context,
	entries persistence.LedgerRepository,
	userID, refundOf string,
	amount int64,
) error {
	original, err := entries.GetByID(ctx, refundOf)
	if err != nil {
		return err
	}
	if original.Type != entity.TypeSpend {
		return fmt.Errorf("%w: refunds reverse spend entries, %s is a %s", errs.ErrInvalidRequest, refundOf, original.Type)
	}
	if original.UserID != userID {
		return fmt.Errorf("%w: entry %s belongs to another account", errs.ErrInvalidRequest, refundOf)
	}
	if original.Status != entity.StatusCompleted && original.Status != entity.StatusRefunded {
		return fmt.Errorf("%w: cannot refund a %s entry", errs.ErrInvalidStatusTransition, original.Status)
	}

	refunded, err := entries.SumRefunds(ctx, refundOf)
	if err != nil {
		return err
	}
	if refunded+amount > original.CoinAmount {
		return fmt.Errorf("%w: refund of %d exceeds the %d coins still refundable on %s",
			errs.ErrInvalidAmount, amount, original.CoinAmount-refunded, refundOf)
	}
	return nil
}

// markRefunded moves the reversed spend to refunded on its first refund
func (s *Service) markRefunded(ctx context.Context, entries persistence.LedgerRepository, refund *entity.LedgerEntry) error {
	original, err := entries.GetByID(ctx, refund.RefundOf)
	if err != nil {
		return err
	}
	if original.Status == entity.StatusRefunded {
		return nil
	}
	if err := original.TransitionTo(entity.StatusRefunded, s.timeProvider); err != nil {
		return err
	}
	return entries.UpdateStatus(ctx, original)
}
