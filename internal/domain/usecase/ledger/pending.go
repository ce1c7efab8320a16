package ledger

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
)

// CompletePending applies a pending entry to its account and marks it completed.
// A spend that no longer fits the balance fails with InsufficientBalance and the
// entry stays pending.
func (s *Service) CompletePending(ctx context.Context, entryID string) (*usecase.TransactionResult, error) {
	if entryID == "" {
		return nil, fmt.Errorf("%w: entry id is required", errs.ErrInvalidRequest)
	}

	entry, err := s.uow.GetLedgerRepository(ctx).GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsPending() {
		return nil, fmt.Errorf("%w: entry %s is %s", errs.ErrInvalidStatusTransition, entryID, entry.Status)
	}

	var result *usecase.TransactionResult
	err = s.uow.RunInTransaction(ctx, func(txCtx context.Context) error {
		accounts := s.uow.GetAccountRepository(txCtx)
		entries := s.uow.GetLedgerRepository(txCtx)

		acc, err := accounts.GetSpenderForUpdate(txCtx, entry.UserID)
		if err != nil {
			return err
		}

		// The entry may have been settled while the row lock was awaited
		locked, err := entries.GetByID(txCtx, entryID)
		if err != nil {
			return err
		}
		if locked.Type == entity.TypeRefund && locked.RefundOf != "" {
			if err := s.checkRefundTarget(txCtx, entries, locked.UserID, locked.RefundOf, locked.CoinAmount); err != nil {
				return err
			}
		}
		if err := locked.TransitionTo(entity.StatusCompleted, s.timeProvider); err != nil {
			return err
		}
		if err := entries.UpdateStatus(txCtx, locked); err != nil {
			return err
		}

		balance, err := s.applySpenderEntry(txCtx, accounts, entries, acc, locked)
		if err != nil {
			return err
		}
		result = &usecase.TransactionResult{Success: true, Transaction: locked, NewBalance: balance}
		return nil
	})
	if err != nil {
		fields := errs.LogFields(err)
		fields["entry_id"] = entryID
		s.logger.Warn("Failed to complete pending entry", fields)
		return nil, err
	}

	s.logger.Info("Pending entry completed", map[string]any{
		"entry_id":         entryID,
		"user_id":          result.Transaction.UserID,
		"transaction_type": result.Transaction.Type,
		"new_balance":      result.NewBalance,
	})
	s.publisher.Publish(ctx, result.Transaction.BalanceChange(result.NewBalance))
	return result, nil
}

// FailPending marks a pending entry failed; balances are not touched
func (s *Service) FailPending(ctx context.Context, entryID string) (*usecase.TransactionResult, error) {
	if entryID == "" {
		return nil, fmt.Errorf("%w: entry id is required", errs.ErrInvalidRequest)
	}

	entry, err := s.uow.GetLedgerRepository(ctx).GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	var result *usecase.TransactionResult
	err = s.uow.RunInTransaction(ctx, func(txCtx context.Context) error {
		entries := s.uow.GetLedgerRepository(txCtx)

		// Same lock as CompletePending so the two cannot both settle one entry
		acc, err := s.uow.GetAccountRepository(txCtx).GetSpenderForUpdate(txCtx, entry.UserID)
		if err != nil {
			return err
		}
		locked, err := entries.GetByID(txCtx, entryID)
		if err != nil {
			return err
		}
		if err := locked.TransitionTo(entity.StatusFailed, s.timeProvider); err != nil {
			return err
		}
		if err := entries.UpdateStatus(txCtx, locked); err != nil {
			return err
		}
		result = &usecase.TransactionResult{Success: true, Transaction: locked, NewBalance: acc.CoinBalance()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Pending entry failed", map[string]any{
		"entry_id": entryID,
		"user_id":  result.Transaction.UserID,
	})
	return result, nil
}
