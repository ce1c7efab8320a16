package ledger

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
)

// Mutate adds or subtracts coins on a spender balance and returns the new balance.
//
// It only joins the unit already in ctx, the one inserting the entry that explains the
// change; a ctx without a unit is rejected so a balance never moves without its entry.
// The row is read under its lock and written back with a version check.
func (s *Service) Mutate(ctx context.Context, userID string, op entity.MutationOp, amount int64) (int64, error) {
	if !s.uow.InTransaction(ctx) {
		return 0, fmt.Errorf("%w: balance mutations must run in the unit that records their entry", errs.ErrInvalidRequest)
	}
	if err := s.validator.Amount(amount); err != nil {
		return 0, err
	}

	accounts := s.uow.GetAccountRepository(ctx)
	acc, err := accounts.GetSpenderForUpdate(ctx, userID)
	if err != nil {
		return 0, err
	}
	balance, err := s.saveMutation(ctx, accounts, acc, func() (int64, error) {
		return acc.Mutate(op, amount, s.timeProvider)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("Spender balance mutated", map[string]any{
		"user_id":     userID,
		"operation":   op,
		"amount":      amount,
		"new_balance": balance,
	})
	return balance, nil
}

// saveMutation runs apply against the locked row and writes the row back
func (s *Service) saveMutation(
	ctx context.Context,
	accounts persistence.AccountRepository,
	acc *entity.SpenderAccount,
	apply func() (int64, error),
) (int64, error) {
	balance, err := apply()
	if err != nil {
		return acc.CoinBalance(), err
	}
	if err := accounts.SaveSpender(ctx, acc); err != nil {
		return acc.CoinBalance(), err
	}
	return balance, nil
}

// applySpenderEntry applies a spender-owned entry to its locked account and saves it.
// Refund entries that reverse a spend also move the original to refunded.
func (s *Service) applySpenderEntry(
	ctx context.Context,
	accounts persistence.AccountRepository,
	entries persistence.LedgerRepository,
	acc *entity.SpenderAccount,
	entry *entity.LedgerEntry,
) (int64, error) {
	switch entry.Type {
	case entity.TypePurchase:
		return s.saveMutation(ctx, accounts, acc, func() (int64, error) {
			return acc.ApplyPurchase(entry.CoinAmount, s.timeProvider)
		})
	case entity.TypeSpend:
		return s.saveMutation(ctx, accounts, acc, func() (int64, error) {
			return acc.ApplySpend(entry.CoinAmount, s.timeProvider)
		})
	case entity.TypeRefund:
		// Reverse-spend refunds must name the spend they reverse
		if entry.RefundOf == "" && s.refundPolicy == entity.RefundReverseSpend {
			return acc.CoinBalance(), fmt.Errorf("%w: refundOf is required under the %s policy", errs.ErrInvalidRequest, s.refundPolicy)
		}
		if entry.RefundOf != "" {
			if err := s.markRefunded(ctx, entries, entry); err != nil {
				return acc.CoinBalance(), err
			}
		}
		return s.saveMutation(ctx, accounts, acc, func() (int64, error) {
			return acc.ApplyRefund(entry.CoinAmount, s.refundPolicy, s.timeProvider)
		})
	default:
		return acc.CoinBalance(), fmt.Errorf("%w: %s does not belong to a spender account", errs.ErrUnknownTransactionType, entry.Type)
	}
}
