package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
)

// CreateTransaction validates, records and applies one ledger entry.
//
// Purchases carrying a payment id are idempotent: a replay returns the entry that
// already applied it with Duplicate set and no state change. Spends are checked
// against the balance before any write so a shortfall is reported without opening
// a unit, and checked again under the row lock. Earn and withdraw requests are
// delegated to the earnings and withdrawal components, which run their own unit.
func (s *Service) CreateTransaction(ctx context.Context, req usecase.CreateTransactionRequest) (*usecase.TransactionResult, error) {
	if err := s.validator.Amount(req.CoinAmount); err != nil {
		return nil, err
	}

	txType, err := entity.ParseTransactionType(req.Type)
	if err != nil {
		s.logger.Error("Transaction dispatch received an unknown type", map[string]any{
			"user_id":          req.UserID,
			"transaction_type": req.Type,
			"coin_amount":      req.CoinAmount,
		})
		return nil, err
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if req.Async && txType.OwnerKind() != entity.TypePurchase.OwnerKind() {
		return nil, fmt.Errorf("%w: %s cannot be settled asynchronously", errs.ErrInvalidRequest, txType)
	}
	if req.RefundOf != "" && txType != entity.TypeRefund {
		return nil, fmt.Errorf("%w: refundOf is only valid on refunds", errs.ErrInvalidRequest)
	}
	if txType == entity.TypeRefund && req.RefundOf == "" && s.refundPolicy == entity.RefundReverseSpend {
		return nil, fmt.Errorf("%w: refundOf is required under the %s policy", errs.ErrInvalidRequest, s.refundPolicy)
	}

	switch txType {
	case entity.TypeEarn:
		return s.dispatchEarn(ctx, req)
	case entity.TypeWithdraw:
		return s.dispatchWithdraw(ctx, req)
	}

	if dup, err := s.preflight(ctx, txType, req); dup != nil || err != nil {
		return dup, err
	}

	var result *usecase.TransactionResult
	err = s.uow.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.recordSpenderEntry(txCtx, txType, req)
		return err
	})
	if err != nil {
		if errors.Is(err, errs.ErrDuplicatePayment) && req.PaymentID != "" {
			return s.duplicatePayment(ctx, txType, req)
		}
		s.logFailure("Transaction failed", txType, req, err)
		return nil, err
	}

	s.logger.Info("Ledger transaction recorded", map[string]any{
		"entry_id":         result.Transaction.ID,
		"user_id":          req.UserID,
		"transaction_type": txType,
		"coin_amount":      req.CoinAmount,
		"status":           result.Transaction.Status,
		"new_balance":      result.NewBalance,
		"duplicate":        result.Duplicate,
	})

	if !result.Duplicate && result.Transaction.IsCompleted() {
		s.publisher.Publish(ctx, result.Transaction.BalanceChange(result.NewBalance))
	}
	return result, nil
}

// preflight runs the checks that can answer a request without opening a unit
func (s *Service) preflight(ctx context.Context, txType entity.TransactionType, req usecase.CreateTransactionRequest) (*usecase.TransactionResult, error) {
	switch txType {
	case entity.TypePurchase:
		if req.PaymentID == "" {
			return nil, nil
		}
		existing, err := s.idempotency.CheckPayment(ctx, s.uow.GetLedgerRepository(ctx), txType, req.PaymentID)
		if err != nil || existing == nil {
			return nil, err
		}
		return s.duplicateResult(ctx, existing)

	case entity.TypeSpend:
		if req.Async {
			return nil, nil
		}
		acc, err := s.uow.GetAccountRepository(ctx).GetSpender(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		if !acc.CanSpend(req.CoinAmount) {
			s.logger.Info("Spend rejected before mutation", map[string]any{
				"user_id":   req.UserID,
				"required":  req.CoinAmount,
				"available": acc.CoinBalance(),
			})
			return nil, errs.NewInsufficientBalanceError(req.UserID, req.CoinAmount, acc.CoinBalance())
		}
	}
	return nil, nil
}

// recordSpenderEntry inserts and applies a purchase, spend or refund inside the unit in ctx
func (s *Service) recordSpenderEntry(ctx context.Context, txType entity.TransactionType, req usecase.CreateTransactionRequest) (*usecase.TransactionResult, error) {
	accounts := s.uow.GetAccountRepository(ctx)
	entries := s.uow.GetLedgerRepository(ctx)

	acc, err := accounts.GetSpenderForUpdate(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// Re-check under the row lock: a concurrent delivery of the same payment may have committed
	if txType == entity.TypePurchase {
		existing, err := s.idempotency.CheckPayment(ctx, entries, txType, req.PaymentID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &usecase.TransactionResult{Success: true, Transaction: existing, NewBalance: acc.CoinBalance(), Duplicate: true}, nil
		}
	}

	if txType == entity.TypeRefund && req.RefundOf != "" {
		if err := s.checkRefundTarget(ctx, entries, req.UserID, req.RefundOf, req.CoinAmount); err != nil {
			return nil, err
		}
	}

	entry, err := s.newEntry(req.UserID, txType, req)
	if err != nil {
		return nil, err
	}
	if err := entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	if entry.IsPending() {
		return &usecase.TransactionResult{Success: true, Transaction: entry, NewBalance: acc.CoinBalance()}, nil
	}

	balance, err := s.applySpenderEntry(ctx, accounts, entries, acc, entry)
	if err != nil {
		return nil, err
	}
	return &usecase.TransactionResult{Success: true, Transaction: entry, NewBalance: balance}, nil
}

// newEntry builds the ledger entry described by req
func (s *Service) newEntry(userID string, txType entity.TransactionType, req usecase.CreateTransactionRequest) (*entity.LedgerEntry, error) {
	opts := []entity.EntryOption{
		entity.WithDescription(req.Description),
		entity.WithPaymentID(req.PaymentID),
		entity.WithRefundOf(req.RefundOf),
	}
	if req.ContentType != "" {
		opts = append(opts, entity.WithContent(entity.ContentType(req.ContentType), req.ContentID))
	}
	if req.RupeeAmount != nil {
		opts = append(opts, entity.WithRupeeAmount(*req.RupeeAmount))
	}
	if req.Async {
		opts = append(opts, entity.WithStatus(entity.StatusPending))
	}
	return entity.NewLedgerEntry(userID, txType, req.CoinAmount, s.timeProvider, opts...)
}

// dispatchEarn runs an earn request through the earnings distributor, which logs its own failures
func (s *Service) dispatchEarn(ctx context.Context, req usecase.CreateTransactionRequest) (*usecase.TransactionResult, error) {
	earned, err := s.earnings.RecordEarning(ctx, usecase.EarningRequest{
		CreatorID:   req.UserID,
		CoinAmount:  req.CoinAmount,
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	return &usecase.TransactionResult{Success: true, Transaction: earned.Transaction, NewBalance: earned.NewEarnerBalance}, nil
}

// dispatchWithdraw runs a withdraw request through withdrawal settlement
func (s *Service) dispatchWithdraw(ctx context.Context, req usecase.CreateTransactionRequest) (*usecase.TransactionResult, error) {
	settled, err := s.withdrawals.Withdraw(ctx, usecase.WithdrawalRequest{
		CreatorID:       req.UserID,
		CoinAmount:      req.CoinAmount,
		RupeeEquivalent: req.RupeeAmount,
		PaymentID:       req.PaymentID,
		Description:     req.Description,
	})
	if err != nil {
		return nil, err
	}
	return &usecase.TransactionResult{
		Success:     true,
		Transaction: settled.Transaction,
		NewBalance:  settled.NewEarnerBalance,
		Duplicate:   settled.Duplicate,
	}, nil
}

// duplicatePayment answers a request that lost the race on the payment id index
func (s *Service) duplicatePayment(ctx context.Context, txType entity.TransactionType, req usecase.CreateTransactionRequest) (*usecase.TransactionResult, error) {
	existing, err := s.idempotency.CheckPayment(ctx, s.uow.GetLedgerRepository(ctx), txType, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.NewDuplicatePaymentError(req.PaymentID, "")
	}
	return s.duplicateResult(ctx, existing)
}

// duplicateResult reports an already applied entry with the account's current balance
func (s *Service) duplicateResult(ctx context.Context, existing *entity.LedgerEntry) (*usecase.TransactionResult, error) {
	acc, err := s.uow.GetAccountRepository(ctx).GetSpender(ctx, existing.UserID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Duplicate payment ignored", map[string]any{
		"payment_id": existing.PaymentID,
		"entry_id":   existing.ID,
		"user_id":    existing.UserID,
	})
	return &usecase.TransactionResult{Success: true, Transaction: existing, NewBalance: acc.CoinBalance(), Duplicate: true}, nil
}

func (s *Service) logFailure(message string, txType entity.TransactionType, req usecase.CreateTransactionRequest, err error) {
	fields := errs.LogFields(err)
	fields["user_id"] = req.UserID
	fields["transaction_type"] = txType
	fields["coin_amount"] = req.CoinAmount
	if errs.IsBusinessError(err) {
		s.logger.Info(message, fields)
		return
	}
	s.logger.Error(message, fields)
}
