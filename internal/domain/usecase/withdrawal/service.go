package withdrawal

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/notify"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/usecase/validation"
)

// DefaultMinWithdrawalCoins is the payout floor when none is configured
const DefaultMinWithdrawalCoins int64 = 2000

// Config holds the payout rules
type Config struct {
	MinWithdrawalCoins int64
	MaxCoinAmount      int64
}

// Service settles creator payouts against earner balances
type Service struct {
	uow          persistence.UnitOfWork
	converter    *entity.CoinConverter
	validator    *validation.Validator
	minimum      int64
	publisher    *notify.Publisher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.WithdrawalUseCase = (*Service)(nil)

// NewService creates a new withdrawal service
func NewService(
	uow persistence.UnitOfWork,
	converter *entity.CoinConverter,
	notifier coreport.BalanceNotifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg Config,
) *Service {
	minimum := cfg.MinWithdrawalCoins
	if minimum <= 0 {
		minimum = DefaultMinWithdrawalCoins
	}
	return &Service{
		uow:          uow,
		converter:    converter,
		validator:    validation.NewValidator(cfg.MaxCoinAmount),
		minimum:      minimum,
		publisher:    notify.NewPublisher(notifier, logger),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Minimum returns the smallest coin amount that can be withdrawn
func (s *Service) Minimum() int64 {
	return s.minimum
}

// Withdraw settles a payout in its own unit and notifies subscribers after commit
func (s *Service) Withdraw(ctx context.Context, req usecase.WithdrawalRequest) (*usecase.WithdrawalResult, error) {
	var result *usecase.WithdrawalResult
	err := s.uow.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.Settle(txCtx, req)
		return err
	})
	if errors.Is(err, errs.ErrDuplicatePayment) && req.PaymentID != "" {
		result, err = s.replay(ctx, req)
	}
	if err != nil {
		s.logFailure(req, err)
		return nil, err
	}

	if !result.Duplicate {
		s.publisher.Publish(ctx, result.Transaction.BalanceChange(result.NewEarnerBalance))
	}
	return result, nil
}

// Settle debits the earner balance and records the payout inside the unit carried by ctx.
// The minimum and balance checks run before anything is written. Failures are
// returned unlogged; the caller owning the unit logs them.
func (s *Service) Settle(ctx context.Context, req usecase.WithdrawalRequest) (*usecase.WithdrawalResult, error) {
	if err := s.validator.Amount(req.CoinAmount); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if req.CoinAmount < s.minimum {
		return nil, errs.NewBelowMinimumError(req.CoinAmount, s.minimum)
	}

	rupees := s.converter.ToCurrency(req.CoinAmount)
	if req.RupeeEquivalent != nil && !s.converter.Matches(req.CoinAmount, *req.RupeeEquivalent) {
		return nil, fmt.Errorf("%w: %d coins convert to %s, got %s", errs.ErrInvalidAmount,
			req.CoinAmount, s.converter.Format(req.CoinAmount), req.RupeeEquivalent.String())
	}

	var result *usecase.WithdrawalResult
	err := s.uow.RunInTransaction(ctx, func(txCtx context.Context) error {
		accounts := s.uow.GetAccountRepository(txCtx)
		entries := s.uow.GetLedgerRepository(txCtx)

		acc, err := accounts.GetEarnerForUpdate(txCtx, req.CreatorID)
		if err != nil {
			return err
		}

		if req.PaymentID != "" {
			existing, err := entries.FindActiveByPaymentID(txCtx, entity.TypeWithdraw, req.PaymentID)
			if err != nil {
				return err
			}
			if existing != nil {
				result = &usecase.WithdrawalResult{Transaction: existing, NewEarnerBalance: acc.CoinBalance(), Duplicate: true}
				return nil
			}
		}

		if acc.CoinBalance() < req.CoinAmount {
			return errs.NewInsufficientBalanceError(req.CreatorID, req.CoinAmount, acc.CoinBalance())
		}

		entry, err := entity.NewLedgerEntry(req.CreatorID, entity.TypeWithdraw, req.CoinAmount, s.timeProvider,
			entity.WithRupeeAmount(rupees),
			entity.WithPaymentID(req.PaymentID),
			entity.WithDescription(req.Description),
		)
		if err != nil {
			return err
		}
		if err := entries.Create(txCtx, entry); err != nil {
			return err
		}

		balance, err := acc.ApplyWithdrawal(req.CoinAmount, s.timeProvider)
		if err != nil {
			return err
		}
		if err := accounts.SaveEarner(txCtx, acc); err != nil {
			return err
		}

		result = &usecase.WithdrawalResult{Transaction: entry, NewEarnerBalance: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Withdrawal settled", map[string]any{
		"creator_id":         req.CreatorID,
		"entry_id":           result.Transaction.ID,
		"coin_amount":        req.CoinAmount,
		"rupee_amount":       result.Transaction.RupeeAmount.Decimal.StringFixed(entity.CurrencyDecimalPlaces),
		"new_earner_balance": result.NewEarnerBalance,
		"duplicate":          result.Duplicate,
	})
	return result, nil
}

func (s *Service) logFailure(req usecase.WithdrawalRequest, err error) {
	fields := errs.LogFields(err)
	fields["creator_id"] = req.CreatorID
	fields["coin_amount"] = req.CoinAmount
	if errs.IsBusinessError(err) {
		s.logger.Info("Withdrawal not settled", fields)
		return
	}
	s.logger.Error("Withdrawal failed", fields)
}

// replay answers a payout that lost the race on the payment id index
func (s *Service) replay(ctx context.Context, req usecase.WithdrawalRequest) (*usecase.WithdrawalResult, error) {
	existing, err := s.uow.GetLedgerRepository(ctx).FindActiveByPaymentID(ctx, entity.TypeWithdraw, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.NewDuplicatePaymentError(req.PaymentID, "")
	}
	acc, err := s.uow.GetAccountRepository(ctx).GetEarner(ctx, req.CreatorID)
	if err != nil {
		return nil, err
	}
	return &usecase.WithdrawalResult{Transaction: existing, NewEarnerBalance: acc.CoinBalance(), Duplicate: true}, nil
}
