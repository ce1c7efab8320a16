package ledger

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
)

// SettleContentPurchase debits the viewer and credits the creator as one unit keyed by EventID.
//
// The spender row is locked before the earner row. Replaying an event that already
// has an applied spend returns the stored pair with Duplicate set.
func (s *Service) SettleContentPurchase(ctx context.Context, req usecase.ContentPurchaseRequest) (*usecase.ContentPurchaseResult, error) {
	if err := s.validator.Amount(req.CoinAmount); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	spend, earn, err := s.idempotency.CheckEvent(ctx, s.uow.GetLedgerRepository(ctx), req.EventID)
	if err != nil {
		return nil, err
	}
	if spend != nil {
		return s.duplicateSettlement(ctx, req, spend, earn)
	}

	viewer, err := s.uow.GetAccountRepository(ctx).GetSpender(ctx, req.ViewerID)
	if err != nil {
		return nil, err
	}
	if !viewer.CanSpend(req.CoinAmount) {
		return nil, errs.NewInsufficientBalanceError(req.ViewerID, req.CoinAmount, viewer.CoinBalance())
	}

	var result *usecase.ContentPurchaseResult
	err = s.uow.RunInTransaction(ctx, func(txCtx context.Context) error {
		accounts := s.uow.GetAccountRepository(txCtx)
		entries := s.uow.GetLedgerRepository(txCtx)

		acc, err := accounts.GetSpenderForUpdate(txCtx, req.ViewerID)
		if err != nil {
			return err
		}

		spend, earn, err := s.idempotency.CheckEvent(txCtx, entries, req.EventID)
		if err != nil {
			return err
		}
		if spend != nil {
			result = &usecase.ContentPurchaseResult{Spend: spend, Earn: earn, NewViewerBalance: acc.CoinBalance(), Duplicate: true}
			return nil
		}

		spendEntry, err := entity.NewLedgerEntry(req.ViewerID, entity.TypeSpend, req.CoinAmount, s.timeProvider,
			entity.WithEventID(req.EventID),
			entity.WithContent(entity.ContentType(req.ContentType), req.ContentID),
			entity.WithDescription(req.Description),
		)
		if err != nil {
			return err
		}
		if err := entries.Create(txCtx, spendEntry); err != nil {
			return err
		}
		viewerBalance, err := s.applySpenderEntry(txCtx, accounts, entries, acc, spendEntry)
		if err != nil {
			return err
		}

		earned, err := s.earnings.Credit(txCtx, usecase.EarningRequest{
			CreatorID:   req.CreatorID,
			CoinAmount:  req.CoinAmount,
			ContentType: req.ContentType,
			ContentID:   req.ContentID,
			Description: req.Description,
			EventID:     req.EventID,
		})
		if err != nil {
			return err
		}

		result = &usecase.ContentPurchaseResult{
			Spend:            spendEntry,
			Earn:             earned.Transaction,
			NewViewerBalance: viewerBalance,
			NewEarnerBalance: earned.NewEarnerBalance,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrDuplicatePayment) {
			spend, earn, lookupErr := s.idempotency.CheckEvent(ctx, s.uow.GetLedgerRepository(ctx), req.EventID)
			if lookupErr == nil && spend != nil {
				return s.duplicateSettlement(ctx, req, spend, earn)
			}
		}
		fields := errs.LogFields(err)
		fields["event_id"] = req.EventID
		fields["viewer_id"] = req.ViewerID
		fields["creator_id"] = req.CreatorID
		fields["coin_amount"] = req.CoinAmount
		if errs.IsBusinessError(err) {
			s.logger.Info("Content purchase rejected", fields)
		} else {
			s.logger.Error("Content purchase failed", fields)
		}
		return nil, err
	}

	if result.Duplicate {
		return s.duplicateSettlement(ctx, req, result.Spend, result.Earn)
	}

	s.logger.Info("Content purchase settled", map[string]any{
		"event_id":           req.EventID,
		"viewer_id":          req.ViewerID,
		"creator_id":         req.CreatorID,
		"coin_amount":        req.CoinAmount,
		"new_viewer_balance": result.NewViewerBalance,
		"new_earner_balance": result.NewEarnerBalance,
	})
	s.publisher.Publish(ctx,
		result.Spend.BalanceChange(result.NewViewerBalance),
		result.Earn.BalanceChange(result.NewEarnerBalance),
	)
	return result, nil
}

// duplicateSettlement reports an already settled event with current balances
func (s *Service) duplicateSettlement(
	ctx context.Context,
	req usecase.ContentPurchaseRequest,
	spend, earn *entity.LedgerEntry,
) (*usecase.ContentPurchaseResult, error) {
	accounts := s.uow.GetAccountRepository(ctx)
	result := &usecase.ContentPurchaseResult{Spend: spend, Earn: earn, Duplicate: true}

	viewer, err := accounts.GetSpender(ctx, spend.UserID)
	if err != nil {
		return nil, err
	}
	result.NewViewerBalance = viewer.CoinBalance()

	if earn != nil {
		creator, err := accounts.GetEarner(ctx, earn.UserID)
		if err != nil {
			return nil, err
		}
		result.NewEarnerBalance = creator.CoinBalance()
	}

	s.logger.Info("Duplicate content purchase ignored", map[string]any{
		"event_id":  req.EventID,
		"viewer_id": spend.UserID,
		"entry_id":  spend.ID,
	})
	return result, nil
}
