package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/model"
)

// AccountRepository implements persistence.AccountRepository using GORM
type AccountRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.AccountRepository = (*AccountRepository)(nil)

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func spenderToEntity(m *model.SpenderAccount) *entity.SpenderAccount {
	return entity.RestoreSpenderAccount(m.UserID, m.CoinBalance, m.TotalCoinsPurchased, m.TotalCoinsSpent, m.Version, m.CreatedAt, m.UpdatedAt)
}

func earnerToEntity(m *model.EarnerAccount) *entity.EarnerAccount {
	return entity.RestoreEarnerAccount(m.CreatorID, m.CoinBalance, m.TotalCoinsEarned, m.CoinsWithdrawn, m.Version, m.CreatedAt, m.UpdatedAt)
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation, accountID string, err error) error {
	mapped := r.errorClassifier.mapError(err, fmt.Errorf("%w: %s", errs.ErrAccountNotFound, accountID))
	if errs.IsNotFoundError(mapped) {
		r.logger.Debug("Account not found", map[string]any{"account_id": accountID, "operation": operation})
		return mapped
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"account_id": accountID,
		"error":      err.Error(),
	})
	return mapped
}

func (r *AccountRepository) getSpender(ctx context.Context, userID string, lock bool) (*entity.SpenderAccount, error) {
	query := r.db.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m model.SpenderAccount
	if err := query.Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, r.handleDatabaseError("getting spender account", userID, err)
	}
	return spenderToEntity(&m), nil
}

// GetSpender reads a spender row without locking
func (r *AccountRepository) GetSpender(ctx context.Context, userID string) (*entity.SpenderAccount, error) {
	return r.getSpender(ctx, userID, false)
}

// GetSpenderForUpdate reads a spender row with SELECT ... FOR UPDATE
func (r *AccountRepository) GetSpenderForUpdate(ctx context.Context, userID string) (*entity.SpenderAccount, error) {
	return r.getSpender(ctx, userID, true)
}

// CreateSpender inserts a spender row
func (r *AccountRepository) CreateSpender(ctx context.Context, account *entity.SpenderAccount) error {
	m := model.SpenderAccount{
		UserID:              account.UserID,
		CoinBalance:         account.CoinBalance(),
		TotalCoinsPurchased: account.TotalCoinsPurchased,
		TotalCoinsSpent:     account.TotalCoinsSpent,
		Version:             account.Version,
		CreatedAt:           account.CreatedAt,
		UpdatedAt:           account.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			return errs.ErrDuplicateAccount
		}
		return r.handleDatabaseError("creating spender account", account.UserID, err)
	}
	return nil
}

// SaveSpender writes the row if its version is unchanged and bumps the version
func (r *AccountRepository) SaveSpender(ctx context.Context, account *entity.SpenderAccount) error {
	result := r.db.WithContext(ctx).Model(&model.SpenderAccount{}).
		Where("user_id = ? AND version = ?", account.UserID, account.Version).
		Updates(map[string]any{
			"coin_balance":          account.CoinBalance(),
			"total_coins_purchased": account.TotalCoinsPurchased,
			"total_coins_spent":     account.TotalCoinsSpent,
			"version":               account.Version + 1,
			"updated_at":            account.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("saving spender account", account.UserID, result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Spender account changed since it was read", map[string]any{
			"user_id": account.UserID,
			"version": account.Version,
		})
		return errs.ErrConcurrentUpdate
	}

	account.Version++
	return nil
}

func (r *AccountRepository) getEarner(ctx context.Context, creatorID string, lock bool) (*entity.EarnerAccount, error) {
	query := r.db.WithContext(ctx)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m model.EarnerAccount
	if err := query.Where("creator_id = ?", creatorID).First(&m).Error; err != nil {
		return nil, r.handleDatabaseError("getting earner account", creatorID, err)
	}
	return earnerToEntity(&m), nil
}

// GetEarner reads an earner row without locking
func (r *AccountRepository) GetEarner(ctx context.Context, creatorID string) (*entity.EarnerAccount, error) {
	return r.getEarner(ctx, creatorID, false)
}

// GetEarnerForUpdate reads an earner row with SELECT ... FOR UPDATE
func (r *AccountRepository) GetEarnerForUpdate(ctx context.Context, creatorID string) (*entity.EarnerAccount, error) {
	return r.getEarner(ctx, creatorID, true)
}

// CreateEarner inserts an earner row
func (r *AccountRepository) CreateEarner(ctx context.Context, account *entity.EarnerAccount) error {
	m := model.EarnerAccount{
		CreatorID:        account.CreatorID,
		CoinBalance:      account.CoinBalance(),
		TotalCoinsEarned: account.TotalCoinsEarned,
		CoinsWithdrawn:   account.CoinsWithdrawn,
		Version:          account.Version,
		CreatedAt:        account.CreatedAt,
		UpdatedAt:        account.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			return errs.ErrDuplicateAccount
		}
		return r.handleDatabaseError("creating earner account", account.CreatorID, err)
	}
	return nil
}

// SaveEarner writes the row if its version is unchanged and bumps the version
func (r *AccountRepository) SaveEarner(ctx context.Context, account *entity.EarnerAccount) error {
	result := r.db.WithContext(ctx).Model(&model.EarnerAccount{}).
		Where("creator_id = ? AND version = ?", account.CreatorID, account.Version).
		Updates(map[string]any{
			"coin_balance":       account.CoinBalance(),
			"total_coins_earned": account.TotalCoinsEarned,
			"coins_withdrawn":    account.CoinsWithdrawn,
			"version":            account.Version + 1,
			"updated_at":         account.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("saving earner account", account.CreatorID, result.Error)
	}
	if result.RowsAffected == 0 {
		r.logger.Warn("Earner account changed since it was read", map[string]any{
			"creator_id": account.CreatorID,
			"version":    account.Version,
		})
		return errs.ErrConcurrentUpdate
	}

	account.Version++
	return nil
}

// ListAccountIDs pages through every spender or earner id in ascending order
func (r *AccountRepository) ListAccountIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Raw(
		`SELECT id FROM (
			SELECT user_id AS id FROM spender_accounts
			UNION
			SELECT creator_id AS id FROM earner_accounts
		) AS accounts WHERE id > ? ORDER BY id LIMIT ?`,
		afterID, limit,
	).Scan(&ids).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing accounts", afterID, err)
	}
	return ids, nil
}
