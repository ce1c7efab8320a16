package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/coin-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/model"
)

var (
	activeStatuses  = []string{string(entity.StatusPending), string(entity.StatusCompleted)}
	appliedStatuses = []string{string(entity.StatusCompleted), string(entity.StatusRefunded)}
)

// LedgerRepository implements persistence.LedgerRepository using GORM
type LedgerRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

var _ persistence.LedgerRepository = (*LedgerRepository)(nil)

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func entryToModel(e *entity.LedgerEntry) *model.LedgerEntry {
	return &model.LedgerEntry{
		ID:              e.ID,
		UserID:          e.UserID,
		TransactionType: string(e.Type),
		CoinAmount:      e.CoinAmount,
		RupeeAmount:     e.RupeeAmount,
		ContentType:     string(e.ContentType),
		ContentID:       e.ContentID,
		PaymentID:       e.PaymentID,
		EventID:         e.EventID,
		RefundOf:        e.RefundOf,
		Status:          string(e.Status),
		Description:     e.Description,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func entryToEntity(m *model.LedgerEntry) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        entity.TransactionType(m.TransactionType),
		CoinAmount:  m.CoinAmount,
		RupeeAmount: m.RupeeAmount,
		ContentType: entity.ContentType(m.ContentType),
		ContentID:   m.ContentID,
		PaymentID:   m.PaymentID,
		EventID:     m.EventID,
		RefundOf:    m.RefundOf,
		Status:      entity.EntryStatus(m.Status),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func entriesToEntities(models []model.LedgerEntry) []*entity.LedgerEntry {
	entries := make([]*entity.LedgerEntry, 0, len(models))
	for i := range models {
		entries = append(entries, entryToEntity(&models[i]))
	}
	return entries
}

func (r *LedgerRepository) handleDatabaseError(operation, entryID string, err error) error {
	mapped := r.errorClassifier.mapError(err, fmt.Errorf("%w: %s", errs.ErrEntryNotFound, entryID))
	if !errs.IsNotFoundError(mapped) {
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
			"entry_id": entryID,
			"error":    err.Error(),
		})
	}
	return mapped
}

// Create appends an entry. A unique violation on the payment or event index is a duplicate.
func (r *LedgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	err := r.db.WithContext(ctx).Create(entryToModel(entry)).Error
	if err == nil {
		return nil
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		constraint := constraintName(err)
		r.logger.Info("Duplicate ledger entry rejected", map[string]any{
			"payment_id": entry.PaymentID,
			"event_id":   entry.EventID,
			"constraint": constraint,
		})
		if strings.Contains(constraint, "event") || (constraint == "" && entry.EventID != "") {
			return errs.NewDuplicatePaymentError(entry.EventID, "")
		}
		return errs.NewDuplicatePaymentError(entry.PaymentID, "")
	}
	return r.handleDatabaseError("creating ledger entry", entry.ID, err)
}

// UpdateStatus persists the entry's status and update time
func (r *LedgerRepository) UpdateStatus(ctx context.Context, entry *entity.LedgerEntry) error {
	result := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"status":     string(entry.Status),
			"updated_at": entry.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating ledger entry status", entry.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", errs.ErrEntryNotFound, entry.ID)
	}
	return nil
}

// GetByID retrieves an entry by id
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	var m model.LedgerEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, r.handleDatabaseError("getting ledger entry", id, err)
	}
	return entryToEntity(&m), nil
}

// FindActiveByPaymentID returns the pending or completed entry of txType carrying paymentID
func (r *LedgerRepository) FindActiveByPaymentID(ctx context.Context, txType entity.TransactionType, paymentID string) (*entity.LedgerEntry, error) {
	var models []model.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("transaction_type = ? AND payment_id = ? AND status IN ?", string(txType), paymentID, activeStatuses).
		Limit(1).
		Find(&models).Error
	if err != nil {
		return nil, r.handleDatabaseError("finding entry by payment id", paymentID, err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	return entryToEntity(&models[0]), nil
}

// FindByEventID returns every entry of one business event, oldest first
func (r *LedgerRepository) FindByEventID(ctx context.Context, eventID string) ([]*entity.LedgerEntry, error) {
	var models []model.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, r.handleDatabaseError("finding entries by event id", eventID, err)
	}
	return entriesToEntities(models), nil
}

// List returns a newest-first page and the total number of matching entries
func (r *LedgerRepository) List(ctx context.Context, filter persistence.HistoryFilter) ([]*entity.LedgerEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).Where("user_id = ?", filter.UserID)
	if filter.Type != "" {
		query = query.Where("transaction_type = ?", string(filter.Type))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, r.handleDatabaseError("counting ledger entries", filter.UserID, err)
	}

	var models []model.LedgerEntry
	err := query.Order("created_at DESC").Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, r.handleDatabaseError("listing ledger entries", filter.UserID, err)
	}
	return entriesToEntities(models), total, nil
}

// SumRefunds returns the coins already refunded against a spend entry
func (r *LedgerRepository) SumRefunds(ctx context.Context, spendEntryID string) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Select("COALESCE(SUM(coin_amount), 0)").
		Where("transaction_type = ? AND refund_of = ? AND status = ?",
			string(entity.TypeRefund), spendEntryID, string(entity.StatusCompleted)).
		Scan(&sum).Error
	if err != nil {
		return 0, r.handleDatabaseError("summing refunds", spendEntryID, err)
	}
	return sum, nil
}

type typeTotal struct {
	TransactionType string
	Total           int64
	Entries         int64
}

// Totals sums the applied entries of one user by type
func (r *LedgerRepository) Totals(ctx context.Context, userID string) (entity.LedgerTotals, error) {
	var rows []typeTotal
	err := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).
		Select("transaction_type, COALESCE(SUM(coin_amount), 0) AS total, COUNT(*) AS entries").
		Where("user_id = ? AND status IN ?", userID, appliedStatuses).
		Group("transaction_type").
		Scan(&rows).Error
	if err != nil {
		return entity.LedgerTotals{}, r.handleDatabaseError("summing ledger totals", userID, err)
	}

	var totals entity.LedgerTotals
	for _, row := range rows {
		switch entity.TransactionType(row.TransactionType) {
		case entity.TypePurchase:
			totals.Purchased = row.Total
		case entity.TypeSpend:
			totals.Spent = row.Total
		case entity.TypeRefund:
			totals.Refunded = row.Total
		case entity.TypeEarn:
			totals.Earned = row.Total
		case entity.TypeWithdraw:
			totals.Withdrawn = row.Total
		}
		totals.Entries += row.Entries
	}
	return totals, nil
}
