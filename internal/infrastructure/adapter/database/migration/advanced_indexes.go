package migration

import (
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// Index names the repositories rely on when classifying unique violations
const (
	PaymentIndexName = "idx_ledger_entries_active_payment"
	EventIndexName   = "idx_ledger_entries_event"
)

// AdvancedIndexManager manages PostgreSQL-specific constraints and indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type statement struct {
	name string
	sql  string
}

// ledgerConstraints back the domain invariants in the database itself
var ledgerConstraints = []statement{
	{"spender balance check", `DO $$ BEGIN
		ALTER TABLE spender_accounts ADD CONSTRAINT chk_spender_accounts_balance_non_negative CHECK (coin_balance >= 0);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`},
	{"earner balance check", `DO $$ BEGIN
		ALTER TABLE earner_accounts ADD CONSTRAINT chk_earner_accounts_balance_non_negative CHECK (coin_balance >= 0);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`},
	{"entry amount check", `DO $$ BEGIN
		ALTER TABLE ledger_entries ADD CONSTRAINT chk_ledger_entries_amount_positive CHECK (coin_amount > 0);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`},
	// One active entry per payment id and type; failed entries free the id for a retry
	{"active payment index", `CREATE UNIQUE INDEX IF NOT EXISTS ` + PaymentIndexName + `
		ON ledger_entries (transaction_type, payment_id)
		WHERE payment_id <> '' AND status IN ('pending', 'completed')`},
	// One spend and one earn per business event
	{"event index", `CREATE UNIQUE INDEX IF NOT EXISTS ` + EventIndexName + `
		ON ledger_entries (event_id, transaction_type)
		WHERE event_id <> ''`},
}

var advancedIndexes = []statement{
	{"history index", `CREATE INDEX IF NOT EXISTS idx_ledger_entries_user_created
		ON ledger_entries (user_id, created_at DESC, id DESC)`},
	{"applied entries index", `CREATE INDEX IF NOT EXISTS idx_ledger_entries_applied
		ON ledger_entries (user_id, transaction_type)
		WHERE status IN ('completed', 'refunded')`},
	{"pending entries index", `CREATE INDEX IF NOT EXISTS idx_ledger_entries_pending
		ON ledger_entries (created_at)
		WHERE status = 'pending'`},
}

// CreateLedgerConstraints creates the checks and unique indexes that guard balances and idempotency
func (m *AdvancedIndexManager) CreateLedgerConstraints(tx *gorm.DB) error {
	m.logger.Info("Creating ledger constraints", nil)
	return m.exec(tx, ledgerConstraints)
}

// CreateAdvancedIndexes creates query indexes for history and reconciliation
func (m *AdvancedIndexManager) CreateAdvancedIndexes(tx *gorm.DB) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)
	return m.exec(tx, advancedIndexes)
}

func (m *AdvancedIndexManager) exec(tx *gorm.DB, statements []statement) error {
	for _, s := range statements {
		if err := tx.Exec(s.sql).Error; err != nil {
			m.logger.Error("Failed to create "+s.name, map[string]any{"error": err})
			return err
		}
	}
	return nil
}

// ApplyPerformanceTweaks applies PostgreSQL storage settings; failures are logged and ignored
func (m *AdvancedIndexManager) ApplyPerformanceTweaks(db *gorm.DB) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	// Account rows are updated in place on every mutation
	tweaks := []statement{
		{"spender fillfactor", `ALTER TABLE spender_accounts SET (fillfactor = 80)`},
		{"earner fillfactor", `ALTER TABLE earner_accounts SET (fillfactor = 80)`},
		{"user_id statistics", `ALTER TABLE ledger_entries ALTER COLUMN user_id SET STATISTICS 1000`},
	}
	for _, t := range tweaks {
		if err := db.Exec(t.sql).Error; err != nil {
			m.logger.Warn("Failed to apply "+t.name, map[string]any{"error": err})
		}
	}
}
