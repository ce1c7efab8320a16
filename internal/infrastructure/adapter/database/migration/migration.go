package migration

import (
	"context"
	"errors"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/model"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.0.0"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db               *gorm.DB
	logger           coreport.Logger
	timeProvider     coreport.TimeProvider
	advancedIndexMgr *AdvancedIndexManager
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:               db,
		logger:           logger,
		timeProvider:     timeProvider,
		advancedIndexMgr: NewAdvancedIndexManager(db, logger),
	}
}

// MigrateAll brings the schema to CurrentSchemaVersion. It is a no-op on an up to date database.
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{"error": err})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{"error": err})
		return err
	}
	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	// Every step is idempotent so a migration interrupted halfway can be rerun
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := m.autoMigrateModels(tx); err != nil {
			return err
		}
		if err := m.advancedIndexMgr.CreateLedgerConstraints(tx); err != nil {
			return err
		}
		if err := m.advancedIndexMgr.CreateAdvancedIndexes(tx); err != nil {
			return err
		}
		return m.setVersion(tx, CurrentSchemaVersion, "Coin ledger schema")
	})
	if err != nil {
		m.logger.Error("Database migration failed", map[string]any{
			"error":           err,
			"current_version": currentVersion,
			"target_version":  CurrentSchemaVersion,
		})
		return err
	}

	m.advancedIndexMgr.ApplyPerformanceTweaks(db)

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion gets the current migration version, empty on a fresh database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").First(&version)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}
	return version.Version, nil
}

func (m *MigrationManager) setVersion(tx *gorm.DB, version string, details string) error {
	return tx.Create(&model.MigrationVersion{
		Version:   version,
		AppliedAt: m.timeProvider.Now(),
		Details:   details,
	}).Error
}

func (m *MigrationManager) autoMigrateModels(tx *gorm.DB) error {
	m.logger.Info("Auto-migrating database models", nil)
	return tx.AutoMigrate(
		&model.SpenderAccount{},
		&model.EarnerAccount{},
		&model.LedgerEntry{},
	)
}
