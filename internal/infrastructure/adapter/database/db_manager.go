package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/adapter/database/migration"
)

// Manager manages database connections
type Manager struct {
	config       *Config
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	monitor      *PoolMonitor
	dialector    func(dsn string) gorm.Dialector
}

// NewManager creates a new database manager
func NewManager(config *Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		timeProvider: timeProvider,
		dialector:    postgres.Open,
	}
}

// Connect opens the pool, retrying with exponential backoff while the server is unreachable
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	m.logger.Info("Connecting to database", map[string]any{
		"driver": m.config.Driver,
		"host":   m.config.Host,
		"port":   m.config.Port,
		"name":   m.config.Database,
	})

	gormConfig := &gorm.Config{
		Logger: NewDatabaseLogger(m.logger, m.timeProvider, m.config.LogLevel, m.config.SlowQueryThreshold),
		NowFunc: func() time.Time {
			return m.timeProvider.Now()
		},
		PrepareStmt:            m.config.PrepareStmt,
		SkipDefaultTransaction: true,
	}

	b := backoff.NewExponentialBackOff()
	if m.config.RetryDelay > 0 {
		b.InitialInterval = m.config.RetryDelay
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(m.config.RetryAttempts)), ctx)

	attempt := 0
	gormDB, err := backoff.RetryNotifyWithData(func() (*gorm.DB, error) {
		attempt++
		return gorm.Open(m.dialector(m.config.DSN()), gormConfig)
	}, policy, func(err error, next time.Duration) {
		m.logger.Warn("Retrying database connection", map[string]any{
			"attempt":     attempt,
			"of":          m.config.RetryAttempts + 1,
			"error":       err.Error(),
			"retry_after": next.String(),
		})
	})
	if err != nil {
		m.logger.Error("Failed to connect to database", map[string]any{
			"error":    err.Error(),
			"attempts": attempt,
		})
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempt, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.logger.Info("Successfully connected to database", map[string]any{
		"host":           m.config.Host,
		"name":           m.config.Database,
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
		"attempts":       attempt,
	})

	m.db = gormDB
	if m.config.MonitorInterval > 0 {
		m.monitor = NewPoolMonitor(sqlDB, m.logger)
		m.monitor.Start(m.config.MonitorInterval)
	}
	return m.db, nil
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Migrate brings the schema up to date
func (m *Manager) Migrate(ctx context.Context) error {
	return migration.NewMigrationManager(m.db, m.logger, m.timeProvider).MigrateAll(ctx)
}

// Ping checks that the database answers within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database is not connected")
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.monitor != nil {
		m.monitor.Stop()
	}
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// WithTimeout returns a context with timeout for database operations
func (m *Manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.config.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return m.timeProvider.WithTimeout(ctx, coreport.Duration(m.config.QueryTimeout))
}

// CreateUnitOfWork creates a UnitOfWork over the connected pool using the configured isolation level
func (m *Manager) CreateUnitOfWork(opts UnitOptions) (*UnitOfWork, error) {
	txOpts, err := m.config.TxOptions()
	if err != nil {
		return nil, err
	}
	opts.TxOptions = txOpts
	return NewUnitOfWork(m.db, opts, m.logger, m.timeProvider), nil
}
