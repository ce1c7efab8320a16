package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment    string               `mapstructure:"environment"`
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Logger         LoggerConfig         `mapstructure:"logger"`
	Ledger         LedgerConfig         `mapstructure:"ledger"`
	Notifier       NotifierConfig       `mapstructure:"notifier"`
	Reconciliation ReconciliationConfig `mapstructure:"reconciliation"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig contains database connection settings.
// Driver "memory" runs the ledger on the in-process store and ignores the other fields.
type DatabaseConfig struct {
	Driver             string        `mapstructure:"driver"`
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Username           string        `mapstructure:"username"`
	Password           string        `mapstructure:"password"`
	Database           string        `mapstructure:"database"`
	SSLMode            string        `mapstructure:"sslMode"`
	MaxOpenConns       int           `mapstructure:"maxOpenConns"`
	MaxIdleConns       int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime    time.Duration `mapstructure:"connMaxLifetime"`
	ConnMaxIdleTime    time.Duration `mapstructure:"connMaxIdleTime"`
	QueryTimeout       time.Duration `mapstructure:"queryTimeout"`
	LogLevel           string        `mapstructure:"logLevel"`
	SlowQueryThreshold time.Duration `mapstructure:"slowQueryThreshold"`
	PrepareStmt        bool          `mapstructure:"prepareStmt"`
	IsolationLevel     string        `mapstructure:"isolationLevel"`
	RetryAttempts      int           `mapstructure:"retryAttempts"`
	RetryDelay         time.Duration `mapstructure:"retryDelay"`
	MonitorInterval    time.Duration `mapstructure:"monitorInterval"`
	AutoMigrate        bool          `mapstructure:"autoMigrate"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LedgerConfig contains the ledger rules and unit settings
type LedgerConfig struct {
	MaxCoinAmount       int64         `mapstructure:"maxCoinAmount"`
	MinWithdrawalCoins  int64         `mapstructure:"minWithdrawalCoins"`
	CoinsPerRupee       int64         `mapstructure:"coinsPerRupee"`
	RefundPolicy        string        `mapstructure:"refundPolicy"`
	UnitTimeout         time.Duration `mapstructure:"unitTimeout"`
	MaxAttempts         int           `mapstructure:"maxAttempts"`
	HistoryDefaultLimit int           `mapstructure:"historyDefaultLimit"`
	HistoryMaxLimit     int           `mapstructure:"historyMaxLimit"`
}

// NotifierConfig selects where balance changes are published
type NotifierConfig struct {
	Hub            bool          `mapstructure:"hub"`
	HubBuffer      int           `mapstructure:"hubBuffer"`
	RedisEnabled   bool          `mapstructure:"redisEnabled"`
	RedisAddr      string        `mapstructure:"redisAddr"`
	RedisPassword  string        `mapstructure:"redisPassword"`
	RedisDB        int           `mapstructure:"redisDB"`
	ChannelPrefix  string        `mapstructure:"channelPrefix"`
	PublishTimeout time.Duration `mapstructure:"publishTimeout"`
}

// ReconciliationConfig controls the periodic reconciliation sweep
type ReconciliationConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Workers  int           `mapstructure:"workers"`
	PageSize int           `mapstructure:"pageSize"`
}

var validRefundPolicies = map[string]bool{
	"restore_balance": true,
	"reverse_spend":   true,
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	var errList []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errList = append(errList, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}
	switch c.Database.Driver {
	case "memory":
	case "postgres":
		if c.Database.Host == "" {
			errList = append(errList, errors.New("database.host is required"))
		}
		if c.Database.Database == "" {
			errList = append(errList, errors.New("database.database is required"))
		}
	default:
		errList = append(errList, fmt.Errorf("unsupported database.driver %q", c.Database.Driver))
	}
	if c.Ledger.MaxCoinAmount <= 0 {
		errList = append(errList, errors.New("ledger.maxCoinAmount must be positive"))
	}
	if c.Ledger.MinWithdrawalCoins <= 0 {
		errList = append(errList, errors.New("ledger.minWithdrawalCoins must be positive"))
	}
	if c.Ledger.CoinsPerRupee <= 0 {
		errList = append(errList, errors.New("ledger.coinsPerRupee must be positive"))
	}
	if !validRefundPolicies[c.Ledger.RefundPolicy] {
		errList = append(errList, fmt.Errorf("invalid ledger.refundPolicy %q", c.Ledger.RefundPolicy))
	}
	if c.Ledger.MaxAttempts <= 0 {
		errList = append(errList, errors.New("ledger.maxAttempts must be positive"))
	}
	if c.Ledger.HistoryMaxLimit < c.Ledger.HistoryDefaultLimit {
		errList = append(errList, errors.New("ledger.historyMaxLimit must not be below historyDefaultLimit"))
	}
	if c.Notifier.RedisEnabled && c.Notifier.RedisAddr == "" {
		errList = append(errList, errors.New("notifier.redisAddr is required when redis is enabled"))
	}
	if c.Reconciliation.Interval < 0 {
		errList = append(errList, errors.New("reconciliation.interval must not be negative"))
	}

	return errors.Join(errList...)
}
