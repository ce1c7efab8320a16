package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/coin-ledger/internal/infrastructure/config"
)

// Config represents database configuration
type Config struct {
	Driver             string
	Host               string
	Port               int
	Username           string
	Password           string
	Database           string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	QueryTimeout       time.Duration
	LogLevel           string
	SlowQueryThreshold time.Duration
	PrepareStmt        bool
	IsolationLevel     string
	RetryAttempts      int
	RetryDelay         time.Duration
	MonitorInterval    time.Duration
}

// NewConfig builds the database configuration from the application configuration
func NewConfig(c config.DatabaseConfig) *Config {
	return &Config{
		Driver:             c.Driver,
		Host:               c.Host,
		Port:               c.Port,
		Username:           c.Username,
		Password:           c.Password,
		Database:           c.Database,
		SSLMode:            c.SSLMode,
		MaxOpenConns:       c.MaxOpenConns,
		MaxIdleConns:       c.MaxIdleConns,
		ConnMaxLifetime:    c.ConnMaxLifetime,
		ConnMaxIdleTime:    c.ConnMaxIdleTime,
		QueryTimeout:       c.QueryTimeout,
		LogLevel:           c.LogLevel,
		SlowQueryThreshold: c.SlowQueryThreshold,
		PrepareStmt:        c.PrepareStmt,
		IsolationLevel:     c.IsolationLevel,
		RetryAttempts:      c.RetryAttempts,
		RetryDelay:         c.RetryDelay,
		MonitorInterval:    c.MonitorInterval,
	}
}

var validSSLModes = map[string]bool{
	"disable":     true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
	"prefer":      true,
}

var validLogLevels = map[string]bool{
	"silent": true,
	"error":  true,
	"warn":   true,
	"info":   true,
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
	if c.Host == "" {
		return errors.New("database host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", c.Port)
	}
	if c.Username == "" {
		return errors.New("database username is required")
	}
	if c.Database == "" {
		return errors.New("database name is required")
	}
	if !validSSLModes[c.SSLMode] {
		return fmt.Errorf("invalid SSL mode: %s", c.SSLMode)
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("max open connections must be positive, got: %d", c.MaxOpenConns)
	}
	if c.MaxIdleConns <= 0 {
		return fmt.Errorf("max idle connections must be positive, got: %d", c.MaxIdleConns)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts must be non-negative, got: %d", c.RetryAttempts)
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if _, err := c.TxOptions(); err != nil {
		return err
	}
	return nil
}

// TxOptions returns the options units begin their transaction with
func (c *Config) TxOptions() (*sql.TxOptions, error) {
	switch c.IsolationLevel {
	case "", "read_committed":
		return &sql.TxOptions{Isolation: sql.LevelReadCommitted}, nil
	case "repeatable_read":
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead}, nil
	case "serializable":
		return &sql.TxOptions{Isolation: sql.LevelSerializable}, nil
	default:
		return nil, fmt.Errorf("invalid isolation level: %s", c.IsolationLevel)
	}
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode,
	)
}
