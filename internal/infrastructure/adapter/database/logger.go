package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	coreport "github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// DatabaseLogger is a GORM logger that writes through the core logger
type DatabaseLogger struct {
	coreLogger    coreport.Logger
	logLevel      logger.LogLevel
	slowThreshold time.Duration
	timeProvider  coreport.TimeProvider
}

var _ logger.Interface = (*DatabaseLogger)(nil)

// ParseLogLevel maps a configured level name to a GORM log level, defaulting to warn
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// NewDatabaseLogger creates a new database logger. A zero slowThreshold disables slow query warnings.
func NewDatabaseLogger(coreLogger coreport.Logger, timeProvider coreport.TimeProvider, level string, slowThreshold time.Duration) *DatabaseLogger {
	return &DatabaseLogger{
		coreLogger:    coreLogger.With(map[string]any{"source": "database"}),
		logLevel:      ParseLogLevel(level),
		slowThreshold: slowThreshold,
		timeProvider:  timeProvider,
	}
}

// LogMode sets the log level for the logger
func (l *DatabaseLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.logLevel = level
	return &newLogger
}

// Info logs info messages
func (l *DatabaseLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Info {
		l.coreLogger.Info(fmt.Sprintf(msg, data...), nil)
	}
}

// Warn logs warn messages
func (l *DatabaseLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Warn {
		l.coreLogger.Warn(fmt.Sprintf(msg, data...), nil)
	}
}

// Error logs error messages
func (l *DatabaseLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.logLevel >= logger.Error {
		l.coreLogger.Error(fmt.Sprintf(msg, data...), nil)
	}
}

// Trace logs SQL operations
func (l *DatabaseLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.logLevel <= logger.Silent {
		return
	}

	elapsed := l.timeProvider.Since(begin).Std()
	sql, rows := fc()

	fields := map[string]any{
		"elapsed_ms": elapsed.Milliseconds(),
		"rows":       rows,
		"sql":        sql,
	}
	if queryType := extractQueryType(sql); queryType != "" {
		fields["type"] = queryType
	}
	if tableName := extractTableName(sql); tableName != "" {
		fields["table"] = tableName
	}

	// Lookups that find nothing are answered as domain errors by the repositories
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.logLevel >= logger.Error:
		fields["error"] = err
		l.coreLogger.Error("SQL Error", fields)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.logLevel >= logger.Warn:
		l.coreLogger.Warn("Slow SQL Query", fields)
	case l.logLevel >= logger.Info:
		l.coreLogger.Debug("SQL Query", fields)
	}
}

// extractQueryType determines the type of SQL query
func extractQueryType(sql string) string {
	sqlUpper := strings.ToUpper(strings.TrimSpace(sql))
	for _, kind := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sqlUpper, kind) {
			return kind
		}
	}
	return ""
}

// extractTableName returns the first table named after FROM, INTO or UPDATE
func extractTableName(sql string) string {
	trimmed := strings.TrimSpace(sql)
	sqlUpper := strings.ToUpper(trimmed)

	var start int
	switch {
	case strings.HasPrefix(sqlUpper, "UPDATE "):
		start = len("UPDATE ")
	case strings.Contains(sqlUpper, " INTO "):
		start = strings.Index(sqlUpper, " INTO ") + len(" INTO ")
	case strings.Contains(sqlUpper, " FROM "):
		start = strings.Index(sqlUpper, " FROM ") + len(" FROM ")
	default:
		return ""
	}

	remainder := strings.TrimSpace(trimmed[start:])
	if end := strings.IndexAny(remainder, " (\n"); end != -1 {
		remainder = remainder[:end]
	}
	return strings.Trim(remainder, `"`)
}
