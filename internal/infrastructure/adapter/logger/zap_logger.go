package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/core"
)

// ZapLogger implements the Logger interface using Zap
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// NewZapLogger creates a new zap-based logger instance
func NewZapLogger(isProduction bool) core.Logger {
	var cfg zap.Config

	if isProduction {
		// JSON for log shippers
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)

	zapLogger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return &ZapLogger{logger: zapLogger, level: cfg.Level}
}

// NewZapLoggerWithCore wraps an existing core, e.g. an observer in tests
func NewZapLoggerWithCore(zc zapcore.Core, level zap.AtomicLevel) core.Logger {
	return &ZapLogger{logger: zap.New(zc), level: level}
}

// NewDefaultLogger creates a standard logger for the application
func NewDefaultLogger() core.Logger {
	return NewZapLogger(false)
}

func toZapLevel(level core.LogLevel) zapcore.Level {
	switch level {
	case core.LogLevelDebug:
		return zap.DebugLevel
	case core.LogLevelWarn:
		return zap.WarnLevel
	case core.LogLevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// SetLevel sets the minimum log level; loggers derived with With share it
func (l *ZapLogger) SetLevel(level core.LogLevel) {
	l.level.SetLevel(toZapLevel(level))
}

// GetLevel gets the current log level
func (l *ZapLogger) GetLevel() core.LogLevel {
	switch l.level.Level() {
	case zap.DebugLevel:
		return core.LogLevelDebug
	case zap.WarnLevel:
		return core.LogLevelWarn
	case zap.ErrorLevel, zap.DPanicLevel, zap.PanicLevel, zap.FatalLevel:
		return core.LogLevelError
	default:
		return core.LogLevelInfo
	}
}

// With returns a child logger carrying fields on every entry
func (l *ZapLogger) With(fields map[string]any) core.Logger {
	return &ZapLogger{logger: l.logger.With(mapToZapFields(fields)...), level: l.level}
}

// mapToZapFields converts a map of fields to zap fields
func mapToZapFields(fields map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		if err, ok := v.(error); ok {
			zapFields = append(zapFields, zap.NamedError(k, err))
			continue
		}
		zapFields = append(zapFields, zap.Any(k, v))
	}
	return zapFields
}

// Debug logs debug messages
func (l *ZapLogger) Debug(message string, fields map[string]any) {
	l.logger.Debug(message, mapToZapFields(fields)...)
}

// Info logs informational messages
func (l *ZapLogger) Info(message string, fields map[string]any) {
	l.logger.Info(message, mapToZapFields(fields)...)
}

// Warn logs warning messages
func (l *ZapLogger) Warn(message string, fields map[string]any) {
	l.logger.Warn(message, mapToZapFields(fields)...)
}

// Error logs error messages
func (l *ZapLogger) Error(message string, fields map[string]any) {
	l.logger.Error(message, mapToZapFields(fields)...)
}

// Flush ensures all buffered logs are written
func (l *ZapLogger) Flush() error {
	return l.logger.Sync()
}
