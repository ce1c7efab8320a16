package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "LEDGER"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
}

// errNoDotEnv is returned when none of DotEnvPaths exists
var errNoDotEnv = errors.New("no .env file found in search paths")

// LoadConfig loads configuration for the environment named by LEDGER_ENV
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development
	if err := loadDotEnvFile(); err != nil && !errors.Is(err, errNoDotEnv) {
		return nil, err
	}
	return Load(getEnvironment(), ConfigPaths...)
}

// Load reads <env>.yaml from the first of paths that has it, applies defaults
// and LEDGER_ prefixed environment overrides, and validates the result
func Load(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindSecrets(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// loadDotEnvFile loads the first .env file found; variables already set win
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}
	return errNoDotEnv
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "15s")
	v.SetDefault("server.writeTimeout", "15s")
	v.SetDefault("server.idleTimeout", "60s")
	v.SetDefault("server.readHeaderTimeout", "10s")
	v.SetDefault("server.shutdownTimeout", "10s")
	v.SetDefault("server.allowedOrigins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", "30m")
	v.SetDefault("database.connMaxIdleTime", "15m")
	v.SetDefault("database.queryTimeout", "5s")
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.slowQueryThreshold", "200ms")
	v.SetDefault("database.prepareStmt", true)
	v.SetDefault("database.isolationLevel", "read_committed")
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", "1s")
	v.SetDefault("database.monitorInterval", "30s")
	v.SetDefault("database.autoMigrate", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("ledger.maxCoinAmount", 10_000_000)
	v.SetDefault("ledger.minWithdrawalCoins", 2000)
	v.SetDefault("ledger.coinsPerRupee", 10)
	v.SetDefault("ledger.refundPolicy", "restore_balance")
	v.SetDefault("ledger.unitTimeout", "5s")
	v.SetDefault("ledger.maxAttempts", 5)
	v.SetDefault("ledger.historyDefaultLimit", 20)
	v.SetDefault("ledger.historyMaxLimit", 100)

	v.SetDefault("notifier.hub", true)
	v.SetDefault("notifier.hubBuffer", 16)
	v.SetDefault("notifier.redisEnabled", false)
	v.SetDefault("notifier.channelPrefix", "ledger:balance:")
	v.SetDefault("notifier.publishTimeout", "500ms")

	v.SetDefault("reconciliation.interval", "0s")
	v.SetDefault("reconciliation.workers", 4)
	v.SetDefault("reconciliation.pageSize", 500)
}

// bindSecrets maps the short environment names operators set for credentials
func bindSecrets(v *viper.Viper) {
	_ = v.BindEnv("database.host", "LEDGER_DB_HOST")
	_ = v.BindEnv("database.port", "LEDGER_DB_PORT")
	_ = v.BindEnv("database.username", "LEDGER_DB_USERNAME")
	_ = v.BindEnv("database.password", "LEDGER_DB_PASSWORD")
	_ = v.BindEnv("database.database", "LEDGER_DB_NAME")
	_ = v.BindEnv("notifier.redisAddr", "LEDGER_REDIS_ADDR")
	_ = v.BindEnv("notifier.redisPassword", "LEDGER_REDIS_PASSWORD")
}

// getEnvironment determines the environment from LEDGER_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}
