package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("file values over defaults", func(t *testing.T) {
		cfg, err := Load(Test, "testdata")
		require.NoError(t, err)

		assert.Equal(t, Test, cfg.Environment)
		assert.Equal(t, "memory", cfg.Database.Driver)
		assert.Equal(t, 8081, cfg.Server.Port)
		assert.Equal(t, "0.0.0.0:8081", cfg.Server.Addr())
		assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, int64(2000), cfg.Ledger.MinWithdrawalCoins)
		assert.Equal(t, 2*time.Second, cfg.Ledger.UnitTimeout)
		assert.Equal(t, 20, cfg.Ledger.HistoryDefaultLimit)
		assert.Equal(t, 100, cfg.Ledger.HistoryMaxLimit)
		assert.Equal(t, "ledger:balance:", cfg.Notifier.ChannelPrefix)
		assert.Equal(t, time.Duration(0), cfg.Reconciliation.Interval)
		assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowQueryThreshold)
	})

	t.Run("prefixed environment overrides", func(t *testing.T) {
		t.Setenv("LEDGER_LEDGER_MINWITHDRAWALCOINS", "3000")
		t.Setenv("LEDGER_LEDGER_REFUNDPOLICY", "reverse_spend")

		cfg, err := Load(Test, "testdata")
		require.NoError(t, err)
		assert.Equal(t, int64(3000), cfg.Ledger.MinWithdrawalCoins)
		assert.Equal(t, "reverse_spend", cfg.Ledger.RefundPolicy)
	})

	t.Run("credentials from short variables", func(t *testing.T) {
		t.Setenv("LEDGER_DB_PASSWORD", "s3cret")
		t.Setenv("LEDGER_DB_PORT", "6543")
		t.Setenv("LEDGER_REDIS_PASSWORD", "r3dis")

		cfg, err := Load("postgres", "testdata")
		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, "s3cret", cfg.Database.Password)
		assert.Equal(t, 6543, cfg.Database.Port)
		assert.Equal(t, "r3dis", cfg.Notifier.RedisPassword)
		assert.Equal(t, "read_committed", cfg.Database.IsolationLevel)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("staging", "testdata")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("invalid values are all reported", func(t *testing.T) {
		_, err := Load("broken", "testdata")
		require.Error(t, err)
		for _, want := range []string{
			"server.port",
			`unsupported database.driver "sqlite"`,
			"ledger.minWithdrawalCoins",
			`invalid ledger.refundPolicy "keep_everything"`,
		} {
			assert.Contains(t, err.Error(), want)
		}
	})
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("LEDGER_ENV", "")
	assert.Equal(t, Development, getEnvironment())

	t.Setenv("LEDGER_ENV", "PRODUCTION")
	assert.Equal(t, Production, getEnvironment())
}
