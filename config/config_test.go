package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.Equal(t, 10000.0, cfg.Account.Balance)
	assert.Equal(t, "225JPY", cfg.Calculator.Instrument)
	assert.Equal(t, 158.0, cfg.Calculator.USDJPY)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing currency",
			mutate:  func(c *Config) { c.Account.Currency = "" },
			wantErr: true,
			errMsg:  "account.currency is required",
		},
		{
			name:    "negative balance",
			mutate:  func(c *Config) { c.Account.Balance = -1000 },
			wantErr: true,
			errMsg:  "account.balance must be positive",
		},
		{
			name:    "unknown instrument",
			mutate:  func(c *Config) { c.Calculator.Instrument = "INVALID" },
			wantErr: true,
			errMsg:  "unknown instrument",
		},
		{
			name:    "bad direction",
			mutate:  func(c *Config) { c.Calculator.Direction = "LONG" },
			wantErr: true,
			errMsg:  "calculator.direction",
		},
		{
			name:    "bad contract size",
			mutate:  func(c *Config) { c.Calculator.ContractSize = 10 },
			wantErr: true,
			errMsg:  "calculator.contract_size",
		},
		{
			name:   "no contract size",
			mutate: func(c *Config) { c.Calculator.ContractSize = 0 },
		},
		{
			name:    "zero usdjpy",
			mutate:  func(c *Config) { c.Calculator.USDJPY = 0 },
			wantErr: true,
			errMsg:  "calculator.usdjpy must be positive",
		},
		{
			name:    "negative policy",
			mutate:  func(c *Config) { c.Policy.MinRR = -1 },
			wantErr: true,
			errMsg:  "policy limits",
		},
		{
			name:    "missing db path",
			mutate:  func(c *Config) { c.Journal.DBPath = "" },
			wantErr: true,
			errMsg:  "journal.db_path is required",
		},
		{
			name:    "bad timeout",
			mutate:  func(c *Config) { c.Analysis.Timeout = "soon" },
			wantErr: true,
			errMsg:  "analysis.timeout",
		},
		{
			name:    "bad encoding",
			mutate:  func(c *Config) { c.Log.Encoding = "xml" },
			wantErr: true,
			errMsg:  "log.encoding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Account.Balance = 2500
			cfg.Calculator.Instrument = "XAUUSD"
			cfg.Analysis.APIKey = "secret"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.NotContains(t, string(data), "secret")

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Account, loaded.Account)
			assert.Equal(t, cfg.Calculator, loaded.Calculator)
			assert.Equal(t, cfg.Policy, loaded.Policy)
			assert.Equal(t, "", loaded.Analysis.APIKey)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account:\n  balance: 500\n  currency: USD\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 500.0, cfg.Account.Balance)
	assert.Equal(t, "225JPY", cfg.Calculator.Instrument)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(envAPIKey, "from-env")
	t.Setenv(envDBPath, "/tmp/other.sqlite")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Analysis.APIKey)
	assert.Equal(t, "/tmp/other.sqlite", cfg.Journal.DBPath)
}

func TestLoadLegacyAPIKey(t *testing.T) {
	t.Setenv(envAPIKey, "")
	t.Setenv(envAPIKeyLegacy, "legacy")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Analysis.APIKey)
}

func TestAnalysisTimeoutDuration(t *testing.T) {
	tests := []struct {
		timeout  string
		expected string
		wantErr  bool
	}{
		{"60s", "1m0s", false},
		{"1m30s", "1m30s", false},
		{"", "0s", false},
		{"invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			a := AnalysisConfig{Timeout: tt.timeout}
			d, err := a.TimeoutDuration()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, d.String())
			}
		})
	}
}
