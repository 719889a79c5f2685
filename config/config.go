package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/risk"
	"gopkg.in/yaml.v3"
)

const (
	envAPIKey       = "GEMINI_API_KEY"
	envAPIKeyLegacy = "API_KEY"
	envDBPath       = "LOTSIZE_DB"
)

// Config is the complete calculator configuration
type Config struct {
	Account    AccountConfig    `json:"account" yaml:"account"`
	Calculator CalculatorConfig `json:"calculator" yaml:"calculator"`
	Policy     PolicyConfig     `json:"policy" yaml:"policy"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Analysis   AnalysisConfig   `json:"analysis" yaml:"analysis"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// AccountConfig seeds the settings store the first time it is opened
type AccountConfig struct {
	Currency string  `json:"currency" yaml:"currency"`
	Balance  float64 `json:"balance" yaml:"balance"`
}

// CalculatorConfig holds the form defaults
type CalculatorConfig struct {
	Instrument   string  `json:"instrument" yaml:"instrument"`
	Direction    string  `json:"direction" yaml:"direction"`
	ContractSize float64 `json:"contract_size" yaml:"contract_size"`
	LotSize      float64 `json:"lot_size" yaml:"lot_size"`
	RiskAmount   float64 `json:"risk_amount" yaml:"risk_amount"`
	USDJPY       float64 `json:"usdjpy" yaml:"usdjpy"`
}

// PolicyConfig holds advisory limits; zero disables a check
type PolicyConfig struct {
	MaxRiskPct float64 `json:"max_risk_pct" yaml:"max_risk_pct"`
	MinRR      float64 `json:"min_rr" yaml:"min_rr"`
}

type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// AnalysisConfig configures the journal review model
type AnalysisConfig struct {
	BaseURL   string `json:"base_url" yaml:"base_url"`
	Model     string `json:"model" yaml:"model"`
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Timeout   string `json:"timeout" yaml:"timeout"` // e.g. "60s"
	MaxTrades int    `json:"max_trades" yaml:"max_trades"`
}

// TimeoutDuration converts Timeout to a time.Duration
func (a AnalysisConfig) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(a.Timeout)
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Encoding    string `json:"encoding" yaml:"encoding"` // "json" or "console"
	Development bool   `json:"development" yaml:"development"`
}

// Load returns Default when path is empty, otherwise the file at path.
// Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv loads a .env file if present and lets the environment override
// the API key and database path.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv(envAPIKey); v != "" {
		c.Analysis.APIKey = v
	} else if v := os.Getenv(envAPIKeyLegacy); v != "" {
		c.Analysis.APIKey = v
	}
	if v := os.Getenv(envDBPath); v != "" {
		c.Journal.DBPath = v
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// The API key stays in the environment
	out := *c
	out.Analysis.APIKey = ""

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(&out)
	} else {
		data, err = json.MarshalIndent(&out, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if _, ok := market.Lookup(c.Calculator.Instrument); !ok {
		return fmt.Errorf("unknown instrument: %s", c.Calculator.Instrument)
	}
	if _, ok := risk.ParseDirection(c.Calculator.Direction); !ok {
		return fmt.Errorf("calculator.direction must be BUY or SELL")
	}
	if c.Calculator.ContractSize != 0 && !risk.ValidContractSize(c.Calculator.ContractSize) {
		return fmt.Errorf("calculator.contract_size must be 1, 100 or 1000")
	}
	if c.Calculator.LotSize < 0 {
		return fmt.Errorf("calculator.lot_size must not be negative")
	}
	if c.Calculator.USDJPY <= 0 {
		return fmt.Errorf("calculator.usdjpy must be positive")
	}
	if c.Policy.MaxRiskPct < 0 || c.Policy.MinRR < 0 {
		return fmt.Errorf("policy limits must not be negative")
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if _, err := c.Analysis.TimeoutDuration(); err != nil {
		return fmt.Errorf("analysis.timeout: %w", err)
	}
	if c.Analysis.MaxTrades < 0 {
		return fmt.Errorf("analysis.max_trades must not be negative")
	}
	if c.Log.Encoding != "" && c.Log.Encoding != "json" && c.Log.Encoding != "console" {
		return fmt.Errorf("log.encoding must be 'json' or 'console'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "USD",
			Balance:  10000,
		},
		Calculator: CalculatorConfig{
			Instrument:   "225JPY",
			Direction:    "SELL",
			ContractSize: risk.ContractMini,
			LotSize:      0.06,
			RiskAmount:   risk.DefaultRiskAmount,
			USDJPY:       risk.ReferenceUSDJPY,
		},
		Policy: PolicyConfig{
			MaxRiskPct: 1.0,
			MinRR:      1.5,
		},
		Journal: JournalConfig{
			DBPath: "./lotsize.sqlite",
		},
		Analysis: AnalysisConfig{
			BaseURL:   "https://generativelanguage.googleapis.com",
			Model:     "gemini-3-pro-preview",
			Timeout:   "60s",
			MaxTrades: 50,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}
