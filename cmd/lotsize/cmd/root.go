package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/lotsize/config"
	"github.com/rustyeddy/lotsize/journal"
	"github.com/rustyeddy/lotsize/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "lotsize",
	Short: "Position size calculator and trading journal",
	Long: `Lotsize sizes trades across forex, indices, metals and crypto and keeps
a journal of the results.

It provides tools for:
  - Lot sizing from a dollar risk, or valuing a given lot size
  - Stop loss / take profit levels by price or by distance
  - A SQLite trade journal with stats and CSV/Org exports
  - AI review of your recent trades

Examples:
  lotsize calc -i EURUSD --direction BUY --sl 20 --tp 40 --risk 50
  lotsize journal add --pair XAUUSD --type SELL --pnl 120.5 --setup Breakout
  lotsize analyze`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file, YAML or JSON (built-in defaults when empty)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		c.Journal.DBPath = dbPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}

	l, err := logging.New(c.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	cfg, logger = c, l
	logger.Debug("config loaded",
		zap.String("file", cfgFile),
		zap.String("db", cfg.Journal.DBPath))
	return nil
}

// openStore opens the journal and seeds the account settings from the
// config the first time.
func openStore(ctx context.Context) (*journal.SQLite, error) {
	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	saved, err := j.SettingsSaved(ctx)
	if err != nil {
		j.Close()
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if !saved {
		s := journal.Settings{Balance: cfg.Account.Balance, Currency: cfg.Account.Currency}
		if err := j.SaveSettings(ctx, s); err != nil {
			j.Close()
			return nil, fmt.Errorf("seed settings: %w", err)
		}
		logger.Info("seeded account settings",
			zap.String("db", cfg.Journal.DBPath),
			zap.Float64("balance", s.Balance),
			zap.String("currency", s.Currency))
	}
	return j, nil
}
