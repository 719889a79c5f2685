package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the account settings",
	Long: `The account balance drives risk percentages in calc and the analysis prompt.
It is stored with the journal and seeded from the config the first time the
journal is opened.

Examples:
  lotsize settings
  lotsize settings set --balance 25000 --currency USD`,
	Args: cobra.NoArgs,
	RunE: runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the account balance or currency",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSet,
}

var (
	settingsBalance  float64
	settingsCurrency string
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	settingsSetCmd.Flags().Float64Var(&settingsBalance, "balance", 0, "account balance")
	settingsSetCmd.Flags().StringVar(&settingsCurrency, "currency", "", "account currency, e.g. USD")
	settingsSetCmd.MarkFlagsOneRequired("balance", "currency")
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	j, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer j.Close()

	s, err := j.Settings(cmd.Context())
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Balance:  %.2f\nCurrency: %s\n", s.Balance, s.Currency)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	j, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer j.Close()

	s, err := j.Settings(cmd.Context())
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	if cmd.Flags().Changed("balance") {
		if settingsBalance <= 0 {
			return fmt.Errorf("balance must be positive")
		}
		s.Balance = settingsBalance
	}
	if c := strings.ToUpper(strings.TrimSpace(settingsCurrency)); c != "" {
		s.Currency = c
	}

	if err := j.SaveSettings(cmd.Context(), s); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	logger.Info("settings saved",
		zap.Float64("balance", s.Balance),
		zap.String("currency", s.Currency))

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Balance %.2f %s\n", s.Balance, s.Currency)
	return nil
}
