package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/risk"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Size a trade or value a lot size",
	Long: `Calc works out lots, dollar risk, dollar reward and risk:reward for one trade.

Give --risk or --risk-pct to size the position from a dollar risk, or --lots to
value a position you already picked. With neither, the config defaults apply.
Stop loss and take profit take a distance in pips/points (--sl, --tp) or a
price (--sl-price, --tp-price).

Numeric flags behave like form fields: text that does not parse falls back to
the field's default. A zero lot size or risk amount does too; a zero distance,
price or balance is kept.

Examples:
  lotsize calc -i EURUSD --direction BUY --sl 20 --tp 40 --risk 50
  lotsize calc -i 225JPY --contract mini --lots 0.06
  lotsize calc -i USDMXN --entry 17.07 --sl-price 17.05 --tp-price 17.11 --lots 1`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

var (
	calcInstrument string
	calcDirection  string
	calcEntry      string
	calcSL         string
	calcSLPrice    string
	calcTP         string
	calcTPPrice    string
	calcRisk       string
	calcRiskPct    string
	calcLots       string
	calcContract   string
	calcUSDJPY     string
	calcBalance    string
	calcJSON       bool
)

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVarP(&calcInstrument, "instrument", "i", "", "instrument symbol (default from config)")
	calcCmd.Flags().StringVar(&calcDirection, "direction", "", "BUY or SELL (default from config)")
	calcCmd.Flags().StringVarP(&calcEntry, "entry", "e", "", "entry price (default: instrument default price)")
	calcCmd.Flags().StringVar(&calcSL, "sl", "", "stop loss distance in pips/points")
	calcCmd.Flags().StringVar(&calcSLPrice, "sl-price", "", "stop loss price (wins over --sl)")
	calcCmd.Flags().StringVar(&calcTP, "tp", "", "take profit distance in pips/points")
	calcCmd.Flags().StringVar(&calcTPPrice, "tp-price", "", "take profit price (wins over --tp)")
	calcCmd.Flags().StringVarP(&calcRisk, "risk", "r", "", "dollar risk; sizes the position")
	calcCmd.Flags().StringVar(&calcRiskPct, "risk-pct", "", "risk as percent of balance; sizes the position")
	calcCmd.Flags().StringVarP(&calcLots, "lots", "l", "", "lot size to value")
	calcCmd.Flags().StringVar(&calcContract, "contract", "", "contract size for SPX500/225JPY: micro, mini, standard or 1/100/1000")
	calcCmd.Flags().StringVar(&calcUSDJPY, "usdjpy", "", "USD/JPY rate for JPY-quoted instruments")
	calcCmd.Flags().StringVarP(&calcBalance, "balance", "b", "", "account balance (default: journal settings)")
	calcCmd.Flags().BoolVar(&calcJSON, "json", false, "print the result as JSON")

	calcCmd.MarkFlagsMutuallyExclusive("lots", "risk")
	calcCmd.MarkFlagsMutuallyExclusive("lots", "risk-pct")
	calcCmd.MarkFlagsMutuallyExclusive("risk", "risk-pct")
}

type calcOutput struct {
	Instrument   string         `json:"instrument"`
	Direction    risk.Direction `json:"direction"`
	Mode         risk.Mode      `json:"mode"`
	Balance      float64        `json:"balance"`
	RiskPercent  float64        `json:"riskPercent"`
	ContractSize float64        `json:"contractSize"`
	Levels       risk.Levels    `json:"levels"`
	Result       risk.Result    `json:"result"`
	Violations   []string       `json:"violations,omitempty"`
}

func runCalc(cmd *cobra.Command, args []string) error {
	symbol := calcInstrument
	if symbol == "" {
		symbol = cfg.Calculator.Instrument
	}
	inst, ok := market.Lookup(symbol)
	if !ok {
		return fmt.Errorf("unknown instrument %q (one of: %s)", symbol, strings.Join(market.Symbols(), ", "))
	}

	dirText := calcDirection
	if dirText == "" {
		dirText = cfg.Calculator.Direction
	}
	dir, ok := risk.ParseDirection(dirText)
	if !ok {
		return fmt.Errorf("direction must be BUY or SELL, got %q", dirText)
	}

	balance, err := calcAccountBalance(cmd)
	if err != nil {
		return err
	}

	t := risk.NewTicket(inst, dir, balance)
	t.USDJPY = risk.ParseOr(calcUSDJPY, cfg.Calculator.USDJPY)

	if inst.SelectableContract {
		size := cfg.Calculator.ContractSize
		if calcContract != "" {
			c, ok := risk.ParseContractSize(calcContract)
			if !ok {
				return fmt.Errorf("contract must be micro, mini, standard, 1, 100 or 1000, got %q", calcContract)
			}
			size = c
		}
		if size != 0 && !t.SetContractSize(size) {
			logger.Warn("contract size ignored", zap.Float64("contract", size))
		}
	} else if calcContract != "" {
		logger.Warn("contract size only applies to SPX500 and 225JPY",
			zap.String("instrument", inst.Symbol))
	}

	if calcEntry != "" {
		t.SetEntry(risk.ParseNumber(calcEntry, inst.DefaultPrice))
	}
	applyLevels(t)

	t.SetRiskAmount(cfg.Calculator.RiskAmount)
	t.SetLotSize(cfg.Calculator.LotSize)
	switch {
	case calcRiskPct != "":
		t.SetRiskPercent(risk.ParseNumber(calcRiskPct, t.RiskPercent))
	case calcRisk != "":
		t.SetRiskAmount(risk.ParseOr(calcRisk, risk.DefaultRiskAmount))
	case calcLots != "":
		t.SetLotSize(risk.ParseOr(calcLots, risk.MinLots))
	}

	res := t.Compute()
	dec := risk.Review(res, balance, risk.Policy{
		MaxRiskPct: cfg.Policy.MaxRiskPct,
		MinRR:      cfg.Policy.MinRR,
	})
	logger.Debug("calc",
		zap.String("instrument", inst.Symbol),
		zap.String("mode", string(t.Mode)),
		zap.Float64("lots", res.Lots),
		zap.Float64("risk_usd", res.RiskUSD),
		zap.Bool("ok", dec.OK))

	out := calcOutput{
		Instrument:   inst.Symbol,
		Direction:    t.Direction,
		Mode:         t.Mode,
		Balance:      balance,
		RiskPercent:  t.RiskPercent,
		ContractSize: t.ContractSize,
		Levels:       t.Levels,
		Result:       res,
	}
	for _, v := range dec.Violations {
		out.Violations = append(out.Violations, v.Code+": "+v.Msg)
	}

	if calcJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printCalc(cmd.OutOrStdout(), inst, out)
	return nil
}

// applyLevels takes prices over distances when both are given.
func applyLevels(t *risk.Ticket) {
	switch {
	case calcSLPrice != "":
		t.SetStopLossPrice(risk.ParseNumber(calcSLPrice, t.Levels.StopLossPrice))
	case calcSL != "":
		t.SetStopLossDistance(risk.ParseNumber(calcSL, t.Levels.StopLossDistance))
	}
	switch {
	case calcTPPrice != "":
		t.SetTakeProfitPrice(risk.ParseNumber(calcTPPrice, t.Levels.TakeProfitPrice))
	case calcTP != "":
		t.SetTakeProfitDistance(risk.ParseNumber(calcTP, t.Levels.TakeProfitDistance))
	}
}

func calcAccountBalance(cmd *cobra.Command) (float64, error) {
	if calcBalance != "" {
		return risk.ParseNumber(calcBalance, cfg.Account.Balance), nil
	}

	j, err := openStore(cmd.Context())
	if err != nil {
		return 0, err
	}
	defer j.Close()

	s, err := j.Settings(cmd.Context())
	if err != nil {
		return 0, fmt.Errorf("read settings: %w", err)
	}
	return s.Balance, nil
}

func printCalc(w io.Writer, inst market.Instrument, o calcOutput) {
	p := inst.PricePrecision()
	unit := inst.UnitLabel()
	lv := o.Levels
	r := o.Result

	fmt.Fprintf(w, "%s %s", o.Direction, inst.Symbol)
	if inst.SelectableContract {
		fmt.Fprintf(w, " (contract %g)", o.ContractSize)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Entry:        %.*f\n", p, lv.Entry)
	fmt.Fprintf(w, "  Stop Loss:    %.*f (%.1f %s)\n", p, lv.StopLossPrice, lv.StopLossDistance, unit)
	fmt.Fprintf(w, "  Take Profit:  %.*f (%.1f %s)\n", p, lv.TakeProfitPrice, lv.TakeProfitDistance, unit)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Mode:         %s\n", o.Mode)
	fmt.Fprintf(w, "  Balance:      $%.2f\n", o.Balance)
	fmt.Fprintf(w, "  Lots:         %.2f\n", r.Lots)
	if o.Balance > 0 {
		fmt.Fprintf(w, "  Risk:         $%.2f (%.2f%%)\n", r.RiskUSD, risk.RiskPct(r.RiskUSD, o.Balance))
	} else {
		fmt.Fprintf(w, "  Risk:         $%.2f\n", r.RiskUSD)
	}
	fmt.Fprintf(w, "  Reward:       $%.2f\n", r.RewardUSD)
	fmt.Fprintf(w, "  Risk:Reward   1:%s\n", r.RiskReward)
	fmt.Fprintf(w, "  Value:        $%.4f per %s\n", r.ValuePerUnitUSD, strings.ToLower(strings.TrimSuffix(unit, "s")))

	for _, v := range o.Violations {
		fmt.Fprintf(w, "\n⚠ %s", v)
	}
	if len(o.Violations) > 0 {
		fmt.Fprintln(w)
	}
}
