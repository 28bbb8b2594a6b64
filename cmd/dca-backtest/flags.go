package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// BacktestFlags holds all command line flags for the backtest command
type BacktestFlags struct {
	// Configuration
	ConfigFile *string
	EnvFile    *string

	// Simulation window
	StartDate *string
	EndDate   *string

	// Strategy parameters
	Frequency       *string
	Amount          *float64
	Strategy        *string
	Compare         *bool
	FearThreshold   *int
	GreedThreshold  *int
	FearMultiplier  *float64
	GreedMultiplier *float64

	// Output options
	OutputDir   *string
	ConsoleOnly *bool
	JSONOut     *bool
	CSVOut      *bool
	ExcelOut    *bool

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewBacktestFlags creates and registers all backtest command line flags
func NewBacktestFlags() *BacktestFlags {
	defaultEnd := time.Now().UTC().Format(types.DateKeyFormat)
	defaultStart := time.Now().UTC().AddDate(-1, 0, 0).Format(types.DateKeyFormat)

	return &BacktestFlags{
		// Configuration
		ConfigFile: flag.String("config", "", "Path to YAML configuration file"),
		EnvFile:    flag.String("env", ".env", "Environment file path"),

		// Simulation window
		StartDate: flag.String("start", defaultStart, "Backtest start date (YYYY-MM-DD)"),
		EndDate:   flag.String("end", defaultEnd, "Backtest end date (YYYY-MM-DD)"),

		// Strategy parameters
		Frequency:       flag.String("frequency", "weekly", "Buy frequency (daily, weekly, biweekly, monthly)"),
		Amount:          flag.Float64("amount", 100.0, "Amount per scheduled buy in USD"),
		Strategy:        flag.String("strategy", "standard", "Strategy (standard, smart, lump_sum)"),
		Compare:         flag.Bool("compare", false, "Run all three strategies and compare"),
		FearThreshold:   flag.Int("fear-threshold", 30, "FGI at or below which smart DCA buys more"),
		GreedThreshold:  flag.Int("greed-threshold", 70, "FGI at or above which smart DCA buys less"),
		FearMultiplier:  flag.Float64("fear-multiplier", 2.0, "Smart DCA multiplier during fear"),
		GreedMultiplier: flag.Float64("greed-multiplier", 0.5, "Smart DCA multiplier during greed"),

		// Output options
		OutputDir:   flag.String("output", "", "Output directory (default results/<strategy>_<frequency>)"),
		ConsoleOnly: flag.Bool("console-only", false, "Console output only (no file output)"),
		JSONOut:     flag.Bool("json", true, "Write result JSON"),
		CSVOut:      flag.Bool("csv", true, "Write buy ledger CSV"),
		ExcelOut:    flag.Bool("xlsx", false, "Write Excel workbook"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show help information"),
	}
}

// ParseDCAConfig converts parsed flags into a simulation config
func ParseDCAConfig(flags *BacktestFlags) (types.DCAConfig, error) {
	start, err := time.ParseInLocation(types.DateKeyFormat, *flags.StartDate, time.UTC)
	if err != nil {
		return types.DCAConfig{}, fmt.Errorf("invalid start date %q: %w", *flags.StartDate, err)
	}
	end, err := time.ParseInLocation(types.DateKeyFormat, *flags.EndDate, time.UTC)
	if err != nil {
		return types.DCAConfig{}, fmt.Errorf("invalid end date %q: %w", *flags.EndDate, err)
	}

	return types.DCAConfig{
		StartDate:       start,
		EndDate:         end,
		Frequency:       types.Frequency(*flags.Frequency),
		Amount:          *flags.Amount,
		SmartDCA:        *flags.Strategy == string(types.StrategySmart),
		FearThreshold:   *flags.FearThreshold,
		GreedThreshold:  *flags.GreedThreshold,
		FearMultiplier:  *flags.FearMultiplier,
		GreedMultiplier: *flags.GreedMultiplier,
	}, nil
}

// ParseStrategy validates the strategy flag
func ParseStrategy(raw string) (types.StrategyKind, error) {
	switch types.StrategyKind(raw) {
	case types.StrategyStandard, types.StrategySmart, types.StrategyLumpSum:
		return types.StrategyKind(raw), nil
	default:
		return "", fmt.Errorf("unknown strategy %q (use standard, smart, lump_sum)", raw)
	}
}

func printUsageHelp() {
	fmt.Println("Usage: dca-backtest [options]")
	fmt.Println()
	fmt.Println("Simulates BTC dollar-cost-averaging strategies over historical prices.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  dca-backtest -start 2023-01-01 -end 2024-01-01 -frequency weekly -amount 100")
	fmt.Println("  dca-backtest -strategy smart -fear-threshold 25 -fear-multiplier 3")
	fmt.Println("  dca-backtest -compare -frequency monthly -amount 500 -xlsx")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}
