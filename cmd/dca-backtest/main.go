package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/vubinh304/btc-dca-advisor/cmd/common"
	"github.com/vubinh304/btc-dca-advisor/internal/backtest"
	"github.com/vubinh304/btc-dca-advisor/internal/config"
	"github.com/vubinh304/btc-dca-advisor/pkg/data"
	"github.com/vubinh304/btc-dca-advisor/pkg/reporting"
	"github.com/vubinh304/btc-dca-advisor/pkg/types"
	"github.com/vubinh304/btc-dca-advisor/pkg/validation"
)

const AppName = "DCA Backtest"

func main() {
	flags := NewBacktestFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, common.AppVersion)
		return
	}
	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	common.LoadEnvironment(*flags.EnvFile)

	cfg, err := config.Load(*flags.ConfigFile)
	if err != nil {
		fmt.Printf("❌ Configuration error: %v\n", err)
		return
	}
	common.SetupLogging(cfg.LogLevel)

	dcaCfg, err := ParseDCAConfig(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}
	if err := validation.ValidateDCAConfig(dcaCfg); err != nil {
		log.Fatal().Err(err).Msg("invalid backtest config")
	}

	strategy := types.StrategyStandard
	if !*flags.Compare {
		strategy, err = ParseStrategy(*flags.Strategy)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid flags")
		}
	}

	cache := common.BuildCache(cfg)
	prices := common.BuildPriceProvider(cfg, cache)
	sentiment := data.NewFearGreedProvider(cfg.Providers.FearGreedBaseURL, cache)

	simulator := backtest.NewSimulator(prices, sentiment)
	console := reporting.NewDefaultConsoleReporter()
	ctx := context.Background()

	if *flags.Compare {
		comparison, err := simulator.Compare(ctx, dcaCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("comparison failed")
		}
		console.OutputComparison(comparison)
		if !*flags.ConsoleOnly && *flags.JSONOut {
			path := filepath.Join(outputDir(flags, "comparison"), "comparison.json")
			writeJSON(comparison, path)
		}
		return
	}

	result, err := simulator.Simulate(ctx, dcaCfg, strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
	console.OutputResult(result)

	if *flags.ConsoleOnly {
		return
	}

	dir := outputDir(flags, string(strategy))
	files := reporting.NewDefaultFileReporter()

	if *flags.JSONOut {
		writeJSON(result, filepath.Join(dir, "result.json"))
	}
	if *flags.CSVOut {
		if err := files.WriteBuysCSV(result, filepath.Join(dir, "buys.csv")); err != nil {
			log.Error().Err(err).Msg("could not write CSV")
		} else {
			log.Info().Str("path", filepath.Join(dir, "buys.csv")).Msg("wrote buy ledger")
		}
	}
	if *flags.ExcelOut {
		if err := files.WriteBuysXLSX(result, filepath.Join(dir, "backtest.xlsx")); err != nil {
			log.Error().Err(err).Msg("could not write Excel workbook")
		} else {
			log.Info().Str("path", filepath.Join(dir, "backtest.xlsx")).Msg("wrote Excel workbook")
		}
	}
}

func outputDir(flags *BacktestFlags, strategy string) string {
	if *flags.OutputDir != "" {
		return *flags.OutputDir
	}
	return reporting.DefaultOutputDir(strategy, *flags.Frequency)
}

func writeJSON(result interface{}, path string) {
	files := reporting.NewDefaultFileReporter()
	if err := files.WriteResultJSON(result, path); err != nil {
		log.Error().Err(err).Msg("could not write JSON")
		return
	}
	log.Info().Str("path", path).Msg("wrote result JSON")
}
