package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vubinh304/btc-dca-advisor/cmd/common"
	"github.com/vubinh304/btc-dca-advisor/internal/advisor"
	"github.com/vubinh304/btc-dca-advisor/internal/config"
	"github.com/vubinh304/btc-dca-advisor/internal/dip"
	"github.com/vubinh304/btc-dca-advisor/internal/macro"
	"github.com/vubinh304/btc-dca-advisor/internal/monitoring"
	"github.com/vubinh304/btc-dca-advisor/internal/valuation"
	"github.com/vubinh304/btc-dca-advisor/pkg/data"
	"github.com/vubinh304/btc-dca-advisor/pkg/reporting"
	"github.com/vubinh304/btc-dca-advisor/pkg/types"
	"github.com/vubinh304/btc-dca-advisor/pkg/validation"
)

const AppName = "DCA Advisor"

type advisorApp struct {
	flags     *AdvisorFlags
	prices    data.PriceProvider
	sentiment data.SentimentProvider

	strategy  *advisor.Advisor
	macro     *macro.Advisor
	valuation *valuation.Calculator

	checker *monitoring.HealthChecker
}

func main() {
	flags := NewAdvisorFlags()
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

	switch *flags.Mode {
	case "market", "macro", "ahr999", "dip", "all":
	default:
		log.Fatal().Str("mode", *flags.Mode).Msg("unknown mode (use market, macro, ahr999, dip, all)")
	}

	cache := common.BuildCache(cfg)
	prices := common.BuildPriceProvider(cfg, cache)
	sentiment := data.NewFearGreedProvider(cfg.Providers.FearGreedBaseURL, cache)
	quotes := data.NewYahooQuoteProvider(cfg.Providers.YahooBaseURL, cache)

	var trends data.TrendsProvider
	if cfg.Providers.TrendsEnabled {
		trends = data.NewGoogleTrendsProvider(cfg.Providers.TrendsBaseURL, cache)
	}

	app := &advisorApp{
		flags:     flags,
		prices:    prices,
		sentiment: sentiment,
		strategy:  advisor.New(prices, sentiment, cfg.Engine.FetchTimeout),
		macro:     macro.New(quotes, trends, cfg.Engine.FetchTimeout),
		valuation: valuation.New(prices, cfg.Engine.ValuationTimeout),
		checker:   monitoring.NewHealthChecker(),
	}

	if *flags.Watch {
		if cfg.Monitoring.Enabled {
			go monitoring.Serve(cfg.Monitoring.PrometheusPort, cfg.Monitoring.HealthPort, app.checker)
		}
		app.watch()
		return
	}

	app.runOnce(context.Background())
}

func (app *advisorApp) watch() {
	interval := *app.flags.Interval
	if interval < time.Minute {
		interval = time.Minute
	}
	log.Info().Dur("interval", interval).Msg("watch mode started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		app.runOnce(context.Background())
		<-ticker.C
	}
}

func (app *advisorApp) runOnce(ctx context.Context) {
	mode := *app.flags.Mode

	if mode == "market" || mode == "all" {
		analysis := app.strategy.AnalyzeMarketConditions(ctx)
		app.checker.RecordAnalysis(analysis.BTC.Price)
		app.output(analysis, func() { reporting.PrintMarketAnalysis(analysis) })
	}

	if mode == "macro" || mode == "all" {
		analysis := app.macro.AnalyzeMacroLiquidity(ctx)
		app.output(analysis, func() { reporting.PrintMacroAnalysis(analysis) })
	}

	if mode == "ahr999" || mode == "all" {
		ahr := app.valuation.Calculate(ctx)
		app.output(ahr, func() { reporting.PrintAhr999(ahr) })
	}

	if mode == "dip" || mode == "all" {
		action, err := app.runDip(ctx)
		if err != nil {
			app.checker.RecordError(err)
			log.Error().Err(err).Msg("dip sizing failed")
			return
		}
		app.output(action, func() { reporting.PrintDipAction(action) })
	}
}

func (app *advisorApp) runDip(ctx context.Context) (*types.DipAction, error) {
	fgi := *app.flags.FGIOverride
	if fgi < 0 {
		current, err := app.sentiment.Current(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch current FGI: %w", err)
		}
		fgi = current.Value
	}

	spot, err := app.prices.CurrentPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch spot price: %w", err)
	}

	cfg := types.DipConfig{
		AvailableFiat: *app.flags.AvailableFiat,
		BaseAmount:    *app.flags.BaseAmount,
		CurrentFGI:    fgi,
		CurrentPrice:  spot.Price,
	}
	if err := validation.ValidateDipConfig(cfg); err != nil {
		return nil, err
	}

	action := dip.Calculate(cfg)
	return &action, nil
}

func (app *advisorApp) output(payload interface{}, table func()) {
	if *app.flags.JSONOut {
		if err := reporting.PrintJSON(payload); err != nil {
			log.Error().Err(err).Msg("could not print JSON")
		}
		return
	}
	table()
}
