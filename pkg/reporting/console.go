package reporting

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// OutputResult prints a single backtest result to console
func (r *DefaultConsoleReporter) OutputResult(result *types.BacktestResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("BACKTEST RESULTS — %s", strategyLabel(result.Strategy)))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📅 Period", fmt.Sprintf("%s → %s",
			result.Config.StartDate.Format(types.DateKeyFormat),
			result.Config.EndDate.Format(types.DateKeyFormat))},
		{"🔄 Frequency", string(result.Config.Frequency)},
		{"🛒 Buys", len(result.Buys)},
		{"💰 Total Invested", fmt.Sprintf("$%.2f", result.TotalInvested)},
		{"₿ Total BTC", fmt.Sprintf("%.8f", result.TotalBTC)},
		{"💵 Final Value", fmt.Sprintf("$%.2f", result.FinalValue)},
	})

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"📈 ROI", fmt.Sprintf("%.2f%%", result.ROI)},
		{"📈 Annualized Return", fmt.Sprintf("%.2f%%", result.AnnualizedReturn)},
		{"📉 Max Drawdown", fmt.Sprintf("%.2f%%", result.MaxDrawdown)},
		{"⚖️ Average Cost", fmt.Sprintf("$%.2f", result.AverageCost)},
		{"💲 Final Price", fmt.Sprintf("$%.2f", result.CurrentPrice)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 20, WidthMax: 22, Align: text.AlignLeft},
		{Number: 2, WidthMin: 24, WidthMax: 30, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Println()
}

// OutputComparison prints the three strategies side by side
func (r *DefaultConsoleReporter) OutputComparison(comparison *types.ComparisonResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("STRATEGY COMPARISON")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Metric", "Standard DCA", "Smart DCA", "Lump Sum"})

	results := []*types.BacktestResult{comparison.Standard, comparison.Smart, comparison.LumpSum}

	t.AppendRows([]table.Row{
		comparisonRow("Buys", results, func(r *types.BacktestResult) string {
			return fmt.Sprintf("%d", len(r.Buys))
		}),
		comparisonRow("Total Invested", results, func(r *types.BacktestResult) string {
			return fmt.Sprintf("$%.2f", r.TotalInvested)
		}),
		comparisonRow("Total BTC", results, func(r *types.BacktestResult) string {
			return fmt.Sprintf("%.8f", r.TotalBTC)
		}),
		comparisonRow("Final Value", results, func(r *types.BacktestResult) string {
			return fmt.Sprintf("$%.2f", r.FinalValue)
		}),
		comparisonRow("ROI", results, func(r *types.BacktestResult) string {
			return fmt.Sprintf("%.2f%%", r.ROI)
		}),
		comparisonRow("Annualized", results, func(r *types.BacktestResult) string {
			return fmt.Sprintf("%.2f%%", r.AnnualizedReturn)
		}),
		comparisonRow("Max Drawdown", results, func(r *types.BacktestResult) string {
			return fmt.Sprintf("%.2f%%", r.MaxDrawdown)
		}),
		comparisonRow("Average Cost", results, func(r *types.BacktestResult) string {
			return fmt.Sprintf("$%.2f", r.AverageCost)
		}),
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 15, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	t.Render()

	if best := bestROI(results); best != nil {
		fmt.Printf("\n🏆 Best ROI: %s (%.2f%%)\n", strategyLabel(best.Strategy), best.ROI)
	}
	fmt.Println()
}

// PrintMarketAnalysis prints an FGI strategy suggestion
func PrintMarketAnalysis(analysis *types.MarketAnalysis) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("MARKET ANALYSIS")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"💲 BTC Price", fmt.Sprintf("$%.2f (%+.2f%% 24h)", analysis.BTC.Price, analysis.BTC.Change24h)},
		{"😨 Fear & Greed", fmt.Sprintf("%d (%s)", analysis.FGI.Value, analysis.FGI.Label)},
		{"📊 7d Average", fmt.Sprintf("%d", analysis.FGI.Avg7d)},
		{"📐 Trend", string(analysis.FGI.Trend)},
	})

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"🎯 Signal", analysis.SignalLabel},
		{"✅ Confidence", fmt.Sprintf("%d%%", analysis.Confidence)},
		{"🔄 Frequency", string(analysis.Suggestion.Frequency)},
		{"😨 Fear ≤", fmt.Sprintf("%d ×%.1f", analysis.Suggestion.FearThreshold, analysis.Suggestion.FearMultiplier)},
		{"🤑 Greed ≥", fmt.Sprintf("%d ×%.1f", analysis.Suggestion.GreedThreshold, analysis.Suggestion.GreedMultiplier)},
	})

	t.Render()

	for _, line := range analysis.Suggestion.Reasoning {
		fmt.Printf("  • %s\n", line)
	}
	fmt.Println()
}

// PrintMacroAnalysis prints a macro liquidity read
func PrintMacroAnalysis(analysis *types.MacroAnalysis) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("MACRO LIQUIDITY")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"💵 DXY", fmt.Sprintf("%.3f (%+.2f%%)", analysis.CurrencyIndex.Value, analysis.CurrencyIndex.ChangePercent)},
		{"📜 US 10Y", fmt.Sprintf("%.3f%% (%+.3f)", analysis.LongYield.Value, analysis.LongYield.Change)},
		{"🏦 Implied Fed Rate", fmt.Sprintf("%.3f%% (%+.1f bps)", analysis.ImpliedFedRate.Value, analysis.ImpliedFedRate.ChangeBps)},
	})

	if analysis.Retail != nil {
		t.AppendRow(table.Row{"🔍 Retail Interest", fmt.Sprintf("%s (avg %.1f)",
			analysis.Retail.Trend, analysis.Retail.RecentAverage)})
	}

	t.AppendSeparator()

	t.AppendRow(table.Row{"🎯 Signal", analysis.SignalLabel})

	t.Render()

	for _, line := range analysis.Reasoning {
		fmt.Printf("  • %s\n", line)
	}
	fmt.Println()
}

// PrintAhr999 prints the valuation index read
func PrintAhr999(data *types.Ahr999Data) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("AHR999 VALUATION")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📊 Ahr999", fmt.Sprintf("%.3f", data.Value)},
		{"💲 Price", fmt.Sprintf("$%.2f", data.Price)},
		{"📈 200d MA", fmt.Sprintf("$%.2f", data.MA200)},
		{"🧮 Expected Price", fmt.Sprintf("$%.2f", data.ExpectedPrice)},
		{"🗓️ Coin Age", fmt.Sprintf("%d days", data.CoinAgeDays)},
		{"🎯 Zone", data.ZoneLabel},
	})

	t.Render()
	fmt.Println()
}

// PrintDipAction prints a dip-sizing recommendation
func PrintDipAction(action *types.DipAction) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("DIP SIZING")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"🎯 Action", string(action.Action)},
		{"💰 Amount", fmt.Sprintf("$%.2f", action.RecommendedAmount)},
		{"⚠️ Risk", string(action.RiskLevel)},
	})

	t.Render()

	for _, line := range action.Reasoning {
		fmt.Printf("  • %s\n", line)
	}
	fmt.Println()
}

func comparisonRow(label string, results []*types.BacktestResult, format func(*types.BacktestResult) string) table.Row {
	row := table.Row{label}
	for _, r := range results {
		if r == nil {
			row = append(row, "-")
			continue
		}
		row = append(row, format(r))
	}
	return row
}

func bestROI(results []*types.BacktestResult) *types.BacktestResult {
	var best *types.BacktestResult
	for _, r := range results {
		if r == nil {
			continue
		}
		if best == nil || r.ROI > best.ROI {
			best = r
		}
	}
	return best
}

func strategyLabel(kind types.StrategyKind) string {
	switch kind {
	case types.StrategyStandard:
		return "Standard DCA"
	case types.StrategySmart:
		return "Smart DCA"
	case types.StrategyLumpSum:
		return "Lump Sum"
	default:
		return string(kind)
	}
}

// Package-level convenience function
func OutputConsole(result *types.BacktestResult) {
	reporter := NewDefaultConsoleReporter()
	reporter.OutputResult(result)
}
