package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// WriteBuysCSV writes the buy ledger of a backtest to a CSV file
func (r *DefaultFileReporter) WriteBuysCSV(result *types.BacktestResult, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"date", "price", "amount_usd", "btc_bought", "total_btc", "total_invested", "portfolio_value", "fgi", "multiplier"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, buy := range result.Buys {
		fgi := ""
		if buy.FGIValue != nil {
			fgi = strconv.Itoa(*buy.FGIValue)
		}
		multiplier := ""
		if buy.Multiplier != 0 {
			multiplier = strconv.FormatFloat(buy.Multiplier, 'f', 2, 64)
		}
		row := []string{
			buy.Date,
			strconv.FormatFloat(buy.Price, 'f', 2, 64),
			strconv.FormatFloat(buy.AmountUSD, 'f', 2, 64),
			strconv.FormatFloat(buy.BTCBought, 'f', 8, 64),
			strconv.FormatFloat(buy.TotalBTC, 'f', 8, 64),
			strconv.FormatFloat(buy.TotalInvested, 'f', 2, 64),
			strconv.FormatFloat(buy.PortfolioValue, 'f', 2, 64),
			fgi,
			multiplier,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
