package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// WriteBuysXLSX writes a backtest to an Excel workbook with a buy
// ledger sheet and a summary sheet
func (r *DefaultFileReporter) WriteBuysXLSX(result *types.BacktestResult, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const buysSheet = "Buys"
	const summarySheet = "Summary"

	fx.SetSheetName(fx.GetSheetName(0), buysSheet)
	fx.NewSheet(summarySheet)

	styles, err := createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := writeBuysSheet(fx, buysSheet, result, styles); err != nil {
		return err
	}
	if err := writeSummarySheet(fx, summarySheet, result, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.CurrencyStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 7,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 10,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.SummaryStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"E8F0E8"},
			Pattern: 1,
		},
	})
	return styles, err
}

func writeBuysSheet(fx *excelize.File, sheet string, result *types.BacktestResult, styles ExcelStyles) error {
	headers := []string{"Date", "Price", "Amount USD", "BTC Bought", "Total BTC", "Total Invested", "Portfolio Value", "FGI", "Multiplier"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}

	for i, buy := range result.Buys {
		row := i + 2
		values := []interface{}{
			buy.Date,
			buy.Price,
			buy.AmountUSD,
			buy.BTCBought,
			buy.TotalBTC,
			buy.TotalInvested,
			buy.PortfolioValue,
		}
		if buy.FGIValue != nil {
			values = append(values, *buy.FGIValue)
		} else {
			values = append(values, "")
		}
		if buy.Multiplier != 0 {
			values = append(values, buy.Multiplier)
		} else {
			values = append(values, "")
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			fx.SetCellValue(sheet, cell, v)
			switch col {
			case 1, 2, 5, 6:
				fx.SetCellStyle(sheet, cell, cell, styles.CurrencyStyle)
			default:
				fx.SetCellStyle(sheet, cell, cell, styles.BaseStyle)
			}
		}
	}

	fx.SetColWidth(sheet, "A", "I", 16)
	return nil
}

func writeSummarySheet(fx *excelize.File, sheet string, result *types.BacktestResult, styles ExcelStyles) error {
	rows := []struct {
		label string
		value interface{}
		style int
	}{
		{"Strategy", strategyLabel(result.Strategy), styles.BaseStyle},
		{"Start Date", result.Config.StartDate.Format(types.DateKeyFormat), styles.BaseStyle},
		{"End Date", result.Config.EndDate.Format(types.DateKeyFormat), styles.BaseStyle},
		{"Frequency", string(result.Config.Frequency), styles.BaseStyle},
		{"Buys", len(result.Buys), styles.BaseStyle},
		{"Total Invested", result.TotalInvested, styles.CurrencyStyle},
		{"Total BTC", result.TotalBTC, styles.BaseStyle},
		{"Final Value", result.FinalValue, styles.CurrencyStyle},
		{"ROI", result.ROI / 100, styles.PercentStyle},
		{"Annualized Return", result.AnnualizedReturn / 100, styles.PercentStyle},
		{"Max Drawdown", result.MaxDrawdown / 100, styles.PercentStyle},
		{"Average Cost", result.AverageCost, styles.CurrencyStyle},
		{"Final Price", result.CurrentPrice, styles.CurrencyStyle},
	}

	for i, r := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		fx.SetCellValue(sheet, labelCell, r.label)
		fx.SetCellStyle(sheet, labelCell, labelCell, styles.SummaryStyle)
		fx.SetCellValue(sheet, valueCell, r.value)
		fx.SetCellStyle(sheet, valueCell, valueCell, r.style)
	}

	fx.SetColWidth(sheet, "A", "A", 20)
	fx.SetColWidth(sheet, "B", "B", 18)
	return nil
}
