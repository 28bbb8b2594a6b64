package reporting

import (
	"github.com/vubinh304/btc-dca-advisor/pkg/types"
)

// Package reporting renders simulation and analysis results for the CLIs.

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	OutputResult(result *types.BacktestResult)
	OutputComparison(comparison *types.ComparisonResult)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteBuysCSV(result *types.BacktestResult, path string) error
	WriteBuysXLSX(result *types.BacktestResult, path string) error
	WriteResultJSON(result interface{}, path string) error
}

// PathManager defines interface for output path management
type PathManager interface {
	GetDefaultOutputDir(strategy, frequency string) string
	EnsureDirectoryExists(path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
	PathManager
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle   int
	CurrencyStyle int
	PercentStyle  int
	BaseStyle     int
	SummaryStyle  int
}
