package main

import (
	"flag"
	"fmt"
	"time"
)

// AdvisorFlags holds all command line flags for the advisor command
type AdvisorFlags struct {
	// Configuration
	ConfigFile *string
	EnvFile    *string

	// Analysis selection
	Mode *string

	// Dip sizing inputs
	AvailableFiat *float64
	BaseAmount    *float64
	FGIOverride   *int

	// Watch mode
	Watch    *bool
	Interval *time.Duration

	// Output options
	JSONOut *bool

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewAdvisorFlags creates and registers all advisor command line flags
func NewAdvisorFlags() *AdvisorFlags {
	return &AdvisorFlags{
		// Configuration
		ConfigFile: flag.String("config", "", "Path to YAML configuration file"),
		EnvFile:    flag.String("env", ".env", "Environment file path"),

		// Analysis selection
		Mode: flag.String("mode", "market", "Analysis to run (market, macro, ahr999, dip, all)"),

		// Dip sizing inputs
		AvailableFiat: flag.Float64("fiat", 0, "Available fiat reserve for dip sizing"),
		BaseAmount:    flag.Float64("base-amount", 100.0, "Base DCA amount for dip sizing"),
		FGIOverride:   flag.Int("fgi", -1, "FGI override for dip sizing (default: fetch live value)"),

		// Watch mode
		Watch:    flag.Bool("watch", false, "Re-run the analysis on an interval with monitoring endpoints"),
		Interval: flag.Duration("interval", 15*time.Minute, "Watch mode refresh interval"),

		// Output options
		JSONOut: flag.Bool("json", false, "Print raw JSON instead of tables"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show help information"),
	}
}

func printUsageHelp() {
	fmt.Println("Usage: advisor [options]")
	fmt.Println()
	fmt.Println("Reads live market data and prints DCA strategy guidance.")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  advisor -mode market")
	fmt.Println("  advisor -mode macro -json")
	fmt.Println("  advisor -mode dip -fiat 5000 -base-amount 200")
	fmt.Println("  advisor -mode all -watch -interval 10m")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
}
