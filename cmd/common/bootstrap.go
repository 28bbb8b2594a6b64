package common

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vubinh304/btc-dca-advisor/internal/config"
	"github.com/vubinh304/btc-dca-advisor/pkg/data"
)

// LoadEnvironment loads variables from an env file if it exists.
// A missing file is not an error; process env always wins.
func LoadEnvironment(envFile string) {
	if envFile == "" {
		return
	}
	if _, err := os.Stat(envFile); err != nil {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Warn().Err(err).Str("file", envFile).Msg("could not load env file")
	}
}

// SetupLogging configures the global zerolog logger with a console
// writer and the configured level.
func SetupLogging(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// BuildCache constructs the provider cache selected by config.
func BuildCache(cfg *config.Config) data.Cache {
	if cfg.Cache.Backend == "redis" {
		cache := data.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err := cache.Ping(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, falling back to in-memory cache")
			return data.NewMemoryCache()
		}
		return cache
	}
	return data.NewMemoryCache()
}

// BuildPriceProvider constructs the configured spot/history price
// source.
func BuildPriceProvider(cfg *config.Config, cache data.Cache) data.PriceProvider {
	if cfg.Providers.Source == "bybit" {
		return data.NewBybitPriceProvider(cfg.Providers.BybitAPIKey, cfg.Providers.BybitAPISecret, cfg.Providers.BybitSymbol)
	}
	return data.NewCoinGeckoProvider(cfg.Providers.CoinGeckoBaseURL, cfg.Providers.CoinGeckoAPIKey, cache)
}
