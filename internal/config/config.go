package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Values come from an
// optional YAML file, overridden by environment variables, with
// working defaults for everything.
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	Providers struct {
		CoinGeckoBaseURL string `yaml:"coingecko_base_url"`
		CoinGeckoAPIKey  string `yaml:"coingecko_api_key"`
		FearGreedBaseURL string `yaml:"feargreed_base_url"`
		YahooBaseURL     string `yaml:"yahoo_base_url"`
		TrendsBaseURL    string `yaml:"trends_base_url"`
		TrendsEnabled    bool   `yaml:"trends_enabled"`

		// Alternative price source; used when Source is "bybit".
		Source         string `yaml:"source"`
		BybitAPIKey    string `yaml:"bybit_api_key"`
		BybitAPISecret string `yaml:"bybit_api_secret"`
		BybitSymbol    string `yaml:"bybit_symbol"`
	} `yaml:"providers"`

	Engine struct {
		FetchTimeout     time.Duration `yaml:"fetch_timeout"`
		ValuationTimeout time.Duration `yaml:"valuation_timeout"`
	} `yaml:"engine"`

	Cache struct {
		// "memory" or "redis".
		Backend       string `yaml:"backend"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
	} `yaml:"cache"`

	Monitoring struct {
		Enabled        bool `yaml:"enabled"`
		PrometheusPort int  `yaml:"prometheus_port"`
		HealthPort     int  `yaml:"health_port"`
	} `yaml:"monitoring"`
}

// Load reads config from a YAML file if path is non-empty, then
// applies environment variable overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{
		Environment: "development",
		LogLevel:    "info",
	}
	cfg.Providers.TrendsEnabled = false
	cfg.Providers.Source = "coingecko"
	cfg.Providers.BybitSymbol = "BTCUSDT"
	cfg.Engine.FetchTimeout = 8 * time.Second
	cfg.Engine.ValuationTimeout = 10 * time.Second
	cfg.Cache.Backend = "memory"
	cfg.Cache.RedisAddr = "localhost:6379"
	cfg.Monitoring.PrometheusPort = 8080
	cfg.Monitoring.HealthPort = 8081
	return cfg
}

func applyEnv(cfg *Config) {
	setString(&cfg.Environment, "ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	setString(&cfg.Providers.CoinGeckoBaseURL, "COINGECKO_BASE_URL")
	setString(&cfg.Providers.CoinGeckoAPIKey, "COINGECKO_API_KEY")
	setString(&cfg.Providers.FearGreedBaseURL, "FEARGREED_BASE_URL")
	setString(&cfg.Providers.YahooBaseURL, "YAHOO_BASE_URL")
	setString(&cfg.Providers.TrendsBaseURL, "TRENDS_BASE_URL")
	setBool(&cfg.Providers.TrendsEnabled, "TRENDS_ENABLED")
	setString(&cfg.Providers.Source, "PRICE_SOURCE")
	setString(&cfg.Providers.BybitAPIKey, "BYBIT_API_KEY")
	setString(&cfg.Providers.BybitAPISecret, "BYBIT_API_SECRET")
	setString(&cfg.Providers.BybitSymbol, "BYBIT_SYMBOL")

	setDuration(&cfg.Engine.FetchTimeout, "FETCH_TIMEOUT")
	setDuration(&cfg.Engine.ValuationTimeout, "VALUATION_TIMEOUT")

	setString(&cfg.Cache.Backend, "CACHE_BACKEND")
	setString(&cfg.Cache.RedisAddr, "REDIS_ADDR")
	setString(&cfg.Cache.RedisPassword, "REDIS_PASSWORD")
	setInt(&cfg.Cache.RedisDB, "REDIS_DB")

	setBool(&cfg.Monitoring.Enabled, "MONITORING_ENABLED")
	setInt(&cfg.Monitoring.PrometheusPort, "PROMETHEUS_PORT")
	setInt(&cfg.Monitoring.HealthPort, "HEALTH_PORT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
