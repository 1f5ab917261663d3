package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the dashboard service.
type Config struct {
	Server    Server    `mapstructure:"server"`
	Database  Database  `mapstructure:"database"`
	Logger    Logger    `mapstructure:"logger"`
	Cache     Cache     `mapstructure:"cache"`
	Market    Market    `mapstructure:"market"`
	Dashboard Dashboard `mapstructure:"dashboard"`
}

// Server holds the configuration for the HTTP server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the trading log database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Cache holds the TTLs (in seconds) for the two query classes: live market
// reads and trading-log reads.
type Cache struct {
	MarketTTL   int `mapstructure:"market_ttl"`
	DatabaseTTL int `mapstructure:"database_ttl"`
}

// Market holds the configuration for the Upbit public API client.
type Market struct {
	BaseURL        string  `mapstructure:"base_url"`
	Symbol         string  `mapstructure:"symbol"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Dashboard holds the query windows used when loading data for a render.
type Dashboard struct {
	TradeWindowDays int `mapstructure:"trade_window_days"`
	PortfolioLimit  int `mapstructure:"portfolio_limit"`
	DecisionLimit   int `mapstructure:"decision_limit"`
	ReflectionLimit int `mapstructure:"reflection_limit"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("server.port", 8501)
	viper.SetDefault("database.dsn", "trading_enhanced.db")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("cache.market_ttl", 60)    // seconds
	viper.SetDefault("cache.database_ttl", 300) // seconds
	viper.SetDefault("market.base_url", "https://api.upbit.com/v1")
	viper.SetDefault("market.symbol", "KRW-BTC")
	viper.SetDefault("market.rate_limit", 10) // requests per second
	viper.SetDefault("market.rate_limit_burst", 5)
	viper.SetDefault("dashboard.trade_window_days", 365)
	viper.SetDefault("dashboard.portfolio_limit", 100)
	viper.SetDefault("dashboard.decision_limit", 50)
	viper.SetDefault("dashboard.reflection_limit", 10)

	// Every key has a default, so a missing config file is not an error.
	if err = viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}
