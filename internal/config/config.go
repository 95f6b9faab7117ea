package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Valuation ValuationConfig `yaml:"valuation" mapstructure:"valuation"`
	Market    MarketConfig    `yaml:"market" mapstructure:"market"`
	Ratings   RatingsConfig   `yaml:"ratings" mapstructure:"ratings"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ValuationConfig tunes the valuation pipeline.
type ValuationConfig struct {
	DiscountRate       float64 `yaml:"discount_rate" mapstructure:"discount_rate"`
	RequestTimeoutSecs int     `yaml:"request_timeout_secs" mapstructure:"request_timeout_secs"`
	CallTimeoutSecs    int     `yaml:"call_timeout_secs" mapstructure:"call_timeout_secs"`
	DefaultLocation    string  `yaml:"default_location" mapstructure:"default_location"`
}

// RequestTimeout returns the overall per-valuation deadline.
func (c ValuationConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// CallTimeout returns the per-collaborator-call deadline.
func (c ValuationConfig) CallTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSecs) * time.Second
}

// MarketConfig configures the external market-data provider.
type MarketConfig struct {
	BaseURL         string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs     int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CacheTTLMinutes int     `yaml:"cache_ttl_minutes" mapstructure:"cache_ttl_minutes"`
	RatePerSec      float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	RateBurst       int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// CacheTTL returns the snapshot cache time-to-live.
func (c MarketConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Timeout returns the market-data fetch deadline.
func (c MarketConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// RatingsConfig configures the company/product rating table.
type RatingsConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// StoreConfig configures the valuation store backend. An empty driver
// disables persistence.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WELLSWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("valuation.discount_rate", 0.05)
	v.SetDefault("valuation.request_timeout_secs", 30)
	v.SetDefault("valuation.call_timeout_secs", 10)
	v.SetDefault("valuation.default_location", "Hong Kong")
	v.SetDefault("market.base_url", "https://wellswaphk.onrender.com")
	v.SetDefault("market.timeout_secs", 10)
	v.SetDefault("market.cache_ttl_minutes", 5)
	v.SetDefault("market.rate_per_sec", 5)
	v.SetDefault("market.rate_burst", 5)
	v.SetDefault("store.driver", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
