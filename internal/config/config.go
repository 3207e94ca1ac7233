// Package config loads and validates readpage configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	ReaderAPI ReaderAPIConfig `mapstructure:"reader_api"`
	Headless  HeadlessConfig  `mapstructure:"headless"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Validator ValidatorConfig `mapstructure:"validator"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// FetchConfig governs the direct and social strategies.
type FetchConfig struct {
	UserAgent        string `mapstructure:"user_agent"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
	SocialTimeoutSec int    `mapstructure:"social_timeout_seconds"`
	SocialEndpoint   string `mapstructure:"social_endpoint"`
}

// ReaderAPIConfig configures the third-party reader/extraction service.
// An API key raises the service's rate limit; it is optional.
type ReaderAPIConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// HeadlessConfig configures the last-resort browser strategy.
type HeadlessConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	NavTimeoutSec    int      `mapstructure:"nav_timeout_seconds"`
	SettleSeconds    int      `mapstructure:"settle_seconds"`
	UserAgent        string   `mapstructure:"user_agent"`
	BlockedDomains   []string `mapstructure:"blocked_domains"`
	BlockedMediaExts []string `mapstructure:"blocked_media_exts"`
	DomainQPS        float64  `mapstructure:"domain_qps"`
}

// CacheConfig controls the in-memory result cache.
type CacheConfig struct {
	TTLHours int `mapstructure:"ttl_hours"`
}

// ValidatorConfig tunes the junk-content classifier.
type ValidatorConfig struct {
	MinLength int `mapstructure:"min_length"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("READPAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("fetch.user_agent",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("fetch.timeout_seconds", 10)
	v.SetDefault("fetch.social_timeout_seconds", 10)
	v.SetDefault("fetch.social_endpoint", "https://api.fxtwitter.com")
	v.SetDefault("reader_api.endpoint", "https://r.jina.ai")
	v.SetDefault("reader_api.timeout_seconds", 30)
	v.SetDefault("headless.enabled", true)
	v.SetDefault("headless.nav_timeout_seconds", 45)
	v.SetDefault("headless.settle_seconds", 3)
	v.SetDefault("headless.domain_qps", 0)
	v.SetDefault("headless.blocked_domains", []string{
		"google-analytics.com",
		"googletagmanager.com",
		"doubleclick.net",
		"facebook.net",
		"hotjar.com",
		"segment.io",
		"amplitude.com",
	})
	v.SetDefault("headless.blocked_media_exts", []string{
		".mp4", ".webm", ".avi", ".mov", ".mp3", ".wav", ".flac", ".zip", ".tar", ".gz",
	})
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("validator.min_length", 200)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be > 0")
	}
	if c.ReaderAPI.TimeoutSeconds <= 0 {
		return fmt.Errorf("reader_api.timeout_seconds must be > 0")
	}
	if c.Headless.Enabled && c.Headless.NavTimeoutSec <= 0 {
		return fmt.Errorf("headless.nav_timeout_seconds must be > 0 when headless is enabled")
	}
	if c.Cache.TTLHours <= 0 {
		return fmt.Errorf("cache.ttl_hours must be > 0")
	}
	if c.Validator.MinLength < 0 {
		return fmt.Errorf("validator.min_length must be >= 0")
	}
	return nil
}

// CacheTTL converts the configured hours into a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}
