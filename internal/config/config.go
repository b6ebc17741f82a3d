package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the CLI configuration loaded from environment variables and
// optional profile files.
type Config struct {
	APIKey                string        `mapstructure:"api_key"`
	BaseURL               string        `mapstructure:"base_url"`
	TestMode              bool          `mapstructure:"test_mode"`
	LogLevel              string        `mapstructure:"log_level"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	ProfilesFile string `mapstructure:"profiles_file"`
	Profile      string `mapstructure:"profile"`

	CacheType           string        `mapstructure:"cache_type"`
	CachePath           string        `mapstructure:"cache_path"`
	CacheTTLSeconds     int64         `mapstructure:"cache_ttl_seconds"`
	CacheCleanupSeconds int64         `mapstructure:"cache_cleanup_interval_seconds"`
	CacheTTL            time.Duration `mapstructure:"-"`
	CacheCleanup        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables, applying the selected
// credential profile (if any) on top.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetEnvPrefix("tokenchannel")
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "")
	v.SetDefault("test_mode", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("profiles_file", "")
	v.SetDefault("profile", "")
	v.SetDefault("cache_type", "bbolt")
	v.SetDefault("cache_path", "./data/reference.db")
	v.SetDefault("cache_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("cache_cleanup_interval_seconds", int64((6*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Profile != "" {
		if cfg.ProfilesFile == "" {
			return nil, fmt.Errorf("profile %q selected but profiles_file is not set", cfg.Profile)
		}
		reg, err := LoadProfiles(cfg.ProfilesFile)
		if err != nil {
			return nil, fmt.Errorf("load profiles: %w", err)
		}
		p, ok := reg.ByName(cfg.Profile)
		if !ok {
			return nil, fmt.Errorf("profile %q not found in %s", cfg.Profile, cfg.ProfilesFile)
		}
		cfg.applyProfile(p)
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api_key is required (set TOKENCHANNEL_API_KEY or select a profile)")
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.CacheTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_ttl_seconds (must be positive seconds)")
	}
	if cfg.CacheCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid cache_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.CacheTTL = time.Duration(cfg.CacheTTLSeconds) * time.Second
	cfg.CacheCleanup = time.Duration(cfg.CacheCleanupSeconds) * time.Second

	return &cfg, nil
}

// applyProfile overlays profile credentials on top of the environment values.
func (c *Config) applyProfile(p Profile) {
	c.APIKey = p.APIKey
	if p.BaseURL != "" {
		c.BaseURL = p.BaseURL
	}
	if p.TestMode != nil {
		c.TestMode = *p.TestMode
	}
}
