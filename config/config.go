// Package config loads runtime settings and owns the database and cache
// connections.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration. Every key can come from the
// environment (PLANLINE_ prefix) or from an optional planline.yaml next to
// the binary.
type Config struct {
	HTTPAddr    string        `mapstructure:"http_addr"`
	DatabaseURL string        `mapstructure:"database_url"`
	RedisAddr   string        `mapstructure:"redis_addr"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

// Load reads configuration from file and environment. A missing config file
// is fine; a missing database URL or JWT secret is not.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("planline")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/planline")

	v.SetEnvPrefix("planline")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("token_ttl", 12*time.Hour)
	v.SetDefault("cache_ttl", 5*time.Minute)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url is not set (PLANLINE_DATABASE_URL)")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is not set (PLANLINE_JWT_SECRET)")
	}
	return &cfg, nil
}
