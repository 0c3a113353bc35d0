// Package config loads naqd settings from defaults, an optional naqd.yaml,
// a .env file and NAQD_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. NAQD_SERVER_PORT.
const EnvPrefix = "NAQD"

type Config struct {
	DB        string          `mapstructure:"db"`
	LogLevel  string          `mapstructure:"log_level"`
	LogFormat string          `mapstructure:"log_format"`
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Invoice   InvoiceConfig   `mapstructure:"invoice"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type AuthConfig struct {
	// JWTSecret enables bearer-token auth on the API when set.
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type RedisConfig struct {
	// Addr enables the dashboard cache when set.
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DashboardConfig struct {
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	CurrencySymbol string        `mapstructure:"currency_symbol"`
}

type InvoiceConfig struct {
	ItemCode string `mapstructure:"item_code"`
}

// DefaultDBPath is ~/.naqd/naqd.db, falling back to the working directory.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "naqd.db"
	}
	return filepath.Join(home, ".naqd", "naqd.db")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", DefaultDBPath())
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "auto")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("dashboard.cache_ttl", 5*time.Minute)
	v.SetDefault("dashboard.currency_symbol", "₹")
	v.SetDefault("invoice.item_code", "sample item")
}

// Load reads configuration. An explicit path must exist; otherwise
// naqd.yaml is looked up in the working directory and $HOME/.naqd.
func Load(path string) (*Config, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("naqd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".naqd"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	if c.DB == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want auto, text or json)", c.LogFormat)
	}
	if c.Auth.JWTSecret != "" && c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	return nil
}
