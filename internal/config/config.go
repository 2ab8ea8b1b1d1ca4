package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds settings read from the environment and an optional .env file.
type Config struct {
	Addr    string
	BaseURL string

	DBDriver    string
	DatabaseURL string

	FetchTimeout time.Duration

	RateLimit float64
	RateBurst int

	LogLevel  string
	LogFormat string
}

// Load reads configuration from PODS_* environment variables. Values from
// envFiles (default ".env") are used only when the variable is not set.
func Load(envFiles ...string) (Config, error) {
	// a missing .env file is fine
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("PODS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", "0.0.0.0:3000")
	v.SetDefault("base_url", "")
	v.SetDefault("db_driver", "memory")
	v.SetDefault("database_url", "")
	v.SetDefault("fetch_timeout", "30s")
	v.SetDefault("rate_limit", 10.0)
	v.SetDefault("rate_burst", 20)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	cfg := Config{
		Addr:         v.GetString("addr"),
		BaseURL:      strings.TrimRight(v.GetString("base_url"), "/"),
		DBDriver:     strings.ToLower(v.GetString("db_driver")),
		DatabaseURL:  v.GetString("database_url"),
		FetchTimeout: v.GetDuration("fetch_timeout"),
		RateLimit:    v.GetFloat64("rate_limit"),
		RateBurst:    v.GetInt("rate_burst"),
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
	}

	if cfg.FetchTimeout <= 0 {
		return Config{}, fmt.Errorf("fetch timeout must be positive, got %q", v.GetString("fetch_timeout"))
	}
	return cfg, nil
}

// NewLogger builds the application logger from the log settings.
func (c Config) NewLogger() (*logrus.Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	switch c.LogFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return logger, nil
}
