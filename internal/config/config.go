// Package config loads process configuration once at startup from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyHost            = "HOST"
	KeyPort            = "PORT"
	KeyAPIKey          = "API_KEY"
	KeyLogLevel        = "LOG_LEVEL"
	KeyMetricsEnabled  = "METRICS_ENABLED"
	KeyMaxBodyBytes    = "MAX_BODY_BYTES"
	KeyShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

const (
	DefaultPort            = 3000
	DefaultLogLevel        = "info"
	DefaultMaxBodyBytes    = 1 << 20
	DefaultShutdownTimeout = 10 * time.Second
)

var ErrMissingAPIKey = errors.New("API_KEY is required")

type Config struct {
	Host            string
	Port            int
	APIKey          string
	LogLevel        string
	MetricsEnabled  bool
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyHost, "")
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyAPIKey, "")
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyMetricsEnabled, true)
	v.SetDefault(KeyMaxBodyBytes, DefaultMaxBodyBytes)
	v.SetDefault(KeyShutdownTimeout, DefaultShutdownTimeout)
}

// LoadDotEnv loads path into the process environment. A missing file is not
// an error; variables already set in the environment win.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from v, with environment variables taking
// precedence over defaults.
func Load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()

	cfg := Config{
		Host:            v.GetString(KeyHost),
		Port:            v.GetInt(KeyPort),
		APIKey:          v.GetString(KeyAPIKey),
		LogLevel:        v.GetString(KeyLogLevel),
		MetricsEnabled:  v.GetBool(KeyMetricsEnabled),
		MaxBodyBytes:    v.GetInt64(KeyMaxBodyBytes),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("%s must be between 1 and 65535, got %d", KeyPort, c.Port))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyMaxBodyBytes))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive", KeyShutdownTimeout))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
