package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/tendant/simple-presign/pkg/presign"
)

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Load constructs a Config by applying the supplied options on top of library defaults.
// WithEnv and WithFile fill every tagged field, so put them before explicit setters.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		Port:          "8080",
		LogLevel:      "info",
		Region:        "us-east-1",
		Host:          presign.DefaultHost,
		Method:        "GET",
		ExpirySeconds: presign.DefaultExpirySeconds,
	}
}

// Config holds everything the CLI and the server need to issue presigned URLs.
// Credentials are optional; when unset the SDK default chain is used.
type Config struct {
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	Region        string `yaml:"region" env:"AWS_REGION" env-default:"us-east-1"`
	Bucket        string `yaml:"bucket" env:"PRESIGN_BUCKET"`
	Host          string `yaml:"host" env:"PRESIGN_HOST" env-default:"s3.amazonaws.com"`
	RegionalHost  bool   `yaml:"regional_host" env:"PRESIGN_REGIONAL_HOST" env-default:"false"`
	Method        string `yaml:"method" env:"PRESIGN_METHOD" env-default:"GET"`
	ExpirySeconds int64  `yaml:"expiry_seconds" env:"PRESIGN_EXPIRY_SECONDS" env-default:"86400"`

	AccessKeyID     string `yaml:"access_key_id" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken    string `yaml:"session_token" env:"AWS_SESSION_TOKEN"`
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.Region == "" {
		return errors.New("region cannot be empty")
	}
	if c.Host == "" && !c.RegionalHost {
		return errors.New("host cannot be empty")
	}
	if c.Method == "" {
		return errors.New("method cannot be empty")
	}
	if err := presign.ValidateExpiry(c.ExpirySeconds); err != nil {
		return fmt.Errorf("invalid expiry: %w", err)
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		return errors.New("access key ID and secret access key must be set together")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SignerOptions translates the endpoint settings into presign options.
func (c *Config) SignerOptions() []presign.Option {
	opts := []presign.Option{presign.WithHost(c.Host)}
	if c.RegionalHost {
		opts = append(opts, presign.WithRegionalHost())
	}
	return opts
}

// Logger returns a text logger on stderr at the configured level.
func (c *Config) Logger() *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
