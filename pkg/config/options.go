package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/simple-presign/pkg/presign"
)

// WithEnv reads every field from its env tag, falling back to env-default.
//
// Environment variables:
//
//	PORT                     server port (default "8080")
//	LOG_LEVEL                debug, info, warn, error (default "info")
//	AWS_REGION               signing region (default "us-east-1")
//	PRESIGN_BUCKET           default bucket
//	PRESIGN_HOST             endpoint host (default "s3.amazonaws.com")
//	PRESIGN_REGIONAL_HOST    use s3.<region>.amazonaws.com (default false)
//	PRESIGN_METHOD           default method (default "GET")
//	PRESIGN_EXPIRY_SECONDS   default expiry (default 86400)
//	AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_SESSION_TOKEN
func WithEnv() Option {
	return func(c *Config) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		return nil
	}
}

// WithFile reads a .env, .yaml, .json or .toml file, then the environment.
func WithFile(path string) Option {
	return func(c *Config) error {
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}
}

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *Config) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithRegion sets the signing region
func WithRegion(region string) Option {
	return func(c *Config) error {
		if region == "" {
			return fmt.Errorf("region cannot be empty")
		}
		c.Region = region
		return nil
	}
}

// WithBucket sets the default bucket
func WithBucket(bucket string) Option {
	return func(c *Config) error {
		c.Bucket = bucket
		return nil
	}
}

// WithHost sets the endpoint host; regional switches to s3.<region>.amazonaws.com
func WithHost(host string, regional bool) Option {
	return func(c *Config) error {
		if host == "" && !regional {
			return fmt.Errorf("host cannot be empty")
		}
		if host != "" {
			c.Host = host
		}
		c.RegionalHost = regional
		return nil
	}
}

// WithMethod sets the default HTTP method
func WithMethod(method string) Option {
	return func(c *Config) error {
		if method == "" {
			return fmt.Errorf("method cannot be empty")
		}
		c.Method = strings.ToUpper(method)
		return nil
	}
}

// WithExpirySeconds sets the default expiry
func WithExpirySeconds(seconds int64) Option {
	return func(c *Config) error {
		if err := presign.ValidateExpiry(seconds); err != nil {
			return err
		}
		c.ExpirySeconds = seconds
		return nil
	}
}

// WithCredentials sets static credentials
func WithCredentials(accessKeyID, secretAccessKey, sessionToken string) Option {
	return func(c *Config) error {
		if accessKeyID == "" || secretAccessKey == "" {
			return fmt.Errorf("access key ID and secret access key are required")
		}
		c.AccessKeyID = accessKeyID
		c.SecretAccessKey = secretAccessKey
		c.SessionToken = sessionToken
		return nil
	}
}

// WithLogLevel sets the log level
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		if _, err := parseLevel(level); err != nil {
			return err
		}
		c.LogLevel = level
		return nil
	}
}
