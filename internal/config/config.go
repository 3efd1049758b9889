// Package config loads the server configuration.
//
// Values come from, in increasing priority:
//  1. built-in defaults
//  2. a YAML file (splitbill.yaml), if it exists
//  3. environment variables (PORT, DB_PATH, STATIC_PATH, JWT_SECRET,
//     TOKEN_TTL, LOG_LEVEL, LOG_FORMAT, SPLIT_REMAINDER)
//
// The YAML file may reference the environment as ${VAR}.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/pkg/logging"
)

// DefaultPath is where the server looks for its config file.
const DefaultPath = "splitbill.yaml"

// DevJWTSecret signs tokens when nothing else is configured. Fine for local
// development only.
const DevJWTSecret = "splitbill-dev-secret"

// Config represents the entire server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Split   SplitConfig   `yaml:"split"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
	// StaticPath is the directory of frontend files served on non-API paths.
	StaticPath string `yaml:"static_path"`
}

type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// SplitConfig tunes summary computation.
type SplitConfig struct {
	// Remainder is "ignore" or "largest-share".
	Remainder string `yaml:"remainder"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       8080,
			StaticPath: "../frontend/static",
		},
		Storage: StorageConfig{
			DatabasePath: "./data/bills.db",
		},
		Auth: AuthConfig{
			JWTSecret: DevJWTSecret,
			TokenTTL:  24 * time.Hour,
		},
		Split: SplitConfig{
			Remainder: string(calculator.RemainderIgnore),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatText,
		},
	}
}

// Load builds the configuration from defaults, the file at path and the
// environment, then validates it. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %q is not a number", v)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		cfg.Auth.TokenTTL = ttl
	}
	setFromEnv(&cfg.Server.StaticPath, "STATIC_PATH")
	setFromEnv(&cfg.Storage.DatabasePath, "DB_PATH")
	setFromEnv(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setFromEnv(&cfg.Logging.Level, "LOG_LEVEL")
	setFromEnv(&cfg.Logging.Format, "LOG_FORMAT")
	setFromEnv(&cfg.Split.Remainder, "SPLIT_REMAINDER")
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if strings.TrimSpace(c.Storage.DatabasePath) == "" {
		errs = append(errs, errors.New("storage.database_path is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL))
	}
	if _, err := calculator.ParseRemainderPolicy(c.Split.Remainder); err != nil {
		errs = append(errs, fmt.Errorf("split.remainder: %w", err))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// RemainderPolicy returns the validated remainder policy.
func (c *Config) RemainderPolicy() calculator.RemainderPolicy {
	p, _ := calculator.ParseRemainderPolicy(c.Split.Remainder)
	return p
}

// Addr is the server's listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
