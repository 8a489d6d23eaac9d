package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultDotEnvFile is the .env file the server reads from its working directory.
const DefaultDotEnvFile = ".env"

// Default values applied when no other source provides a setting.
const (
	DefaultAddress         = "127.0.0.1:3000"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10
	DefaultMaxConns        = 16
	DefaultConnectTimeout  = 5
)

// Options controls where Load looks for settings besides the process environment.
type Options struct {
	// ConfigFile is an optional YAML, JSON or TOML file. A missing file is an error.
	ConfigFile string
	// DotEnvFile is an optional KEY=VALUE file. A missing file is ignored and
	// variables already present in the environment are never overridden.
	DotEnvFile string
	// Flags, when set, override every other source for the flags the user changed.
	Flags *pflag.FlagSet
}

// envBindings maps configuration keys to the environment variables that set them.
var envBindings = map[string]string{
	"server.address":           "SERVER_ADDRESS",
	"server.log_level":         "LOG_LEVEL",
	"server.shutdown_timeout":  "SHUTDOWN_TIMEOUT",
	"database.url":             "DATABASE_URL",
	"database.max_conns":       "DATABASE_MAX_CONNS",
	"database.connect_timeout": "DATABASE_CONNECT_TIMEOUT",
}

// flagBindings maps configuration keys to command-line flag names.
var flagBindings = map[string]string{
	"server.address":     "addr",
	"server.log_level":   "log-level",
	"database.url":       "database-url",
	"database.max_conns": "max-conns",
}

var validate = validator.New()

// Load configuration from flags, environment variables and optionally config files.
// Precedence, highest first: changed flags, environment, .env file, config file, defaults.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", DefaultAddress)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("database.max_conns", DefaultMaxConns)
	v.SetDefault("database.connect_timeout", DefaultConnectTimeout)

	if opts.DotEnvFile != "" {
		if err := loadDotEnv(opts.DotEnvFile); err != nil {
			return nil, err
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.Flags != nil {
		for key, name := range flagBindings {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv copies the variables of a .env file into the process environment,
// skipping any variable that already has a non-empty value.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	dotenv := viper.New()
	dotenv.SetConfigFile(path)
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, key := range dotenv.AllKeys() {
		name := strings.ToUpper(key)
		if os.Getenv(name) != "" {
			continue
		}
		if err := os.Setenv(name, dotenv.GetString(key)); err != nil {
			return fmt.Errorf("failed to set %s from %s: %w", name, path, err)
		}
	}

	return nil
}
