// internal/config/config.go

// Package config loads libracatalog settings from .env files, the environment
// and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"libracatalog/internal/logging"
	"libracatalog/internal/storage"
)

// Viper keys. With AutomaticEnv each key is read from the upper-cased
// environment variable of the same name, e.g. BOOK_STORAGE_NAME.
const (
	KeyStorageName   = "book_storage_name"
	KeyStorageDriver = "storage_driver"
	KeyStorageDSN    = "storage_dsn"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
	KeyOTLPEndpoint  = "otel_exporter_otlp_endpoint"
)

// Defaults applied when nothing else sets a key.
const (
	DefaultStorageName   = "books.json"
	DefaultStorageDriver = storage.DriverFile
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "console"
)

// EnvFiles are loaded in order. godotenv never overrides a variable that is
// already set, so earlier files win.
var EnvFiles = []string{".env.local", ".env"}

// Config holds the application configuration.
type Config struct {
	StorageName   string
	StorageDriver string
	StorageDSN    string

	LogLevel  string
	LogFormat string

	OTLPEndpoint string
}

// ConfigError describes an invalid setting.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Key, e.Message)
}

// LoadEnvFiles loads the given .env files into the process environment.
// Missing files are skipped; unreadable or malformed ones are logged and skipped.
func LoadEnvFiles(files ...string) {
	for _, f := range files {
		err := godotenv.Load(f)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		logging.Default().Warn().Err(err).Str("file", f).Msg("failed to load env file")
	}
}

// Load reads the configuration from v, which may already have flags bound.
func Load(v *viper.Viper) (*Config, error) {
	v.SetDefault(KeyStorageName, DefaultStorageName)
	v.SetDefault(KeyStorageDriver, DefaultStorageDriver)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	cfg := &Config{
		StorageName:   strings.TrimSpace(v.GetString(KeyStorageName)),
		StorageDriver: strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageDriver))),
		StorageDSN:    strings.TrimSpace(v.GetString(KeyStorageDSN)),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFormat:     v.GetString(KeyLogFormat),
		OTLPEndpoint:  strings.TrimSpace(v.GetString(KeyOTLPEndpoint)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the storage settings are usable.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case storage.DriverFile:
		if c.StorageName == "" {
			return &ConfigError{Key: KeyStorageName, Message: "must not be empty"}
		}
	case storage.DriverSQLite, storage.DriverPostgres:
		if c.StorageDSN == "" {
			return &ConfigError{Key: KeyStorageDSN, Message: fmt.Sprintf("required for driver %s", c.StorageDriver)}
		}
	default:
		return &ConfigError{Key: KeyStorageDriver, Message: fmt.Sprintf("unknown driver %q", c.StorageDriver)}
	}
	return nil
}

// StorageOptions returns the options for storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver: c.StorageDriver,
		Path:   c.StorageName,
		DSN:    c.StorageDSN,
	}
}
