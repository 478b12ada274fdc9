package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default values for configuration fields.
const (
	DefaultConfigPath       = "schema.yml"
	DefaultNamespace        = "db_state"
	DefaultTable            = "changes"
	DefaultConnectTimeout   = 10 * time.Second
	DefaultLockTimeout      = time.Duration(0)
	DefaultStatementTimeout = time.Duration(0)
)

// Environment variables consulted by MergeEnv.
const (
	EnvDatabaseURI      = "DATABASE_URI"
	EnvConnectTimeout   = "SCHEMA_CONNECT_TIMEOUT"
	EnvLockTimeout      = "SCHEMA_LOCK_TIMEOUT"
	EnvStatementTimeout = "SCHEMA_STATEMENT_TIMEOUT"
)

// ErrDatabaseURIRequired is returned by Validate when no connection string is configured.
var ErrDatabaseURIRequired = errors.New(
	"database URI is required (set --database/-d, " + EnvDatabaseURI + ", or database_uri in config)",
)

// Config holds the application configuration loaded from file, environment, and flags.
type Config struct {
	DatabaseURI      string
	Namespace        string
	Table            string
	ConnectTimeout   time.Duration
	LockTimeout      time.Duration
	StatementTimeout time.Duration
}

// fileConfig is the raw file representation with string durations.
// It is shared by the YAML and TOML decoders.
type fileConfig struct {
	DatabaseURI      string `yaml:"database_uri"      toml:"database_uri"`
	Namespace        string `yaml:"namespace"         toml:"namespace"`
	Table            string `yaml:"table"             toml:"table"`
	ConnectTimeout   string `yaml:"connect_timeout"   toml:"connect_timeout"`
	LockTimeout      string `yaml:"lock_timeout"      toml:"lock_timeout"`
	StatementTimeout string `yaml:"statement_timeout" toml:"statement_timeout"`
}

// New returns a Config populated with default values.
func New() *Config {
	return &Config{
		Namespace:        DefaultNamespace,
		Table:            DefaultTable,
		ConnectTimeout:   DefaultConnectTimeout,
		LockTimeout:      DefaultLockTimeout,
		StatementTimeout: DefaultStatementTimeout,
	}
}

// Load reads a configuration file and returns a Config.
// Files ending in .toml are decoded as TOML, everything else as YAML.
// If allowMissing is true and the file does not exist, defaults are returned.
func Load(path string, allowMissing bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			return New(), nil
		}

		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var raw fileConfig
	if err := decode(path, data, &raw); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return fromFile(&raw)
}

func decode(path string, data []byte, raw *fileConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, raw)
	}

	return yaml.Unmarshal(data, raw)
}

// fromFile converts the raw file representation to a Config with defaults applied.
func fromFile(raw *fileConfig) (*Config, error) {
	cfg := New()

	if raw.DatabaseURI != "" {
		cfg.DatabaseURI = raw.DatabaseURI
	}

	if raw.Namespace != "" {
		cfg.Namespace = raw.Namespace
	}

	if raw.Table != "" {
		cfg.Table = raw.Table
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"connect_timeout", raw.ConnectTimeout, &cfg.ConnectTimeout},
		{"lock_timeout", raw.LockTimeout, &cfg.LockTimeout},
		{"statement_timeout", raw.StatementTimeout, &cfg.StatementTimeout},
	}

	for _, d := range durations {
		if d.raw == "" {
			continue
		}

		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("parsing %s %q: %w", d.key, d.raw, err)
		}

		*d.dst = v
	}

	return cfg, nil
}

// MergeEnv overrides config fields from the environment.
// Unparseable durations leave the current value in place.
func MergeEnv(cfg *Config) {
	if v := os.Getenv(EnvDatabaseURI); v != "" {
		cfg.DatabaseURI = v
	}

	mergeDuration(EnvConnectTimeout, &cfg.ConnectTimeout)
	mergeDuration(EnvLockTimeout, &cfg.LockTimeout)
	mergeDuration(EnvStatementTimeout, &cfg.StatementTimeout)
}

func mergeDuration(key string, dst *time.Duration) {
	v := os.Getenv(key)
	if v == "" {
		return
	}

	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}

// Validate reports configuration that makes connecting pointless.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURI) == "" {
		return ErrDatabaseURIRequired
	}

	return nil
}
