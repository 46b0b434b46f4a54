// Package config loads process configuration by layering defaults, an
// optional YAML file, and INTERVIEWD_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration.
type Config struct {
	// SQLiteDSN is the database path or ":memory:".
	SQLiteDSN string `koanf:"sqlite_dsn"`

	// UploadDir holds workbook files referenced by relative path.
	UploadDir string `koanf:"upload_dir"`

	// MetricsAddr is the Prometheus scrape listen address.
	MetricsAddr string `koanf:"metrics_addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ImportMaxRows caps the number of data rows read per workbook.
	// Zero means unlimited.
	ImportMaxRows int `koanf:"import_max_rows"`

	// ImportTimeout bounds a single import run.
	ImportTimeout time.Duration `koanf:"import_timeout"`
}

func defaults() *Config {
	return &Config{
		SQLiteDSN:     "interviewd.db",
		UploadDir:     "uploads",
		MetricsAddr:   ":9090",
		LogLevel:      "info",
		ImportMaxRows: 0,
		ImportTimeout: 2 * time.Minute,
	}
}

// Load builds a Config. Precedence, low to high:
//  1. defaults
//  2. YAML file named by INTERVIEWD_CONFIG, if set
//  3. environment variables with prefix INTERVIEWD_
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("INTERVIEWD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("INTERVIEWD_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "interviewd_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SQLiteDSN == "" {
		return errors.New("sqlite_dsn must not be empty")
	}
	if c.MetricsAddr == "" {
		return errors.New("metrics_addr must not be empty")
	}
	if c.ImportMaxRows < 0 {
		return errors.New("import_max_rows must not be negative")
	}
	if c.ImportTimeout <= 0 {
		return errors.New("import_timeout must be positive")
	}
	return nil
}
