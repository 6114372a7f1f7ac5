// Package config loads the command line tool's settings from flags,
// MAILSCREEN_* environment variables and an optional .env file.
// Reference data (disposable domains, role accounts) is compiled in and
// not configurable here.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all tool configuration.
type Config struct {
	DNS     DNSConfig     `mapstructure:"dns"`
	Bulk    BulkConfig    `mapstructure:"bulk"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DNSConfig holds MX lookup settings.
type DNSConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	Format    string        `mapstructure:"format"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
}

// BulkConfig holds bulk run settings.
type BulkConfig struct {
	Workers int `mapstructure:"workers"`
}

// LoggingConfig holds diagnostic logging settings.
type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"`
	FilePath  string `mapstructure:"file_path"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
	MaxFiles  int    `mapstructure:"max_files"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"dns-endpoint": "dns.endpoint",
	"dns-format":   "dns.format",
	"dns-timeout":  "dns.timeout",
	"rate-limit":   "dns.rate_limit",
	"workers":      "bulk.workers",
	"log-level":    "logging.level",
	"log-output":   "logging.output",
	"log-file":     "logging.file_path",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("dns-endpoint", "", "DNS-over-HTTPS endpoint (default depends on --dns-format)")
	fs.String("dns-format", "json", "MX lookup transport: json, wire or system")
	fs.Duration("dns-timeout", 5*time.Second, "timeout for one MX lookup")
	fs.Float64("rate-limit", 0, "maximum MX lookups per second (0 = unlimited)")
	fs.Int("workers", 1, "bulk lines verified concurrently")
	fs.String("log-level", "warn", "diagnostic log level")
	fs.String("log-output", "stderr", "diagnostic log output: stderr, stdout, file or none")
	fs.String("log-file", "mailscreen.log", "log file path when --log-output=file")
}

// Load builds the configuration. Precedence, highest first: flags set on
// the command line, MAILSCREEN_* environment variables (also read from
// envFile when it exists), flag defaults. fs may be nil.
func Load(fs *pflag.FlagSet, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("MAILSCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("dns.endpoint", "")
	v.SetDefault("dns.format", "json")
	v.SetDefault("dns.timeout", 5*time.Second)
	v.SetDefault("dns.rate_limit", 0.0)
	v.SetDefault("bulk.workers", 1)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.file_path", "mailscreen.log")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_files", 3)

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DNS.Format {
	case "json", "wire", "system":
	default:
		return fmt.Errorf("config: unknown dns format %q", c.DNS.Format)
	}
	if c.DNS.Timeout <= 0 {
		return fmt.Errorf("config: dns timeout must be positive, got %s", c.DNS.Timeout)
	}
	if c.DNS.RateLimit < 0 {
		return fmt.Errorf("config: rate limit must not be negative")
	}
	if c.Bulk.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1, got %d", c.Bulk.Workers)
	}
	return nil
}
