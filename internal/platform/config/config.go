// Package config loads server configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	strutil "medcalc/pkg/platform/strings"
)

// MaxPrecision mirrors the largest number of decimal places the engine rounds to.
const MaxPrecision = 15

// Server captures HTTP server level configuration.
type Server struct {
	Addr                string          `yaml:"addr"`
	LogLevel            string          `yaml:"log_level"`
	LogFormat           string          `yaml:"log_format"`
	DefaultPrecision    *int            `yaml:"default_precision"`
	BatchConcurrency    int             `yaml:"batch_concurrency"`
	ShutdownTimeout     time.Duration   `yaml:"shutdown_timeout"`
	RateLimit           RateLimitConfig `yaml:"rate_limit"`
	Redis               RedisConfig     `yaml:"redis"`
	RequiredCalculators []string        `yaml:"required_calculators"`
}

// RateLimitConfig is the per-IP budget on dispatch routes.
type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// RedisConfig configures the optional shared rate limit store. An empty URL
// keeps rate limit state in memory.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"json", "text"}
)

// Default returns the configuration used when nothing is overridden.
func Default() Server {
	return Server{
		Addr:             ":8080",
		LogLevel:         "info",
		LogFormat:        "json",
		BatchConcurrency: 8,
		ShutdownTimeout:  10 * time.Second,
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: 120,
			Window:   time.Minute,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		},
	}
}

// Load overlays the YAML file at path on top of the defaults.
func Load(path string) (Server, error) {
	cfg := Default()
	if err := cfg.overlayFile(path); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// FromEnv builds a Server config from environment variables so main stays
// lean. MEDCALC_CONFIG_FILE, when set, is applied before the other variables.
func FromEnv() (Server, error) {
	cfg := Default()
	if path := os.Getenv("MEDCALC_CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return Server{}, err
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return Server{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c *Server) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Server) applyEnvOverrides() error {
	if v := os.Getenv("MEDCALC_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("MEDCALC_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("MEDCALC_LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("MEDCALC_DEFAULT_PRECISION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MEDCALC_DEFAULT_PRECISION: %w", err)
		}
		c.DefaultPrecision = &n
	}
	if v := os.Getenv("MEDCALC_BATCH_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MEDCALC_BATCH_CONCURRENCY: %w", err)
		}
		c.BatchConcurrency = n
	}
	if v := os.Getenv("MEDCALC_RATE_LIMIT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MEDCALC_RATE_LIMIT_ENABLED: %w", err)
		}
		c.RateLimit.Enabled = b
	}
	if v := os.Getenv("MEDCALC_RATE_LIMIT_REQUESTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MEDCALC_RATE_LIMIT_REQUESTS: %w", err)
		}
		c.RateLimit.Requests = n
	}
	if v := os.Getenv("MEDCALC_RATE_LIMIT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MEDCALC_RATE_LIMIT_WINDOW: %w", err)
		}
		c.RateLimit.Window = d
	}
	if v := os.Getenv("MEDCALC_REQUIRED_CALCULATORS"); v != "" {
		c.RequiredCalculators = strutil.SplitList(v, ",")
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	return nil
}

// Validate rejects settings the server cannot start with. Every problem is
// reported, not just the first.
func (c Server) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log level %q (valid: %v)", c.LogLevel, validLogLevels))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errs = append(errs, fmt.Errorf("invalid log format %q (valid: %v)", c.LogFormat, validLogFormats))
	}
	if p := c.DefaultPrecision; p != nil && (*p < 0 || *p > MaxPrecision) {
		errs = append(errs, fmt.Errorf("default precision must be between 0 and %d, got %d", MaxPrecision, *p))
	}
	if c.BatchConcurrency < 1 {
		errs = append(errs, errors.New("batch concurrency must be at least 1"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.Requests <= 0 {
			errs = append(errs, errors.New("rate limit requests must be positive"))
		}
		if c.RateLimit.Window <= 0 {
			errs = append(errs, errors.New("rate limit window must be positive"))
		}
	}
	for i, id := range c.RequiredCalculators {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, fmt.Errorf("required_calculators[%d] is empty", i))
		}
	}
	return errors.Join(errs...)
}
