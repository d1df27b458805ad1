// Package config loads service configuration from defaults, an optional
// YAML file and USERREGISTRY_* environment variables, in that order.
// Callers may override the result further before calling Validate.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	apperrors "github.com/toyz/userregistry/internal/errors"
	"github.com/toyz/userregistry/internal/models"
	"github.com/toyz/userregistry/internal/utils"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "USERREGISTRY_"

// Adapters lists the supported web server adapters
var Adapters = []string{"echo", "gin", "fiber"}

// Config holds application configuration
type Config struct {
	Adapter   string `yaml:"adapter"    env:"ADAPTER"`
	Host      string `yaml:"host"       env:"HOST"`
	Port      int    `yaml:"port"       env:"PORT"`
	LogLevel  string `yaml:"log_level"  env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	DefaultPageLimit int `yaml:"default_page_limit" env:"DEFAULT_PAGE_LIMIT"`
	MaxPageLimit     int `yaml:"max_page_limit"     env:"MAX_PAGE_LIMIT"`

	// MetricsAddr serves Prometheus metrics when non-empty
	MetricsAddr     string        `yaml:"metrics_addr"     env:"METRICS_ADDR"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`

	// Seed users are inserted without validation at startup
	Seed []models.User `yaml:"seed" env:"-"`

	// sources maps a key to the layer that last set it
	sources map[string]string `env:"-"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Adapter:          "echo",
		Port:             8080,
		LogLevel:         "info",
		LogFormat:        "text",
		DefaultPageLimit: 10,
		MaxPageLimit:     100,
		ShutdownTimeout:  30 * time.Second,
	}
}

// Load builds a validated Config from defaults, the YAML file at path
// (skipped when path is empty) and the process environment.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is Load with an explicit environment; nil means os.Environ.
func LoadWithEnv(path string, environ map[string]string) (*Config, error) {
	cfg, err := Read(path, environ)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read layers the file and environment over the defaults without
// validating, so callers can apply further overrides first.
func Read(path string, environ map[string]string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, apperrors.WrapConfigError("env", err)
	}
	cfg.markEnv(environ)
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.WrapConfigError(path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return apperrors.WrapConfigError(path, err)
	}

	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return apperrors.WrapConfigError(path, err)
	}
	for key := range keys {
		c.SetFrom(path, key)
	}
	return nil
}

func (c *Config) markEnv(environ map[string]string) {
	if environ == nil {
		environ = make(map[string]string)
		for _, kv := range os.Environ() {
			if name, value, ok := strings.Cut(kv, "="); ok {
				environ[name] = value
			}
		}
	}
	for name := range environ {
		if key, ok := strings.CutPrefix(name, EnvPrefix); ok {
			c.SetFrom("env", strings.ToLower(key))
		}
	}
}

// SetFrom records source as the layer that last set each key. Validation
// errors name it.
func (c *Config) SetFrom(source string, keys ...string) {
	if c.sources == nil {
		c.sources = make(map[string]string)
	}
	for _, key := range keys {
		c.sources[key] = source
	}
}

// SourceOf returns the layer that last set key, "defaults" if none did
func (c *Config) SourceOf(key string) string {
	if source, ok := c.sources[key]; ok {
		return source
	}
	return "defaults"
}

// Validate checks that every field holds a usable value
func (c *Config) Validate() error {
	checks := []struct {
		key string
		err error
	}{
		{"adapter", utils.IsOneOf("adapter", Adapters...)(c.Adapter)},
		{"port", utils.InRange("port", 1, 65535)(c.Port)},
		{"log_level", utils.IsOneOf("log_level", "debug", "info", "warn", "error")(c.LogLevel)},
		{"log_format", utils.IsOneOf("log_format", "text", "json")(c.LogFormat)},
		{"max_page_limit", utils.InRange("max_page_limit", 1, 10000)(c.MaxPageLimit)},
		{"default_page_limit", utils.InRange("default_page_limit", 1, c.MaxPageLimit)(c.DefaultPageLimit)},
	}
	for _, check := range checks {
		if check.err != nil {
			return apperrors.NewConfigurationError(c.SourceOf(check.key), check.key, check.err.Error())
		}
	}
	if c.ShutdownTimeout <= 0 {
		return apperrors.NewConfigurationError(c.SourceOf("shutdown_timeout"), "shutdown_timeout",
			fmt.Sprintf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout))
	}
	return nil
}

// Address returns the host:port the HTTP server listens on
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
