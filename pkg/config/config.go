package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the wrapper around viper with extra helpers.
type Config struct {
	*viper.Viper

	sensitiveKeys map[string]struct{}
	onChange      func(fsnotify.Event)
	fileSet       bool
	explicitFile  bool
}

// Option is a functional option for New.
type Option func(*Config) error

// New creates a Config instance. Options are applied in order, then the
// config file is read if one was named.
//
//	cfg, err := config.New(
//	  config.WithDefaults(map[string]any{"http.timeout": "30s"}),
//	  config.WithDotEnv(".env"),
//	  config.WithFile("apinet.yaml"),
//	  config.WithEnv("APINET"),
//	)
func New(opts ...Option) (*Config, error) {
	cfg := &Config{
		Viper:         viper.New(),
		sensitiveKeys: map[string]struct{}{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config: applying option: %w", err)
		}
	}

	if cfg.fileSet {
		if err := cfg.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if cfg.explicitFile || !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: read: %w", err)
			}
		}
	}

	return cfg, nil
}

// WithDefaults sets default values (applied first)
func WithDefaults(defaults map[string]any) Option {
	return func(c *Config) error {
		for k, v := range defaults {
			c.SetDefault(k, v)
		}
		return nil
	}
}

// WithFile sets an exact config file; the extension determines its type.
func WithFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		c.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			c.SetConfigType(ext)
		}
		c.fileSet = true
		c.explicitFile = true
		return nil
	}
}

// WithConfigNamePaths sets config name (without ext) and search paths.
// A missing file under that name is not an error.
func WithConfigNamePaths(name string, paths ...string) Option {
	return func(c *Config) error {
		if name == "" {
			return nil
		}
		c.SetConfigName(name)
		if len(paths) == 0 {
			paths = []string{".", "./configs"}
		}
		for _, p := range paths {
			c.AddConfigPath(p)
		}
		c.fileSet = true
		return nil
	}
}

// WithEnv enables environment variable overrides.
// prefix = "APINET" means APINET_HTTP_TIMEOUT overrides http.timeout.
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		if prefix != "" {
			c.SetEnvPrefix(prefix)
		}
		c.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		c.AutomaticEnv()
		return nil
	}
}

// WithPFlags binds a pflag.FlagSet to viper. Nil binds pflag.CommandLine.
func WithPFlags(flags *pflag.FlagSet) Option {
	return func(c *Config) error {
		if flags == nil {
			flags = pflag.CommandLine
		}
		return c.BindPFlags(flags)
	}
}

// WithDotEnv loads a .env file into the process environment without
// overriding variables that are already set. Combine with WithEnv.
// If path is empty, ".env" in the working directory is tried.
func WithDotEnv(path string) Option {
	return func(c *Config) error {
		if path == "" {
			path = ".env"
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return godotenv.Load(path)
	}
}

// WithWatch enables hot-reload of the config file. onChange runs after
// viper has re-read the file, on viper's watcher goroutine.
func WithWatch(onChange func(fsnotify.Event)) Option {
	return func(c *Config) error {
		c.Watch(onChange)
		return nil
	}
}

// Watch starts hot-reload on an already built Config. Use it instead of
// WithWatch when onChange needs values that are derived from c.
func (c *Config) Watch(onChange func(fsnotify.Event)) {
	c.onChange = onChange
	c.OnConfigChange(func(e fsnotify.Event) {
		if c.onChange != nil {
			c.onChange(e)
		}
	})
	c.WatchConfig()
}

// WithSensitiveKeys registers keys which should be redacted when printing/logging.
func WithSensitiveKeys(keys ...string) Option {
	return func(c *Config) error {
		for _, k := range keys {
			c.sensitiveKeys[strings.ToLower(k)] = struct{}{}
		}
		return nil
	}
}

/* ---------------------------
   Typed getters with defaults
----------------------------*/

// GetStringD returns string or def
func (c *Config) GetStringD(key, def string) string {
	if val := c.GetString(key); val != "" {
		return val
	}
	return def
}

// GetIntD returns int or def
func (c *Config) GetIntD(key string, def int) int {
	if c.IsSet(key) {
		return c.GetInt(key)
	}
	return def
}

// GetBoolD returns bool or def
func (c *Config) GetBoolD(key string, def bool) bool {
	if c.IsSet(key) {
		return c.GetBool(key)
	}
	return def
}

// GetDurationD returns time.Duration or def
func (c *Config) GetDurationD(key string, def time.Duration) time.Duration {
	if c.IsSet(key) {
		return c.GetDuration(key)
	}
	return def
}

/* ---------------------------
   Validation & Utilities
----------------------------*/

// ValidateRequired ensures keys exist and are non-empty.
func (c *Config) ValidateRequired(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if !c.IsSet(k) || c.GetString(k) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required keys: %v", strings.Join(missing, ", "))
	}
	return nil
}

// MaskedSettings returns the flattened settings with sensitive keys redacted.
func (c *Config) MaskedSettings() map[string]any {
	out := make(map[string]any)
	for _, k := range c.AllKeys() {
		if _, ok := c.sensitiveKeys[k]; ok {
			out[k] = "***REDACTED***"
			continue
		}
		out[k] = c.Get(k)
	}
	return out
}
