// Package config loads the typed application configuration from viper.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/common"
	"github.com/wegnite/dreisatz-rechner-org-sub000/internal/model"
)

// AppName names the config directory and the environment prefix.
const AppName = "dreisatz"

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. DREISATZ_SERVER_ADDR for server.addr.
const EnvPrefix = "DREISATZ"

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig
	Solver   SolverConfig
	Cache    CacheConfig
	Database DatabaseConfig
	History  HistoryConfig
	Logging  LoggingConfig
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr            string
	CertDir         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TLS             bool
}

// SolverConfig configures the solver.
type SolverConfig struct {
	DefaultLocale model.Locale
	HintsFile     string
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	TTL        time.Duration
	Enabled    bool
	UseHistory bool
}

// DatabaseConfig selects and locates the history database.
type DatabaseConfig struct {
	Driver string
	Path   string
	DSN    string
}

// Target is the path or connection string handed to the driver.
func (d DatabaseConfig) Target() string {
	if d.Driver == "pgx" {
		return d.DSN
	}
	return d.Path
}

// HistoryConfig toggles history recording.
type HistoryConfig struct {
	Enabled bool
}

// LoggingConfig configures log/slog.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.tls", false)
	v.SetDefault("server.cert_dir", filepath.Join(Dir(), "certs"))
	v.SetDefault("solver.default_locale", string(model.DefaultLocale))
	v.SetDefault("solver.hints_file", "")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.use_history", false)
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", filepath.Join(Dir(), "history.db"))
	v.SetDefault("database.dsn", "")
	v.SetDefault("history.enabled", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// BindEnv makes every key overridable through DREISATZ_* variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v and validates it.
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			TLS:             v.GetBool("server.tls"),
			CertDir:         ExpandPath(v.GetString("server.cert_dir")),
		},
		Solver: SolverConfig{
			DefaultLocale: model.ParseLocale(v.GetString("solver.default_locale")),
			HintsFile:     ExpandPath(v.GetString("solver.hints_file")),
		},
		Cache: CacheConfig{
			Enabled:    v.GetBool("cache.enabled"),
			TTL:        v.GetDuration("cache.ttl"),
			UseHistory: v.GetBool("cache.use_history"),
		},
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("database.driver")),
			Path:   ExpandPath(v.GetString("database.path")),
			DSN:    v.GetString("database.dsn"),
		},
		History: HistoryConfig{
			Enabled: v.GetBool("history.enabled"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3":
		if c.History.Enabled && c.Database.Path == "" {
			return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
		}
	case "pgx":
		if c.History.Enabled && c.Database.DSN == "" {
			return fmt.Errorf("%w: database.dsn", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: database.driver %q (want sqlite3 or pgx)", common.ErrInvalidConfig, c.Database.Driver)
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("%w: cache.ttl must be positive", common.ErrInvalidConfig)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server.shutdown_timeout", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
