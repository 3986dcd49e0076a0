// Package config loads the chart service configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bingLAN/chart_driver/logging"
	"github.com/bingLAN/chart_driver/store"
)

var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidFormat     = errors.New("invalid config format")
	ErrValidationFailed  = errors.New("config validation failed")
	ErrMissingEnvVar     = errors.New("missing environment variable")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Store drivers.
const (
	StoreMemory = "memory"
	StoreMysql  = "mysql"
	StoreRedis  = "redis"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Security  SecurityConfig  `yaml:"security"`
	Providers ProvidersConfig `yaml:"providers"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       logging.Config  `yaml:"log"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	AjaxPath     string        `yaml:"ajax_path"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type StoreConfig struct {
	// Driver is one of memory, mysql or redis.
	Driver string            `yaml:"driver"`
	DSN    string            `yaml:"dsn"`
	Redis  store.RedisConfig `yaml:"redis"`
}

type SecurityConfig struct {
	NonceSecret   string        `yaml:"nonce_secret"`
	NonceLifetime time.Duration `yaml:"nonce_lifetime"`
	// AdminToken grants the settings capability when sent as a bearer token.
	AdminToken string `yaml:"admin_token"`
}

type ProvidersConfig struct {
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
	RetryAttempts   int           `yaml:"retry_attempts"`
	RetryDelay      time.Duration `yaml:"retry_delay"`
	PlaceholderSeed int64         `yaml:"placeholder_seed"`
	// FormsURL is the base URL of the form entries API.
	FormsURL        string `yaml:"forms_url"`
	SQLBuilderLimit int    `yaml:"sql_builder_limit"`
}

type DatabaseConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	QueryTimeout   time.Duration `yaml:"query_timeout"`
	MaxPoolSize    uint          `yaml:"max_pool_size"`
	MaxIdleConns   uint          `yaml:"max_idle_conns"`
}

// Default returns the configuration used for missing values.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			AjaxPath:     "/wp-admin/admin-ajax.php",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Driver: StoreMemory,
			Redis:  store.DefaultRedisConfig(),
		},
		Security: SecurityConfig{
			NonceLifetime: 24 * time.Hour,
		},
		Providers: ProvidersConfig{
			HTTPTimeout:     10 * time.Second,
			RetryAttempts:   3,
			RetryDelay:      200 * time.Millisecond,
			SQLBuilderLimit: 1000,
		},
		Database: DatabaseConfig{
			ConnectTimeout: 5 * time.Second,
			QueryTimeout:   30 * time.Second,
			MaxPoolSize:    10,
			MaxIdleConns:   2,
		},
		Log: logging.DefaultConfig(),
	}
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	var problems []string
	switch c.Store.Driver {
	case StoreMemory:
	case StoreMysql:
		if c.Store.DSN == "" {
			problems = append(problems, "store.dsn is required for the mysql driver")
		}
	case StoreRedis:
		if c.Store.Redis.Address == "" {
			problems = append(problems, "store.redis.address is required for the redis driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown store.driver %q", c.Store.Driver))
	}
	if c.Security.NonceSecret == "" {
		problems = append(problems, "security.nonce_secret is required")
	}
	if c.Security.NonceLifetime <= 0 {
		problems = append(problems, "security.nonce_lifetime must be positive")
	}
	if c.Providers.RetryAttempts < 1 {
		problems = append(problems, "providers.retry_attempts must be at least 1")
	}
	if !strings.HasPrefix(c.Server.AjaxPath, "/") {
		problems = append(problems, "server.ajax_path must start with /")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(problems, "; "))
	}
	return nil
}
