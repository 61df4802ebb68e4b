package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the console server configuration.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	OpsPort  string `env:"OPS_PORT,  default=9090"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API       APIConfig
	Session   SessionConfig
	Workspace WorkspaceConfig
	Audit     AuditConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://127.0.0.1:8000"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=0s"`
}

type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET, required"`
	CookieName string        `env:"SESSION_COOKIE, default=shop_console_session"`
	TTL        time.Duration `env:"SESSION_TTL,    default=24h"`
}

type WorkspaceConfig struct {
	IdleTTL        time.Duration `env:"WORKSPACE_IDLE_TTL, default=30m"`
	CurrencyPrefix string        `env:"CURRENCY_PREFIX,    default=ETB"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// MongoConfig is optional; an empty URI disables the audit trail.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=shop_console"`
}

// RedisConfig is optional; an empty address keeps session tokens in memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Production reports whether the console runs with ENV=production.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads the console configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads the console configuration through l.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(cfg.Session.Secret) < 16 {
		return nil, fmt.Errorf("config: SESSION_SECRET must be at least 16 bytes")
	}
	return &cfg, nil
}

// CLIConfig is the shopctl configuration, read from SHOPCTL_-prefixed variables.
type CLIConfig struct {
	APIURL    string        `env:"API_URL,    default=http://127.0.0.1:8000"`
	Timeout   time.Duration `env:"TIMEOUT,    default=0s"`
	TokenFile string        `env:"TOKEN_FILE"`
	LogLevel  string        `env:"LOG_LEVEL,  default=warn"`
	// CurrencyPrefix is printed in front of commission amounts.
	CurrencyPrefix string `env:"CURRENCY_PREFIX, default=ETB"`
}

// LoadCLI reads the shopctl configuration from the environment.
func LoadCLI(ctx context.Context) (*CLIConfig, error) {
	return LoadCLIFrom(ctx, envconfig.OsLookuper())
}

func LoadCLIFrom(ctx context.Context, l envconfig.Lookuper) (*CLIConfig, error) {
	var cfg CLIConfig
	lookuper := envconfig.PrefixLookuper("SHOPCTL_", l)
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
