package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session storage backends.
const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// APIConfig points at the inventory REST API.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:3000"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

type SessionConfig struct {
	CookieName string `env:"SESSION_COOKIE,  default=inv_session"`
	Secure     bool   `env:"SESSION_SECURE,  default=false"`
	Storage    string `env:"SESSION_STORAGE, default=file"`
	Dir        string `env:"SESSION_DIR,     default=.sessions"`
	// TTL bounds how long a stored token outlives its last write: a Redis
	// key expiry, a Mongo TTL index, or the file backend's max age. Zero
	// keeps tokens until logout. The memory backend ignores it.
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=inventory_console"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Storage {
	case StorageFile, StorageMemory, StorageRedis, StorageMongo:
	default:
		return fmt.Errorf("SESSION_STORAGE: unknown backend %q", c.Session.Storage)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	return nil
}

// IsDevelopment reports whether the process runs in the development
// environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// HTTPAddress is the listen address for the HTTP server.
func (c *Config) HTTPAddress() string {
	return ":" + c.Port
}
