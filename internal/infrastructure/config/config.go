package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// defaultSecret is the development fallback for both signing secrets. It is
// refused in production by Validate.
const defaultSecret = "4C31F7EFD6857D91E729165510520424"

type Config struct {
	Port     string `env:"PORT,      default=6060"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs user tokens, AdminJWTSecret signs admin tokens. The
	// two must differ for cross-variant replay to fail.
	JWTSecret      string `env:"JWT_SECRET_KEY,       default=4C31F7EFD6857D91E729165510520424"`
	AdminJWTSecret string `env:"ADMIN_JWT_SECRET_KEY, default=4C31F7EFD6857D91E729165510520424"`

	// TokenTTL is the single token lifetime shared by both issuers.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=120h"`

	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig

	SuperAdmin SeedAdmin `env:", prefix=SUPER_ADMIN_"`
	BasicAdmin SeedAdmin `env:", prefix=BASIC_ADMIN_"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog_api"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// RateLimitConfig carries the window and ceiling of each limiter tier plus
// the backing store selection.
type RateLimitConfig struct {
	Store string `env:"RATE_LIMIT_STORE, default=memory"` // memory | redis

	APIWindow time.Duration `env:"RATE_LIMIT_API_WINDOW,  default=15m"`
	APIMax    int           `env:"RATE_LIMIT_API_MAX,     default=100"`

	AuthWindow time.Duration `env:"RATE_LIMIT_AUTH_WINDOW, default=15m"`
	AuthMax    int           `env:"RATE_LIMIT_AUTH_MAX,    default=5"`

	StrictWindow time.Duration `env:"RATE_LIMIT_STRICT_WINDOW, default=1h"`
	StrictMax    int           `env:"RATE_LIMIT_STRICT_MAX,    default=10"`
}

// SeedAdmin names an admin account created at startup when absent.
type SeedAdmin struct {
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD, default=12345678"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.SuperAdmin.Username == "" {
		cfg.SuperAdmin.Username = "peanut"
	}
	if cfg.BasicAdmin.Username == "" {
		cfg.BasicAdmin.Username = "ben"
	}
	return &cfg
}

// Validate rejects configurations that must not reach production: a
// production-flagged environment may not run on the default signing secrets.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.JWTSecret == "" || c.JWTSecret == defaultSecret {
		return errors.New("config: JWT_SECRET_KEY must be set to a non-default value in production")
	}
	if c.AdminJWTSecret == "" || c.AdminJWTSecret == defaultSecret {
		return errors.New("config: ADMIN_JWT_SECRET_KEY must be set to a non-default value in production")
	}
	return nil
}

// UsesDefaultAdminPasswords reports whether a seed account still carries the
// out-of-the-box password, so startup can warn in production.
func (c *Config) UsesDefaultAdminPasswords() bool {
	return c.SuperAdmin.Password == "12345678" || c.BasicAdmin.Password == "12345678"
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// IsTest reports whether the process runs under the test environment, which
// disables all rate limiting.
func (c *Config) IsTest() bool { return c.Env == "test" }
