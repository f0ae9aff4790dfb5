package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the accounts module. Required values
// with no default abort startup when missing; nothing falls back silently.
type Config struct {
	// MongoDB Configuration
	MongoUsername string `env:"MONGO_USERNAME,required"`
	MongoPassword string `env:"MONGO_PASSWORD,required"`
	MongoHost     string `env:"MONGO_HOST,required"`
	MongoDBName   string `env:"MONGO_DB_NAME,required"`

	// Session Configuration
	SessionSecret           string        `env:"SESSION_SECRET,required"`
	SessionEncryptionSecret string        `env:"SESSION_ENCRYPTION_SECRET,required"`
	SessionTTL              time.Duration `env:"SESSION_TTL" envDefault:"1h"`

	// Cookie Configuration
	CookieName     string `env:"COOKIE_NAME" envDefault:"memberhub_sid"`
	CookiePath     string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string `env:"COOKIE_SAME_SITE" envDefault:"Lax"`

	// Redis Configuration (session store)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig loads configuration from environment variables and applies
// defaults. Missing required configuration is a startup error.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	if cfg.SessionTTL <= 0 {
		return nil, errors.New("session_ttl must be positive")
	}

	// Normalize and validate CookieSameSite
	switch strings.ToLower(cfg.CookieSameSite) {
	case "lax":
		cfg.CookieSameSite = "Lax"
	case "strict":
		cfg.CookieSameSite = "Strict"
	case "none":
		cfg.CookieSameSite = "None"
	default:
		return nil, errors.New("cookie_same_site must be one of 'Lax', 'Strict', or 'None'")
	}

	return cfg, nil
}

// MongoURI assembles the connection string from the credential parts.
func (c *Config) MongoURI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s/%s",
		url.QueryEscape(c.MongoUsername),
		url.QueryEscape(c.MongoPassword),
		c.MongoHost,
		c.MongoDBName,
	)
}

// RedisAddr returns the host:port address of the session store.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
