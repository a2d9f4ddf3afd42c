// Package config loads the immutable process configuration.
//
// Values come from, in increasing priority: built-in defaults, an optional
// truthguard.yaml file, a .env file in the working directory, and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	minSecretLength = 32
)

// Config holds all configuration for the application. It is built once at
// startup and passed by value or pointer to constructors; nothing mutates it.
type Config struct {
	Port        string
	Database    DatabaseConfig
	Auth        AuthConfig
	AI          AIConfig
	News        NewsConfig
	CORSOrigins []string
	LogLevel    slog.Level
}

// DatabaseConfig selects and locates the storage backend.
type DatabaseConfig struct {
	Driver string // "sqlite" or "postgres"
	URL    string // SQLite file path or PostgreSQL DSN
	Name   string // PostgreSQL database name; overrides the DSN's when set
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret  string
	BcryptCost int
	TokenTTL   time.Duration
}

// AIConfig configures the OpenAI-compatible chat completions service.
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration // per completion request
}

// NewsConfig configures the NewsAPI headline feed.
type NewsConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Load reads configuration from configFile (optional, may be empty), a .env
// file in the working directory, and the environment, then validates it.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("truthguard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/truthguard")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_url", "truthguard.db")
	v.SetDefault("database_name", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("bcrypt_cost", 12)
	v.SetDefault("token_ttl", "24h")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("openai_timeout", "30s")
	v.SetDefault("news_api_key", "")
	v.SetDefault("news_api_url", "https://newsapi.org/v2")
	v.SetDefault("news_api_timeout", "10s")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("log_level", "info")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port: v.GetString("port"),
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("database_driver")),
			URL:    v.GetString("database_url"),
			Name:   v.GetString("database_name"),
		},
		Auth: AuthConfig{
			JWTSecret:  v.GetString("jwt_secret"),
			BcryptCost: v.GetInt("bcrypt_cost"),
			TokenTTL:   v.GetDuration("token_ttl"),
		},
		AI: AIConfig{
			APIKey:  v.GetString("openai_api_key"),
			BaseURL: v.GetString("openai_base_url"),
			Model:   v.GetString("openai_model"),
			Timeout: v.GetDuration("openai_timeout"),
		},
		News: NewsConfig{
			APIKey:  v.GetString("news_api_key"),
			BaseURL: strings.TrimRight(v.GetString("news_api_url"), "/"),
			Timeout: v.GetDuration("news_api_timeout"),
		},
		CORSOrigins: splitList(v.GetString("cors_origins")),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if len(c.Auth.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters for HMAC-SHA256 security", minSecretLength)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.Auth.BcryptCost)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("OPENAI_TIMEOUT must be positive, got %s", c.AI.Timeout)
	}
	if c.News.Timeout <= 0 {
		return fmt.Errorf("NEWS_API_TIMEOUT must be positive, got %s", c.News.Timeout)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
