package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config aggregates application settings sourced from environment variables.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	AI       AIConfig       `mapstructure:"ai"`
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port int `mapstructure:"port"`
	// Environment distinguishes development from production. In development
	// the generated-content cache is bypassed so every request regenerates.
	Environment string   `mapstructure:"environment"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DatabaseConfig contains connection options for PostgreSQL.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuthConfig contains session token settings.
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

// AIConfig contains settings for the completion API and the generation policy.
type AIConfig struct {
	// APIKey may be empty; the pipeline then skips the completion API entirely
	// and serves deterministic fallback content. The key's presence is echoed
	// in response metadata so clients can tell which path ran.
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	// RequirePremium gates the three generation endpoints on the user's
	// premium flag. Off by default.
	RequirePremium bool `mapstructure:"require_premium"`
	// FreeTierJobLimit caps how many applications a non-premium user may track.
	FreeTierJobLimit int `mapstructure:"free_tier_job_limit"`
}

// DSN builds a connection string for the postgres driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.Name,
		d.SSLMode,
	)
}

// IsDevelopment reports whether the cache short-circuit should be disabled.
func (a APIConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Load reads configuration solely from environment variables (with defaults).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.environment", "production")
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "jobprep")
	v.SetDefault("database.user", "jobprep")
	v.SetDefault("database.password", "jobprep")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("auth.token_ttl_hours", 72)
	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.require_premium", false)
	v.SetDefault("ai.free_tier_job_limit", 10)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"api.port":               "PORT",
		"api.environment":        "APP_ENV",
		"api.cors_origins":       "CORS_ORIGINS",
		"database.host":          "DATABASE_HOST",
		"database.port":          "DATABASE_PORT",
		"database.name":          "POSTGRES_DB",
		"database.user":          "POSTGRES_USER",
		"database.password":      "POSTGRES_PASSWORD",
		"database.sslmode":       "DATABASE_SSLMODE",
		"auth.jwt_secret":        "JWT_SECRET",
		"auth.token_ttl_hours":   "TOKEN_TTL_HOURS",
		"ai.api_key":             "OPENAI_API_KEY",
		"ai.base_url":            "OPENAI_BASE_URL",
		"ai.model":               "AI_MODEL",
		"ai.require_premium":     "AI_REQUIRE_PREMIUM",
		"ai.free_tier_job_limit": "FREE_TIER_JOB_LIMIT",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	return nil
}

func validate(cfg Config) error {
	if cfg.API.Port <= 0 {
		return errors.New("api port must be positive")
	}
	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}
	if cfg.Database.Name == "" {
		return errors.New("database name is required")
	}
	if cfg.Database.User == "" {
		return errors.New("database user is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("jwt secret is required")
	}
	if cfg.Auth.TokenTTLHours <= 0 {
		return errors.New("token ttl must be positive")
	}
	if cfg.AI.BaseURL == "" {
		return errors.New("ai base url is required")
	}
	if cfg.AI.Model == "" {
		return errors.New("ai model is required")
	}
	if cfg.AI.FreeTierJobLimit < 0 {
		return errors.New("free tier job limit cannot be negative")
	}
	return nil
}
