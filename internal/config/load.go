package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over file values, which take precedence over the local
// development defaults. A .env file, if present, is loaded into the
// environment first. Returns a validated Config or an error.
func Load() (*Config, error) {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	v := viper.New()

	// Defaults match the local development database.
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "playground_user")
	v.SetDefault("database.password", "playground_pass")
	v.SetDefault("database.name", "playground_db")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.pool_size", 5)
	v.SetDefault("database.max_overflow", 10)
	v.SetDefault("database.echo_queries", false)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; defaults and environment apply.
	}

	// Environment variables use the BLOGMART_ prefix with underscores,
	// e.g. BLOGMART_DATABASE_HOST overrides database.host.
	v.SetEnvPrefix("BLOGMART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
