package config

import (
	"fmt"
	"net/url"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// PoolSize is the number of ready connections kept in the pool; MaxOverflow
// is the additional allowance opened on demand.
type DatabaseConfig struct {
	Host        string `mapstructure:"host"         validate:"required"`
	Port        int    `mapstructure:"port"         validate:"required,gt=0,lt=65536"`
	User        string `mapstructure:"user"         validate:"required"`
	Password    string `mapstructure:"password"     validate:"required"`
	Name        string `mapstructure:"name"         validate:"required"`
	SSLMode     string `mapstructure:"ssl_mode"     validate:"required,oneof=disable require verify-ca verify-full"`
	PoolSize    int    `mapstructure:"pool_size"    validate:"required,gte=1"`
	MaxOverflow int    `mapstructure:"max_overflow" validate:"gte=0"`

	// EchoQueries logs every executed statement at debug level.
	EchoQueries bool `mapstructure:"echo_queries"`
}

// URL builds the PostgreSQL connection URL from the individual settings.
// Credentials are URL-escaped.
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}
