package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the storage backend. "memory" keeps everything in process
	// and is meant for local development and tests.
	Driver          string        `mapstructure:"driver" validate:"required,oneof=postgres memory"`
	URL             string        `mapstructure:"url" validate:"required_if=Driver postgres"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret signs every new token.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	// PreviousJWTSecrets still verify tokens issued before a rotation but never sign.
	PreviousJWTSecrets []string      `mapstructure:"previous_jwt_secrets" validate:"dive,min=32"`
	TokenLifetime      time.Duration `mapstructure:"token_lifetime" validate:"gt=0"`
	ClockSkew          time.Duration `mapstructure:"clock_skew" validate:"gte=0"`
	BcryptCost         int           `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// CacheConfig controls the optional read-through task cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Size    int           `mapstructure:"size" validate:"required_if=Enabled true,gte=0"`
	TTL     time.Duration `mapstructure:"ttl" validate:"gte=0"`
}
