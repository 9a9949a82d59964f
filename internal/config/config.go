package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Secrets  SecretsConfig  `mapstructure:"secrets"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Env         string `mapstructure:"env" validate:"required,oneof=development production"`
	ServiceName string `mapstructure:"service_name" validate:"required"`
}

// DevMode reports whether the server runs with development conveniences
// (CORS headers, unsanitized route diagnostics) enabled.
func (c ServerConfig) DevMode() bool {
	return c.Env == "development"
}

// DatabaseConfig contains all database-related configuration settings.
// Either URL is set directly (local development, tests) or SecretName points
// at a secret-store entry holding the connection string.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"omitempty,url"`
	SecretName      string        `mapstructure:"secret_name" validate:"required_without=URL"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1,lte=50"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0,lte=50"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	RunMigrations   bool          `mapstructure:"run_migrations"`
}

// SecretsConfig points at the external secret store.
type SecretsConfig struct {
	BaseURL      string        `mapstructure:"base_url" validate:"omitempty,url"`
	Token        string        `mapstructure:"token"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// AuthConfig contains token-verification settings. This service never issues
// tokens; it only verifies what the identity provider signed.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
	Issuer    string `mapstructure:"issuer" validate:"required"`
	Audience  string `mapstructure:"audience" validate:"required"`
}

// StorageConfig contains object-storage settings for pre-signed upload URLs.
type StorageConfig struct {
	Endpoint  string        `mapstructure:"endpoint" validate:"required"`
	AccessKey string        `mapstructure:"access_key" validate:"required"`
	SecretKey string        `mapstructure:"secret_key" validate:"required"`
	Bucket    string        `mapstructure:"bucket" validate:"required"`
	UseSSL    bool          `mapstructure:"use_ssl"`
	URLExpiry time.Duration `mapstructure:"url_expiry" validate:"required"`
}
