// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Directory     DirectoryConfig    `mapstructure:"directory"`
	Store         StoreConfig        `mapstructure:"store"`
	Cache         CacheConfig        `mapstructure:"cache"`
	Audit         AuditConfig        `mapstructure:"audit"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Documents     DocumentConfig     `mapstructure:"documents"`
	Metrics       MetricsConfig      `mapstructure:"metrics"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// DirectoryConfig holds settings for the helpdesk directory API.
type DirectoryConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Email   string `mapstructure:"email"`
	Token   string `mapstructure:"token"`
	Timeout int    `mapstructure:"timeout"` // milliseconds

	// MultiMatch selects the tie-break when several users share an email:
	// "first" takes the first API result, "fail" refuses to guess.
	MultiMatch string `mapstructure:"multi_match"`
}

// StoreConfig holds settings for the workbook acting as the RMA register.
type StoreConfig struct {
	Path         string `mapstructure:"path"`
	Sheet        string `mapstructure:"sheet"`
	NumberColumn string `mapstructure:"number_column"`
}

// CacheConfig holds settings for the optional directory lookup cache.
type CacheConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	TTL     int         `mapstructure:"ttl"` // seconds
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuditConfig holds settings for the optional Postgres audit trail.
type AuditConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// NotificationConfig holds settings for customer confirmation delivery.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// DocumentConfig holds settings for the printable RMA form.
type DocumentConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	OutputDir string `mapstructure:"output_dir"`
}

// MetricsConfig holds settings for the optional /metrics listener.
type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
