// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DIRECTORY_TOKEN
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the project root.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars expands ${VAR} placeholders in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills credentials from env vars when the config file
// left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Directory.Email == "" {
		if val := os.Getenv("DIRECTORY_EMAIL"); val != "" {
			cfg.Directory.Email = val
		}
	}
	if cfg.Directory.Token == "" {
		if val := os.Getenv("DIRECTORY_TOKEN"); val != "" {
			cfg.Directory.Token = val
		}
	}

	if cfg.Audit.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Audit.Postgres.User = val
		}
	}
	if cfg.Audit.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Audit.Postgres.Password = val
		}
	}

	if cfg.Cache.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Cache.Redis.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.Directory.Timeout == 0 {
		cfg.Directory.Timeout = 30000
	}
	if cfg.Directory.MultiMatch == "" {
		cfg.Directory.MultiMatch = "first"
	}

	if cfg.Store.Sheet == "" {
		cfg.Store.Sheet = "RMA"
	}
	if cfg.Store.NumberColumn == "" {
		cfg.Store.NumberColumn = "RMA"
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 900
	}

	if cfg.Audit.Postgres.MaxConnections == 0 {
		cfg.Audit.Postgres.MaxConnections = 25
	}
	if cfg.Audit.Postgres.MaxIdle == 0 {
		cfg.Audit.Postgres.MaxIdle = 5
	}
	if cfg.Audit.Postgres.SSLMode == "" {
		cfg.Audit.Postgres.SSLMode = "disable"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Directory.BaseURL == "" {
		return fmt.Errorf("directory.base_url is required")
	}
	if cfg.Directory.Email == "" || cfg.Directory.Token == "" {
		return fmt.Errorf("directory.email and directory.token are required")
	}
	if cfg.Directory.MultiMatch != "first" && cfg.Directory.MultiMatch != "fail" {
		return fmt.Errorf("directory.multi_match must be \"first\" or \"fail\", got %q", cfg.Directory.MultiMatch)
	}

	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}

	if cfg.Cache.Enabled && cfg.Cache.Redis.Address == "" {
		return fmt.Errorf("cache.redis.address is required when cache is enabled")
	}

	if cfg.Audit.Enabled {
		if cfg.Audit.Postgres.Host == "" {
			return fmt.Errorf("audit.postgres.host is required when audit is enabled")
		}
		if cfg.Audit.Postgres.Database == "" {
			return fmt.Errorf("audit.postgres.database is required when audit is enabled")
		}
		if cfg.Audit.Postgres.User == "" {
			return fmt.Errorf("audit.postgres.user is required when audit is enabled")
		}
	}

	if cfg.Notifications.Email.Enabled && cfg.Notifications.Email.FromEmail == "" {
		return fmt.Errorf("notifications.email.from_email is required when email is enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
