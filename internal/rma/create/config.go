package create

import (
	"fmt"
	"time"

	"rma-desk/internal/common/config"
	"rma-desk/internal/rma/directory"
)

type Config struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	MultiMatch string        `mapstructure:"multi_match"`
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:    30 * time.Second,
		MultiMatch: directory.MultiMatchFirst,
	}
}

// ConfigFromApp derives the pipeline config from the application config.
func ConfigFromApp(appCfg *config.Config) *Config {
	cfg := DefaultConfig()
	if appCfg == nil {
		return cfg
	}
	if appCfg.Directory.Timeout > 0 {
		cfg.Timeout = config.GetDuration(appCfg.Directory.Timeout)
	}
	if appCfg.Directory.MultiMatch != "" {
		cfg.MultiMatch = appCfg.Directory.MultiMatch
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MultiMatch != directory.MultiMatchFirst && c.MultiMatch != directory.MultiMatchFail {
		return fmt.Errorf("multi_match must be %q or %q", directory.MultiMatchFirst, directory.MultiMatchFail)
	}
	return nil
}
