package service

import (
	"github.com/fescan-dev/fescan/domain"
	"github.com/fescan-dev/fescan/internal/config"
)

// ConfigurationLoaderImpl loads and validates run configuration for the
// CLI layer, wrapping failures in domain.ConfigError
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadConfigForTarget loads configuration with target path context:
// when no explicit path is given, config discovery starts from the
// analyzed directory and walks upward.
func (c *ConfigurationLoaderImpl) LoadConfigForTarget(configPath, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadConfigWithTarget(configPath, targetPath)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads the discovered configuration, falling back to
// the built-in defaults when none is found or it cannot be read
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *config.Config {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err == nil {
		return cfg
	}
	return config.DefaultConfig()
}
