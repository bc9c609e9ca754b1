// Package config provides application settings for agentcfg using Viper.
// These settings steer the tool itself; the servers being compiled live
// in the agents.toml document handled by internal/document.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/thoreinstein/agentcfg/internal/document"
	"github.com/thoreinstein/agentcfg/internal/errors"
	"github.com/thoreinstein/agentcfg/internal/paths"
)

// Config represents the top-level application settings.
type Config struct {
	// ConfigPath overrides where the agents.toml document is read from.
	ConfigPath string `mapstructure:"config_path" yaml:"config_path"`

	// Backup controls whether existing tool configs are preserved as
	// .backup siblings before being overwritten.
	Backup bool `mapstructure:"backup" yaml:"backup"`

	// Outputs overrides the output path per tool, keyed by tool name.
	Outputs map[string]string `mapstructure:"outputs" yaml:"outputs"`
}

// Init initializes Viper with default settings.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Dir(paths.AppConfigPath()))

	viper.SetEnvPrefix("AGENTCFG")
	viper.AutomaticEnv()

	viper.SetDefault("backup", true)
}

// Load reads the application settings.
// If path is provided, it reads from that specific file; otherwise the
// default search locations apply and a missing file means defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// OutputPath returns the configured output override for tool, or the
// tool's standard path when no override is set.
func (c *Config) OutputPath(tool document.ToolName) (string, error) {
	if c != nil {
		if override, ok := c.Outputs[string(tool)]; ok && override != "" {
			return override, nil
		}
	}
	return paths.ToolConfigPath(tool)
}

// DocumentPath returns where the agents.toml document should be read
// from, honoring the config_path override.
func (c *Config) DocumentPath() string {
	if c != nil && c.ConfigPath != "" {
		return c.ConfigPath
	}
	return paths.ConfigPath()
}
