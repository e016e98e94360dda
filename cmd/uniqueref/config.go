// Config loading for the uniqueref CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend = "backend"
	cfgKeyDataDir = "data_dir"
	cfgKeyParent  = "parent"
	cfgKeyField   = "field"
	cfgKeyLocale  = "locale"
	cfgKeyAllowed = "allowed_types"

	defaultBackend = "sqlite"
	defaultField   = "related"
	defaultLocale  = "en-US"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# uniqueref CLI configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Parent record whose reference field is edited (overridable by --parent)
# parent:

# Field id and working locale
field: related
locale: en-US

# Validation allow-list of target type ids (empty accepts any type)
# allowed_types:
#   - article
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper, creating the directory and a default config.yaml on first run. A
// missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyField, defaultField)
	v.SetDefault(cfgKeyLocale, defaultLocale)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureConfigDir creates the configuration directory if missing.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0755)
}

// ensureDefaultConfigFile writes the default config.yaml on first run.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0644)
}
