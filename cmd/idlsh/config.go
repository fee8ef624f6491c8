// Config loading for the idlsh CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "idlsh"
	configFileType = "yaml"
	configFileExt  = "idlsh.yaml"

	cfgKeyIDLFile        = "idl_file"
	cfgKeyDatabaseDriver = "database.driver"
	cfgKeyDatabasePath   = "database.path"

	defaultDriver = "sqlite"
)

// defaultConfigYAML is written to idlsh.yaml on first run.
const defaultConfigYAML = `# idlsh configuration

# IDL file (optional; overridable by --idl-file flag)
# idl_file: /openils/conf/fm_IDL.xml

database:
  driver: sqlite
  # path: /path/to/evergreen.db
`

// loadConfig reads idlsh.yaml from the resolved config directory using
// Viper. It creates the config directory and a default idlsh.yaml on
// first run; a missing config file is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyDatabaseDriver, defaultDriver)
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

// ensureDefaultConfigFile creates a default idlsh.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
