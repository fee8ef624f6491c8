// Package paths resolves the configuration directory, IDL file, and
// database locations for the idlsh CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultIDLFileName is the IDL file looked up relative to the config
// directory when no explicit location is given.
const DefaultIDLFileName = "fm_IDL.xml"

// Environment variable names for location overrides.
const (
	EnvConfigDir = "IDLMAP_CONFIG_DIR"
	EnvIDLFile   = "IDLMAP_IDL_FILE"
	EnvDatabase  = "IDLMAP_DATABASE"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/idlmap (fallback ~/.config/idlmap)
// macOS:   ~/Library/Application Support/idlmap
// Windows: %APPDATA%/idlmap
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "idlmap"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "idlmap"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "idlmap"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > IDLMAP_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveIDLFile returns the IDL file location following the precedence
// chain: flag > config value > IDLMAP_IDL_FILE env > fm_IDL.xml in the
// config directory.
func ResolveIDLFile(flag, configValue, configDir string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvIDLFile); env != "" {
		return filepath.Abs(env)
	}
	return filepath.Join(configDir, DefaultIDLFileName), nil
}

// ResolveDatabase returns the database location following the precedence
// chain: flag > config value > IDLMAP_DATABASE env. There is no default:
// an empty result means no database was configured.
func ResolveDatabase(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDatabase); env != "" {
		return filepath.Abs(env)
	}
	return "", nil
}
