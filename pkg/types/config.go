package types

import "errors"

// DatabaseConfig holds driver selection and location for the database
// connection collaborator.
type DatabaseConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	Path   string `json:"path" yaml:"path"`
}

// Config holds the IDL file location and database parameters used by
// internal/db and the idlsh CLI.
type Config struct {
	IDLFile  string         `json:"idl_file" yaml:"idl_file"`
	Database DatabaseConfig `json:"database" yaml:"database"`
}

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrIDLFileEmpty  = errors.New("idl_file must not be empty")
	ErrDriverUnknown = errors.New("unknown database driver")
	ErrPathEmpty     = errors.New("database path must not be empty")
)

// knownDrivers lists the drivers that Validate accepts.
var knownDrivers = map[string]bool{
	DriverSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.IDLFile == "" {
		return ErrIDLFileEmpty
	}
	driver := c.Database.Driver
	if driver == "" {
		driver = DriverSQLite
	}
	if !knownDrivers[driver] {
		return ErrDriverUnknown
	}
	if c.Database.Path == "" {
		return ErrPathEmpty
	}
	return nil
}
