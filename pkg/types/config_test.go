package types

import (
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name: "valid sqlite config",
			config: Config{
				IDLFile:  "fm_IDL.xml",
				Database: DatabaseConfig{Driver: DriverSQLite, Path: "eg.db"},
			},
			wantErr: nil,
		},
		{
			name: "empty driver defaults to sqlite",
			config: Config{
				IDLFile:  "fm_IDL.xml",
				Database: DatabaseConfig{Path: "eg.db"},
			},
			wantErr: nil,
		},
		{
			name:    "missing idl file",
			config:  Config{Database: DatabaseConfig{Driver: DriverSQLite, Path: "eg.db"}},
			wantErr: ErrIDLFileEmpty,
		},
		{
			name: "unknown driver",
			config: Config{
				IDLFile:  "fm_IDL.xml",
				Database: DatabaseConfig{Driver: "oracle", Path: "eg.db"},
			},
			wantErr: ErrDriverUnknown,
		},
		{
			name: "missing database path",
			config: Config{
				IDLFile:  "fm_IDL.xml",
				Database: DatabaseConfig{Driver: DriverSQLite},
			},
			wantErr: ErrPathEmpty,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
