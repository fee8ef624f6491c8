// Root command for the idlsh CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/idlmap/internal/paths"
	"github.com/mesh-intelligence/idlmap/pkg/idl"
)

// Global flag values.
var (
	flagConfigDir string
	flagIDLFile   string
	flagDatabase  string
)

// registry is the parsed IDL, loaded by PersistentPreRunE so every
// subcommand can use it.
var registry *idl.Registry

// Config values loaded from idlsh.yaml, consulted by the resolvers.
var (
	configIDLFile  string
	configDatabase string
)

var rootCmd = &cobra.Command{
	Use:     "idlsh",
	Short:   "idlsh explores a fieldmapper IDL and queries IDL classes",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configIDLFile = cfg.GetString(cfgKeyIDLFile)
		configDatabase = cfg.GetString(cfgKeyDatabasePath)

		idlFile, err := paths.ResolveIDLFile(flagIDLFile, configIDLFile, configDir)
		if err != nil {
			return err
		}
		registry, err = idl.ParseFile(idlFile)
		if err != nil {
			return fmt.Errorf("load IDL %s: %w", idlFile, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagIDLFile, "idl-file", "", "IDL XML file (default: fm_IDL.xml in the config directory)")
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "db", "", "database file to query")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(unpackCmd)
}
