// Shared helpers for idlsh commands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/idlmap/internal/db"
	"github.com/mesh-intelligence/idlmap/internal/paths"
	"github.com/mesh-intelligence/idlmap/pkg/idldb"
	"github.com/mesh-intelligence/idlmap/pkg/types"
)

// openTranslator resolves the database location, opens a connection, and
// binds a Translator to it. The caller must invoke the returned closer.
func openTranslator() (*idldb.Translator, func() error, error) {
	dbPath, err := paths.ResolveDatabase(flagDatabase, configDatabase)
	if err != nil {
		return nil, nil, err
	}
	if dbPath == "" {
		return nil, nil, fmt.Errorf("no database configured (use --db or set database.path in idlsh.yaml)")
	}

	conn := db.New(types.Config{
		IDLFile: flagIDLFile,
		Database: types.DatabaseConfig{
			Driver: types.DriverSQLite,
			Path:   dbPath,
		},
	})
	if err := conn.Connect(); err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", dbPath, err)
	}

	handle, err := conn.DB()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return idldb.NewTranslator(registry, handle), conn.Close, nil
}

// printJSON pretty-prints a value the way idlsh renders all results.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// parseFilterArg reads a filter specification given as a JSON object
// argument, e.g. '{"id": {"<": 10}}'.
func parseFilterArg(arg string) (map[string]any, error) {
	if arg == "" {
		return nil, nil
	}
	var filter map[string]any
	if err := json.Unmarshal([]byte(arg), &filter); err != nil {
		return nil, fmt.Errorf("invalid filter %q (expected a JSON object): %w", arg, err)
	}
	return filter, nil
}
