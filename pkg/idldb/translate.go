// Package idldb translates between IDL classes and database rows: it
// compiles ClassSearch specifications into SQL, executes them through a
// caller-supplied connection, and maps result rows back into named-field
// objects.
package idldb

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/idlmap/pkg/idl"
	"github.com/mesh-intelligence/idlmap/pkg/types"
)

// Translator implements class-level search and retrieval over one
// database connection. The connection is owned exclusively by the
// Translator and is not safe for simultaneous use from multiple call
// sites; callers needing concurrency use one Translator per connection.
//
// Every call is an independent compile-execute-map cycle. No SQL text or
// plan is cached between calls, and no timeout is imposed here; bounded
// latency belongs to the connection collaborator.
type Translator struct {
	registry *idl.Registry
	db       *sql.DB
}

// NewTranslator binds a parsed IDL registry to a database handle.
func NewTranslator(registry *idl.Registry, db *sql.DB) *Translator {
	return &Translator{registry: registry, db: db}
}

// Search compiles the ClassSearch, runs it, and maps every returned row
// into a named-field object, preserving the database's row order. All
// compilation errors surface before the statement reaches the database.
func (t *Translator) Search(search ClassSearch) ([]map[string]any, error) {
	query, err := Compile(t.registry, search)
	if err != nil {
		return nil, err
	}
	class := t.registry.Class(search.Class)

	rows, err := t.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrDatabaseExecution, err)
	}
	defer rows.Close()

	kinds, err := resultKinds(class, rows)
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		obj, err := rowToObject(class, kinds, rows)
		if err != nil {
			return nil, err
		}
		results = append(results, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrDatabaseExecution, err)
	}
	return results, nil
}

// RetrieveByPkey fetches one object by primary key value, or nil when no
// row matches. Fails when the class declares no primary key.
func (t *Translator) RetrieveByPkey(className string, key any) (map[string]any, error) {
	class := t.registry.Class(className)
	if class == nil {
		return nil, fmt.Errorf("%w: %q", types.ErrNoSuchClass, className)
	}
	if class.Pkey == "" {
		return nil, fmt.Errorf("%w: %q", types.ErrNoPrimaryKey, className)
	}

	results, err := t.Search(ClassSearch{
		Class:  className,
		Filter: map[string]any{class.Pkey: key},
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}
