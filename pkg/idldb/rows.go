package idldb

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/idlmap/pkg/idl"
	"github.com/mesh-intelligence/idlmap/pkg/types"
)

// columnKind is the closed set of scalar targets a database column can
// decode to.
type columnKind int

const (
	kindBool columnKind = iota
	kindText
	kindInt16
	kindInt32
	kindInt64
	kindFloat32
	kindFloat64
)

// columnKinds maps declared SQL type names to their target kind.
// Timestamp-family columns decode as text; the IDL layer treats
// timestamps as opaque strings.
var columnKinds = map[string]columnKind{
	"BOOL":    kindBool,
	"BOOLEAN": kindBool,

	"TEXT":                        kindText,
	"VARCHAR":                     kindText,
	"CHARACTER VARYING":           kindText,
	"CHAR":                        kindText,
	"CHARACTER":                   kindText,
	"BPCHAR":                      kindText,
	"NAME":                        kindText,
	"TIMESTAMP":                   kindText,
	"TIMESTAMPTZ":                 kindText,
	"TIMESTAMP WITH TIME ZONE":    kindText,
	"TIMESTAMP WITHOUT TIME ZONE": kindText,
	"DATE":                        kindText,
	"TIME":                        kindText,
	"INTERVAL":                    kindText,

	"INT2":     kindInt16,
	"SMALLINT": kindInt16,
	"INT4":     kindInt32,
	"INT":      kindInt32,
	"INTEGER":  kindInt32,
	"INT8":     kindInt64,
	"BIGINT":   kindInt64,

	"FLOAT4":           kindFloat32,
	"REAL":             kindFloat32,
	"FLOAT8":           kindFloat64,
	"DOUBLE PRECISION": kindFloat64,
	"NUMERIC":          kindFloat64,
}

// kindForColumn resolves a declared SQL type name, ignoring case and any
// size suffix such as VARCHAR(80).
func kindForColumn(typeName string) (columnKind, error) {
	name := strings.ToUpper(strings.TrimSpace(typeName))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	kind, ok := columnKinds[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", types.ErrUnsupportedColumnType, typeName)
	}
	return kind, nil
}

// scanDest returns a fresh nullable scan destination for a column kind.
func scanDest(kind columnKind) any {
	switch kind {
	case kindBool:
		return &sql.NullBool{}
	case kindText:
		return &sql.NullString{}
	case kindInt16:
		return &sql.NullInt16{}
	case kindInt32:
		return &sql.NullInt32{}
	case kindInt64:
		return &sql.NullInt64{}
	default:
		return &sql.NullFloat64{}
	}
}

// destValue extracts the scanned value. SQL NULL becomes nil, never a
// type-specific zero value.
func destValue(dest any) any {
	switch d := dest.(type) {
	case *sql.NullBool:
		if d.Valid {
			return d.Bool
		}
	case *sql.NullString:
		if d.Valid {
			return d.String
		}
	case *sql.NullInt16:
		if d.Valid {
			return int64(d.Int16)
		}
	case *sql.NullInt32:
		if d.Valid {
			return int64(d.Int32)
		}
	case *sql.NullInt64:
		if d.Valid {
			return d.Int64
		}
	case *sql.NullFloat64:
		if d.Valid {
			return d.Float64
		}
	}
	return nil
}

// resultKinds resolves the scan kind of every result column, once per
// result set. The result set's columns must match the class's sorted
// non-virtual fields, the same order CompileSelect emits.
func resultKinds(class *idl.Class, rows *sql.Rows) ([]columnKind, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrDatabaseExecution, err)
	}

	if len(colTypes) != len(class.RealFields()) {
		return nil, fmt.Errorf(
			"%w: class %q expects %d columns, result has %d",
			types.ErrDatabaseExecution, class.Name, len(class.RealFields()), len(colTypes))
	}

	kinds := make([]columnKind, len(colTypes))
	for i, ct := range colTypes {
		kind, err := kindForColumn(ct.DatabaseTypeName())
		if err != nil {
			return nil, err
		}
		kinds[i] = kind
	}
	return kinds, nil
}

// rowToObject reads the current row into a named-field object tagged
// with the class name, scanning through the kinds resultKinds resolved.
func rowToObject(class *idl.Class, kinds []columnKind, rows *sql.Rows) (map[string]any, error) {
	dests := make([]any, len(kinds))
	for i, kind := range kinds {
		dests[i] = scanDest(kind)
	}

	if err := rows.Scan(dests...); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrDatabaseExecution, err)
	}

	fields := class.RealFields()
	obj := make(map[string]any, len(fields)+1)
	obj[idl.ClassnameKey] = class.Name
	for i, field := range fields {
		obj[field.Name] = destValue(dests[i])
	}
	return obj, nil
}
