package types

import "errors"

// Schema registry errors.
var (
	ErrSchemaParse = errors.New("cannot parse IDL schema")
)

// Query compilation errors. All of these are detected before any SQL
// statement reaches the database.
var (
	ErrNoSuchClass        = errors.New("no such IDL class")
	ErrNoTableForClass    = errors.New("IDL class has no table")
	ErrUnknownField       = errors.New("unknown field for IDL class")
	ErrUnsupportedOperand = errors.New("unsupported filter operand")
	ErrInvalidFilterShape = errors.New("invalid filter shape")
	ErrNoPrimaryKey       = errors.New("IDL class has no primary key")
)

// Codec and row mapping errors.
var (
	ErrClassNotFound         = errors.New("classed value references unknown IDL class")
	ErrUnsupportedColumnType = errors.New("unsupported column type")
)

// ErrDatabaseExecution wraps failures reported by the database executor.
var ErrDatabaseExecution = errors.New("database execution failed")
