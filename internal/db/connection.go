// Package db implements the database connection collaborator used by the
// idldb Translator. It owns opening and closing a single database/sql
// handle; pooling, caching, and transactions are deliberately absent.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/idlmap/pkg/types"
)

// Connection wraps one database handle. A Connection is not safe for
// simultaneous use from multiple call sites; use one Connection per
// worker or serialize access externally.
type Connection struct {
	mu       sync.Mutex
	open     bool
	config   types.Config
	db       *sql.DB
	clientID string
}

// Connection lifecycle errors.
var (
	ErrAlreadyConnected = errors.New("connection already open")
	ErrNotConnected     = errors.New("connection not open")
)

// New creates an unconnected Connection for the given configuration.
func New(config types.Config) *Connection {
	return &Connection{config: config}
}

// ClientID returns the identifier assigned to this connection, present
// in wrapped error messages so failures can be traced to a connection.
func (c *Connection) ClientID() string {
	return c.clientID
}

// Connect validates the configuration, opens the database, and verifies
// it with a ping. Returns ErrAlreadyConnected on a second call.
func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return ErrAlreadyConnected
	}
	if err := c.config.Validate(); err != nil {
		return err
	}

	driver := c.config.Database.Driver
	if driver == "" {
		driver = types.DriverSQLite
	}

	db, err := sql.Open(driver, c.config.Database.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrDatabaseExecution, err)
	}

	// One Translator call in flight at a time; a larger pool would only
	// hide accidental concurrent use. It also means the session pragmas
	// below hold for every statement on this Connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("%w: %v", types.ErrDatabaseExecution, err)
	}

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("%w: %s: %v", types.ErrDatabaseExecution, pragma, err)
		}
	}

	c.db = db
	c.clientID = uuid.NewString()
	c.open = true
	return nil
}

// DB returns the underlying handle for the Translator to execute
// against. Returns ErrNotConnected before Connect or after Close.
func (c *Connection) DB() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil, ErrNotConnected
	}
	return c.db, nil
}

// Close releases the database handle. Close is idempotent.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return nil
	}
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("%w: client %s: %v", types.ErrDatabaseExecution, c.clientID, err)
	}
	c.db = nil
	c.open = false
	return nil
}
