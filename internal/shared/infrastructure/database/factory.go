package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Config selects and configures the backend.
type Config struct {
	// Driver is the backend. DriverAuto or empty detects it from URL.
	Driver Driver
	// URL is the PostgreSQL connection string.
	URL string
	// SQLitePath is the SQLite database file. ":memory:" opens a private
	// in-memory database.
	SQLitePath string
	// MaxConns caps the PostgreSQL pool.
	MaxConns int
}

// ResolveDriver returns the concrete driver for cfg.
func (c Config) ResolveDriver() Driver {
	if c.Driver == "" || c.Driver == DriverAuto {
		return DetectDriver(c.URL)
	}
	return c.Driver
}

// Opener opens a connection for one backend.
type Opener func(ctx context.Context, cfg Config) (Connection, error)

var openers = map[Driver]Opener{}

// Register makes a backend available to NewConnection. Backends register
// themselves from their package init.
func Register(d Driver, open Opener) {
	openers[d] = open
}

// NewConnection opens a connection for the configured backend.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.ResolveDriver()
	open, ok := openers[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	return open(ctx, cfg)
}

// DefaultSQLitePath is ~/.whatsnext/whatsnext.db.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".whatsnext", "whatsnext.db")
}

// EnsureDirectory creates the parent directory of path.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
