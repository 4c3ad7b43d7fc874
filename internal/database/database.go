package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// ConnectError reports a failed connection handshake. It is fatal; nothing
// retries it.
type ConnectError struct {
	Driver string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect (%s driver): %v", e.Driver, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// DetectDriver determines the database driver from a connection string.
// Postgres-style URLs map to lib/pq; anything that looks like a file path is
// treated as sqlite so the runner can be exercised without a server.
func DetectDriver(connString string) string {
	lower := strings.ToLower(connString)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(lower, "sqlite://"):
		return "sqlite"
	case strings.HasPrefix(lower, "file:"):
		return "sqlite"
	default:
		return "sqlite"
	}
}

// GetSQLDriverName maps a detected driver to the name registered with
// database/sql.
func GetSQLDriverName(driverType string) string {
	switch driverType {
	case "postgres":
		return "postgres"
	case "sqlite":
		// modernc.org/sqlite registers as "sqlite"
		return "sqlite"
	default:
		return driverType
	}
}

// DSN strips URL scheme prefixes that the underlying driver does not accept.
func DSN(connString string) string {
	lower := strings.ToLower(connString)
	if strings.HasPrefix(lower, "sqlite://") {
		return connString[len("sqlite://"):]
	}
	return connString
}

// Open opens a connection to the database and runs a ping to test it. The
// handle is closed again if the ping fails.
func Open(ctx context.Context, connString string) (*sql.DB, error) {
	driverType := DetectDriver(connString)
	db, err := sql.Open(GetSQLDriverName(driverType), DSN(connString))
	if err != nil {
		return nil, &ConnectError{Driver: driverType, Err: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, &ConnectError{Driver: driverType, Err: err}
	}

	return db, nil
}
