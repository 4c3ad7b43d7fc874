package wizard

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateDatabaseURL checks if a connection string is well-formed enough to
// hand to the postgres driver. It does not dial the database.
func ValidateDatabaseURL(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return fmt.Errorf("connection string cannot be empty")
	}

	if !strings.HasPrefix(connStr, "postgres://") &&
		!strings.HasPrefix(connStr, "postgresql://") {
		return fmt.Errorf("connection string must start with postgres:// or postgresql://")
	}

	parsed, err := url.Parse(connStr)
	if err != nil {
		return fmt.Errorf("invalid connection string: %v", err)
	}

	if parsed.Host == "" {
		return fmt.Errorf("connection string must include a host")
	}

	return nil
}
