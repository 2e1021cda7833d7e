// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// drivers maps a configured database type to its database/sql driver name.
var drivers = map[string]string{
	"postgres": "postgres",
	"sqlite":   "sqlite",
}

// Open connects to the journal database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	driver, ok := drivers[dbType]
	if !ok {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	// SQLite allows one writer; in-memory databases also vanish per connection
	if dbType == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", dbType, err)
	}

	return conn, nil
}
