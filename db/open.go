// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. dbType selects the driver:
// "postgres" (lib/pq) or "sqlite" (modernc.org/sqlite). SQLite
// connections get the foreign_keys pragma so cascade deletes work.
func Open(dbType, databaseURL string) (*sql.DB, error) {
	switch dbType {
	case "postgres":
		return sql.Open("postgres", databaseURL)
	case "sqlite":
		dsn := databaseURL
		if !strings.Contains(dsn, "_pragma=foreign_keys") {
			if strings.Contains(dsn, "?") {
				dsn += "&_pragma=foreign_keys(1)"
			} else {
				dsn += "?_pragma=foreign_keys(1)"
			}
		}
		return sql.Open("sqlite", dsn)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}
