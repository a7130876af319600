// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/media-ranker/cliparse"
)

// sqliteParams are appended to every SQLite DSN. Foreign keys are off by
// default in SQLite; immediate transactions keep concurrent vote checks from
// deadlocking on lock upgrade.
const sqliteParams = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite&_txlock=immediate"

// Open connects to the database named by cfg and verifies the connection.
func Open(ctx context.Context, cfg cliparse.Config) (*sql.DB, error) {
	switch cfg.DatabaseType {
	case "postgres":
		conn, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to ping postgres: %w", err)
		}
		return conn, nil
	case "sqlite", "":
		return OpenSQLite(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}
}

// OpenSQLite opens a SQLite database at path (":memory:" for an in-memory
// database) with foreign keys enforced.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	// Each connection to :memory: is a separate database.
	if isMemory(path) {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	return conn, nil
}

// SQLiteDSN appends the connection parameters the store relies on.
func SQLiteDSN(path string) string {
	path = strings.TrimPrefix(path, "sqlite://")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + sqliteParams
}

func isMemory(path string) bool {
	return strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory")
}
