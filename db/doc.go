// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open picks the driver from Config.DatabaseType:

  - "postgres": github.com/lib/pq, DatabaseURL is a postgres:// URL
  - "sqlite" (default): modernc.org/sqlite, DatabaseURL is a file path

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}

SQLite connections always enable foreign keys, a busy timeout, and
immediate transactions. OpenSQLite(ctx, ":memory:") is what the tests use.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on both databases, so timestamps have no
database-side defaults.

# Tables

  - users: id, name, join_date, created_at
  - works: id, category, title, creator, publication_year, description, created_at
  - votes: id, user_id, work_id, submit_date; UNIQUE (user_id, work_id)
  - sessions: token, user_id, created_at, expires_at

# Relationships

	users 1──* votes *──1 works
	users 1──* sessions

All foreign keys use ON DELETE CASCADE. The store also deletes dependent
rows explicitly inside its delete transactions.

# Indexes

  - users.name (login lookup)
  - works.category
  - votes.work_id, votes.user_id
  - sessions.user_id
*/
package db
