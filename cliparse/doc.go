// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL URL or SQLite path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - SessionTTL: Lifetime of a login session (default: 720h)
  - RequireLoginForWrites: Also require a session to create users and works
  - CookieSecure: Set the Secure attribute on the session cookie
  - LogLevel: Minimum slog level (default: info)

Voting always requires a session regardless of RequireLoginForWrites.

# CLI Flags

	-p                    Server port
	-d                    Database URL
	-t                    Database type
	-session-ttl          Session lifetime
	-require-login-writes Gate user/work creation behind login
	-cookie-secure        Secure session cookie
	-log-level            debug, info, warn, error

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	SESSION_TTL          → -session-ttl
	REQUIRE_LOGIN_WRITES → -require-login-writes
	COOKIE_SECURE        → -cookie-secure
	LOG_LEVEL            → -log-level

CLI flags take precedence over environment variables. main loads a .env
file with godotenv before parsing, so values there act as defaults.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - PORT or SESSION_TTL does not parse
  - DATABASE_TYPE is not sqlite or postgres
  - a boolean setting is not a valid bool
  - LOG_LEVEL is not a slog level name
*/
package cliparse
