package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port                  int
	DatabaseURL           string
	DatabaseType          string
	SessionTTL            time.Duration
	RequireLoginForWrites bool
	CookieSecure          bool
	LogLevel              slog.Level
}

const DefaultSessionTTL = 30 * 24 * time.Hour

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var logLevel string
	var requireLogin, cookieSecure string

	fs := flag.NewFlagSet("media-ranker", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Sessions and policy
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Session lifetime (e.g. 720h)")
	fs.StringVar(&requireLogin, "require-login-writes", "", "Require a session to create users and works (true/false)")
	fs.StringVar(&cookieSecure, "cookie-secure", "", "Mark the session cookie Secure (true/false)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.SessionTTL == 0 {
		if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = ttl
		} else {
			cfg.SessionTTL = DefaultSessionTTL
		}
	}
	if cfg.SessionTTL < 0 {
		return Config{}, errors.New("session TTL must be positive")
	}

	var err error
	if cfg.RequireLoginForWrites, err = boolSetting(requireLogin, "REQUIRE_LOGIN_WRITES"); err != nil {
		return Config{}, err
	}
	if cfg.CookieSecure, err = boolSetting(cookieSecure, "COOKIE_SECURE"); err != nil {
		return Config{}, err
	}

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	return cfg, nil
}

// boolSetting reads a flag value, falling back to the named env variable.
// Unset means false.
func boolSetting(flagValue, envName string) (bool, error) {
	v := flagValue
	if v == "" {
		v = os.Getenv(envName)
	}
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q", envName, v)
	}
	return b, nil
}
