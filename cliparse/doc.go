// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - HostKeySalt: Secret for host key HMAC (required)
  - EventSlugSalt: Secret for share slug generation (required)
  - EditWindow: Question edit/retract window (default: 120s)
  - BaseURL: Prefix for share links

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--host-salt   Host key salt
	--slug-salt   Event slug salt
	--edit-window Edit window in seconds
	--base-url    Share link base URL

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t
	HOST_KEY_SALT       → --host-salt
	EVENT_SLUG_SALT     → --slug-salt
	EDIT_WINDOW_SECONDS → --edit-window
	BASE_URL            → --base-url

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - HOST_KEY_SALT must be provided
  - EVENT_SLUG_SALT must be provided
*/
package cliparse
