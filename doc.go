// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the AMA board API server.

The service hosts live Q&A sessions: attendees submit questions against
an event, upvote or downvote them, and the board ranks questions so the
host can answer the ones the room cares about.

# Starting the Server

The server requires environment variables, a .env file, or CLI flags:

	DATABASE_URL=file:ama.db go run .

Or with flags:

	go run . -p 3318 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - HOST_KEY_SALT (--host-salt): Secret for host key HMAC
  - EVENT_SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - EDIT_WINDOW_SECONDS (--edit-window): Question edit window (default: 120)
  - BASE_URL (--base-url): Base for share links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (events, questions, votes, board)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, voter identity, JSON helpers
  - models: Request/response types
  - auth: Key, slug, and token generation
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing
  - reconcile: Client-side optimistic vote reconciliation

See package documentation for each component.
*/
package main
