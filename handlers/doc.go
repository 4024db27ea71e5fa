// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP endpoints for events, questions,
votes, and the board and presenter projections.

# Design

Each handler group is a struct holding the database handle and parsed
config, constructed once at startup:

	eventHandler := handlers.NewEventHandler(db, cfg)
	mux.HandleFunc("POST /events", middleware.WithLogging(eventHandler.CreateEvent))

Host-only endpoints validate the X-Host-Key header by recomputing the
HMAC from the event ID; nothing is looked up or stored. Submitter-only
endpoints (question edit and retract) compare the caller's voter token
against the question's recorded submitter and enforce the edit window
against the creation timestamp.

# Votes

The vote ledger keeps one signed row per (question, voter) pair. Casting
is an atomic upsert on that key; casting 0 deletes the row. Scores are
never stored: every response recomputes them by summing the live rows.

# Projections

GetBoard and GetPresenter project question rows into per-caller views:
score, the caller's own vote, ownership, and editability are all
evaluated at read time. Pinned questions rank first in both sort modes.
*/
package handlers
