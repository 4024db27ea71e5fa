// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL avoids NOW() defaults so the same statements run on both
// Postgres and SQLite; all timestamps are written explicitly from Go.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Events
CREATE TABLE IF NOT EXISTS event (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    host_name TEXT,
    event_type TEXT NOT NULL DEFAULT 'company' CHECK (event_type IN ('company', 'team')),
    scheduled_at TIMESTAMP,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    voting_open BOOLEAN NOT NULL DEFAULT TRUE,
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    share_slug TEXT UNIQUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_share_slug ON event(share_slug);
CREATE INDEX IF NOT EXISTS idx_event_status ON event(status);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    body TEXT NOT NULL,
    display_name TEXT,
    anonymous BOOLEAN NOT NULL DEFAULT FALSE,
    voter_id TEXT,
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'answered')),
    hidden BOOLEAN NOT NULL DEFAULT FALSE,
    pinned_at TIMESTAMP,
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_event_id ON question(event_id);
CREATE INDEX IF NOT EXISTS idx_question_status ON question(event_id, status);

-- Votes: the composite primary key IS the at-most-one-vote invariant.
-- Value 0 is never stored; clearing a vote deletes the row.
CREATE TABLE IF NOT EXISTS vote (
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    value SMALLINT NOT NULL CHECK (value IN (-1, 1)),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (question_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_voter ON vote(voter_id);
`
