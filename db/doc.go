// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Connecting

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "postgres" (lib/pq) and "sqlite" (modernc.org/sqlite,
pure Go). SQLite connections get foreign keys enabled via pragma.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - event: Event metadata, voting flag, and lifecycle status
  - question: One row per submitted question (status, hidden, pin state)
  - vote: One signed vote per (question, voter) pair

# Relationships

	event 1──* question
	question 1──* vote

All foreign keys use ON DELETE CASCADE, so deleting an event removes its
questions and their votes in one statement.

# The Vote Constraint

The vote table's composite primary key (question_id, voter_id) is the
storage-level enforcement of the at-most-one-vote invariant. Vote writes
go through a single atomic INSERT ... ON CONFLICT ... DO UPDATE, never a
check-then-write, so two racing requests from the same browser cannot
produce two rows. A question's score is always computed as
SUM(value) over its vote rows at read time; it is never stored.
*/
package db
