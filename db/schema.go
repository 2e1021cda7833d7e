// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema is plain SQL shared by SQLite and PostgreSQL. Timestamps and
// payloads are stored as text so both drivers round-trip them the same way.
const schema = `
-- Election events (append-only journal)
CREATE TABLE IF NOT EXISTS election_event (
    election_id TEXT NOT NULL,
    seq BIGINT NOT NULL CHECK (seq >= 0),
    event_type TEXT NOT NULL CHECK (event_type IN (
        'election_created',
        'voter_registered',
        'proposal_registered',
        'voted',
        'workflow_status_change'
    )),
    occurred_at TEXT NOT NULL,
    payload TEXT NOT NULL,
    PRIMARY KEY (election_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_election_event_type ON election_event(event_type);
`
