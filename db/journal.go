// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/quickly-ballot/election"
	"github.com/danielhkuo/quickly-ballot/models"
)

// timeLayout is fixed width so occurred_at sorts as text in time order
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Journal stores election events in the election_event table. It is the
// election.Notifier used when a database is configured.
type Journal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{db: db}
}

// Notify appends event. A duplicate (election_id, seq) fails on the primary
// key, so two writers can never both commit the same step.
func (j *Journal) Notify(ctx context.Context, event models.Event) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO election_event (election_id, seq, event_type, occurred_at, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, event.ElectionID, event.Seq, string(event.Type), event.OccurredAt.UTC().Format(timeLayout), string(event.Data))
	if err != nil {
		return fmt.Errorf("failed to append %s event %d for election %s: %w", event.Type, event.Seq, event.ElectionID, err)
	}
	return nil
}

// Events returns every event of one election in sequence order
func (j *Journal) Events(ctx context.Context, electionID string) ([]models.Event, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, event_type, occurred_at, payload
		FROM election_event
		WHERE election_id = $1
		ORDER BY seq ASC
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			seq        int64
			eventType  string
			occurredAt string
			payload    string
		)
		if err := rows.Scan(&seq, &eventType, &occurredAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, occurredAt)
		if err != nil {
			return nil, fmt.Errorf("invalid occurred_at for %s seq %d: %w", electionID, seq, err)
		}
		events = append(events, models.Event{
			ElectionID: electionID,
			Seq:        seq,
			Type:       models.EventType(eventType),
			OccurredAt: ts,
			Data:       []byte(payload),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// ElectionIDs lists journaled elections in creation order
func (j *Journal) ElectionIDs(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT election_id
		FROM election_event
		WHERE seq = 0
		ORDER BY occurred_at ASC, election_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan election id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating elections: %w", err)
	}

	return ids, nil
}

// Restore replays every journaled election into registry and returns how
// many were restored. Any election that fails to replay aborts the restore.
func Restore(ctx context.Context, journal *Journal, registry *election.Registry) (int, error) {
	ids, err := journal.ElectionIDs(ctx)
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		events, err := journal.Events(ctx, id)
		if err != nil {
			return 0, err
		}
		e, err := registry.Restore(ctx, events)
		if err != nil {
			return 0, fmt.Errorf("failed to restore election %s: %w", id, err)
		}
		slog.Info("Election restored",
			"election_id", id,
			"events", len(events),
			"status", e.WorkflowStatus().String(),
		)
	}

	return len(ids), nil
}
