// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-ballot/models"
)

// Engine is the authority for one election. Every mutating operation holds
// the write lock for its whole validate → journal → apply sequence.
type Engine struct {
	mu sync.RWMutex

	id        string
	title     string
	createdAt time.Time
	access    AccessControl

	phase             models.Phase
	voters            map[string]*models.Voter
	proposals         []models.Proposal
	winningProposalID int
	votesCast         int

	// seq is the sequence number of the next event; 0 is election_created.
	seq       int64
	replaying bool

	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Engine)

func WithID(id string) Option {
	return func(e *Engine) { e.id = id }
}

func WithTitle(title string) Option {
	return func(e *Engine) { e.title = title }
}

func WithCreatedAt(t time.Time) Option {
	return func(e *Engine) { e.createdAt = t.UTC() }
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an election in RegisteringVoters administered by admin.
func New(admin string, opts ...Option) *Engine {
	e := &Engine{
		access: NewAccessControl(admin),
		phase:  models.RegisteringVoters,
		voters: make(map[string]*models.Voter),
		seq:    1,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.createdAt.IsZero() {
		e.createdAt = e.now().UTC()
	}
	return e
}

func (e *Engine) ID() string {
	return e.id
}

func (e *Engine) Title() string {
	return e.title
}

func (e *Engine) Administrator() string {
	return e.access.Administrator()
}

// WorkflowStatus is readable by anyone
func (e *Engine) WorkflowStatus() models.Phase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.phase
}

// WinningProposalID is 0 until votes are tallied
func (e *Engine) WinningProposalID() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.winningProposalID
}

// Role returns models.RoleAdmin, models.RoleVoter or "" for principal.
// Administrators who are also voters report as admin.
func (e *Engine) Role(principal string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.access.IsAdministrator(principal) {
		return models.RoleAdmin
	}
	if _, ok := e.registered(principal); ok {
		return models.RoleVoter
	}
	return ""
}

func (e *Engine) Summary() models.ElectionSummary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return models.ElectionSummary{
		ID:                e.id,
		Title:             e.title,
		Admin:             e.access.Administrator(),
		WorkflowStatus:    e.phase,
		StatusName:        e.phase.String(),
		VoterCount:        len(e.voters),
		VotesCast:         e.votesCast,
		ProposalCount:     len(e.proposals),
		WinningProposalID: e.winningProposalID,
		CreatedAt:         e.createdAt,
	}
}

// SetNotifier replaces the notifier, typically after Replay.
func (e *Engine) SetNotifier(n Notifier) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifier = n
}

// createdEvent builds the seq-0 event that opens an election's journal.
func (e *Engine) createdEvent() (models.Event, error) {
	return models.NewEvent(e.id, 0, models.EventElectionCreated, e.createdAt, models.ElectionCreated{
		Admin: e.access.Administrator(),
		Title: e.title,
	})
}

// commit journals the change and only then applies it. Callers hold the
// write lock and have finished all validation. The journal write ignores
// caller cancellation: a row committed after the caller went away must
// still advance seq.
func (e *Engine) commit(ctx context.Context, eventType models.EventType, payload any, apply func()) error {
	if !e.replaying && e.notifier != nil {
		event, err := models.NewEvent(e.id, e.seq, eventType, e.now(), payload)
		if err != nil {
			return err
		}
		if err := e.notifier.Notify(context.WithoutCancel(ctx), event); err != nil {
			e.logger.Error("failed to journal event",
				"election_id", e.id,
				"type", eventType,
				"seq", e.seq,
				"error", err,
			)
			return fmt.Errorf("%w: %v", ErrJournal, err)
		}
	}
	apply()
	e.seq++
	return nil
}

func (e *Engine) reject(op, caller string, err error) error {
	if !e.replaying {
		e.logger.Debug("operation rejected",
			"election_id", e.id,
			"op", op,
			"caller", caller,
			"status", e.phase.String(),
			"error", err,
		)
	}
	return err
}

// registered returns the caller's voter record when the caller is a
// registered voter.
func (e *Engine) registered(principal string) (*models.Voter, bool) {
	if principal == "" {
		return nil, false
	}
	v, ok := e.voters[principal]
	if !ok || !v.IsRegistered {
		return nil, false
	}
	return v, true
}

// Replay re-applies journaled events after the election_created event.
// Events go through the same validation as live calls but are not
// re-notified.
func (e *Engine) Replay(ctx context.Context, events []models.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.replaying = true
	defer func() { e.replaying = false }()

	for _, event := range events {
		if event.Type == models.EventElectionCreated {
			continue
		}
		if event.Seq != e.seq {
			return fmt.Errorf("replay %s: expected seq %d, got %d", e.id, e.seq, event.Seq)
		}
		if err := e.apply(ctx, event); err != nil {
			return fmt.Errorf("replay %s seq %d: %w", e.id, event.Seq, err)
		}
	}
	return nil
}

func (e *Engine) apply(ctx context.Context, event models.Event) error {
	admin := e.access.Administrator()

	switch event.Type {
	case models.EventVoterRegistered:
		var p models.VoterRegistered
		if err := event.Decode(&p); err != nil {
			return err
		}
		_, err := e.addVoter(ctx, admin, p.Address)
		return err

	case models.EventProposalRegistered:
		var p models.ProposalRegistered
		if err := event.Decode(&p); err != nil {
			return err
		}
		got, err := e.addProposal(ctx, p.Proposer, p.Description)
		if err != nil {
			return err
		}
		if got.ProposalID != p.ProposalID {
			return fmt.Errorf("proposal id mismatch: journaled %d, assigned %d", p.ProposalID, got.ProposalID)
		}
		return nil

	case models.EventVoted:
		var p models.Voted
		if err := event.Decode(&p); err != nil {
			return err
		}
		_, err := e.setVote(ctx, p.Voter, p.ProposalID)
		return err

	case models.EventWorkflowStatusChange:
		var p models.WorkflowStatusChange
		if err := event.Decode(&p); err != nil {
			return err
		}
		t, ok := transitionFrom(p.Previous)
		if !ok || t.to != p.New {
			return fmt.Errorf("no transition %s → %s", p.Previous, p.New)
		}
		_, err := e.advance(ctx, admin, t)
		return err

	default:
		return fmt.Errorf("unknown event type %q", event.Type)
	}
}
