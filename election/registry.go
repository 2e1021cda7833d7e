// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-ballot/models"
)

// Registry holds every election hosted by one process, keyed by id.
type Registry struct {
	mu        sync.RWMutex
	elections map[string]*Engine
	notifier  Notifier
	logger    *slog.Logger
}

// NewRegistry creates an empty registry. notifier may be nil, in which case
// elections live only in memory.
func NewRegistry(notifier Notifier, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		elections: make(map[string]*Engine),
		notifier:  notifier,
		logger:    logger,
	}
}

// Create starts a new election administered by admin and journals its
// election_created event.
func (r *Registry) Create(ctx context.Context, admin, title string) (*Engine, error) {
	if admin == "" {
		return nil, fmt.Errorf("create election: %w", ErrNotAuthorized)
	}

	e := New(admin,
		WithID(uuid.NewString()),
		WithTitle(title),
		WithNotifier(r.notifier),
		WithLogger(r.logger),
	)

	if r.notifier != nil {
		event, err := e.createdEvent()
		if err != nil {
			return nil, err
		}
		if err := r.notifier.Notify(ctx, event); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrJournal, err)
		}
	}

	r.mu.Lock()
	r.elections[e.ID()] = e
	r.mu.Unlock()

	r.logger.Info("election created", "election_id", e.ID(), "admin", admin, "title", title)
	return e, nil
}

// Get returns the election with id
func (r *Registry) Get(id string) (*Engine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.elections[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrElectionNotFound)
	}
	return e, nil
}

// Restore rebuilds one election from its journaled events, which must begin
// with election_created. The registry's notifier is attached only after the
// replay succeeds.
func (r *Registry) Restore(ctx context.Context, events []models.Event) (*Engine, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("restore: no events")
	}
	first := events[0]
	if first.Type != models.EventElectionCreated || first.Seq != 0 {
		return nil, fmt.Errorf("restore %s: first event is %s at seq %d", first.ElectionID, first.Type, first.Seq)
	}
	var created models.ElectionCreated
	if err := first.Decode(&created); err != nil {
		return nil, err
	}

	e := New(created.Admin,
		WithID(first.ElectionID),
		WithTitle(created.Title),
		WithCreatedAt(first.OccurredAt),
		WithLogger(r.logger),
	)
	if err := e.Replay(ctx, events[1:]); err != nil {
		return nil, err
	}
	e.SetNotifier(r.notifier)

	r.mu.Lock()
	r.elections[e.ID()] = e
	r.mu.Unlock()

	return e, nil
}

// List returns summaries of all elections, oldest first.
func (r *Registry) List() []models.ElectionSummary {
	r.mu.RLock()
	engines := make([]*Engine, 0, len(r.elections))
	for _, e := range r.elections {
		engines = append(engines, e)
	}
	r.mu.RUnlock()

	summaries := make([]models.ElectionSummary, len(engines))
	for i, e := range engines {
		summaries[i] = e.Summary()
	}
	sortSummaries(summaries)
	return summaries
}

// ElectionsFor lists the elections where principal is the administrator or
// a registered voter.
func (r *Registry) ElectionsFor(principal string) []models.ElectionMembership {
	memberships := []models.ElectionMembership{}
	if principal == "" {
		return memberships
	}

	for _, s := range r.List() {
		e, err := r.Get(s.ID)
		if err != nil {
			continue
		}
		role := e.Role(principal)
		if role == "" {
			continue
		}
		memberships = append(memberships, models.ElectionMembership{
			ElectionID: s.ID,
			Title:      s.Title,
			Role:       role,
			Status:     s.StatusName,
		})
	}
	return memberships
}

func sortSummaries(s []models.ElectionSummary) {
	sort.Slice(s, func(i, j int) bool {
		if !s[i].CreatedAt.Equal(s[j].CreatedAt) {
			return s[i].CreatedAt.Before(s[j].CreatedAt)
		}
		return s[i].ID < s[j].ID
	})
}
