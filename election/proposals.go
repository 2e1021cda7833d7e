// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielhkuo/quickly-ballot/models"
)

// AddProposal appends a proposal with the next sequential id. The caller
// must be a registered voter and proposal registration must be open.
func (e *Engine) AddProposal(ctx context.Context, caller, description string) (models.ProposalRegistered, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addProposal(ctx, caller, description)
}

func (e *Engine) addProposal(ctx context.Context, caller, description string) (models.ProposalRegistered, error) {
	const op = "AddProposal"

	if _, ok := e.registered(caller); !ok {
		return models.ProposalRegistered{}, e.reject(op, caller, ErrNotAVoter)
	}
	if e.phase != models.ProposalsRegistrationStarted {
		return models.ProposalRegistered{}, e.reject(op, caller, &PhaseError{
			Op:      op,
			Current: e.phase,
			Kind:    ErrWrongPhase,
			Reason:  "proposals registration is not open",
		})
	}
	if strings.TrimSpace(description) == "" {
		return models.ProposalRegistered{}, e.reject(op, caller, ErrEmptyDescription)
	}

	registered := models.ProposalRegistered{
		ProposalID:  len(e.proposals),
		Proposer:    caller,
		Description: description,
	}
	err := e.commit(ctx, models.EventProposalRegistered, registered, func() {
		e.proposals = append(e.proposals, models.Proposal{
			ID:          registered.ProposalID,
			Description: description,
		})
	})
	if err != nil {
		return models.ProposalRegistered{}, err
	}

	if !e.replaying {
		e.logger.Info("proposal registered",
			"election_id", e.id,
			"proposal_id", registered.ProposalID,
			"proposer", caller,
		)
	}
	return registered, nil
}

// GetOneProposal returns proposal id to a registered voter.
func (e *Engine) GetOneProposal(caller string, id int) (models.Proposal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.registered(caller); !ok {
		return models.Proposal{}, ErrNotAVoter
	}
	if id < 0 || id >= len(e.proposals) {
		return models.Proposal{}, fmt.Errorf("proposal %d: %w", id, ErrNotFound)
	}
	return e.proposals[id], nil
}

// Proposals returns a copy of every proposal in id order, GENESIS included.
func (e *Engine) Proposals(caller string) ([]models.Proposal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.registered(caller); !ok {
		return nil, ErrNotAVoter
	}
	out := make([]models.Proposal, len(e.proposals))
	copy(out, e.proposals)
	return out, nil
}
