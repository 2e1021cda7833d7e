// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"

	"github.com/danielhkuo/quickly-ballot/models"
)

// workflow maps each phase to the only phase it may advance to.
var workflow = map[models.Phase]models.Phase{
	models.RegisteringVoters:            models.ProposalsRegistrationStarted,
	models.ProposalsRegistrationStarted: models.ProposalsRegistrationEnded,
	models.ProposalsRegistrationEnded:   models.VotingSessionStarted,
	models.VotingSessionStarted:         models.VotingSessionEnded,
	models.VotingSessionEnded:           models.VotesTallied,
}

type transition struct {
	op     string
	from   models.Phase
	to     models.Phase
	effect func(*Engine)
}

var (
	startProposals = newTransition("StartProposalsRegistering", models.RegisteringVoters, (*Engine).appendGenesis)
	endProposals   = newTransition("EndProposalsRegistering", models.ProposalsRegistrationStarted, nil)
	startVoting    = newTransition("StartVotingSession", models.ProposalsRegistrationEnded, nil)
	endVoting      = newTransition("EndVotingSession", models.VotingSessionStarted, nil)
	tally          = newTransition("TallyVotes", models.VotingSessionEnded, (*Engine).recordWinner)

	transitions = []transition{startProposals, endProposals, startVoting, endVoting, tally}
)

func newTransition(op string, from models.Phase, effect func(*Engine)) transition {
	return transition{op: op, from: from, to: workflow[from], effect: effect}
}

func transitionFrom(p models.Phase) (transition, bool) {
	for _, t := range transitions {
		if t.from == p {
			return t, true
		}
	}
	return transition{}, false
}

// StartProposalsRegistering opens proposal registration and creates the
// GENESIS proposal at id 0.
func (e *Engine) StartProposalsRegistering(ctx context.Context, caller string) (models.WorkflowStatusChange, error) {
	return e.lockedAdvance(ctx, caller, startProposals)
}

func (e *Engine) EndProposalsRegistering(ctx context.Context, caller string) (models.WorkflowStatusChange, error) {
	return e.lockedAdvance(ctx, caller, endProposals)
}

func (e *Engine) StartVotingSession(ctx context.Context, caller string) (models.WorkflowStatusChange, error) {
	return e.lockedAdvance(ctx, caller, startVoting)
}

func (e *Engine) EndVotingSession(ctx context.Context, caller string) (models.WorkflowStatusChange, error) {
	return e.lockedAdvance(ctx, caller, endVoting)
}

// TallyVotes closes the election and fixes the winning proposal.
func (e *Engine) TallyVotes(ctx context.Context, caller string) (models.WorkflowStatusChange, error) {
	return e.lockedAdvance(ctx, caller, tally)
}

func (e *Engine) lockedAdvance(ctx context.Context, caller string, t transition) (models.WorkflowStatusChange, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.advance(ctx, caller, t)
}

func (e *Engine) advance(ctx context.Context, caller string, t transition) (models.WorkflowStatusChange, error) {
	if !e.access.IsAdministrator(caller) {
		return models.WorkflowStatusChange{}, e.reject(t.op, caller, fmt.Errorf("%s: %w", t.op, ErrNotAuthorized))
	}
	if e.phase != t.from {
		return models.WorkflowStatusChange{}, e.reject(t.op, caller, &PhaseError{
			Op:      t.op,
			Current: e.phase,
			Kind:    ErrInvalidTransition,
			Reason:  fmt.Sprintf("requires status %s", t.from),
		})
	}

	change := models.WorkflowStatusChange{Previous: t.from, New: t.to}
	err := e.commit(ctx, models.EventWorkflowStatusChange, change, func() {
		if t.effect != nil {
			t.effect(e)
		}
		e.phase = t.to
	})
	if err != nil {
		return models.WorkflowStatusChange{}, err
	}

	if !e.replaying {
		e.logger.Info("workflow status changed",
			"election_id", e.id,
			"previous", change.Previous.String(),
			"new", change.New.String(),
		)
	}
	return change, nil
}

func (e *Engine) appendGenesis() {
	e.proposals = append(e.proposals, models.Proposal{
		ID:          0,
		Description: models.GenesisDescription,
	})
}

func (e *Engine) recordWinner() {
	e.winningProposalID = ComputeWinner(e.proposals)
}
