// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"

	"github.com/danielhkuo/quickly-ballot/models"
)

// SetVote casts the caller's single vote for proposalID.
func (e *Engine) SetVote(ctx context.Context, caller string, proposalID int) (models.Voted, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setVote(ctx, caller, proposalID)
}

func (e *Engine) setVote(ctx context.Context, caller string, proposalID int) (models.Voted, error) {
	const op = "SetVote"

	voter, ok := e.registered(caller)
	if !ok {
		return models.Voted{}, e.reject(op, caller, ErrNotAVoter)
	}
	switch {
	case e.phase < models.VotingSessionStarted:
		return models.Voted{}, e.reject(op, caller, &PhaseError{
			Op: op, Current: e.phase, Kind: ErrWrongPhase,
			Reason: "voting session has not started yet",
		})
	case e.phase > models.VotingSessionStarted:
		return models.Voted{}, e.reject(op, caller, &PhaseError{
			Op: op, Current: e.phase, Kind: ErrWrongPhase,
			Reason: "voting session has already ended",
		})
	}
	if voter.HasVoted {
		return models.Voted{}, e.reject(op, caller, ErrAlreadyVoted)
	}
	if proposalID < 0 || proposalID >= len(e.proposals) {
		return models.Voted{}, e.reject(op, caller, fmt.Errorf("proposal %d: %w", proposalID, ErrProposalNotFound))
	}

	voted := models.Voted{Voter: caller, ProposalID: proposalID}
	err := e.commit(ctx, models.EventVoted, voted, func() {
		e.proposals[proposalID].VoteCount++
		id := proposalID
		voter.HasVoted = true
		voter.VotedProposalID = &id
		e.votesCast++
	})
	if err != nil {
		return models.Voted{}, err
	}

	if !e.replaying {
		e.logger.Info("vote cast", "election_id", e.id, "voter", caller, "proposal_id", proposalID)
	}
	return voted, nil
}
