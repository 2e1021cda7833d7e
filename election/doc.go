// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the ballot workflow engine.

An Engine is one election: an administrator fixed at construction, a
registry of voters, an append-only list of proposals, and a phase that
advances one step at a time:

	registering_voters
	  → proposals_registration_started   (GENESIS proposal created at id 0)
	  → proposals_registration_ended
	  → voting_session_started
	  → voting_session_ended
	  → votes_tallied                    (winner computed once)

# Access

Phase transitions and AddVoter require the administrator. AddProposal,
SetVote, GetVoter, GetOneProposal and Proposals require a registered
voter. WorkflowStatus, WinningProposalID and Summary are open to anyone.
Authorization is always checked before the phase.

# Errors

Failures return the sentinel errors in errors.go. Phase failures are
*PhaseError values that unwrap to ErrWrongPhase or ErrInvalidTransition
and carry the current phase:

	var pe *election.PhaseError
	if errors.As(err, &pe) {
		log.Println(pe.Current)
	}

# Notifications

Every accepted change is handed to the Engine's Notifier as a
models.Event before it is applied. If the notifier fails the operation
fails and nothing changes. Replay applies journaled events without
notifying again.

# Tally

ComputeWinner is first-reached-wins: proposals are scanned in id order and
only a strictly higher count takes the lead.
*/
package election
