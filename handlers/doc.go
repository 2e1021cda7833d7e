// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements HTTP handlers for the ballot API.

# Handler Types

  - ElectionHandler: create, status, workflow transitions, winner
  - VotingHandler: voters, proposals, votes
  - ResultsHandler: ranked results after tally
  - PrincipalHandler: credential issue and membership lookup

Each handler holds the election.Registry and cliparse.Config. The caller
is read from the request context set by middleware.Authenticate; every
access and phase rule is enforced by the election engine, not here.

# Election Lifecycle

	POST /elections                                   → registering_voters
	POST /elections/{id}/workflow/start-proposals     → proposals_registration_started
	POST /elections/{id}/workflow/end-proposals       → proposals_registration_ended
	POST /elections/{id}/workflow/start-voting        → voting_session_started
	POST /elections/{id}/workflow/end-voting          → voting_session_ended
	POST /elections/{id}/workflow/tally               → votes_tallied

# Error Mapping

Engine errors map to status codes in one place (errors.go):

	ErrNotAuthorized, ErrNotAVoter                  403 Forbidden
	*PhaseError, ErrAlreadyRegistered, ErrAlreadyVoted 409 Conflict
	ErrEmptyDescription, ErrEmptyAddress            400 Bad Request
	ErrNotFound, ErrProposalNotFound                404 Not Found
	anything else (journal failures)                500

# Sealed Results

GET /elections/{id}/results returns 403 until the election reaches
votes_tallied. GET /elections/{id}/winner is always readable and reports
0 before the tally.
*/
package handlers
