// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, event, request, and response types.

# Domain Types

  - Phase: ordered workflow stage (RegisteringVoters … VotesTallied)
  - Voter: registration and voting record for one principal
  - Proposal: sequential id, description, vote count
  - Standing: ranked proposal after tally
  - ElectionSummary: compact status view

# Events

Every accepted state change is reported as an Event whose Data holds one
of the payload types:

	EventElectionCreated      → ElectionCreated
	EventVoterRegistered      → VoterRegistered
	EventProposalRegistered   → ProposalRegistered
	EventVoted                → Voted
	EventWorkflowStatusChange → WorkflowStatusChange

Events are journaled by package db and replayed on startup.

# Request and Response Types

Types for parsing incoming JSON and writing responses:

  - CreateElectionRequest, AddVoterRequest, AddProposalRequest, SetVoteRequest
  - CreateElectionResponse, WorkflowStatusResponse, WinnerResponse, ResultsResponse
  - IssuePrincipalResponse, PrincipalResponse
  - ErrorResponse: error, message
*/
package models
