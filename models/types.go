// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Phase is a stage of the election workflow. Values are ordered and the
// workflow only ever moves to the next one.
type Phase int

const (
	RegisteringVoters Phase = iota
	ProposalsRegistrationStarted
	ProposalsRegistrationEnded
	VotingSessionStarted
	VotingSessionEnded
	VotesTallied
)

var phaseNames = [...]string{
	"registering_voters",
	"proposals_registration_started",
	"proposals_registration_ended",
	"voting_session_started",
	"voting_session_ended",
	"votes_tallied",
}

func (p Phase) String() string {
	if p < RegisteringVoters || p > VotesTallied {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Valid reports whether p is one of the six workflow phases.
func (p Phase) Valid() bool {
	return p >= RegisteringVoters && p <= VotesTallied
}

// ParsePhase accepts the snake-case name of a phase
func ParsePhase(name string) (Phase, error) {
	for i, n := range phaseNames {
		if n == name {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", name)
}

// GenesisDescription labels the sentinel proposal at id 0.
const GenesisDescription = "GENESIS"

// Domain types

type Voter struct {
	Address         string `json:"address"`
	IsRegistered    bool   `json:"is_registered"`
	HasVoted        bool   `json:"has_voted"`
	VotedProposalID *int   `json:"voted_proposal_id,omitempty"`
}

type Proposal struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	VoteCount   int    `json:"vote_count"`
}

// Standing is one row of the tallied results
type Standing struct {
	Proposal
	Rank   int  `json:"rank"` // 1-indexed ranking
	Winner bool `json:"winner"`
}

type ElectionSummary struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Admin             string    `json:"admin"`
	WorkflowStatus    Phase     `json:"workflow_status"`
	StatusName        string    `json:"status_name"`
	VoterCount        int       `json:"voter_count"`
	VotesCast         int       `json:"votes_cast"`
	ProposalCount     int       `json:"proposal_count"`
	WinningProposalID int       `json:"winning_proposal_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// Event types

type EventType string

const (
	EventElectionCreated      EventType = "election_created"
	EventVoterRegistered      EventType = "voter_registered"
	EventProposalRegistered   EventType = "proposal_registered"
	EventVoted                EventType = "voted"
	EventWorkflowStatusChange EventType = "workflow_status_change"
)

// Event is the journaled form of every accepted state change. Seq starts at
// 0 with the election_created event and increases by one per event.
type Event struct {
	ElectionID string          `json:"election_id"`
	Seq        int64           `json:"seq"`
	Type       EventType       `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

// NewEvent marshals payload into an Event
func NewEvent(electionID string, seq int64, eventType EventType, occurredAt time.Time, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}
	return Event{
		ElectionID: electionID,
		Seq:        seq,
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Data:       data,
	}, nil
}

// Decode unmarshals the event payload into v
func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to decode %s payload (seq %d): %w", e.Type, e.Seq, err)
	}
	return nil
}

type ElectionCreated struct {
	Admin string `json:"admin"`
	Title string `json:"title"`
}

type VoterRegistered struct {
	Address string `json:"address"`
}

type ProposalRegistered struct {
	ProposalID  int    `json:"proposal_id"`
	Proposer    string `json:"proposer"`
	Description string `json:"description"`
}

type Voted struct {
	Voter      string `json:"voter"`
	ProposalID int    `json:"proposal_id"`
}

type WorkflowStatusChange struct {
	Previous Phase `json:"previous_status"`
	New      Phase `json:"new_status"`
}

// Request types

type CreateElectionRequest struct {
	Title string `json:"title"`
}

type AddVoterRequest struct {
	Address string `json:"address"`
}

type AddProposalRequest struct {
	Description string `json:"description"`
}

type SetVoteRequest struct {
	ProposalID *int `json:"proposal_id"`
}

// Response types

type IssuePrincipalResponse struct {
	Principal    string `json:"principal"`
	PrincipalKey string `json:"principal_key"`
}

type PrincipalResponse struct {
	Principal string               `json:"principal"`
	Elections []ElectionMembership `json:"elections"`
}

type ElectionMembership struct {
	ElectionID string `json:"election_id"`
	Title      string `json:"title"`
	Role       string `json:"role"`
	Status     string `json:"status"`
}

type CreateElectionResponse struct {
	ElectionID     string `json:"election_id"`
	Admin          string `json:"admin"`
	WorkflowStatus Phase  `json:"workflow_status"`
}

type WorkflowStatusResponse struct {
	PreviousStatus     Phase  `json:"previous_status"`
	NewStatus          Phase  `json:"new_status"`
	PreviousStatusName string `json:"previous_status_name"`
	NewStatusName      string `json:"new_status_name"`
}

type WinnerResponse struct {
	WinningProposalID int    `json:"winning_proposal_id"`
	WorkflowStatus    Phase  `json:"workflow_status"`
	StatusName        string `json:"status_name"`
}

type ResultsResponse struct {
	ElectionID        string     `json:"election_id"`
	WinningProposalID int        `json:"winning_proposal_id"`
	VotesCast         int        `json:"votes_cast"`
	Standings         []Standing `json:"standings"`
}

// Membership roles
const (
	RoleAdmin = "admin"
	RoleVoter = "voter"
)

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
