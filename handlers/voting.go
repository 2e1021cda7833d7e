// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-ballot/auth"
	"github.com/danielhkuo/quickly-ballot/election"
	"github.com/danielhkuo/quickly-ballot/middleware"
	"github.com/danielhkuo/quickly-ballot/models"
)

type VotingHandler struct {
	registry *election.Registry
}

func NewVotingHandler(registry *election.Registry) *VotingHandler {
	return &VotingHandler{registry: registry}
}

// AddVoter handles POST /elections/{id}/voters (administrator only)
func (h *VotingHandler) AddVoter(w http.ResponseWriter, r *http.Request) {
	e, ok := lookupElection(w, r, h.registry)
	if !ok {
		return
	}

	var req models.AddVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voter, err := e.AddVoter(r.Context(), middleware.PrincipalFrom(r.Context()), auth.NormalizeAddress(req.Address))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, voter)
}

// GetVoter handles GET /elections/{id}/voters/{address} (registered voters)
func (h *VotingHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	e, ok := lookupElection(w, r, h.registry)
	if !ok {
		return
	}

	voter, err := e.GetVoter(middleware.PrincipalFrom(r.Context()), auth.NormalizeAddress(r.PathValue("address")))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, voter)
}

// AddProposal handles POST /elections/{id}/proposals (registered voters)
func (h *VotingHandler) AddProposal(w http.ResponseWriter, r *http.Request) {
	e, ok := lookupElection(w, r, h.registry)
	if !ok {
		return
	}

	var req models.AddProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	registered, err := e.AddProposal(r.Context(), middleware.PrincipalFrom(r.Context()), req.Description)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, registered)
}

// ListProposals handles GET /elections/{id}/proposals (registered voters)
func (h *VotingHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	e, ok := lookupElection(w, r, h.registry)
	if !ok {
		return
	}

	proposals, err := e.Proposals(middleware.PrincipalFrom(r.Context()))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposals)
}

// GetProposal handles GET /elections/{id}/proposals/{proposalID}
func (h *VotingHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	e, ok := lookupElection(w, r, h.registry)
	if !ok {
		return
	}

	proposalID, err := strconv.Atoi(r.PathValue("proposalID"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal id must be an integer")
		return
	}

	proposal, err := e.GetOneProposal(middleware.PrincipalFrom(r.Context()), proposalID)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, proposal)
}

// SetVote handles POST /elections/{id}/votes (registered voters, once)
func (h *VotingHandler) SetVote(w http.ResponseWriter, r *http.Request) {
	e, ok := lookupElection(w, r, h.registry)
	if !ok {
		return
	}

	var req models.SetVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ProposalID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "proposal_id is required")
		return
	}

	voted, err := e.SetVote(r.Context(), middleware.PrincipalFrom(r.Context()), *req.ProposalID)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, voted)
}
