// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-ballot/election"
	"github.com/danielhkuo/quickly-ballot/middleware"
	"github.com/danielhkuo/quickly-ballot/models"
)

type ResultsHandler struct {
	registry *election.Registry
}

func NewResultsHandler(registry *election.Registry) *ResultsHandler {
	return &ResultsHandler{registry: registry}
}

// GetResults handles GET /elections/{id}/results
// Results are sealed until votes are tallied
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	e, ok := lookupElection(w, r, h.registry)
	if !ok {
		return
	}

	if e.WorkflowStatus() != models.VotesTallied {
		middleware.ErrorResponse(w, http.StatusForbidden, "Results are hidden until votes are tallied")
		return
	}

	standings, err := e.Results()
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	summary := e.Summary()
	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		ElectionID:        summary.ID,
		WinningProposalID: summary.WinningProposalID,
		VotesCast:         summary.VotesCast,
		Standings:         standings,
	})
}
