// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-ballot/election"
	"github.com/danielhkuo/quickly-ballot/middleware"
	"github.com/danielhkuo/quickly-ballot/models"
)

type ElectionHandler struct {
	registry *election.Registry
}

func NewElectionHandler(registry *election.Registry) *ElectionHandler {
	return &ElectionHandler{registry: registry}
}

// CreateElection handles POST /elections. The caller becomes the
// administrator.
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	if principal == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required to create an election")
		return
	}

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	e, err := h.registry.Create(r.Context(), principal, req.Title)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID:     e.ID(),
		Admin:          e.Administrator(),
		WorkflowStatus: e.WorkflowStatus(),
	})
}

// GetElection handles GET /elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	e, ok := lookupElection(w, r, h.registry)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, e.Summary())
}

// GetWinner handles GET /elections/{id}/winner. The winning id stays 0
// until votes are tallied.
func (h *ElectionHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	e, ok := lookupElection(w, r, h.registry)
	if !ok {
		return
	}
	status := e.WorkflowStatus()
	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse{
		WinningProposalID: e.WinningProposalID(),
		WorkflowStatus:    status,
		StatusName:        status.String(),
	})
}
