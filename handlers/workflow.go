// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/danielhkuo/quickly-ballot/election"
	"github.com/danielhkuo/quickly-ballot/middleware"
	"github.com/danielhkuo/quickly-ballot/models"
)

type workflowOp func(e *election.Engine, ctx context.Context, caller string) (models.WorkflowStatusChange, error)

// workflowActions maps the {action} path segment to an engine transition
var workflowActions = map[string]workflowOp{
	"start-proposals": (*election.Engine).StartProposalsRegistering,
	"end-proposals":   (*election.Engine).EndProposalsRegistering,
	"start-voting":    (*election.Engine).StartVotingSession,
	"end-voting":      (*election.Engine).EndVotingSession,
	"tally":           (*election.Engine).TallyVotes,
}

// AdvanceWorkflow handles POST /elections/{id}/workflow/{action}
func (h *ElectionHandler) AdvanceWorkflow(w http.ResponseWriter, r *http.Request) {
	action := r.PathValue("action")
	op, known := workflowActions[action]
	if !known {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown workflow action: "+action)
		return
	}

	e, ok := lookupElection(w, r, h.registry)
	if !ok {
		return
	}

	change, err := op(e, r.Context(), middleware.PrincipalFrom(r.Context()))
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WorkflowStatusResponse{
		PreviousStatus:     change.Previous,
		NewStatus:          change.New,
		PreviousStatusName: change.Previous.String(),
		NewStatusName:      change.New.String(),
	})
}
