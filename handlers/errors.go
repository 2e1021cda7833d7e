// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-ballot/election"
	"github.com/danielhkuo/quickly-ballot/middleware"
)

// statusFor maps an engine error to its HTTP status
func statusFor(err error) int {
	var phaseErr *election.PhaseError
	switch {
	case errors.Is(err, election.ErrNotAuthorized),
		errors.Is(err, election.ErrNotAVoter):
		return http.StatusForbidden
	case errors.As(err, &phaseErr),
		errors.Is(err, election.ErrAlreadyRegistered),
		errors.Is(err, election.ErrAlreadyVoted):
		return http.StatusConflict
	case errors.Is(err, election.ErrEmptyDescription),
		errors.Is(err, election.ErrEmptyAddress):
		return http.StatusBadRequest
	case errors.Is(err, election.ErrNotFound),
		errors.Is(err, election.ErrProposalNotFound),
		errors.Is(err, election.ErrElectionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeEngineError writes err as a JSON error response. Internal errors are
// logged and hidden from the caller.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("election operation failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		middleware.ErrorResponse(w, status, "Internal error")
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}

// lookupElection resolves the {id} path value, writing 400/404 on failure.
func lookupElection(w http.ResponseWriter, r *http.Request, registry *election.Registry) (*election.Engine, bool) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return nil, false
	}
	e, err := registry.Get(id)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return nil, false
	}
	return e, true
}
