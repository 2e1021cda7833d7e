// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-ballot/auth"
	"github.com/danielhkuo/quickly-ballot/cliparse"
	"github.com/danielhkuo/quickly-ballot/election"
	"github.com/danielhkuo/quickly-ballot/middleware"
	"github.com/danielhkuo/quickly-ballot/models"
)

type PrincipalHandler struct {
	registry *election.Registry
	cfg      cliparse.Config
}

func NewPrincipalHandler(registry *election.Registry, cfg cliparse.Config) *PrincipalHandler {
	return &PrincipalHandler{registry: registry, cfg: cfg}
}

// Issue handles POST /principals
// Returns a fresh principal and the key that authenticates it. The key is
// derived, not stored, so it cannot be recovered if lost.
func (h *PrincipalHandler) Issue(w http.ResponseWriter, r *http.Request) {
	principal := auth.GenerateID()
	key := auth.GeneratePrincipalKey(principal, h.cfg.PrincipalKeySalt)

	slog.Info("principal issued", "principal", principal, "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusCreated, models.IssuePrincipalResponse{
		Principal:    principal,
		PrincipalKey: key,
	})
}

// GetMe handles GET /principals/me
// Lists the elections the caller administers or votes in
func (h *PrincipalHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFrom(r.Context())
	if principal == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PrincipalResponse{
		Principal: principal,
		Elections: h.registry.ElectionsFor(principal),
	})
}
