// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-ballot/cliparse"
	"github.com/danielhkuo/quickly-ballot/election"
	"github.com/danielhkuo/quickly-ballot/handlers"
	"github.com/danielhkuo/quickly-ballot/middleware"
)

// NewRouter registers every route on a ServeMux and wraps it with
// caller authentication.
func NewRouter(registry *election.Registry, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(registry)
	votingHandler := handlers.NewVotingHandler(registry)
	resultsHandler := handlers.NewResultsHandler(registry)
	principalHandler := handlers.NewPrincipalHandler(registry, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Principals
	mux.HandleFunc("POST /principals", middleware.WithLogging(principalHandler.Issue))
	mux.HandleFunc("GET /principals/me", middleware.WithLogging(principalHandler.GetMe))

	// Election lifecycle (administrator)
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("POST /elections/{id}/workflow/{action}", middleware.WithLogging(electionHandler.AdvanceWorkflow))
	mux.HandleFunc("GET /elections/{id}/winner", middleware.WithLogging(electionHandler.GetWinner))

	// Registration and voting
	mux.HandleFunc("POST /elections/{id}/voters", middleware.WithLogging(votingHandler.AddVoter))
	mux.HandleFunc("GET /elections/{id}/voters/{address}", middleware.WithLogging(votingHandler.GetVoter))
	mux.HandleFunc("POST /elections/{id}/proposals", middleware.WithLogging(votingHandler.AddProposal))
	mux.HandleFunc("GET /elections/{id}/proposals", middleware.WithLogging(votingHandler.ListProposals))
	mux.HandleFunc("GET /elections/{id}/proposals/{proposalID}", middleware.WithLogging(votingHandler.GetProposal))
	mux.HandleFunc("POST /elections/{id}/votes", middleware.WithLogging(votingHandler.SetVote))

	// Results (sealed until tallied)
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-ballot API v1"))
	})

	return middleware.Authenticate(cfg.PrincipalKeySalt, cfg.SignatureMaxAge, mux)
}
