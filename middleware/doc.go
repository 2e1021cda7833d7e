// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Authentication

Authenticate resolves the calling principal and stores it in the request
context:

	handler := middleware.Authenticate(cfg.PrincipalKeySalt, cfg.SignatureMaxAge, mux)
	principal := middleware.PrincipalFrom(r.Context())

Two credential forms are accepted:

	X-Principal + X-Principal-Key               issued by POST /principals
	X-Address + X-Timestamp + X-Signature       wallet personal_sign

Requests without credentials continue with the empty (anonymous)
principal. Bad credentials get 401.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote, principal) and completion
(status, duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.AddProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Request bodies are capped at 64 KiB.
*/
package middleware
