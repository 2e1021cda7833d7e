// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Ballot API.

# Route Registration

NewRouter registers every endpoint on an http.ServeMux and wraps it with
middleware.Authenticate, so handlers read the caller from the request
context:

	handler := router.NewRouter(registry, cfg)

# Endpoints

Health:

	GET /health

Principals:

	POST /principals    - Issue a principal and its key
	GET  /principals/me - Caller and their elections

Elections (the creator is the administrator):

	POST /elections                         - Create election
	GET  /elections/{id}                    - Status summary
	POST /elections/{id}/workflow/{action}  - Advance phase
	GET  /elections/{id}/winner             - Winning proposal id

Actions are start-proposals, end-proposals, start-voting, end-voting and
tally.

Registration and voting:

	POST /elections/{id}/voters                  - Register voter (admin)
	GET  /elections/{id}/voters/{address}        - Voter record (voters)
	POST /elections/{id}/proposals               - Register proposal (voters)
	GET  /elections/{id}/proposals               - List proposals (voters)
	GET  /elections/{id}/proposals/{proposalID}  - One proposal (voters)
	POST /elections/{id}/votes                   - Cast vote (voters, once)

Results:

	GET /elections/{id}/results - Ranked standings (tallied only)
*/
package router
