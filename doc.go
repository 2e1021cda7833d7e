// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Ballot API server.

Quickly Ballot runs single-organizer elections. The principal who creates
an election administers it: they register voters and move the election
through a fixed sequence of phases. Voters register proposals and cast one
vote each, and the tally picks the first proposal to reach the highest
count.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	PRINCIPAL_KEY_SALT=... go run main.go

Or with flags and a persistent journal:

	go run main.go -p 3318 -t sqlite -d ballot.db -principal-salt ...

Variables may also be placed in a .env file (see -env-file).

# Configuration

Required settings:

  - PRINCIPAL_KEY_SALT (-principal-salt): Secret for principal key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): Journal database; elections are memory-only when empty
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SIGNATURE_MAX_AGE (-sig-max-age): Window for wallet signatures (default: 5m)

# Architecture

  - election: Phase state machine, registries and tally
  - handlers: HTTP request handlers (elections, voting, results, principals)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Authentication, CORS, logging, JSON helpers
  - models: Domain, event and request/response types
  - auth: Principal keys and wallet signature recovery
  - db: Event journal and restore
  - cliparse: Configuration parsing
  - cmd/ballotctl: Operator CLI for scenarios and journal inspection

On startup every journaled election is replayed before the server accepts
requests.
*/
package main
