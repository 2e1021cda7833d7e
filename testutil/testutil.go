// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-ballot/auth"
	"github.com/danielhkuo/quickly-ballot/cliparse"
	"github.com/danielhkuo/quickly-ballot/db"
	"github.com/danielhkuo/quickly-ballot/election"
	"github.com/danielhkuo/quickly-ballot/models"
)

// TestDBURL is an in-memory SQLite database private to one connection
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      TestDBURL,
		DatabaseType:     "sqlite",
		PrincipalKeySalt: "test-principal-salt",
		SignatureMaxAge:  5 * time.Minute,
	}
}

// SetupRegistry returns a registry journaling to a fresh test database
func SetupRegistry(t *testing.T) (*election.Registry, *db.Journal) {
	t.Helper()

	journal := db.NewJournal(SetupTestDB(t))
	return election.NewRegistry(journal, nil), journal
}

// NewPrincipal issues a principal and returns the headers that authenticate it
func NewPrincipal(cfg cliparse.Config) (principal string, headers map[string]string) {
	principal = auth.GenerateID()
	return principal, map[string]string{
		"X-Principal":     principal,
		"X-Principal-Key": auth.GeneratePrincipalKey(principal, cfg.PrincipalKeySalt),
	}
}

// CreateTestElection creates an election administered by admin, registers
// voters and advances it to phase. Proposals are added by the first voter
// once registration opens.
func CreateTestElection(t *testing.T, registry *election.Registry, admin string, phase models.Phase, voters []string, proposals []string) *election.Engine {
	t.Helper()
	ctx := context.Background()

	e, err := registry.Create(ctx, admin, "Test Election")
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}
	for _, v := range voters {
		if _, err := e.AddVoter(ctx, admin, v); err != nil {
			t.Fatalf("Failed to add test voter: %v", err)
		}
	}

	steps := []func(context.Context, string) (models.WorkflowStatusChange, error){
		e.StartProposalsRegistering,
		e.EndProposalsRegistering,
		e.StartVotingSession,
		e.EndVotingSession,
		e.TallyVotes,
	}
	for i, step := range steps {
		if models.Phase(i) >= phase {
			break
		}
		if _, err := step(ctx, admin); err != nil {
			t.Fatalf("Failed to advance test election: %v", err)
		}
		if i == 0 && len(voters) > 0 {
			for _, p := range proposals {
				if _, err := e.AddProposal(ctx, voters[0], p); err != nil {
					t.Fatalf("Failed to add test proposal: %v", err)
				}
			}
		}
	}

	return e
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the status code and the error field of the response
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, errText string) {
	t.Helper()
	AssertStatus(t, w, status)
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Error != errText {
		t.Errorf("Expected error %q, got %q (message %q)", errText, resp.Error, resp.Message)
	}
}
