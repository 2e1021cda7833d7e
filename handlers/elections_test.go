// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-ballot/models"
	"github.com/danielhkuo/quickly-ballot/testutil"
)

func TestCreateElection(t *testing.T) {
	registry, journal := testutil.SetupRegistry(t)
	h := NewElectionHandler(registry)

	testCases := []struct {
		name      string
		principal string
		body      interface{}
		status    int
	}{
		{"anonymous", "", models.CreateElectionRequest{Title: "Board"}, http.StatusUnauthorized},
		{"missing title", testAdmin, models.CreateElectionRequest{}, http.StatusBadRequest},
		{"blank title", testAdmin, models.CreateElectionRequest{Title: "  "}, http.StatusBadRequest},
		{"valid", testAdmin, models.CreateElectionRequest{Title: "Board"}, http.StatusCreated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.CreateElection(w, request("POST", "/elections", tc.body, tc.principal, nil))
			testutil.AssertStatus(t, w, tc.status)
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		req := request("POST", "/elections", nil, testAdmin, nil)
		req.Body = io.NopCloser(strings.NewReader("{"))
		w := httptest.NewRecorder()
		h.CreateElection(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("response and journal", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.CreateElection(w, request("POST", "/elections", models.CreateElectionRequest{Title: "Lunch"}, testAdmin, nil))
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.CreateElectionResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.ElectionID == "" {
			t.Fatal("Expected election_id")
		}
		if resp.Admin != testAdmin {
			t.Errorf("Expected admin %s, got %s", testAdmin, resp.Admin)
		}
		if resp.WorkflowStatus != models.RegisteringVoters {
			t.Errorf("Expected registering_voters, got %s", resp.WorkflowStatus)
		}

		events, err := journal.Events(t.Context(), resp.ElectionID)
		if err != nil {
			t.Fatal(err)
		}
		if len(events) != 1 || events[0].Type != models.EventElectionCreated {
			t.Errorf("Expected one election_created event, got %+v", events)
		}
	})
}

func TestGetElection(t *testing.T) {
	registry, _ := testutil.SetupRegistry(t)
	h := NewElectionHandler(registry)
	e := testutil.CreateTestElection(t, registry, testAdmin, models.ProposalsRegistrationStarted,
		[]string{testVoterA}, []string{"Foo", "Bar"})

	t.Run("anyone can read the summary", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GetElection(w, request("GET", "/elections/"+e.ID(), nil, "", map[string]string{"id": e.ID()}))
		testutil.AssertStatus(t, w, http.StatusOK)

		var summary models.ElectionSummary
		testutil.AssertJSON(t, w, &summary)
		if summary.StatusName != "proposals_registration_started" {
			t.Errorf("Expected proposals_registration_started, got %s", summary.StatusName)
		}
		if summary.ProposalCount != 3 {
			t.Errorf("Expected 3 proposals including GENESIS, got %d", summary.ProposalCount)
		}
		if summary.VoterCount != 1 {
			t.Errorf("Expected 1 voter, got %d", summary.VoterCount)
		}
	})

	t.Run("unknown election", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GetElection(w, request("GET", "/elections/nope", nil, "", map[string]string{"id": "nope"}))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GetElection(w, request("GET", "/elections/", nil, "", nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestAdvanceWorkflow(t *testing.T) {
	registry, _ := testutil.SetupRegistry(t)
	h := NewElectionHandler(registry)
	e := testutil.CreateTestElection(t, registry, testAdmin, models.RegisteringVoters, []string{testVoterA}, nil)
	id := e.ID()

	advance := func(action, principal string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.AdvanceWorkflow(w, request("POST", "/elections/"+id+"/workflow/"+action, nil, principal,
			map[string]string{"id": id, "action": action}))
		return w
	}

	t.Run("non-admin is forbidden", func(t *testing.T) {
		testutil.AssertError(t, advance("start-proposals", testVoterA), http.StatusForbidden, "Forbidden")
		testutil.AssertError(t, advance("start-proposals", ""), http.StatusForbidden, "Forbidden")
	})

	t.Run("out of order transition conflicts", func(t *testing.T) {
		testutil.AssertError(t, advance("tally", testAdmin), http.StatusConflict, "Conflict")
	})

	t.Run("unknown action", func(t *testing.T) {
		testutil.AssertStatus(t, advance("restart", testAdmin), http.StatusNotFound)
	})

	t.Run("full sequence", func(t *testing.T) {
		actions := []string{"start-proposals", "end-proposals", "start-voting", "end-voting", "tally"}
		for i, action := range actions {
			w := advance(action, testAdmin)
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.WorkflowStatusResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.PreviousStatus != models.Phase(i) || resp.NewStatus != models.Phase(i+1) {
				t.Errorf("%s: expected %d→%d, got %d→%d", action, i, i+1, resp.PreviousStatus, resp.NewStatus)
			}
			if resp.NewStatusName != models.Phase(i+1).String() {
				t.Errorf("%s: unexpected status name %s", action, resp.NewStatusName)
			}
		}
		testutil.AssertStatus(t, advance("tally", testAdmin), http.StatusConflict)
	})
}

func TestGetWinner(t *testing.T) {
	registry, _ := testutil.SetupRegistry(t)
	h := NewElectionHandler(registry)
	e := testutil.CreateTestElection(t, registry, testAdmin, models.VotingSessionEnded,
		[]string{testVoterA}, []string{"Foo"})

	get := func() models.WinnerResponse {
		w := httptest.NewRecorder()
		h.GetWinner(w, request("GET", "/elections/"+e.ID()+"/winner", nil, "", map[string]string{"id": e.ID()}))
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.WinnerResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	before := get()
	if before.WinningProposalID != 0 || before.StatusName != "voting_session_ended" {
		t.Errorf("Unexpected winner before tally: %+v", before)
	}

	if _, err := e.TallyVotes(t.Context(), testAdmin); err != nil {
		t.Fatal(err)
	}

	after := get()
	if after.WorkflowStatus != models.VotesTallied {
		t.Errorf("Expected votes_tallied, got %s", after.StatusName)
	}
	// No votes were cast, so GENESIS wins
	if after.WinningProposalID != 0 {
		t.Errorf("Expected winner 0, got %d", after.WinningProposalID)
	}
}
