// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-ballot/models"
	"github.com/danielhkuo/quickly-ballot/testutil"
)

func intPtr(i int) *int {
	return &i
}

func TestAddVoterHandler(t *testing.T) {
	registry, _ := testutil.SetupRegistry(t)
	h := NewVotingHandler(registry)
	e := testutil.CreateTestElection(t, registry, testAdmin, models.RegisteringVoters, nil, nil)
	id := e.ID()

	add := func(principal, address string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.AddVoter(w, request("POST", "/elections/"+id+"/voters", models.AddVoterRequest{Address: address},
			principal, map[string]string{"id": id}))
		return w
	}

	testCases := []struct {
		name      string
		principal string
		address   string
		status    int
	}{
		{"admin registers voter", testAdmin, testVoterA, http.StatusCreated},
		{"duplicate", testAdmin, testVoterA, http.StatusConflict},
		{"empty address", testAdmin, "", http.StatusBadRequest},
		{"non-admin", testVoterA, testVoterB, http.StatusForbidden},
		{"anonymous", "", testVoterB, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.AssertStatus(t, add(tc.principal, tc.address), tc.status)
		})
	}

	t.Run("wrong phase", func(t *testing.T) {
		if _, err := e.StartProposalsRegistering(t.Context(), testAdmin); err != nil {
			t.Fatal(err)
		}
		testutil.AssertStatus(t, add(testAdmin, testVoterB), http.StatusConflict)
	})

	t.Run("unknown election", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.AddVoter(w, request("POST", "/elections/x/voters", models.AddVoterRequest{Address: "v"},
			testAdmin, map[string]string{"id": "x"}))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestGetVoterHandler(t *testing.T) {
	registry, _ := testutil.SetupRegistry(t)
	h := NewVotingHandler(registry)
	e := testutil.CreateTestElection(t, registry, testAdmin, models.RegisteringVoters, []string{testVoterA, testVoterB}, nil)
	id := e.ID()

	get := func(principal, address string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.GetVoter(w, request("GET", "/elections/"+id+"/voters/"+address, nil, principal,
			map[string]string{"id": id, "address": address}))
		return w
	}

	w := get(testVoterA, testVoterB)
	testutil.AssertStatus(t, w, http.StatusOK)
	var voter models.Voter
	testutil.AssertJSON(t, w, &voter)
	if voter.Address != testVoterB || !voter.IsRegistered || voter.HasVoted {
		t.Errorf("Unexpected voter record: %+v", voter)
	}

	testutil.AssertStatus(t, get(testAdmin, testVoterA), http.StatusForbidden)
	testutil.AssertStatus(t, get("", testVoterA), http.StatusForbidden)
	testutil.AssertStatus(t, get(testVoterA, "nobody"), http.StatusNotFound)
}

func TestProposalHandlers(t *testing.T) {
	registry, _ := testutil.SetupRegistry(t)
	h := NewVotingHandler(registry)
	e := testutil.CreateTestElection(t, registry, testAdmin, models.ProposalsRegistrationStarted, []string{testVoterA}, nil)
	id := e.ID()

	add := func(principal, description string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.AddProposal(w, request("POST", "/elections/"+id+"/proposals", models.AddProposalRequest{Description: description},
			principal, map[string]string{"id": id}))
		return w
	}

	t.Run("sequential ids after GENESIS", func(t *testing.T) {
		for i, desc := range []string{"Foo", "Bar"} {
			w := add(testVoterA, desc)
			testutil.AssertStatus(t, w, http.StatusCreated)
			var resp models.ProposalRegistered
			testutil.AssertJSON(t, w, &resp)
			if resp.ProposalID != i+1 {
				t.Errorf("Expected proposal id %d, got %d", i+1, resp.ProposalID)
			}
		}
	})

	t.Run("rejections", func(t *testing.T) {
		testutil.AssertStatus(t, add(testAdmin, "admin is not a voter"), http.StatusForbidden)
		testutil.AssertStatus(t, add(testVoterA, ""), http.StatusBadRequest)
	})

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ListProposals(w, request("GET", "/elections/"+id+"/proposals", nil, testVoterA, map[string]string{"id": id}))
		testutil.AssertStatus(t, w, http.StatusOK)

		var proposals []models.Proposal
		testutil.AssertJSON(t, w, &proposals)
		if len(proposals) != 3 || proposals[0].Description != models.GenesisDescription {
			t.Errorf("Unexpected proposals: %+v", proposals)
		}

		w = httptest.NewRecorder()
		h.ListProposals(w, request("GET", "/elections/"+id+"/proposals", nil, "", map[string]string{"id": id}))
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("get one", func(t *testing.T) {
		get := func(principal, proposalID string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			h.GetProposal(w, request("GET", "/elections/"+id+"/proposals/"+proposalID, nil, principal,
				map[string]string{"id": id, "proposalID": proposalID}))
			return w
		}

		w := get(testVoterA, "1")
		testutil.AssertStatus(t, w, http.StatusOK)
		var p models.Proposal
		testutil.AssertJSON(t, w, &p)
		if p.ID != 1 || p.Description != "Foo" {
			t.Errorf("Unexpected proposal: %+v", p)
		}

		testutil.AssertStatus(t, get(testVoterA, "9"), http.StatusNotFound)
		testutil.AssertStatus(t, get(testVoterA, "one"), http.StatusBadRequest)
		testutil.AssertStatus(t, get("", "1"), http.StatusForbidden)
	})

	t.Run("closed registration", func(t *testing.T) {
		if _, err := e.EndProposalsRegistering(t.Context(), testAdmin); err != nil {
			t.Fatal(err)
		}
		testutil.AssertStatus(t, add(testVoterA, "late"), http.StatusConflict)
	})
}

func TestSetVoteHandler(t *testing.T) {
	registry, _ := testutil.SetupRegistry(t)
	h := NewVotingHandler(registry)
	e := testutil.CreateTestElection(t, registry, testAdmin, models.ProposalsRegistrationEnded,
		[]string{testVoterA, testVoterB}, []string{"Foo", "Bar"})
	id := e.ID()

	vote := func(principal string, body interface{}) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.SetVote(w, request("POST", "/elections/"+id+"/votes", body, principal, map[string]string{"id": id}))
		return w
	}

	t.Run("before voting starts", func(t *testing.T) {
		w := vote(testVoterA, models.SetVoteRequest{ProposalID: intPtr(1)})
		testutil.AssertError(t, w, http.StatusConflict, "Conflict")
	})

	if _, err := e.StartVotingSession(t.Context(), testAdmin); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name      string
		principal string
		body      interface{}
		status    int
	}{
		{"missing proposal id", testVoterA, models.SetVoteRequest{}, http.StatusBadRequest},
		{"non-voter", testAdmin, models.SetVoteRequest{ProposalID: intPtr(1)}, http.StatusForbidden},
		{"unknown proposal", testVoterA, models.SetVoteRequest{ProposalID: intPtr(7)}, http.StatusNotFound},
		{"valid vote", testVoterA, models.SetVoteRequest{ProposalID: intPtr(2)}, http.StatusCreated},
		{"second vote", testVoterA, models.SetVoteRequest{ProposalID: intPtr(1)}, http.StatusConflict},
		{"genesis is a valid target", testVoterB, models.SetVoteRequest{ProposalID: intPtr(0)}, http.StatusCreated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testutil.AssertStatus(t, vote(tc.principal, tc.body), tc.status)
		})
	}

	if got := e.Summary().VotesCast; got != 2 {
		t.Errorf("Expected 2 votes cast, got %d", got)
	}
}

func TestAddVoterHandler_HexAddressSpellings(t *testing.T) {
	registry, _ := testutil.SetupRegistry(t)
	h := NewVotingHandler(registry)
	e := testutil.CreateTestElection(t, registry, testAdmin, models.RegisteringVoters, nil, nil)
	id := e.ID()

	const lower = "0x52908400098527886e0f7030069857d2e4169ee7"
	const checksummed = "0x52908400098527886E0F7030069857D2E4169EE7"

	w := httptest.NewRecorder()
	h.AddVoter(w, request("POST", "/elections/"+id+"/voters", models.AddVoterRequest{Address: lower},
		testAdmin, map[string]string{"id": id}))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var voter models.Voter
	testutil.AssertJSON(t, w, &voter)
	if voter.Address != checksummed {
		t.Errorf("Expected stored address %s, got %s", checksummed, voter.Address)
	}

	// Same account, other spelling
	w = httptest.NewRecorder()
	h.AddVoter(w, request("POST", "/elections/"+id+"/voters", models.AddVoterRequest{Address: checksummed},
		testAdmin, map[string]string{"id": id}))
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = httptest.NewRecorder()
	h.GetVoter(w, request("GET", "/elections/"+id+"/voters/"+lower, nil, checksummed,
		map[string]string{"id": id, "address": lower}))
	testutil.AssertStatus(t, w, http.StatusOK)
}
