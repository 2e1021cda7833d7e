// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-ballot/auth"
	"github.com/danielhkuo/quickly-ballot/models"
	"github.com/danielhkuo/quickly-ballot/testutil"
)

func TestIssuePrincipal(t *testing.T) {
	registry, _ := testutil.SetupRegistry(t)
	cfg := testutil.GetTestConfig()
	h := NewPrincipalHandler(registry, cfg)

	w := httptest.NewRecorder()
	h.Issue(w, request("POST", "/principals", nil, "", nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.IssuePrincipalResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Principal == "" || resp.PrincipalKey == "" {
		t.Fatalf("Expected principal and key, got %+v", resp)
	}
	if err := auth.ValidatePrincipalKey(resp.Principal, resp.PrincipalKey, cfg.PrincipalKeySalt); err != nil {
		t.Errorf("Issued key does not validate: %v", err)
	}
}

func TestGetMe(t *testing.T) {
	registry, _ := testutil.SetupRegistry(t)
	h := NewPrincipalHandler(registry, testutil.GetTestConfig())

	administered := testutil.CreateTestElection(t, registry, testAdmin, models.RegisteringVoters, []string{testVoterA}, nil)
	joined := testutil.CreateTestElection(t, registry, "someone-else", models.ProposalsRegistrationStarted, []string{testAdmin}, nil)
	testutil.CreateTestElection(t, registry, "someone-else", models.RegisteringVoters, nil, nil)

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GetMe(w, request("GET", "/principals/me", nil, "", nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("memberships", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GetMe(w, request("GET", "/principals/me", nil, testAdmin, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.PrincipalResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Principal != testAdmin {
			t.Errorf("Expected principal %s, got %s", testAdmin, resp.Principal)
		}

		roles := map[string]string{}
		for _, m := range resp.Elections {
			roles[m.ElectionID] = m.Role
		}
		if len(roles) != 2 {
			t.Fatalf("Expected 2 memberships, got %+v", resp.Elections)
		}
		if roles[administered.ID()] != models.RoleAdmin {
			t.Errorf("Expected admin role, got %q", roles[administered.ID()])
		}
		if roles[joined.ID()] != models.RoleVoter {
			t.Errorf("Expected voter role, got %q", roles[joined.ID()])
		}
	})
}
