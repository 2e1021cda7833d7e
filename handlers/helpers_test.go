// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-ballot/middleware"
	"github.com/danielhkuo/quickly-ballot/testutil"
)

const (
	testAdmin  = "admin-principal"
	testVoterA = "voter-a"
	testVoterB = "voter-b"
)

// request builds a test request for path, sets path values and attaches
// principal (when not empty) to the context as middleware.Authenticate would.
func request(method, path string, body interface{}, principal string, pathValues map[string]string) *http.Request {
	req := testutil.MakeRequest(method, path, body, nil)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	if principal != "" {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), principal))
	}
	return req
}
