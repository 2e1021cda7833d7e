// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/danielhkuo/quickly-ballot/auth"
)

const testSalt = "test-salt"

func echoPrincipal() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(PrincipalFrom(r.Context())))
	})
}

func TestAuthenticate_PrincipalKey(t *testing.T) {
	handler := Authenticate(testSalt, time.Minute, echoPrincipal())
	principal := auth.GenerateID()

	t.Run("valid key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/principals/me", nil)
		req.Header.Set(HeaderPrincipal, principal)
		req.Header.Set(HeaderPrincipalKey, auth.GeneratePrincipalKey(principal, testSalt))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if w.Body.String() != principal {
			t.Errorf("Expected principal %s, got %s", principal, w.Body.String())
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/principals/me", nil)
		req.Header.Set(HeaderPrincipal, principal)
		req.Header.Set(HeaderPrincipalKey, "forged")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}

func TestAuthenticate_Anonymous(t *testing.T) {
	handler := Authenticate(testSalt, time.Minute, echoPrincipal())
	req := httptest.NewRequest("GET", "/elections/e1", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != "" {
		t.Errorf("Expected anonymous principal, got %q", w.Body.String())
	}
}

func TestAuthenticate_Signature(t *testing.T) {
	handler := Authenticate(testSalt, time.Minute, echoPrincipal())

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sign := func(method, path string, ts int64) string {
		sig, err := crypto.Sign(accounts.TextHash([]byte(auth.SigningMessage(method, path, ts))), key)
		if err != nil {
			t.Fatal(err)
		}
		return hexutil.Encode(sig)
	}

	t.Run("valid signature", func(t *testing.T) {
		ts := time.Now().Unix()
		req := httptest.NewRequest("POST", "/elections/e1/votes", nil)
		req.Header.Set(HeaderAddress, address)
		req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
		req.Header.Set(HeaderSignature, sign("POST", "/elections/e1/votes", ts))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if w.Body.String() != address {
			t.Errorf("Expected principal %s, got %s", address, w.Body.String())
		}
	})

	t.Run("signature for another path", func(t *testing.T) {
		ts := time.Now().Unix()
		req := httptest.NewRequest("POST", "/elections/e1/votes", nil)
		req.Header.Set(HeaderAddress, address)
		req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
		req.Header.Set(HeaderSignature, sign("POST", "/elections/e2/votes", ts))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("stale timestamp", func(t *testing.T) {
		ts := time.Now().Add(-time.Hour).Unix()
		req := httptest.NewRequest("POST", "/elections/e1/votes", nil)
		req.Header.Set(HeaderAddress, address)
		req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
		req.Header.Set(HeaderSignature, sign("POST", "/elections/e1/votes", ts))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}
