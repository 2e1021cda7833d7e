// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-ballot/auth"
)

const (
	HeaderPrincipal    = "X-Principal"
	HeaderPrincipalKey = "X-Principal-Key"
	HeaderAddress      = "X-Address"
	HeaderTimestamp    = "X-Timestamp"
	HeaderSignature    = "X-Signature"
)

type principalKey struct{}

// WithPrincipal returns a context carrying the authenticated principal
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFrom returns the authenticated principal, or "" when the request
// is anonymous.
func PrincipalFrom(ctx context.Context) string {
	p, _ := ctx.Value(principalKey{}).(string)
	return p
}

// Authenticate resolves the caller from either a principal key or a wallet
// signature. Requests with neither continue anonymously; requests with bad
// credentials are rejected with 401.
func Authenticate(salt string, maxAge time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var principal string

		switch {
		case r.Header.Get(HeaderPrincipal) != "":
			principal = r.Header.Get(HeaderPrincipal)
			if err := auth.ValidatePrincipalKey(principal, r.Header.Get(HeaderPrincipalKey), salt); err != nil {
				slog.Warn("principal key rejected", "principal", principal, "remote", GetClientIP(r))
				ErrorResponse(w, http.StatusUnauthorized, "Invalid principal key")
				return
			}

		case r.Header.Get(HeaderAddress) != "":
			signer, err := auth.VerifySignedRequest(
				r.Header.Get(HeaderAddress),
				r.Method,
				r.URL.Path,
				r.Header.Get(HeaderTimestamp),
				r.Header.Get(HeaderSignature),
				time.Now(),
				maxAge,
			)
			if err != nil {
				slog.Warn("signature rejected", "address", r.Header.Get(HeaderAddress), "error", err)
				ErrorResponse(w, http.StatusUnauthorized, err.Error())
				return
			}
			principal = signer
		}

		if principal != "" {
			r = r.WithContext(WithPrincipal(r.Context(), principal))
		}
		next.ServeHTTP(w, r)
	})
}
