// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidPrincipalKey = errors.New("invalid principal key")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrSignatureExpired    = errors.New("signature timestamp outside allowed window")
)

// GenerateID creates a random principal or record ID
func GenerateID() string {
	return uuid.NewString()
}

// GeneratePrincipalKey creates the HMAC-based key that proves ownership of a
// principal ID. It is deterministic so nothing needs to be stored.
func GeneratePrincipalKey(principal, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(principal))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidatePrincipalKey checks key against the principal
func ValidatePrincipalKey(principal, key, salt string) error {
	if principal == "" {
		return ErrInvalidPrincipalKey
	}
	expected := GeneratePrincipalKey(principal, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidPrincipalKey
	}
	return nil
}
