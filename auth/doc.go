// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth identifies the principal behind a request.

The election engine treats principals as opaque strings. This package
produces and checks them in two ways.

# Principal Keys

A principal is a random UUID. Its key is an HMAC-SHA256 of the ID under a
server salt:

	principal := auth.GenerateID()
	key := auth.GeneratePrincipalKey(principal, salt)
	err := auth.ValidatePrincipalKey(principal, key, salt)

Keys are URL-safe base64 without padding. They are deterministic, so the
server stores nothing.

# Wallet Signatures

An Ethereum account can act as its own principal by signing

	"<METHOD> <PATH> <UNIX-TIMESTAMP>"

with personal_sign. VerifySignedRequest recovers the signer, compares it
to the claimed address and rejects timestamps outside the allowed window.
The principal is the EIP-55 checksummed address.
*/
package auth
