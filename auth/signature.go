// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// SigningMessage is the text a wallet signs to authenticate one request.
func SigningMessage(method, path string, timestamp int64) string {
	return fmt.Sprintf("%s %s %d", method, path, timestamp)
}

// RecoverSigner returns the checksummed address that produced sigHex over
// message using personal_sign (EIP-191) hashing.
func RecoverSigner(message, sigHex string) (string, error) {
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}
	// Wallets report V as 27/28
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

// NormalizeAddress returns the checksummed form of a 0x-prefixed hex
// address so it matches the principal of a wallet-signed request. Any
// other identifier is returned unchanged.
func NormalizeAddress(id string) string {
	if has0xPrefix(id) && common.IsHexAddress(id) {
		return common.HexToAddress(id).Hex()
	}
	return id
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// VerifySignedRequest checks that address signed "<method> <path> <timestamp>"
// within maxAge of now and returns the checksummed address.
func VerifySignedRequest(address, method, path, timestamp, sigHex string, now time.Time, maxAge time.Duration) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: malformed address", ErrInvalidSignature)
	}
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: malformed timestamp", ErrInvalidSignature)
	}
	age := now.Sub(time.Unix(ts, 0))
	if age < -maxAge || age > maxAge {
		return "", ErrSignatureExpired
	}

	signer, err := RecoverSigner(SigningMessage(method, path, ts), sigHex)
	if err != nil {
		return "", err
	}
	if signer != common.HexToAddress(address).Hex() {
		return "", fmt.Errorf("%w: signer does not match address", ErrInvalidSignature)
	}
	return signer, nil
}
