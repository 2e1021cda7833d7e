// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: journal database; empty keeps elections in memory only
  - DatabaseType: sqlite or postgres (default: sqlite)
  - PrincipalKeySalt: Secret for principal key HMAC (required)
  - SignatureMaxAge: allowed clock skew for wallet-signed requests (default: 5m)
  - EnvFile: env file loaded through godotenv (default: .env)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-principal-salt  Principal key salt
	-sig-max-age     Signature max age
	-env-file        Env file path ("" disables)

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	PRINCIPAL_KEY_SALT → -principal-salt
	SIGNATURE_MAX_AGE  → -sig-max-age

The env file is read first and never overrides variables already set in
the process environment. A missing env file is not an error.
*/
package cliparse
