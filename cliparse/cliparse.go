// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	PrincipalKeySalt string
	SignatureMaxAge  time.Duration
	EnvFile          string
}

// ParseFlags reads flags, then the env file, then environment variables.
// Flags win over the environment.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	flags := flag.NewFlagSet("quickly-ballot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	flags.IntVar(&cfg.Port, "p", 0, "Server port")
	flags.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (empty keeps elections in memory)")
	flags.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	flags.StringVar(&cfg.EnvFile, "env-file", ".env", "Env file loaded before reading environment variables")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.StringVar(&cfg.PrincipalKeySalt, "principal-salt", "", "Principal key salt (prefer env)")
	flags.DurationVar(&cfg.SignatureMaxAge, "sig-max-age", 0, "Accepted clock skew for signed requests")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	// Existing environment variables are never overwritten
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.SignatureMaxAge == 0 {
		if v := os.Getenv("SIGNATURE_MAX_AGE"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, errors.New("invalid SIGNATURE_MAX_AGE env variable")
			}
			cfg.SignatureMaxAge = d
		} else {
			cfg.SignatureMaxAge = 5 * time.Minute
		}
	}
	if cfg.SignatureMaxAge < 0 {
		return Config{}, errors.New("signature max age must be positive")
	}

	// Secrets - MUST be provided
	if cfg.PrincipalKeySalt == "" {
		cfg.PrincipalKeySalt = os.Getenv("PRINCIPAL_KEY_SALT")
	}
	if cfg.PrincipalKeySalt == "" {
		return Config{}, errors.New("PRINCIPAL_KEY_SALT required")
	}

	return cfg, nil
}
