// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command ballotctl runs scripted elections and inspects election journals.
//
//	ballotctl run testdata/end_to_end.yaml
//	ballotctl replay --db-type sqlite --db-url ballot.db
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/danielhkuo/quickly-ballot/db"
	"github.com/danielhkuo/quickly-ballot/election"
)

func main() {
	app := &cli.App{
		Name:  "ballotctl",
		Usage: "operator tool for quickly-ballot elections",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every accepted and rejected engine call",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "play a YAML scenario against an in-memory election",
				ArgsUsage: "<scenario.yaml>",
				Action:    runAction,
			},
			{
				Name:  "replay",
				Usage: "restore every journaled election and print its summary",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db-type",
						Value:   "sqlite",
						Usage:   "journal database type (sqlite or postgres)",
						EnvVars: []string{"DATABASE_TYPE"},
					},
					&cli.StringFlag{
						Name:     "db-url",
						Usage:    "journal database URL or file",
						EnvVars:  []string{"DATABASE_URL"},
						Required: true,
					},
				},
				Action: replayAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("run expects exactly one scenario file", 2)
	}

	s, err := LoadScenario(c.Args().First())
	if err != nil {
		return err
	}

	report := RunScenario(c.Context, s, newLogger(c))
	printReport(c.App.Writer, report)
	if report.Failures > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func replayAction(c *cli.Context) error {
	conn, err := db.Open(c.String("db-type"), c.String("db-url"))
	if err != nil {
		return err
	}
	defer conn.Close()

	logger := newLogger(c)
	slog.SetDefault(logger)

	registry := election.NewRegistry(nil, logger)
	if _, err := db.Restore(c.Context, db.NewJournal(conn), registry); err != nil {
		return err
	}

	printSummaries(c.App.Writer, registry.List())
	return nil
}
