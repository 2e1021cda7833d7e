// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-ballot/election"
	"github.com/danielhkuo/quickly-ballot/models"
)

// Scenario is a scripted election read from YAML
type Scenario struct {
	Title        string `yaml:"title"`
	Admin        string `yaml:"admin"`
	Steps        []Step `yaml:"steps"`
	ExpectWinner *int   `yaml:"expect_winner"`
}

// Step is one call against the engine. ExpectError names the error the call
// must fail with; empty means it must succeed.
type Step struct {
	Op          string `yaml:"op"`
	Caller      string `yaml:"caller"`
	Address     string `yaml:"address"`
	Description string `yaml:"description"`
	Proposal    int    `yaml:"proposal"`
	ExpectError string `yaml:"expect_error"`
}

// StepResult records what one step did
type StepResult struct {
	Step   Step
	Err    error
	Passed bool
	Detail string
}

// Report is the outcome of running a scenario
type Report struct {
	Title    string
	Results  []StepResult
	Status   models.Phase
	Winner   int
	Failures int
}

// expectedErrors maps expect_error names to engine errors
var expectedErrors = map[string]error{
	"not_authorized":     election.ErrNotAuthorized,
	"not_a_voter":        election.ErrNotAVoter,
	"wrong_phase":        election.ErrWrongPhase,
	"invalid_transition": election.ErrInvalidTransition,
	"already_registered": election.ErrAlreadyRegistered,
	"already_voted":      election.ErrAlreadyVoted,
	"empty_description":  election.ErrEmptyDescription,
	"empty_address":      election.ErrEmptyAddress,
	"proposal_not_found": election.ErrProposalNotFound,
	"not_found":          election.ErrNotFound,
}

type stepFunc func(ctx context.Context, e *election.Engine, s Step) (string, error)

func transitionStep(op func(*election.Engine, context.Context, string) (models.WorkflowStatusChange, error)) stepFunc {
	return func(ctx context.Context, e *election.Engine, s Step) (string, error) {
		change, err := op(e, ctx, s.Caller)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s → %s", change.Previous, change.New), nil
	}
}

var stepOps = map[string]stepFunc{
	"add_voter": func(ctx context.Context, e *election.Engine, s Step) (string, error) {
		v, err := e.AddVoter(ctx, s.Caller, s.Address)
		if err != nil {
			return "", err
		}
		return "registered " + v.Address, nil
	},
	"get_voter": func(_ context.Context, e *election.Engine, s Step) (string, error) {
		v, err := e.GetVoter(s.Caller, s.Address)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s has_voted=%t", v.Address, v.HasVoted), nil
	},
	"add_proposal": func(ctx context.Context, e *election.Engine, s Step) (string, error) {
		p, err := e.AddProposal(ctx, s.Caller, s.Description)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("proposal %d %q", p.ProposalID, p.Description), nil
	},
	"get_proposal": func(_ context.Context, e *election.Engine, s Step) (string, error) {
		p, err := e.GetOneProposal(s.Caller, s.Proposal)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("proposal %d %q votes=%d", p.ID, p.Description, p.VoteCount), nil
	},
	"vote": func(ctx context.Context, e *election.Engine, s Step) (string, error) {
		v, err := e.SetVote(ctx, s.Caller, s.Proposal)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s voted for %d", v.Voter, v.ProposalID), nil
	},
	"start_proposals": transitionStep((*election.Engine).StartProposalsRegistering),
	"end_proposals":   transitionStep((*election.Engine).EndProposalsRegistering),
	"start_voting":    transitionStep((*election.Engine).StartVotingSession),
	"end_voting":      transitionStep((*election.Engine).EndVotingSession),
	"tally":           transitionStep((*election.Engine).TallyVotes),
}

// ParseScenario decodes and validates a scenario
func ParseScenario(data []byte) (Scenario, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Scenario{}, fmt.Errorf("scenario: payload is empty")
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Scenario{}, fmt.Errorf("scenario: decode: %w", err)
	}

	if strings.TrimSpace(s.Admin) == "" {
		return Scenario{}, fmt.Errorf("scenario: admin is required")
	}
	for i, step := range s.Steps {
		if _, ok := stepOps[step.Op]; !ok {
			return Scenario{}, fmt.Errorf("scenario: step %d: unknown op %q (known: %s)", i+1, step.Op, knownOps())
		}
		if step.ExpectError != "" {
			if _, ok := expectedErrors[step.ExpectError]; !ok {
				return Scenario{}, fmt.Errorf("scenario: step %d: unknown expect_error %q", i+1, step.ExpectError)
			}
		}
	}
	return s, nil
}

// LoadScenario reads a scenario file from disk
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func knownOps() string {
	ops := make([]string, 0, len(stepOps))
	for op := range stepOps {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return strings.Join(ops, ", ")
}

// RunScenario plays every step against a fresh in-memory election. A step
// passes when it fails with exactly the expected error, or succeeds when
// none is expected.
func RunScenario(ctx context.Context, s Scenario, logger *slog.Logger) Report {
	e := election.New(s.Admin, election.WithTitle(s.Title), election.WithLogger(logger))

	report := Report{Title: s.Title}
	for _, step := range s.Steps {
		detail, err := stepOps[step.Op](ctx, e, step)
		result := StepResult{Step: step, Err: err, Detail: detail}

		if step.ExpectError == "" {
			result.Passed = err == nil
		} else {
			result.Passed = errors.Is(err, expectedErrors[step.ExpectError])
		}
		if !result.Passed {
			report.Failures++
		}
		report.Results = append(report.Results, result)
	}

	report.Status = e.WorkflowStatus()
	report.Winner = e.WinningProposalID()
	if s.ExpectWinner != nil && *s.ExpectWinner != report.Winner {
		report.Failures++
	}
	return report
}
