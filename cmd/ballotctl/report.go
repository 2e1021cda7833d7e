// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielhkuo/quickly-ballot/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50"))
	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// printReport writes one line per step followed by the outcome box
func printReport(w io.Writer, r Report) {
	fmt.Fprintln(w, titleStyle.Render(r.Title))

	for i, res := range r.Results {
		mark := passStyle.Render("✓")
		if !res.Passed {
			mark = failStyle.Render("✗")
		}

		line := fmt.Sprintf("%s %3d %-16s %-12s", mark, i+1, res.Step.Op, res.Step.Caller)
		switch {
		case res.Err != nil && res.Step.ExpectError != "":
			line += dimStyle.Render(fmt.Sprintf(" expected %s: %v", res.Step.ExpectError, res.Err))
		case res.Err != nil:
			line += failStyle.Render(" " + res.Err.Error())
		case res.Step.ExpectError != "":
			line += failStyle.Render(" expected " + res.Step.ExpectError + ", got success")
		default:
			line += " " + res.Detail
		}
		fmt.Fprintln(w, line)
	}

	outcome := []string{
		fmt.Sprintf("status: %s", r.Status),
		fmt.Sprintf("winner: %d", r.Winner),
	}
	if r.Failures > 0 {
		outcome = append(outcome, failStyle.Render(fmt.Sprintf("%d failure(s)", r.Failures)))
	} else {
		outcome = append(outcome, passStyle.Render("all steps passed"))
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(outcome, "\n")))
}

// printSummaries lists restored elections
func printSummaries(w io.Writer, summaries []models.ElectionSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no journaled elections"))
		return
	}
	for _, s := range summaries {
		body := strings.Join([]string{
			titleStyle.Render(s.Title),
			dimStyle.Render(s.ID),
			fmt.Sprintf("admin:     %s", s.Admin),
			fmt.Sprintf("status:    %s", s.StatusName),
			fmt.Sprintf("voters:    %d (%d voted)", s.VoterCount, s.VotesCast),
			fmt.Sprintf("proposals: %d", s.ProposalCount),
			fmt.Sprintf("winner:    %d", s.WinningProposalID),
		}, "\n")
		fmt.Fprintln(w, boxStyle.Render(body))
	}
}
