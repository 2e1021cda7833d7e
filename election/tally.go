// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"sort"

	"github.com/danielhkuo/quickly-ballot/models"
)

// ComputeWinner scans proposals in ascending id order and returns the id
// that first reached the highest vote count. A later proposal with an
// equal count does not take the lead, so with no votes cast the winner is
// the first proposal (GENESIS, id 0). An empty slice yields 0.
func ComputeWinner(proposals []models.Proposal) int {
	winner, best := 0, -1
	for _, p := range proposals {
		if p.VoteCount > best {
			winner, best = p.ID, p.VoteCount
		}
	}
	return winner
}

// Results returns every proposal ranked by vote count, highest first, with
// ties ordered by id. Available only once votes are tallied.
func (e *Engine) Results() ([]models.Standing, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.phase != models.VotesTallied {
		return nil, &PhaseError{
			Op:      "Results",
			Current: e.phase,
			Kind:    ErrWrongPhase,
			Reason:  "votes have not been tallied",
		}
	}
	return rank(e.proposals, e.winningProposalID), nil
}

func rank(proposals []models.Proposal, winner int) []models.Standing {
	sorted := make([]models.Proposal, len(proposals))
	copy(sorted, proposals)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].VoteCount != sorted[j].VoteCount {
			return sorted[i].VoteCount > sorted[j].VoteCount
		}
		return sorted[i].ID < sorted[j].ID
	})

	standings := make([]models.Standing, len(sorted))
	for i, p := range sorted {
		standings[i] = models.Standing{
			Proposal: p,
			Rank:     i + 1, // 1-indexed ranking
			Winner:   p.ID == winner,
		}
	}
	return standings
}
