// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"

	"github.com/danielhkuo/quickly-ballot/models"
)

// AddVoter registers address as a voter. Only the administrator may call
// it, and only while voters are being registered.
func (e *Engine) AddVoter(ctx context.Context, caller, address string) (models.Voter, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addVoter(ctx, caller, address)
}

func (e *Engine) addVoter(ctx context.Context, caller, address string) (models.Voter, error) {
	const op = "AddVoter"

	if !e.access.IsAdministrator(caller) {
		return models.Voter{}, e.reject(op, caller, fmt.Errorf("%s: %w", op, ErrNotAuthorized))
	}
	if e.phase != models.RegisteringVoters {
		return models.Voter{}, e.reject(op, caller, &PhaseError{
			Op:      op,
			Current: e.phase,
			Kind:    ErrWrongPhase,
			Reason:  "voters registration is not open",
		})
	}
	if address == "" {
		return models.Voter{}, e.reject(op, caller, ErrEmptyAddress)
	}
	if _, exists := e.voters[address]; exists {
		return models.Voter{}, e.reject(op, caller, fmt.Errorf("%s: %w", address, ErrAlreadyRegistered))
	}

	voter := models.Voter{Address: address, IsRegistered: true}
	err := e.commit(ctx, models.EventVoterRegistered, models.VoterRegistered{Address: address}, func() {
		v := voter
		e.voters[address] = &v
	})
	if err != nil {
		return models.Voter{}, err
	}

	if !e.replaying {
		e.logger.Info("voter registered", "election_id", e.id, "address", address)
	}
	return voter, nil
}

// GetVoter returns the record for address. The caller must be a registered
// voter but may look up any address.
func (e *Engine) GetVoter(caller, address string) (models.Voter, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.registered(caller); !ok {
		return models.Voter{}, ErrNotAVoter
	}
	v, ok := e.voters[address]
	if !ok {
		return models.Voter{}, fmt.Errorf("voter %s: %w", address, ErrNotFound)
	}
	return copyVoter(v), nil
}

func copyVoter(v *models.Voter) models.Voter {
	out := *v
	if v.VotedProposalID != nil {
		id := *v.VotedProposalID
		out.VotedProposalID = &id
	}
	return out
}
