// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-ballot/models"
)

var (
	ErrNotAuthorized     = errors.New("caller is not the administrator")
	ErrNotAVoter         = errors.New("caller is not a registered voter")
	ErrWrongPhase        = errors.New("operation not allowed in current phase")
	ErrInvalidTransition = errors.New("invalid workflow transition")
	ErrAlreadyRegistered = errors.New("voter already registered")
	ErrAlreadyVoted      = errors.New("voter has already voted")
	ErrEmptyDescription  = errors.New("proposal description is empty")
	ErrEmptyAddress      = errors.New("voter address is empty")
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrNotFound          = errors.New("not found")
	ErrElectionNotFound  = errors.New("election not found")
	ErrJournal           = errors.New("failed to journal event")
)

// PhaseError reports an operation attempted outside its legal phase. Kind
// is ErrWrongPhase for gated operations and ErrInvalidTransition for
// workflow transitions.
type PhaseError struct {
	Op      string
	Current models.Phase
	Kind    error
	Reason  string
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %s (current status %s)", e.Op, e.Reason, e.Current)
}

func (e *PhaseError) Unwrap() error {
	return e.Kind
}
