// Package widget holds the console's stateful editors as plain state machines.
// Each widget owns a draft and commits it through a narrow store interface;
// destructive actions go through an injected Confirm.
package widget

import "errors"

var (
	// ErrNotConfirmed is returned when the user declines a destructive action.
	ErrNotConfirmed = errors.New("action not confirmed")
	// ErrIncomplete is returned by Submit while a required field is empty.
	ErrIncomplete = errors.New("required fields missing")
	// ErrDraftRejected is returned by MeterEditor.Save for a draft that is not a non-negative number.
	ErrDraftRejected = errors.New("draft is not a non-negative number")
	// ErrSelfDelete is returned when a user tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete the signed-in account")
	// ErrNoPendingMove is returned by Drop when no move was started.
	ErrNoPendingMove = errors.New("no pending move")
)

// Confirm asks the user to approve a destructive action.
type Confirm func(prompt string) bool

// Always approves every prompt.
func Always(string) bool { return true }

// Never declines every prompt.
func Never(string) bool { return false }

// Mode of a management modal
type Mode int

const (
	ModeClosed Mode = iota // No modal open
	ModeAdd                // Creating a new entity
	ModeEdit               // Editing an existing entity
)

func confirmOrDecline(c Confirm, prompt string) bool {
	if c == nil {
		return false
	}
	return c(prompt)
}
