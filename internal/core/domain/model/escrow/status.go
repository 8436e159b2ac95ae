package escrow

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an escrow entry.
//
// State transitions:
//
//	Held ──┬──> Released  (verified handoff, or arbiter decision)
//	       └──> Refunded  (arbiter decision)
//
// Released and Refunded are terminal: an escrow leaves Held exactly once,
// and exactly one concurrent caller may win that transition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Held is the initial status: the amount is retained pending handoff.
	Held

	// Released indicates the amount was released to the seller.
	// This is a final state with no further transitions allowed.
	Released

	// Refunded indicates the amount was returned to the buyer.
	// This is a final state with no further transitions allowed.
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Held:     "Held",
		Released: "Released",
		Refunded: "Refunded",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Held:     "Held",
		Released: "Released",
		Refunded: "Refunded",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Held, Released, Refunded.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Released || s == Refunded
}

// ValidateTransition checks that the escrow is still Held and may leave it.
func (s Status) ValidateTransition() error {
	if s != Held {
		return errs.NewStateConflictErrorWithCause(
			"escrow is not held",
			fmt.Errorf("%s is not a valid status to transition from", s.String()),
		)
	}
	return nil
}

// Release transitions the status to Released.
// Returns (0, error) if the escrow is not currently Held.
func (s Status) Release() (Status, error) {
	if err := s.ValidateTransition(); err != nil {
		return 0, err
	}
	return Released, nil
}

// Refund transitions the status to Refunded.
// Returns (0, error) if the escrow is not currently Held.
func (s Status) Refund() (Status, error) {
	if err := s.ValidateTransition(); err != nil {
		return 0, err
	}
	return Refunded, nil
}
