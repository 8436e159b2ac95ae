package dispute

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of a dispute.
//
// State transitions:
//
//	Open ──┬──> InProgress ──> Resolved ──> Closed
//	       └──────────────────> Resolved
//
// Progress is strictly forward: a dispute never reopens.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status after filing.
	Open

	// InProgress indicates an arbiter has taken the dispute under review.
	InProgress

	// Resolved indicates an arbiter decided the dispute and drove the
	// escrow to its terminal state.
	Resolved

	// Closed indicates the resolved dispute was archived.
	// This is a final state with no further transitions allowed.
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Open:       "Open",
		InProgress: "InProgress",
		Resolved:   "Resolved",
		Closed:     "Closed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Open:       "Open",
		InProgress: "InProgress",
		Resolved:   "Resolved",
		Closed:     "Closed",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Open, InProgress, Resolved, Closed.
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

// BeginReview transitions the status from Open to InProgress.
func (s Status) BeginReview() (Status, error) {
	if s != Open {
		return 0, errs.NewStateConflictErrorWithCause(
			"dispute is not open",
			fmt.Errorf("%s is not a valid status to begin review from", s.String()),
		)
	}
	return InProgress, nil
}

// Resolve transitions the status to Resolved.
// A dispute may be resolved directly from Open or after review from InProgress.
func (s Status) Resolve() (Status, error) {
	if s != Open && s != InProgress {
		return 0, errs.NewStateConflictErrorWithCause(
			"dispute is already resolved",
			fmt.Errorf("%s is not a valid status to resolve from", s.String()),
		)
	}
	return Resolved, nil
}

// Close transitions the status from Resolved to Closed.
func (s Status) Close() (Status, error) {
	if s != Resolved {
		return 0, errs.NewStateConflictErrorWithCause(
			"dispute is not resolved",
			fmt.Errorf("%s is not a valid status to close from", s.String()),
		)
	}
	return Closed, nil
}
