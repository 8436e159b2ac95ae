package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Confirmed ──> Delivered
//
// Confirmed is set at creation, once the stock reservation succeeded.
// Delivered is reached only through a successful verification-code
// redemption and is a final state. Cancellation is not part of this
// settlement core.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Confirmed is the initial status: stock is reserved and escrow is held.
	Confirmed

	// Delivered indicates the in-person handoff was verified.
	// This is a final state with no further transitions allowed.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Confirmed: "Confirmed",
		Delivered: "Delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Confirmed: "Confirmed",
		Delivered: "Delivered",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Confirmed, Delivered.
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

// Deliver transitions the status to Delivered.
//
// Valid transitions:
//   - Confirmed -> Delivered
//
// Returns (0, error) if the order is not currently Confirmed.
func (s Status) Deliver() (Status, error) {
	if s != Confirmed {
		return 0, errs.NewStateConflictErrorWithCause(
			"order cannot be delivered",
			fmt.Errorf("%s is not a valid status to deliver from", s.String()),
		)
	}
	return Delivered, nil
}
