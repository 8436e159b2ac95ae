package product

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of a product listing.
//
// State transitions:
//
//	Active ──┬──> Sold      (quantity reaches 0 through reservation)
//	         └──> Inactive  (seller withdraws the listing)
//
// A product never transitions back to Active automatically: once Sold or
// Inactive, stock can only change through a new listing.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Active is the initial status: the listing is visible and reservable.
	Active

	// Sold indicates the listing's quantity reached zero through reservations.
	Sold

	// Inactive indicates the seller withdrew the listing.
	Inactive
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Active:   "Active",
		Sold:     "Sold",
		Inactive: "Inactive",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Active:   "Active",
		Sold:     "Sold",
		Inactive: "Inactive",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are: Active, Sold, Inactive.
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

// ValidateReserve checks whether stock may be reserved in the current status.
// Only Active listings are reservable.
func (s Status) ValidateReserve() error {
	if s != Active {
		return errs.NewStateConflictErrorWithCause(
			"product is not active",
			fmt.Errorf("%s is not a valid status to reserve from", s.String()),
		)
	}
	return nil
}
