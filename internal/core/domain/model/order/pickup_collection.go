package order

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// ErrPickupCollectionIsNotConstructed is returned when a PickupCollection was
// not created through the NewPickupCollection factory method.
var ErrPickupCollectionIsNotConstructed = errors.New(
	"PickupCollection must be created via NewPickupCollection constructor",
)

// PickupCollection links an order to the physical location, and optionally a
// scheduled time slot, where the in-person handoff takes place. The pickup
// point itself lives in an external directory; only the reference is stored.
//
// PickupCollection is a value object owned by the Order aggregate and is
// persisted in the same atomic unit as the order.
type PickupCollection struct {
	pickupPointID kernel.UUID
	scheduledAt   *time.Time

	isConstructed bool
}

// NewPickupCollection creates a pickup collection record for an order.
// scheduledAt is optional; nil means the parties will agree on a time later.
func NewPickupCollection(pickupPointID kernel.UUID, scheduledAt *time.Time) (PickupCollection, error) {
	if err := pickupPointID.Validate(); err != nil {
		return PickupCollection{}, err
	}

	return PickupCollection{
		pickupPointID: pickupPointID,
		scheduledAt:   scheduledAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the PickupCollection was created through the constructor.
func (p PickupCollection) Validate() error {
	if !p.isConstructed {
		return ErrPickupCollectionIsNotConstructed
	}
	return nil
}

// PickupPointID returns the reference into the external pickup-point directory.
func (p PickupCollection) PickupPointID() kernel.UUID {
	return p.pickupPointID
}

// ScheduledAt returns the agreed handoff slot, or nil if none was scheduled.
func (p PickupCollection) ScheduledAt() *time.Time {
	return p.scheduledAt
}
