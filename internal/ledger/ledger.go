// Package ledger guards changes to an event's ticketsAvailable counter.
//
// The checks here are pure; callers must run them while holding whatever
// lock or transaction makes the following decrement atomic with the read
// of the event (see the storage drivers).
package ledger

import (
	"errors"
	"fmt"
	"time"

	"ticketBooker/internal/models"
)

var (
	ErrEventNotApproved      = errors.New("event is not approved for booking")
	ErrEventInPast           = errors.New("event has already taken place")
	ErrInvalidQuantity       = errors.New("number of tickets must be a positive integer")
	ErrInsufficientInventory = errors.New("not enough tickets available")
)

// InsufficientInventoryError reports how many tickets are left so the
// client can retry with a lower quantity.
type InsufficientInventoryError struct {
	Requested int
	Remaining int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("%s: requested %d, remaining %d", ErrInsufficientInventory, e.Requested, e.Remaining)
}

func (e *InsufficientInventoryError) Is(target error) bool {
	return target == ErrInsufficientInventory
}

// CheckReserve validates a reservation of quantity tickets against ev.
// Checks run in a fixed order and the first violation is returned.
// Quantities are never partially satisfied.
func CheckReserve(ev models.Event, quantity int, now time.Time) error {
	if ev.Status != models.EventApproved {
		return ErrEventNotApproved
	}
	if !ev.Date.After(now) {
		return ErrEventInPast
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if ev.TicketsAvailable < quantity {
		return &InsufficientInventoryError{Requested: quantity, Remaining: ev.TicketsAvailable}
	}

	return nil
}

// Take returns ev with quantity tickets taken out of inventory. It is the
// conditional decrement storage drivers apply after CheckReserve passed.
func Take(ev models.Event, quantity int, now time.Time) (models.Event, error) {
	if quantity < 1 {
		return ev, ErrInvalidQuantity
	}
	if ev.TicketsAvailable < quantity {
		return ev, &InsufficientInventoryError{Requested: quantity, Remaining: ev.TicketsAvailable}
	}

	ev.TicketsAvailable -= quantity
	ev.UpdatedAt = now

	return ev, nil
}

// Release returns ev with quantity tickets put back into inventory.
func Release(ev models.Event, quantity int, now time.Time) models.Event {
	ev.TicketsAvailable += quantity
	ev.UpdatedAt = now

	return ev
}
