// Package storage defines what the booking core needs from a storage driver.
//
// Drivers own the atomic read-modify-write of an event's inventory: the
// plan functions passed to Reserve and Cancel are invoked while the event
// (or booking) is locked, and their result is persisted together with the
// ledger change or not at all.
package storage

import (
	"context"
	"errors"

	"ticketBooker/internal/models"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// ReservePlan decides, from the locked current state of an event, which
// booking to insert. Returning an error aborts the reservation.
type ReservePlan func(ev models.Event) (models.Booking, error)

// CancelPlan decides, from the locked current state of a booking, its
// cancelled form. Returning an error aborts the cancellation.
type CancelPlan func(b models.Booking) (models.Booking, error)

// Reservation is the committed outcome of Reserve.
type Reservation struct {
	Booking models.Booking
	Event   models.Event
}

// Cancellation is the committed outcome of Cancel. EventReleased is false
// when the booking's event no longer exists and no inventory was restored.
type Cancellation struct {
	Booking       models.Booking
	EventReleased bool
}

type Events interface {
	CreateEvent(ctx context.Context, ev models.Event) error
	Event(ctx context.Context, id uuid.UUID) (models.Event, error)
	Events(ctx context.Context) ([]models.Event, error)
	UpdateEvent(ctx context.Context, ev models.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type Bookings interface {
	Reserve(ctx context.Context, eventID uuid.UUID, quantity int, plan ReservePlan) (Reservation, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, plan CancelPlan) (Cancellation, error)
	Booking(ctx context.Context, id uuid.UUID) (models.Booking, error)
	UserBookings(ctx context.Context, userID string) ([]models.Booking, error)
}
