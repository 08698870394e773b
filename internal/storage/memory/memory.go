// Package memory is an in-process storage driver. A single mutex covers
// every read-check-write, which makes Reserve and Cancel atomic.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ticketBooker/internal/ledger"
	"ticketBooker/internal/models"
	"ticketBooker/internal/storage"

	"github.com/google/uuid"
)

type Storage struct {
	mu       sync.Mutex
	events   map[uuid.UUID]models.Event
	bookings map[uuid.UUID]models.Booking
	now      func() time.Time
}

func New() *Storage {
	return &Storage{
		events:   make(map[uuid.UUID]models.Event),
		bookings: make(map[uuid.UUID]models.Booking),
		now:      time.Now,
	}
}

func (s *Storage) Close() error {
	return nil
}

func (s *Storage) CreateEvent(_ context.Context, ev models.Event) error {
	const op = "storage.memory.CreateEvent"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[ev.ID]; ok {
		return fmt.Errorf("%s: event %s already exists", op, ev.ID)
	}

	s.events[ev.ID] = ev

	return nil
}

func (s *Storage) Event(_ context.Context, id uuid.UUID) (models.Event, error) {
	const op = "storage.memory.Event"

	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[id]
	if !ok {
		return models.Event{}, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}

	return ev, nil
}

func (s *Storage) Events(_ context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]models.Event, 0, len(s.events))
	for _, ev := range s.events {
		events = append(events, ev)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	return events, nil
}

// UpdateEvent rewrites the descriptive fields, status and price of an
// event. The inventory fields are left to Reserve and Cancel.
func (s *Storage) UpdateEvent(_ context.Context, ev models.Event) error {
	const op = "storage.memory.UpdateEvent"

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.events[ev.ID]
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}

	stored.Title = ev.Title
	stored.Description = ev.Description
	stored.Location = ev.Location
	stored.Date = ev.Date
	stored.Status = ev.Status
	stored.Price = ev.Price
	stored.UpdatedAt = ev.UpdatedAt
	s.events[ev.ID] = stored

	return nil
}

// DeleteEvent removes an event. Bookings referencing it are kept.
func (s *Storage) DeleteEvent(_ context.Context, id uuid.UUID) error {
	const op = "storage.memory.DeleteEvent"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}

	delete(s.events, id)

	return nil
}

func (s *Storage) Reserve(_ context.Context, eventID uuid.UUID, quantity int, plan storage.ReservePlan) (storage.Reservation, error) {
	const op = "storage.memory.Reserve"

	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return storage.Reservation{}, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}

	b, err := plan(ev)
	if err != nil {
		return storage.Reservation{}, err
	}

	if b.NumberOfTickets != quantity {
		return storage.Reservation{}, fmt.Errorf("%s: booking holds %d tickets, reserving %d", op, b.NumberOfTickets, quantity)
	}

	ev, err = ledger.Take(ev, quantity, s.now())
	if err != nil {
		return storage.Reservation{}, err
	}

	s.events[eventID] = ev
	s.bookings[b.ID] = b

	return storage.Reservation{Booking: b, Event: ev}, nil
}

func (s *Storage) Cancel(_ context.Context, bookingID uuid.UUID, plan storage.CancelPlan) (storage.Cancellation, error) {
	const op = "storage.memory.Cancel"

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return storage.Cancellation{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	cancelled, err := plan(b)
	if err != nil {
		return storage.Cancellation{}, err
	}

	s.bookings[bookingID] = cancelled

	ev, ok := s.events[b.EventID]
	if ok {
		s.events[b.EventID] = ledger.Release(ev, b.NumberOfTickets, s.now())
	}

	return storage.Cancellation{Booking: cancelled, EventReleased: ok}, nil
}

func (s *Storage) Booking(_ context.Context, id uuid.UUID) (models.Booking, error) {
	const op = "storage.memory.Booking"

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return b, nil
}

func (s *Storage) UserBookings(_ context.Context, userID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bookings []models.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	return bookings, nil
}
