// Package events manages the events bookings draw inventory from.
// Inventory itself only changes through the booking core.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ticketBooker/internal/models"
	"ticketBooker/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidEvent  = errors.New("invalid event")
	ErrEventNotFound = storage.ErrEventNotFound
)

type Store interface {
	CreateEvent(ctx context.Context, ev models.Event) error
	Event(ctx context.Context, id uuid.UUID) (models.Event, error)
	Events(ctx context.Context) ([]models.Event, error)
	UpdateEvent(ctx context.Context, ev models.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	log   *slog.Logger
	store Store
	now   func() time.Time
}

func New(log *slog.Logger, store Store) *Service {
	return &Service{
		log:   log,
		store: store,
		now:   time.Now,
	}
}

type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	OrganizerID string
	Date        time.Time
	Capacity    int
	Price       decimal.Decimal
}

// CreateEvent stores a new pending event whose inventory equals its capacity.
func (s *Service) CreateEvent(ctx context.Context, in CreateEventInput) (models.Event, error) {
	const op = "events.Service.CreateEvent"

	now := s.now()

	title := strings.TrimSpace(in.Title)
	switch {
	case len(title) < 3:
		return models.Event{}, fmt.Errorf("%s: %w: title must be at least 3 characters long", op, ErrInvalidEvent)
	case !in.Date.After(now):
		return models.Event{}, fmt.Errorf("%s: %w: event date must be in the future", op, ErrInvalidEvent)
	case in.Capacity < 1:
		return models.Event{}, fmt.Errorf("%s: %w: capacity must be at least 1", op, ErrInvalidEvent)
	case in.Price.IsNegative():
		return models.Event{}, fmt.Errorf("%s: %w: price cannot be negative", op, ErrInvalidEvent)
	}

	ev := models.Event{
		ID:               uuid.New(),
		Title:            title,
		Description:      strings.TrimSpace(in.Description),
		Location:         strings.TrimSpace(in.Location),
		OrganizerID:      in.OrganizerID,
		Date:             in.Date,
		Status:           models.EventPending,
		Capacity:         in.Capacity,
		TicketsAvailable: in.Capacity,
		Price:            in.Price.Round(2),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.CreateEvent(ctx, ev); err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("event created", slog.String("op", op), slog.String("event_id", ev.ID.String()))

	return ev, nil
}

func (s *Service) Event(ctx context.Context, id uuid.UUID) (models.Event, error) {
	const op = "events.Service.Event"

	ev, err := s.store.Event(ctx, id)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return ev, nil
}

func (s *Service) Events(ctx context.Context) ([]models.Event, error) {
	const op = "events.Service.Events"

	events, err := s.store.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

type UpdateEventInput struct {
	Status *models.EventStatus
	Price  *decimal.Decimal
}

// UpdateEvent changes the status (approval) and/or price of an event.
// Existing bookings keep the price they were made at.
func (s *Service) UpdateEvent(ctx context.Context, id uuid.UUID, in UpdateEventInput) (models.Event, error) {
	const op = "events.Service.UpdateEvent"

	if in.Status == nil && in.Price == nil {
		return models.Event{}, fmt.Errorf("%s: %w: nothing to update", op, ErrInvalidEvent)
	}
	if in.Status != nil && !in.Status.Valid() {
		return models.Event{}, fmt.Errorf("%s: %w: unknown status %q", op, ErrInvalidEvent, *in.Status)
	}
	if in.Price != nil && in.Price.IsNegative() {
		return models.Event{}, fmt.Errorf("%s: %w: price cannot be negative", op, ErrInvalidEvent)
	}

	ev, err := s.store.Event(ctx, id)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	if in.Status != nil {
		ev.Status = *in.Status
	}
	if in.Price != nil {
		ev.Price = in.Price.Round(2)
	}
	ev.UpdatedAt = s.now()

	if err = s.store.UpdateEvent(ctx, ev); err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	// Re-read so the returned inventory reflects bookings made meanwhile.
	ev, err = s.store.Event(ctx, id)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("event updated",
		slog.String("op", op),
		slog.String("event_id", id.String()),
		slog.String("status", string(ev.Status)),
	)

	return ev, nil
}

// DeleteEvent removes an event. Its bookings remain; cancelling them later
// cannot return tickets anywhere.
func (s *Service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "events.Service.DeleteEvent"

	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("event deleted", slog.String("op", op), slog.String("event_id", id.String()))

	return nil
}
