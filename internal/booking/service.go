// Package booking creates, cancels and reads ticket bookings.
//
// Every inventory change goes through the storage driver's Reserve or
// Cancel, which run the decision functions below under a lock on the
// affected row, so concurrent bookings against one event cannot oversell.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ticketBooker/internal/ledger"
	"ticketBooker/internal/lib/logger/sl"
	"ticketBooker/internal/models"
	"ticketBooker/internal/storage"

	"github.com/google/uuid"
)

type Store interface {
	Reserve(ctx context.Context, eventID uuid.UUID, quantity int, plan storage.ReservePlan) (storage.Reservation, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, plan storage.CancelPlan) (storage.Cancellation, error)
	Booking(ctx context.Context, id uuid.UUID) (models.Booking, error)
	UserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	Event(ctx context.Context, id uuid.UUID) (models.Event, error)
}

// Notifier receives booking lifecycle notifications. Failures are logged
// and never affect the booking outcome.
type Notifier interface {
	BookingConfirmed(ctx context.Context, details models.BookingDetails) error
	BookingCancelled(ctx context.Context, b models.Booking) error
}

type Service struct {
	log      *slog.Logger
	store    Store
	notifier Notifier
	now      func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func New(log *slog.Logger, store Store, opts ...Option) *Service {
	s := &Service{
		log:   log,
		store: store,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateBookingInput struct {
	Caller          models.Caller
	EventID         uuid.UUID
	NumberOfTickets int
}

func (s *Service) CreateBooking(ctx context.Context, in CreateBookingInput) (models.BookingDetails, error) {
	const op = "booking.Service.CreateBooking"

	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", in.EventID.String()),
		slog.String("user_id", in.Caller.ID),
	)

	if in.Caller.ID == "" {
		return models.BookingDetails{}, fmt.Errorf("%s: %w: caller id is required", op, ErrInvalidInput)
	}
	if in.NumberOfTickets < 1 {
		return models.BookingDetails{}, fmt.Errorf("%s: %w: number of tickets must be a positive integer", op, ErrInvalidInput)
	}

	now := s.now()

	res, err := s.store.Reserve(ctx, in.EventID, in.NumberOfTickets, func(ev models.Event) (models.Booking, error) {
		return planBooking(ev, in, now)
	})
	if err != nil {
		return models.BookingDetails{}, s.fail(op, err)
	}

	details := models.BookingDetails{
		Booking: res.Booking,
		Event:   res.Event.Summary(),
		User:    in.Caller,
	}

	log.Info("booking created",
		slog.String("booking_id", details.ID.String()),
		slog.Int("tickets", details.NumberOfTickets),
		slog.Int("tickets_left", res.Event.TicketsAvailable),
	)

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, details); err != nil {
			log.Warn("failed to publish booking confirmation", sl.Err(err))
		}
	}

	return details, nil
}

// planBooking runs against the locked event row.
func planBooking(ev models.Event, in CreateBookingInput, now time.Time) (models.Booking, error) {
	if ev.Price.IsNegative() {
		return models.Booking{}, ErrInvalidEventConfiguration
	}

	if err := ledger.CheckReserve(ev, in.NumberOfTickets, now); err != nil {
		return models.Booking{}, err
	}

	total, err := TotalPrice(ev.Price, in.NumberOfTickets)
	if err != nil {
		return models.Booking{}, err
	}

	return models.Booking{
		ID:              uuid.New(),
		EventID:         ev.ID,
		UserID:          in.Caller.ID,
		NumberOfTickets: in.NumberOfTickets,
		UnitPrice:       ev.Price,
		TotalPrice:      total,
		Status:          models.BookingConfirmed,
		CreatedAt:       now,
	}, nil
}

func (s *Service) CancelBooking(ctx context.Context, caller models.Caller, bookingID uuid.UUID) (models.Booking, error) {
	const op = "booking.Service.CancelBooking"

	log := s.log.With(
		slog.String("op", op),
		slog.String("booking_id", bookingID.String()),
		slog.String("user_id", caller.ID),
	)

	now := s.now()

	res, err := s.store.Cancel(ctx, bookingID, func(b models.Booking) (models.Booking, error) {
		if err := authorize(caller, b); err != nil {
			return models.Booking{}, err
		}
		if b.Status == models.BookingCancelled {
			return models.Booking{}, ErrAlreadyCancelled
		}

		b.Status = models.BookingCancelled
		b.CancelledAt = &now

		return b, nil
	})
	if err != nil {
		return models.Booking{}, s.fail(op, err)
	}

	if !res.EventReleased {
		log.Warn("event no longer exists, tickets not returned to inventory",
			slog.String("event_id", res.Booking.EventID.String()),
			slog.Int("tickets", res.Booking.NumberOfTickets),
		)
	}

	log.Info("booking cancelled", slog.Int("tickets", res.Booking.NumberOfTickets))

	if s.notifier != nil {
		if err := s.notifier.BookingCancelled(ctx, res.Booking); err != nil {
			log.Warn("failed to publish booking cancellation", sl.Err(err))
		}
	}

	return res.Booking, nil
}

func (s *Service) GetBooking(ctx context.Context, caller models.Caller, bookingID uuid.UUID) (models.BookingView, error) {
	const op = "booking.Service.GetBooking"

	b, err := s.store.Booking(ctx, bookingID)
	if err != nil {
		return models.BookingView{}, s.fail(op, err)
	}

	if err = authorize(caller, b); err != nil {
		return models.BookingView{}, s.fail(op, err)
	}

	event, err := s.eventSummary(ctx, b.EventID)
	if err != nil {
		return models.BookingView{}, s.fail(op, err)
	}

	return models.BookingView{Booking: b, Event: event}, nil
}

// ListBookings returns the caller's bookings, newest first.
func (s *Service) ListBookings(ctx context.Context, caller models.Caller) ([]models.BookingView, error) {
	const op = "booking.Service.ListBookings"

	if caller.ID == "" {
		return nil, fmt.Errorf("%s: %w: caller id is required", op, ErrInvalidInput)
	}

	bookings, err := s.store.UserBookings(ctx, caller.ID)
	if err != nil {
		return nil, s.fail(op, err)
	}

	summaries := make(map[uuid.UUID]*models.EventSummary)
	views := make([]models.BookingView, 0, len(bookings))

	for _, b := range bookings {
		event, ok := summaries[b.EventID]
		if !ok {
			event, err = s.eventSummary(ctx, b.EventID)
			if err != nil {
				return nil, s.fail(op, err)
			}
			summaries[b.EventID] = event
		}

		views = append(views, models.BookingView{Booking: b, Event: event})
	}

	return views, nil
}

// eventSummary reads the current event; a removed event yields nil.
func (s *Service) eventSummary(ctx context.Context, id uuid.UUID) (*models.EventSummary, error) {
	ev, err := s.store.Event(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrEventNotFound) {
			return nil, nil
		}
		return nil, err
	}

	summary := ev.Summary()

	return &summary, nil
}

// authorize is the single ownership predicate for reading or cancelling a
// booking. There is no admin override.
func authorize(caller models.Caller, b models.Booking) error {
	if caller.ID == "" || b.UserID != caller.ID {
		return ErrNotAuthorized
	}
	return nil
}

func (s *Service) fail(op string, err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidQuantity):
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidInput, err)
	case isDomainError(err):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrStorageFailure, err)
	}
}
