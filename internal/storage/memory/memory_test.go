package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ticketBooker/internal/ledger"
	"ticketBooker/internal/models"
	"ticketBooker/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Storage, tickets int) models.Event {
	t.Helper()

	ev := models.Event{
		ID:               uuid.New(),
		Title:            "Show",
		Date:             time.Now().Add(time.Hour),
		Status:           models.EventApproved,
		Capacity:         tickets,
		TicketsAvailable: tickets,
		Price:            decimal.NewFromInt(5),
	}
	require.NoError(t, s.CreateEvent(context.Background(), ev))

	return ev
}

func planFor(userID string, n int) storage.ReservePlan {
	return func(ev models.Event) (models.Booking, error) {
		return models.Booking{
			ID:              uuid.New(),
			EventID:         ev.ID,
			UserID:          userID,
			NumberOfTickets: n,
			Status:          models.BookingConfirmed,
			CreatedAt:       time.Now(),
		}, nil
	}
}

func TestReserve(t *testing.T) {
	t.Parallel()

	s := New()
	ev := seed(t, s, 3)

	res, err := s.Reserve(context.Background(), ev.ID, 2, planFor("u1", 2))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Event.TicketsAvailable)

	stored, err := s.Booking(context.Background(), res.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserID)

	_, err = s.Reserve(context.Background(), ev.ID, 2, planFor("u2", 2))
	var invErr *ledger.InsufficientInventoryError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, 1, invErr.Remaining)

	_, err = s.Reserve(context.Background(), uuid.New(), 1, planFor("u1", 1))
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestReservePlanErrorLeavesNoTrace(t *testing.T) {
	t.Parallel()

	s := New()
	ev := seed(t, s, 3)
	planErr := errors.New("rejected")

	_, err := s.Reserve(context.Background(), ev.ID, 1, func(models.Event) (models.Booking, error) {
		return models.Booking{}, planErr
	})
	assert.ErrorIs(t, err, planErr)

	stored, err := s.Event(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.TicketsAvailable)

	bookings, err := s.UserBookings(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestReserveQuantityMismatch(t *testing.T) {
	t.Parallel()

	s := New()
	ev := seed(t, s, 3)

	_, err := s.Reserve(context.Background(), ev.ID, 1, planFor("u1", 2))
	assert.Error(t, err)

	stored, err := s.Event(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.TicketsAvailable)
}

func TestConcurrentReserve(t *testing.T) {
	t.Parallel()

	s := New()
	ev := seed(t, s, 10)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Reserve(context.Background(), ev.ID, 1, planFor(uuid.NewString(), 1))
		}()
	}
	wg.Wait()

	stored, err := s.Event(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.TicketsAvailable)
	assert.Len(t, s.bookings, 10)
}

func TestCancel(t *testing.T) {
	t.Parallel()

	s := New()
	ev := seed(t, s, 3)

	res, err := s.Reserve(context.Background(), ev.ID, 2, planFor("u1", 2))
	require.NoError(t, err)

	c, err := s.Cancel(context.Background(), res.Booking.ID, func(b models.Booking) (models.Booking, error) {
		b.Status = models.BookingCancelled
		return b, nil
	})
	require.NoError(t, err)
	assert.True(t, c.EventReleased)
	assert.Equal(t, models.BookingCancelled, c.Booking.Status)

	stored, err := s.Event(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.TicketsAvailable)

	_, err = s.Cancel(context.Background(), uuid.New(), func(b models.Booking) (models.Booking, error) { return b, nil })
	assert.ErrorIs(t, err, storage.ErrBookingNotFound)
}

func TestCancelWithoutEvent(t *testing.T) {
	t.Parallel()

	s := New()
	ev := seed(t, s, 3)

	res, err := s.Reserve(context.Background(), ev.ID, 2, planFor("u1", 2))
	require.NoError(t, err)
	require.NoError(t, s.DeleteEvent(context.Background(), ev.ID))

	c, err := s.Cancel(context.Background(), res.Booking.ID, func(b models.Booking) (models.Booking, error) {
		b.Status = models.BookingCancelled
		return b, nil
	})
	require.NoError(t, err)
	assert.False(t, c.EventReleased)
}

func TestUpdateEventKeepsInventory(t *testing.T) {
	t.Parallel()

	s := New()
	ev := seed(t, s, 3)

	_, err := s.Reserve(context.Background(), ev.ID, 2, planFor("u1", 2))
	require.NoError(t, err)

	ev.Price = decimal.NewFromInt(50)
	require.NoError(t, s.UpdateEvent(context.Background(), ev))

	stored, err := s.Event(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TicketsAvailable, "stale event copy must not overwrite inventory")
	assert.True(t, decimal.NewFromInt(50).Equal(stored.Price))
}
