package events

import (
	"context"
	"testing"
	"time"

	"ticketBooker/internal/lib/logger/handlers/slogdiscard"
	"ticketBooker/internal/models"
	"ticketBooker/internal/storage/memory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (*Service, *memory.Storage) {
	store := memory.New()
	return New(slogdiscard.NewDiscardLogger(), store), store
}

func validInput() CreateEventInput {
	return CreateEventInput{
		Title:       "  Jazz night ",
		Description: "Live music",
		Location:    "Club",
		OrganizerID: "org-1",
		Date:        time.Now().Add(72 * time.Hour),
		Capacity:    50,
		Price:       decimal.RequireFromString("12.499"),
	}
}

func TestCreateEvent(t *testing.T) {
	t.Parallel()

	svc, store := newService()

	ev, err := svc.CreateEvent(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "Jazz night", ev.Title)
	assert.Equal(t, models.EventPending, ev.Status)
	assert.Equal(t, 50, ev.Capacity)
	assert.Equal(t, 50, ev.TicketsAvailable)
	assert.Equal(t, "12.50", ev.Price.StringFixed(2))

	stored, err := store.Event(context.Background(), ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev.ID, stored.ID)
}

func TestCreateEventValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(in *CreateEventInput)
	}{
		{name: "Short title", mutate: func(in *CreateEventInput) { in.Title = "ab" }},
		{name: "Past date", mutate: func(in *CreateEventInput) { in.Date = time.Now().Add(-time.Hour) }},
		{name: "Zero capacity", mutate: func(in *CreateEventInput) { in.Capacity = 0 }},
		{name: "Negative price", mutate: func(in *CreateEventInput) { in.Price = decimal.NewFromInt(-1) }},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newService()
			in := validInput()
			tc.mutate(&in)

			_, err := svc.CreateEvent(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidEvent)
		})
	}
}

func TestUpdateEvent(t *testing.T) {
	t.Parallel()

	svc, _ := newService()

	ev, err := svc.CreateEvent(context.Background(), validInput())
	require.NoError(t, err)

	approved := models.EventApproved
	price := decimal.RequireFromString("20")

	updated, err := svc.UpdateEvent(context.Background(), ev.ID, UpdateEventInput{Status: &approved, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, models.EventApproved, updated.Status)
	assert.Equal(t, "20.00", updated.Price.StringFixed(2))
	assert.Equal(t, 50, updated.TicketsAvailable)

	_, err = svc.UpdateEvent(context.Background(), ev.ID, UpdateEventInput{})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	bogus := models.EventStatus("archived")
	_, err = svc.UpdateEvent(context.Background(), ev.ID, UpdateEventInput{Status: &bogus})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = svc.UpdateEvent(context.Background(), uuid.New(), UpdateEventInput{Status: &approved})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestDeleteEvent(t *testing.T) {
	t.Parallel()

	svc, _ := newService()

	ev, err := svc.CreateEvent(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(context.Background(), ev.ID))

	_, err = svc.Event(context.Background(), ev.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)

	assert.ErrorIs(t, svc.DeleteEvent(context.Background(), ev.ID), ErrEventNotFound)

	events, err := svc.Events(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}
