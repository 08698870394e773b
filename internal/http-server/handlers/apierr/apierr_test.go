package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"ticketBooker/internal/booking"
	"ticketBooker/internal/events"
	"ticketBooker/internal/ledger"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "Invalid input keeps detail",
			err:             fmt.Errorf("booking.Service.CreateBooking: %w: number of tickets must be a positive integer", booking.ErrInvalidInput),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "invalid input: number of tickets must be a positive integer",
		},
		{
			name:            "Invalid event",
			err:             fmt.Errorf("events.Service.CreateEvent: %w: capacity must be at least 1", events.ErrInvalidEvent),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "invalid event: capacity must be at least 1",
		},
		{
			name:            "Negative event price",
			err:             fmt.Errorf("op: %w", booking.ErrInvalidEventConfiguration),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: booking.ErrInvalidEventConfiguration.Error(),
		},
		{
			name:            "Not authorized",
			err:             fmt.Errorf("op: %w", booking.ErrNotAuthorized),
			expectedStatus:  http.StatusForbidden,
			expectedMessage: booking.ErrNotAuthorized.Error(),
		},
		{
			name:            "Event not found",
			err:             fmt.Errorf("op: %w", booking.ErrEventNotFound),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: booking.ErrEventNotFound.Error(),
		},
		{
			name:            "Booking not found",
			err:             fmt.Errorf("op: %w", booking.ErrBookingNotFound),
			expectedStatus:  http.StatusNotFound,
			expectedMessage: booking.ErrBookingNotFound.Error(),
		},
		{
			name:            "Event in past",
			err:             fmt.Errorf("op: %w", booking.ErrEventInPast),
			expectedStatus:  http.StatusConflict,
			expectedMessage: booking.ErrEventInPast.Error(),
		},
		{
			name:            "Already cancelled",
			err:             fmt.Errorf("op: %w", booking.ErrAlreadyCancelled),
			expectedStatus:  http.StatusConflict,
			expectedMessage: booking.ErrAlreadyCancelled.Error(),
		},
		{
			name:            "Insufficient inventory reports remaining",
			err:             fmt.Errorf("op: %w", &ledger.InsufficientInventoryError{Requested: 5, Remaining: 2}),
			expectedStatus:  http.StatusConflict,
			expectedMessage: "only 2 tickets available",
		},
		{
			name:            "Storage failure hides internals",
			err:             fmt.Errorf("op: %w: %w", booking.ErrStorageFailure, errors.New("connection refused")),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "failed",
		},
		{
			name:            "Unknown error",
			err:             errors.New("boom"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "failed",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status, msg := Resolve(tc.err, "failed")

			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expectedMessage, msg)
		})
	}
}
