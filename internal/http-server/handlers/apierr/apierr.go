// Package apierr maps service errors to HTTP statuses and client messages.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ticketBooker/internal/booking"
	"ticketBooker/internal/events"
	"ticketBooker/internal/ledger"
)

var statuses = []struct {
	err    error
	status int
}{
	{booking.ErrInvalidInput, http.StatusBadRequest},
	{booking.ErrInvalidEventConfiguration, http.StatusBadRequest},
	{booking.ErrPriceComputation, http.StatusBadRequest},
	{events.ErrInvalidEvent, http.StatusBadRequest},
	{booking.ErrNotAuthorized, http.StatusForbidden},
	{booking.ErrEventNotFound, http.StatusNotFound},
	{booking.ErrBookingNotFound, http.StatusNotFound},
	{booking.ErrEventNotApproved, http.StatusConflict},
	{booking.ErrEventInPast, http.StatusConflict},
	{booking.ErrInsufficientInventory, http.StatusConflict},
	{booking.ErrAlreadyCancelled, http.StatusConflict},
}

// Resolve returns the status and message for err. Unknown errors and
// storage failures become 500 with the fallback message so internals do
// not leak to clients.
func Resolve(err error, fallback string) (int, string) {
	var invErr *ledger.InsufficientInventoryError
	if errors.As(err, &invErr) {
		return http.StatusConflict, fmt.Sprintf("only %d tickets available", invErr.Remaining)
	}

	if errors.Is(err, booking.ErrStorageFailure) {
		return http.StatusInternalServerError, fallback
	}

	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status, message(err, s.err)
		}
	}

	return http.StatusInternalServerError, fallback
}

// message returns the sentinel text, followed by the detail that was
// wrapped after it, if any. Operation prefixes are dropped.
func message(err, sentinel error) string {
	text := err.Error()
	prefix := sentinel.Error()

	i := strings.LastIndex(text, prefix+": ")
	if i < 0 {
		return prefix
	}

	return text[i:]
}
