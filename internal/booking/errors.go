package booking

import (
	"errors"

	"ticketBooker/internal/ledger"
	"ticketBooker/internal/storage"
)

var (
	ErrInvalidInput              = errors.New("invalid input")
	ErrInvalidEventConfiguration = errors.New("event has an invalid ticket price")
	ErrPriceComputation          = errors.New("error calculating total price")
	ErrNotAuthorized             = errors.New("not authorized to access this booking")
	ErrAlreadyCancelled          = errors.New("booking is already cancelled")
	ErrStorageFailure            = errors.New("storage failure")

	ErrEventNotFound         = storage.ErrEventNotFound
	ErrBookingNotFound       = storage.ErrBookingNotFound
	ErrEventNotApproved      = ledger.ErrEventNotApproved
	ErrEventInPast           = ledger.ErrEventInPast
	ErrInsufficientInventory = ledger.ErrInsufficientInventory
)

var domainErrors = []error{
	ErrInvalidInput,
	ErrInvalidEventConfiguration,
	ErrPriceComputation,
	ErrNotAuthorized,
	ErrAlreadyCancelled,
	ErrEventNotFound,
	ErrBookingNotFound,
	ErrEventNotApproved,
	ErrEventInPast,
	ErrInsufficientInventory,
	ledger.ErrInvalidQuantity,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
