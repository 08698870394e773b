package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	EventID         uuid.UUID       `json:"event_id" db:"event_id"`
	UserID          string          `json:"user_id" db:"user_id"`
	NumberOfTickets int             `json:"number_of_tickets" db:"number_of_tickets"`
	UnitPrice       decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price" db:"total_price"`
	Status          BookingStatus   `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty" db:"cancelled_at"`
}

// BookingDetails is returned on creation: the booking plus the event and
// caller it was made for.
type BookingDetails struct {
	Booking
	Event EventSummary `json:"event"`
	User  Caller       `json:"user"`
}

// BookingView is the read projection of a booking. Event fields are read
// fresh; prices stay as captured at booking time. Event is nil when the
// event has since been removed.
type BookingView struct {
	Booking
	Event *EventSummary `json:"event"`
}
