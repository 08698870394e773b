package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventStatus string

const (
	EventPending   EventStatus = "pending"
	EventApproved  EventStatus = "approved"
	EventCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventPending, EventApproved, EventCancelled:
		return true
	}
	return false
}

type Event struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	Title            string          `json:"title" db:"title"`
	Description      string          `json:"description" db:"description"`
	Location         string          `json:"location" db:"location"`
	OrganizerID      string          `json:"organizer_id" db:"organizer_id"`
	Date             time.Time       `json:"date" db:"date"`
	Status           EventStatus     `json:"status" db:"status"`
	Capacity         int             `json:"capacity" db:"capacity"`
	TicketsAvailable int             `json:"tickets_available" db:"tickets_available"`
	Price            decimal.Decimal `json:"price" db:"price"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// EventSummary is the display projection of an event attached to bookings.
type EventSummary struct {
	ID       uuid.UUID   `json:"id"`
	Title    string      `json:"title"`
	Date     time.Time   `json:"date"`
	Location string      `json:"location"`
	Status   EventStatus `json:"status"`
}

func (e Event) Summary() EventSummary {
	return EventSummary{
		ID:       e.ID,
		Title:    e.Title,
		Date:     e.Date,
		Location: e.Location,
		Status:   e.Status,
	}
}
