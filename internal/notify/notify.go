// Package notify publishes booking lifecycle messages and delivers them as
// (simulated) emails. Delivery is asynchronous; booking requests never wait
// for it.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ticketBooker/internal/models"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"

	typeMetadataKey = "type"
)

type Notification struct {
	Type            string          `json:"type"`
	BookingID       uuid.UUID       `json:"booking_id"`
	EventID         uuid.UUID       `json:"event_id"`
	EventTitle      string          `json:"event_title,omitempty"`
	EventDate       *time.Time      `json:"event_date,omitempty"`
	UserID          string          `json:"user_id"`
	NumberOfTickets int             `json:"number_of_tickets"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

type Publisher struct {
	publisher message.Publisher
	topic     string
	now       func() time.Time
}

func NewPublisher(publisher message.Publisher, topic string) *Publisher {
	return &Publisher{
		publisher: publisher,
		topic:     topic,
		now:       time.Now,
	}
}

func (p *Publisher) BookingConfirmed(_ context.Context, details models.BookingDetails) error {
	date := details.Event.Date

	return p.publish(Notification{
		Type:            TypeBookingConfirmed,
		BookingID:       details.ID,
		EventID:         details.EventID,
		EventTitle:      details.Event.Title,
		EventDate:       &date,
		UserID:          details.UserID,
		NumberOfTickets: details.NumberOfTickets,
		TotalPrice:      details.TotalPrice,
		OccurredAt:      details.CreatedAt,
	})
}

func (p *Publisher) BookingCancelled(_ context.Context, b models.Booking) error {
	occurred := p.now()
	if b.CancelledAt != nil {
		occurred = *b.CancelledAt
	}

	return p.publish(Notification{
		Type:            TypeBookingCancelled,
		BookingID:       b.ID,
		EventID:         b.EventID,
		UserID:          b.UserID,
		NumberOfTickets: b.NumberOfTickets,
		TotalPrice:      b.TotalPrice,
		OccurredAt:      occurred,
	})
}

func (p *Publisher) publish(n Notification) error {
	const op = "notify.Publisher.publish"

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(typeMetadataKey, n.Type)

	if err = p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
