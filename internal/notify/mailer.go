package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"ticketBooker/internal/lib/logger/sl"

	"github.com/ThreeDotsLabs/watermill/message"
)

type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer turns booking notifications into emails. Real delivery is out of
// scope: emails are written to the log.
type Mailer struct {
	log  *slog.Logger
	send func(Email) error
}

func NewMailer(log *slog.Logger) *Mailer {
	m := &Mailer{log: log}
	m.send = m.logEmail

	return m
}

func (m *Mailer) Handle(msg *message.Message) error {
	const op = "notify.Mailer.Handle"

	log := m.log.With(slog.String("op", op), slog.String("message_uuid", msg.UUID))

	var n Notification
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		// Retrying a malformed payload cannot succeed.
		log.Error("dropping malformed notification", sl.Err(err))
		return nil
	}

	email, ok := compose(n)
	if !ok {
		log.Warn("unknown notification type", slog.String("type", n.Type))
		return nil
	}

	if err := m.send(email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func compose(n Notification) (Email, bool) {
	to := "user:" + n.UserID

	switch n.Type {
	case TypeBookingConfirmed:
		body := fmt.Sprintf("Your booking %s for %d ticket(s) is confirmed. Total: %s.",
			n.BookingID, n.NumberOfTickets, n.TotalPrice.StringFixed(2))
		if n.EventTitle != "" {
			body = fmt.Sprintf("Your booking %s for %d ticket(s) to %q is confirmed. Total: %s.",
				n.BookingID, n.NumberOfTickets, n.EventTitle, n.TotalPrice.StringFixed(2))
		}
		return Email{To: to, Subject: "Booking confirmed", Body: body}, true
	case TypeBookingCancelled:
		return Email{
			To:      to,
			Subject: "Booking cancelled",
			Body:    fmt.Sprintf("Your booking %s for %d ticket(s) has been cancelled.", n.BookingID, n.NumberOfTickets),
		}, true
	default:
		return Email{}, false
	}
}

func (m *Mailer) logEmail(e Email) error {
	m.log.Info("simulated email",
		slog.String("to", e.To),
		slog.String("subject", e.Subject),
		slog.String("body", e.Body),
	)

	return nil
}
