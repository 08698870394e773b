package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ticketBooker/internal/config"
	"ticketBooker/internal/ledger"
	"ticketBooker/internal/models"
	"ticketBooker/internal/storage"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Storage struct {
	DB *sqlx.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	return Open(connStr, dbCfg.MaxOpenConns)
}

func Open(connStr string, maxOpenConns int) (*Storage, error) {
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}

	s := &Storage{DB: db}

	if err = s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Migrate(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS events (
	id UUID PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	location VARCHAR(255) NOT NULL DEFAULT '',
	organizer_id VARCHAR(255) NOT NULL DEFAULT '',
	date TIMESTAMP WITH TIME ZONE NOT NULL,
	status VARCHAR(16) NOT NULL CHECK (status IN ('pending', 'approved', 'cancelled')),
	capacity INTEGER NOT NULL CHECK (capacity >= 1),
	tickets_available INTEGER NOT NULL CHECK (tickets_available >= 0),
	price NUMERIC(12, 2) NOT NULL CHECK (price >= 0),
	created_at TIMESTAMP WITH TIME ZONE NOT NULL,
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	event_id UUID NOT NULL,
	user_id VARCHAR(255) NOT NULL,
	number_of_tickets INTEGER NOT NULL CHECK (number_of_tickets >= 1),
	unit_price NUMERIC(12, 2) NOT NULL,
	total_price NUMERIC(12, 2) NOT NULL,
	status VARCHAR(16) NOT NULL CHECK (status IN ('confirmed', 'cancelled')),
	created_at TIMESTAMP WITH TIME ZONE NOT NULL,
	cancelled_at TIMESTAMP WITH TIME ZONE
);
CREATE INDEX IF NOT EXISTS bookings_user_id_created_at_idx ON bookings (user_id, created_at DESC);`)
	if err != nil {
		return fmt.Errorf("failed to create bookings table: %w", err)
	}

	return nil
}

const eventColumns = `id, title, description, location, organizer_id, date, status,
		capacity, tickets_available, price, created_at, updated_at`

const bookingColumns = `id, event_id, user_id, number_of_tickets, unit_price, total_price,
		status, created_at, cancelled_at`

func (s *Storage) CreateEvent(ctx context.Context, ev models.Event) error {
	const op = "storage.postgres.CreateEvent"

	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES (:id, :title, :description, :location, :organizer_id, :date, :status,
			:capacity, :tickets_available, :price, :created_at, :updated_at)`

	if _, err := s.DB.NamedExecContext(ctx, query, ev); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Event(ctx context.Context, id uuid.UUID) (models.Event, error) {
	const op = "storage.postgres.Event"

	var ev models.Event
	err := s.DB.GetContext(ctx, &ev, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return ev, nil
}

func (s *Storage) Events(ctx context.Context) ([]models.Event, error) {
	const op = "storage.postgres.Events"

	events := []models.Event{}
	err := s.DB.SelectContext(ctx, &events, `SELECT `+eventColumns+` FROM events ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return events, nil
}

// UpdateEvent rewrites the descriptive fields, status and price of an
// event. The inventory columns are left to Reserve and Cancel.
func (s *Storage) UpdateEvent(ctx context.Context, ev models.Event) error {
	const op = "storage.postgres.UpdateEvent"

	res, err := s.DB.NamedExecContext(ctx, `
		UPDATE events SET
			title = :title, description = :description, location = :location,
			date = :date, status = :status, price = :price, updated_at = :updated_at
		WHERE id = :id`, ev)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}

	return nil
}

// DeleteEvent removes an event. Bookings referencing it are kept.
func (s *Storage) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "storage.postgres.DeleteEvent"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
	}

	return nil
}

// Reserve locks the event row, lets plan decide on the booking, then applies
// a conditional decrement and inserts the booking in the same transaction.
func (s *Storage) Reserve(ctx context.Context, eventID uuid.UUID, quantity int, plan storage.ReservePlan) (storage.Reservation, error) {
	const op = "storage.postgres.Reserve"

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return storage.Reservation{}, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var ev models.Event
	err = tx.GetContext(ctx, &ev, `SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Reservation{}, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return storage.Reservation{}, fmt.Errorf("%s: failed to lock event: %w", op, err)
	}

	b, err := plan(ev)
	if err != nil {
		return storage.Reservation{}, err
	}

	if b.NumberOfTickets != quantity {
		return storage.Reservation{}, fmt.Errorf("%s: booking holds %d tickets, reserving %d", op, b.NumberOfTickets, quantity)
	}

	err = tx.GetContext(ctx, &ev, `
		UPDATE events
		SET tickets_available = tickets_available - $2, updated_at = NOW()
		WHERE id = $1 AND tickets_available >= $2
		RETURNING `+eventColumns,
		eventID, quantity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Reservation{}, &ledger.InsufficientInventoryError{Requested: quantity, Remaining: ev.TicketsAvailable}
		}
		return storage.Reservation{}, fmt.Errorf("%s: failed to decrement inventory: %w", op, err)
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES (:id, :event_id, :user_id, :number_of_tickets, :unit_price, :total_price,
			:status, :created_at, :cancelled_at)`, b)
	if err != nil {
		return storage.Reservation{}, fmt.Errorf("%s: failed to insert booking: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return storage.Reservation{}, fmt.Errorf("%s: failed to commit: %w", op, err)
	}

	return storage.Reservation{Booking: b, Event: ev}, nil
}

// Cancel locks the booking row, lets plan produce the cancelled booking, and
// commits the status change together with the inventory release.
func (s *Storage) Cancel(ctx context.Context, bookingID uuid.UUID, plan storage.CancelPlan) (storage.Cancellation, error) {
	const op = "storage.postgres.Cancel"

	tx, err := s.DB.BeginTxx(ctx, nil)
	if err != nil {
		return storage.Cancellation{}, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var b models.Booking
	err = tx.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Cancellation{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}
		return storage.Cancellation{}, fmt.Errorf("%s: failed to lock booking: %w", op, err)
	}

	cancelled, err := plan(b)
	if err != nil {
		return storage.Cancellation{}, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE bookings SET status = $2, cancelled_at = $3
		WHERE id = $1`,
		bookingID, cancelled.Status, cancelled.CancelledAt,
	)
	if err != nil {
		return storage.Cancellation{}, fmt.Errorf("%s: failed to update booking: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE events
		SET tickets_available = tickets_available + $2, updated_at = NOW()
		WHERE id = $1`,
		b.EventID, b.NumberOfTickets,
	)
	if err != nil {
		return storage.Cancellation{}, fmt.Errorf("%s: failed to release inventory: %w", op, err)
	}

	released, err := res.RowsAffected()
	if err != nil {
		return storage.Cancellation{}, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return storage.Cancellation{}, fmt.Errorf("%s: failed to commit: %w", op, err)
	}

	return storage.Cancellation{Booking: cancelled, EventReleased: released > 0}, nil
}

func (s *Storage) Booking(ctx context.Context, id uuid.UUID) (models.Booking, error) {
	const op = "storage.postgres.Booking"

	var b models.Booking
	err := s.DB.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

func (s *Storage) UserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	const op = "storage.postgres.UserBookings"

	var bookings []models.Booking
	err := s.DB.SelectContext(ctx, &bookings, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}
