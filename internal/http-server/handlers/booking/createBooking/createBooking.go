package createBooking

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ticketBooker/internal/booking"
	"ticketBooker/internal/http-server/handlers/apierr"
	"ticketBooker/internal/http-server/middleware/mwidentity"
	"ticketBooker/internal/lib/api/response"
	"ticketBooker/internal/lib/logger/sl"
	"ticketBooker/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// BookingRequest takes the ticket count as a raw JSON number so that
// fractional values reach the count parser instead of failing decoding.
type BookingRequest struct {
	EventID         string      `json:"event_id" validate:"required,uuid"`
	NumberOfTickets json.Number `json:"number_of_tickets" validate:"required"`
}

type BookingResponse struct {
	response.Response
	Booking *models.BookingDetails `json:"booking,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(ctx context.Context, in booking.CreateBookingInput) (models.BookingDetails, error)
}

func New(log *slog.Logger, bookings BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log := log.With(slog.String("op", op))

		caller, ok := mwidentity.CallerFrom(r.Context())
		if !ok {
			log.Error("caller identity is missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		log = log.With(slog.String("user_id", caller.ID))

		var req BookingRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		tickets, err := booking.ParseTicketCount(req.NumberOfTickets.String())
		if err != nil {
			log.Error("invalid number of tickets", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		details, err := bookings.CreateBooking(r.Context(), booking.CreateBookingInput{
			Caller:          caller,
			EventID:         uuid.MustParse(req.EventID),
			NumberOfTickets: tickets,
		})
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))

			status, msg := apierr.Resolve(err, "failed to create booking")
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("booking created", slog.String("booking_id", details.ID.String()))

		responseCreated(w, r, details)
	}
}

func responseCreated(w http.ResponseWriter, r *http.Request, details models.BookingDetails) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, BookingResponse{
		Response: response.OK(),
		Booking:  &details,
	})
}
