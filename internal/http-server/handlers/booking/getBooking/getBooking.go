package getBooking

import (
	"context"
	"log/slog"
	"net/http"

	"ticketBooker/internal/http-server/handlers/apierr"
	"ticketBooker/internal/http-server/middleware/mwidentity"
	"ticketBooker/internal/lib/api/response"
	"ticketBooker/internal/lib/logger/sl"
	"ticketBooker/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

type BookingResponse struct {
	response.Response
	Booking *models.BookingView `json:"booking,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingGetter
type BookingGetter interface {
	GetBooking(ctx context.Context, caller models.Caller, bookingID uuid.UUID) (models.BookingView, error)
}

func New(log *slog.Logger, bookings BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.getBooking.New"

		log := log.With(slog.String("op", op))

		caller, ok := mwidentity.CallerFrom(r.Context())
		if !ok {
			log.Error("caller identity is missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid booking id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid booking id format"))
			return
		}

		log = log.With(
			slog.String("booking_id", bookingID.String()),
			slog.String("user_id", caller.ID),
		)

		view, err := bookings.GetBooking(r.Context(), caller, bookingID)
		if err != nil {
			log.Error("failed to get booking", sl.Err(err))

			status, msg := apierr.Resolve(err, "failed to get booking")
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("booking received")

		render.JSON(w, r, BookingResponse{
			Response: response.OK(),
			Booking:  &view,
		})
	}
}
