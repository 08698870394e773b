package cancelBooking

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

type CancelResponse struct {
	response.Response
	Booking *models.Booking `json:"booking,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCanceller
type BookingCanceller interface {
	CancelBooking(ctx context.Context, caller models.Caller, bookingID uuid.UUID) (models.Booking, error)
}

func New(log *slog.Logger, bookings BookingCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.cancelBooking.New"

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

		b, err := bookings.CancelBooking(r.Context(), caller, bookingID)
		if err != nil {
			log.Error("failed to cancel booking", sl.Err(err))

			status, msg := apierr.Resolve(err, "failed to cancel booking")
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("booking cancelled successfully")

		responseOK(w, r, b)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, b models.Booking) {
	render.JSON(w, r, CancelResponse{
		Response: response.OK(),
		Booking:  &b,
	})
}
