package listBookings

import (
	"context"
	"log/slog"
	"net/http"

	"ticketBooker/internal/http-server/handlers/apierr"
	"ticketBooker/internal/http-server/middleware/mwidentity"
	"ticketBooker/internal/lib/api/response"
	"ticketBooker/internal/lib/logger/sl"
	"ticketBooker/internal/models"

	"github.com/go-chi/render"
)

type BookingsResponse struct {
	response.Response
	Bookings []models.BookingView `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsLister
type BookingsLister interface {
	ListBookings(ctx context.Context, caller models.Caller) ([]models.BookingView, error)
}

func New(log *slog.Logger, bookings BookingsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.listBookings.New"

		log := log.With(slog.String("op", op))

		caller, ok := mwidentity.CallerFrom(r.Context())
		if !ok {
			log.Error("caller identity is missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		log = log.With(slog.String("user_id", caller.ID))

		views, err := bookings.ListBookings(r.Context(), caller)
		if err != nil {
			log.Error("failed to list bookings", sl.Err(err))

			status, msg := apierr.Resolve(err, "failed to list bookings")
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		if views == nil {
			views = []models.BookingView{}
		}

		log.Info("bookings listed", slog.Int("count", len(views)))

		render.JSON(w, r, BookingsResponse{
			Response: response.OK(),
			Bookings: views,
		})
	}
}
