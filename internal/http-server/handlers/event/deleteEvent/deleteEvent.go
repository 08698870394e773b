package deleteEvent

import (
	"context"
	"log/slog"
	"net/http"

	"ticketBooker/internal/http-server/handlers/apierr"
	"ticketBooker/internal/lib/api/response"
	"ticketBooker/internal/lib/logger/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventDeleter
type EventDeleter interface {
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

func New(log *slog.Logger, deleter EventDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.deleteEvent.New"

		log := log.With(slog.String("op", op))

		eventID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))
			return
		}

		log = log.With(slog.String("event_id", eventID.String()))

		if err = deleter.DeleteEvent(r.Context(), eventID); err != nil {
			log.Error("failed to delete event", sl.Err(err))

			status, msg := apierr.Resolve(err, "failed to delete event")
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("event deleted")

		render.JSON(w, r, response.OK())
	}
}
