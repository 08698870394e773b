package updateEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"ticketBooker/internal/events"
	"ticketBooker/internal/http-server/handlers/apierr"
	"ticketBooker/internal/lib/api/response"
	"ticketBooker/internal/lib/logger/sl"
	"ticketBooker/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateRequest changes the status (approval) and/or price of an event.
// Omitted fields are left untouched.
type UpdateRequest struct {
	Status *string          `json:"status,omitempty" validate:"omitempty,oneof=pending approved cancelled"`
	Price  *decimal.Decimal `json:"price,omitempty"`
}

type UpdateResponse struct {
	response.Response
	Event *models.Event `json:"event,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventUpdater
type EventUpdater interface {
	UpdateEvent(ctx context.Context, id uuid.UUID, in events.UpdateEventInput) (models.Event, error)
}

func New(log *slog.Logger, updater EventUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.updateEvent.New"

		log := log.With(slog.String("op", op))

		eventID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))
			return
		}

		log = log.With(slog.String("event_id", eventID.String()))

		var req UpdateRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		in := events.UpdateEventInput{Price: req.Price}
		if req.Status != nil {
			status := models.EventStatus(*req.Status)
			in.Status = &status
		}

		ev, err := updater.UpdateEvent(r.Context(), eventID, in)
		if err != nil {
			log.Error("failed to update event", sl.Err(err))

			status, msg := apierr.Resolve(err, "failed to update event")
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("event updated successfully", slog.String("status", string(ev.Status)))

		responseOK(w, r, ev)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, ev models.Event) {
	render.JSON(w, r, UpdateResponse{
		Response: response.OK(),
		Event:    &ev,
	})
}
