package createEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ticketBooker/internal/events"
	"ticketBooker/internal/http-server/handlers/apierr"
	"ticketBooker/internal/http-server/middleware/mwidentity"
	"ticketBooker/internal/lib/api/response"
	"ticketBooker/internal/lib/logger/sl"
	"ticketBooker/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type EventRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Date        time.Time       `json:"date" validate:"required"`
	Capacity    int             `json:"capacity" validate:"required,gte=1"`
	Price       decimal.Decimal `json:"price"`
}

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, in events.CreateEventInput) (models.Event, error)
}

func New(log *slog.Logger, event EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(
			slog.String("op", op),
		)

		var req EventRequest

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

		// The organizer is whoever the gateway says is calling, if anyone.
		caller, _ := mwidentity.CallerFrom(r.Context())

		ev, err := event.CreateEvent(r.Context(), events.CreateEventInput{
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			OrganizerID: caller.ID,
			Date:        req.Date,
			Capacity:    req.Capacity,
			Price:       req.Price,
		})
		if err != nil {
			log.Error("failed to add event", sl.Err(err))

			status, msg := apierr.Resolve(err, "failed to add event")
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))

			return
		}

		log.Info("event added", slog.String("id", ev.ID.String()))

		responseCreated(w, r, ev)
	}
}

func responseCreated(w http.ResponseWriter, r *http.Request, ev models.Event) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, EventResponse{
		Response: response.OK(),
		Event:    &ev,
	})
}
