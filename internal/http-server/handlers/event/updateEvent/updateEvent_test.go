package updateEvent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticketBooker/internal/events"
	"ticketBooker/internal/http-server/handlers/event/updateEvent/mocks"
	"ticketBooker/internal/lib/logger/handlers/slogdiscard"
	"ticketBooker/internal/models"
	"ticketBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func statusOnly(status models.EventStatus) interface{} {
	return mock.MatchedBy(func(in events.UpdateEventInput) bool {
		return in.Price == nil && in.Status != nil && *in.Status == status
	})
}

func TestUpdateEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	eventID := uuid.New()

	approved := models.Event{ID: eventID, Status: models.EventApproved, TicketsAvailable: 40}

	testCases := []struct {
		name           string
		eventID        string
		requestBody    string
		mockSetup      func(m *mocks.EventUpdater)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Approve",
			eventID:     eventID.String(),
			requestBody: `{"status": "approved"}`,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("UpdateEvent", mock.Anything, eventID, statusOnly(models.EventApproved)).Return(approved, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp UpdateResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))

				require.NotNil(t, resp.Event)
				assert.Equal(t, models.EventApproved, resp.Event.Status)
				assert.Equal(t, 40, resp.Event.TicketsAvailable)
			},
		},
		{
			name:        "Change price",
			eventID:     eventID.String(),
			requestBody: `{"price": "19.99"}`,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("UpdateEvent", mock.Anything, eventID, mock.MatchedBy(func(in events.UpdateEventInput) bool {
					return in.Status == nil && in.Price != nil && in.Price.Equal(decimal.RequireFromString("19.99"))
				})).Return(approved, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid event ID format",
			eventID:        "invalid",
			requestBody:    `{"status": "approved"}`,
			mockSetup:      func(m *mocks.EventUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id format"}`,
		},
		{
			name:           "Invalid JSON",
			eventID:        eventID.String(),
			requestBody:    `invalid json`,
			mockSetup:      func(m *mocks.EventUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "Unknown status",
			eventID:        eventID.String(),
			requestBody:    `{"status": "sold_out"}`,
			mockSetup:      func(m *mocks.EventUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Status must be one of [pending approved cancelled]"}`,
		},
		{
			name:        "Nothing to update",
			eventID:     eventID.String(),
			requestBody: `{}`,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("UpdateEvent", mock.Anything, eventID, events.UpdateEventInput{}).
					Return(models.Event{}, fmt.Errorf("events.Service.UpdateEvent: %w: nothing to update", events.ErrInvalidEvent))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event: nothing to update"}`,
		},
		{
			name:        "Event not found",
			eventID:     eventID.String(),
			requestBody: `{"status": "cancelled"}`,
			mockSetup: func(m *mocks.EventUpdater) {
				m.On("UpdateEvent", mock.Anything, eventID, statusOnly(models.EventCancelled)).
					Return(models.Event{}, fmt.Errorf("op: %w", storage.ErrEventNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockUpdater := mocks.NewEventUpdater(t)
			tc.mockSetup(mockUpdater)

			router := chi.NewRouter()
			router.Patch("/events/{id}", New(logger, mockUpdater))

			req, err := http.NewRequest(http.MethodPatch, "/events/"+tc.eventID, bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
