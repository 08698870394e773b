package getEventInfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticketBooker/internal/http-server/handlers/event/getEventInfo/mocks"
	"ticketBooker/internal/lib/logger/handlers/slogdiscard"
	"ticketBooker/internal/models"
	"ticketBooker/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetEventInfoHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testTime := time.Date(2026, 12, 25, 18, 0, 0, 0, time.UTC)
	testEvent := models.Event{
		ID:               uuid.New(),
		Title:            "Test Event",
		Date:             testTime,
		Status:           models.EventApproved,
		Capacity:         100,
		TicketsAvailable: 50,
	}

	testCases := []struct {
		name           string
		eventID        string
		mockSetup      func(m *mocks.EventGetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:    "Success",
			eventID: testEvent.ID.String(),
			mockSetup: func(m *mocks.EventGetter) {
				m.On("Event", mock.Anything, testEvent.ID).Return(testEvent, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var response EventInfoResponse
				require.NoError(t, json.Unmarshal([]byte(body), &response))

				assert.Equal(t, "OK", response.Status)
				require.NotNil(t, response.Event)
				assert.Equal(t, testEvent.ID, response.Event.ID)
				assert.Equal(t, 50, response.Event.TicketsAvailable)
			},
		},
		{
			name:           "Invalid event ID format",
			eventID:        "invalid",
			mockSetup:      func(m *mocks.EventGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid event id format"}`,
		},
		{
			name:    "Event not found",
			eventID: testEvent.ID.String(),
			mockSetup: func(m *mocks.EventGetter) {
				m.On("Event", mock.Anything, testEvent.ID).
					Return(models.Event{}, fmt.Errorf("events.Service.Event: %w", storage.ErrEventNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"event not found"}`,
		},
		{
			name:    "Internal server error",
			eventID: testEvent.ID.String(),
			mockSetup: func(m *mocks.EventGetter) {
				m.On("Event", mock.Anything, testEvent.ID).Return(models.Event{}, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get event information"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewEventGetter(t)
			tc.mockSetup(mockGetter)

			router := chi.NewRouter()
			router.Route("/events", func(r chi.Router) {
				r.Get("/{id}", New(logger, mockGetter))
			})

			req, err := http.NewRequest(http.MethodGet, "/events/"+tc.eventID, nil)
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

func TestMissingEventID(t *testing.T) {
	t.Parallel()

	mockGetter := mocks.NewEventGetter(t)
	handler := New(slogdiscard.NewDiscardLogger(), mockGetter)

	req := httptest.NewRequest(http.MethodGet, "/events/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"status":"Error","error":"event id is required"}`, rr.Body.String())
}
