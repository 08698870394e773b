package getAllEvents

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticketBooker/internal/http-server/handlers/event/getAllEvents/mocks"
	"ticketBooker/internal/lib/logger/handlers/slogdiscard"
	"ticketBooker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetAllEventsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testTime := time.Date(2026, 12, 25, 18, 0, 0, 0, time.UTC)
	testEvents := []models.Event{
		{
			ID:               uuid.New(),
			Title:            "Test Event 1",
			Date:             testTime,
			Status:           models.EventApproved,
			Capacity:         100,
			TicketsAvailable: 50,
			Price:            decimal.RequireFromString("15.00"),
		},
		{
			ID:               uuid.New(),
			Title:            "Test Event 2",
			Date:             testTime.Add(24 * time.Hour),
			Status:           models.EventPending,
			Capacity:         200,
			TicketsAvailable: 200,
		},
	}

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.EventsGetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Success with events",
			mockSetup: func(m *mocks.EventsGetter) {
				m.On("Events", mock.Anything).Return(testEvents, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var response EventsResponse
				err := json.Unmarshal([]byte(body), &response)
				require.NoError(t, err)

				assert.Equal(t, "OK", response.Status)
				assert.Equal(t, "", response.Error)
				require.Len(t, response.Events, 2)
				assert.Equal(t, testEvents[0].ID, response.Events[0].ID)
				assert.Equal(t, 50, response.Events[0].TicketsAvailable)
				assert.Equal(t, "Test Event 2", response.Events[1].Title)
			},
		},
		{
			name: "Success with no events",
			mockSetup: func(m *mocks.EventsGetter) {
				m.On("Events", mock.Anything).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","events":[]}`,
		},
		{
			name: "Internal server error",
			mockSetup: func(m *mocks.EventsGetter) {
				m.On("Events", mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get events"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewEventsGetter(t)
			tc.mockSetup(mockGetter)

			handler := New(logger, mockGetter)

			req, err := http.NewRequest(http.MethodGet, "/events", nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

func TestNilEventsResponse(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	responseOK(rr, req, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"OK","events":[]}`, rr.Body.String())
}
