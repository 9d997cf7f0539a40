package availableSlots

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"roombooker/internal/booking"
	"roombooker/internal/http-server/handlers/booking/availableSlots/mocks"
	"roombooker/internal/lib/logger/handlers/slogdiscard"
	"roombooker/internal/models"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAvailableSlotsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	query := func(d int, blocked bool) booking.SlotQuery {
		return booking.SlotQuery{RoomID: "room-1", Date: day, DurationMinutes: d, IncludeBlocked: blocked}
	}

	testCases := []struct {
		name           string
		url            string
		showBlocked    bool
		mockSetup      func(m *mocks.SlotGenerator)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Free slots",
			url:  "/rooms/room-1/slots?date=2026-03-02&duration=60",
			mockSetup: func(m *mocks.SlotGenerator) {
				m.On("GenerateSlots", mock.Anything, query(60, false)).Return([]models.Slot{
					{Time: "08:00", Available: true},
					{Time: "12:00", Available: true},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","date":"2026-03-02","duration":60,"slots":[` +
				`{"time":"08:00","available":true},{"time":"12:00","available":true}]}`,
		},
		{
			name:        "Blocked slots by default",
			url:         "/rooms/room-1/slots?date=2026-03-02&duration=60",
			showBlocked: true,
			mockSetup: func(m *mocks.SlotGenerator) {
				m.On("GenerateSlots", mock.Anything, query(60, true)).Return([]models.Slot{
					{Time: "10:00", Available: false},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","date":"2026-03-02","duration":60,"slots":[{"time":"10:00","available":false}]}`,
		},
		{
			name:        "Query overrides default",
			url:         "/rooms/room-1/slots?date=2026-03-02&duration=120&show_blocked=false",
			showBlocked: true,
			mockSetup: func(m *mocks.SlotGenerator) {
				m.On("GenerateSlots", mock.Anything, query(120, false)).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","date":"2026-03-02","duration":120,"slots":[]}`,
		},
		{
			name:           "Missing duration",
			url:            "/rooms/room-1/slots?date=2026-03-02",
			mockSetup:      func(m *mocks.SlotGenerator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"duration is required"}`,
		},
		{
			name:           "Non-numeric duration",
			url:            "/rooms/room-1/slots?date=2026-03-02&duration=an-hour",
			mockSetup:      func(m *mocks.SlotGenerator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid duration format"}`,
		},
		{
			name:           "Missing date",
			url:            "/rooms/room-1/slots?duration=60",
			mockSetup:      func(m *mocks.SlotGenerator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid date format, expected YYYY-MM-DD"}`,
		},
		{
			name:           "Bad show_blocked",
			url:            "/rooms/room-1/slots?date=2026-03-02&duration=60&show_blocked=maybe",
			mockSetup:      func(m *mocks.SlotGenerator) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid show_blocked flag"}`,
		},
		{
			name: "Zero duration",
			url:  "/rooms/room-1/slots?date=2026-03-02&duration=0",
			mockSetup: func(m *mocks.SlotGenerator) {
				m.On("GenerateSlots", mock.Anything, query(0, false)).
					Return(nil, fmt.Errorf("booking.GenerateSlots: %w", booking.ErrInvalidDuration))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"duration must be positive"}`,
		},
		{
			name: "Unknown room",
			url:  "/rooms/room-1/slots?date=2026-03-02&duration=60",
			mockSetup: func(m *mocks.SlotGenerator) {
				m.On("GenerateSlots", mock.Anything, query(60, false)).
					Return(nil, fmt.Errorf("booking.GenerateSlots: %w", booking.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"room not found"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			generator := mocks.NewSlotGenerator(t)
			tc.mockSetup(generator)

			router := chi.NewRouter()
			router.Get("/rooms/{id}/slots", New(logger, generator, time.UTC, tc.showBlocked))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tc.url, nil))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}
