package listBookings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"roombooker/internal/booking"
	"roombooker/internal/http-server/handlers/booking/listBookings/mocks"
	"roombooker/internal/http-server/middleware/mwauth"
	"roombooker/internal/lib/logger/handlers/slogdiscard"
	"roombooker/internal/models"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListBookingsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	student := models.CallerIdentity{ID: "u-1", Role: "mahasiswa"}
	admin := models.CallerIdentity{ID: "a-1", Role: models.RoleAdmin}

	views := []models.BookingView{
		{
			Booking: models.Booking{ID: "b-2", RoomID: "room-1", RequesterID: "u-1", Status: models.StatusApproved},
			Room:    &models.Room{ID: "room-1", Code: "LAB-1", Name: "Computer Lab 1"},
		},
		{
			Booking: models.Booking{ID: "b-1", RoomID: "room-1", RequesterID: "u-1", Status: models.StatusPending},
		},
	}

	testCases := []struct {
		name           string
		all            bool
		caller         models.CallerIdentity
		mockSetup      func(m *mocks.BookingLister)
		expectedStatus int
		expectedBody   string
		expectedIDs    []string
	}{
		{
			name:   "Own bookings",
			caller: student,
			mockSetup: func(m *mocks.BookingLister) {
				m.On("FindAll", mock.Anything, student, booking.ListFilter{}).Return(views, nil)
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{"b-2", "b-1"},
		},
		{
			name:   "All bookings as admin",
			all:    true,
			caller: admin,
			mockSetup: func(m *mocks.BookingLister) {
				m.On("FindAll", mock.Anything, admin, booking.ListFilter{All: true}).Return(views[:1], nil)
			},
			expectedStatus: http.StatusOK,
			expectedIDs:    []string{"b-2"},
		},
		{
			name:   "No bookings",
			caller: student,
			mockSetup: func(m *mocks.BookingLister) {
				m.On("FindAll", mock.Anything, student, booking.ListFilter{}).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","bookings":[]}`,
		},
		{
			name:   "All bookings as user",
			all:    true,
			caller: student,
			mockSetup: func(m *mocks.BookingLister) {
				m.On("FindAll", mock.Anything, student, booking.ListFilter{All: true}).Return(nil, booking.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"forbidden"}`,
		},
		{
			name:   "Storage error",
			caller: student,
			mockSetup: func(m *mocks.BookingLister) {
				m.On("FindAll", mock.Anything, student, booking.ListFilter{}).Return(nil, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get bookings"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lister := mocks.NewBookingLister(t)
			tc.mockSetup(lister)

			router := chi.NewRouter()
			router.Get("/bookings", New(logger, lister, tc.all))

			req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
			req = req.WithContext(mwauth.WithCaller(req.Context(), tc.caller))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}

			if tc.expectedIDs != nil {
				var resp Response
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

				ids := make([]string, 0, len(resp.Bookings))
				for _, b := range resp.Bookings {
					ids = append(ids, b.ID)
				}
				assert.Equal(t, tc.expectedIDs, ids)
			}
		})
	}
}

func TestListBookingsIncludesRoom(t *testing.T) {
	t.Parallel()

	caller := models.CallerIdentity{ID: "u-1"}
	lister := mocks.NewBookingLister(t)
	lister.On("FindAll", mock.Anything, caller, booking.ListFilter{}).Return([]models.BookingView{
		{
			Booking: models.Booking{ID: "b-1", RoomID: "room-1"},
			Room:    &models.Room{ID: "room-1", Name: "Computer Lab 1"},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	req = req.WithContext(mwauth.WithCaller(req.Context(), caller))

	rr := httptest.NewRecorder()
	New(slogdiscard.NewDiscardLogger(), lister, false).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"room":{"id":"room-1"`)
	assert.Contains(t, rr.Body.String(), `"name":"Computer Lab 1"`)
}
