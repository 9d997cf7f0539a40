package cancelBooking

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"roombooker/internal/booking"
	"roombooker/internal/http-server/handlers/booking/cancelBooking/mocks"
	"roombooker/internal/http-server/middleware/mwauth"
	"roombooker/internal/lib/logger/handlers/slogdiscard"
	"roombooker/internal/models"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCancelBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	caller := models.CallerIdentity{ID: "u-1"}

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.BookingCanceller)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, caller, "b-1").
					Return(models.Booking{ID: "b-1", Status: models.StatusCancelled}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Not found",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, caller, "b-1").
					Return(models.Booking{}, fmt.Errorf("booking.Cancel: %w", booking.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"booking not found"}`,
		},
		{
			name: "Not the owner",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, caller, "b-1").
					Return(models.Booking{}, fmt.Errorf("booking.Cancel: %w", booking.ErrForbidden))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"forbidden"}`,
		},
		{
			name: "Already checked in",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, caller, "b-1").
					Return(models.Booking{}, fmt.Errorf("booking.Cancel: %w", booking.ErrInvalidTransition))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"booking can no longer be cancelled"}`,
		},
		{
			name: "Unexpected error",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, caller, "b-1").Return(models.Booking{}, assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to cancel booking"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			canceller := mocks.NewBookingCanceller(t)
			tc.mockSetup(canceller)

			router := chi.NewRouter()
			router.Post("/bookings/{id}/cancel", New(logger, canceller))

			req := httptest.NewRequest(http.MethodPost, "/bookings/b-1/cancel", nil)
			req = req.WithContext(mwauth.WithCaller(req.Context(), caller))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else {
				assert.Contains(t, rr.Body.String(), `"status":"cancelled"`)
			}
		})
	}
}
