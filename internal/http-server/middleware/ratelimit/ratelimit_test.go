package ratelimit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"roombooker/internal/http-server/middleware/mwauth"
	"roombooker/internal/lib/logger/handlers/slogdiscard"
	"roombooker/internal/models"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func newRouter(counter Counter, limit int) http.Handler {
	router := chi.NewRouter()
	router.Use(New(slogdiscard.NewDiscardLogger(), counter, "checkin", limit, time.Minute))
	router.Post("/checkin", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return router
}

func authed(id string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/checkin", nil)
	return req.WithContext(mwauth.WithCaller(req.Context(), models.CallerIdentity{ID: id}))
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		mockSetup      func(mock redismock.ClientMock)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "First request opens window",
			mockSetup: func(mock redismock.ClientMock) {
				mock.ExpectIncr("ratelimit:checkin:user:u-1").SetVal(1)
				mock.ExpectExpire("ratelimit:checkin:user:u-1", time.Minute).SetVal(true)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Within limit",
			mockSetup: func(mock redismock.ClientMock) {
				mock.ExpectIncr("ratelimit:checkin:user:u-1").SetVal(3)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Over limit",
			mockSetup: func(mock redismock.ClientMock) {
				mock.ExpectIncr("ratelimit:checkin:user:u-1").SetVal(4)
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   `{"status":"Error","error":"too many requests"}`,
		},
		{
			name: "Redis unavailable",
			mockSetup: func(mock redismock.ClientMock) {
				mock.ExpectIncr("ratelimit:checkin:user:u-1").SetErr(errors.New("dial tcp: connection refused"))
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			db, mock := redismock.NewClientMock()
			tc.mockSetup(mock)

			rr := httptest.NewRecorder()
			newRouter(db, 3).ServeHTTP(rr, authed("u-1"))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
				assert.Equal(t, "60", rr.Header().Get("Retry-After"))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRateLimitAnonymousKeyedByAddress(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	mock.ExpectIncr("ratelimit:checkin:addr:10.0.0.7:5555").SetVal(2)

	req := httptest.NewRequest(http.MethodPost, "/checkin", nil)
	req.RemoteAddr = "10.0.0.7:5555"

	rr := httptest.NewRecorder()
	newRouter(db, 3).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
