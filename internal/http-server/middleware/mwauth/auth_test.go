package mwauth

import (
	"net/http"
	"net/http/httptest"
	"roombooker/internal/lib/logger/handlers/slogdiscard"
	"roombooker/internal/models"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		path           string
		headers        map[string]string
		expectedStatus int
		expectedBody   string
		expectedCaller models.CallerIdentity
	}{
		{
			name: "Authenticated user",
			path: "/bookings",
			headers: map[string]string{
				HeaderUserID:    " u-1 ",
				HeaderUserRole:  "Mahasiswa",
				HeaderUserName:  "Ana",
				HeaderUserEmail: "ana@campus.local",
			},
			expectedStatus: http.StatusOK,
			expectedCaller: models.CallerIdentity{ID: "u-1", Role: "mahasiswa", Name: "Ana", Email: "ana@campus.local"},
		},
		{
			name:           "Missing user id",
			path:           "/bookings",
			headers:        map[string]string{HeaderUserRole: "admin"},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:           "Admin route as admin",
			path:           "/admin",
			headers:        map[string]string{HeaderUserID: "a-1", HeaderUserRole: "ADMIN"},
			expectedStatus: http.StatusOK,
			expectedCaller: models.CallerIdentity{ID: "a-1", Role: models.RoleAdmin},
		},
		{
			name:           "Admin route as user",
			path:           "/admin",
			headers:        map[string]string{HeaderUserID: "u-1", HeaderUserRole: "dosen"},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"forbidden"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got models.CallerIdentity

			handler := func(w http.ResponseWriter, r *http.Request) {
				caller, ok := CallerFromContext(r.Context())
				require.True(t, ok)
				got = caller
				w.WriteHeader(http.StatusOK)
			}

			router := chi.NewRouter()
			router.Use(New(logger))
			router.Get("/bookings", handler)
			router.With(RequireRole(models.RoleAdmin)).Get("/admin", handler)

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
			if tc.expectedStatus == http.StatusOK {
				assert.Equal(t, tc.expectedCaller, got)
			}
		})
	}
}

func TestRequireRoleWithoutCaller(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})

	rr := httptest.NewRecorder()
	RequireRole(models.RoleAdmin)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
