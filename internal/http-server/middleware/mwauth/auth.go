package mwauth

import (
	"context"
	"log/slog"
	"net/http"
	"roombooker/internal/lib/api/response"
	"roombooker/internal/models"
	"strings"

	"github.com/go-chi/render"
)

// Identity headers are set by the authenticating gateway in front of the service.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserRole  = "X-User-Role"
	HeaderUserName  = "X-User-Name"
	HeaderUserEmail = "X-User-Email"
)

type ctxKey struct{}

func WithCaller(ctx context.Context, caller models.CallerIdentity) context.Context {
	return context.WithValue(ctx, ctxKey{}, caller)
}

func CallerFromContext(ctx context.Context) (models.CallerIdentity, bool) {
	caller, ok := ctx.Value(ctxKey{}).(models.CallerIdentity)
	return caller, ok
}

// New resolves the caller from the identity headers and rejects anonymous requests.
func New(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/auth"),
		)

		log.Info("auth middleware enabled")

		fn := func(w http.ResponseWriter, r *http.Request) {
			caller := models.CallerIdentity{
				ID:    strings.TrimSpace(r.Header.Get(HeaderUserID)),
				Role:  models.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole)))),
				Name:  strings.TrimSpace(r.Header.Get(HeaderUserName)),
				Email: strings.TrimSpace(r.Header.Get(HeaderUserEmail)),
			}

			if caller.ID == "" {
				log.Warn("unauthenticated request", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		}

		return http.HandlerFunc(fn)
	}
}

// RequireRole lets through only callers holding role. It must run after New.
func RequireRole(role models.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok || caller.Role != role {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
