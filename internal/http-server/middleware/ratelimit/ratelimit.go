package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"roombooker/internal/http-server/middleware/mwauth"
	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"github.com/redis/go-redis/v9"
)

// Counter is the subset of the redis client the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// New limits every caller to limit requests per fixed window on the wrapped routes.
// Callers are keyed by identity when mwauth ran before, by remote address otherwise.
// Redis failures let the request through.
func New(log *slog.Logger, counter Counter, scope string, limit int, window time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/ratelimit"),
			slog.String("scope", scope),
		)

		log.Info("rate limit middleware enabled", slog.Int("limit", limit), slog.String("window", window.String()))

		fn := func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + scope + ":" + callerKey(r)

			count, err := counter.Incr(r.Context(), key).Result()
			if err != nil {
				log.Error("failed to increment rate counter", slog.String("key", key), sl.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				if err := counter.Expire(r.Context(), key, window).Err(); err != nil {
					log.Error("failed to set rate window", slog.String("key", key), sl.Err(err))
				}
			}

			if count > int64(limit) {
				log.Warn("rate limit exceeded", slog.String("key", key), slog.Int64("count", count))
				w.Header().Set("Retry-After", retryAfter(window))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func callerKey(r *http.Request) string {
	if caller, ok := mwauth.CallerFromContext(r.Context()); ok && caller.ID != "" {
		return "user:" + caller.ID
	}
	return "addr:" + r.RemoteAddr
}

func retryAfter(window time.Duration) string {
	secs := int(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
