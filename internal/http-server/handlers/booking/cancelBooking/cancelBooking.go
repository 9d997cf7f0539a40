package cancelBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"roombooker/internal/booking"
	"roombooker/internal/http-server/middleware/mwauth"
	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type Response struct {
	response.Response
	Booking models.Booking `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCanceller
type BookingCanceller interface {
	Cancel(ctx context.Context, caller models.CallerIdentity, id string) (models.Booking, error)
}

func New(log *slog.Logger, canceller BookingCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.cancelBooking.New"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("booking id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		log = log.With(slog.String("booking_id", id))

		caller, ok := mwauth.CallerFromContext(r.Context())
		if !ok {
			log.Error("caller identity is missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		b, err := canceller.Cancel(r.Context(), caller, id)
		if err != nil {
			log.Error("failed to cancel booking", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
			case errors.Is(err, booking.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
			case errors.Is(err, booking.ErrInvalidTransition):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("booking can no longer be cancelled"))
			case errors.Is(err, booking.ErrTransient):
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("service temporarily unavailable, please retry"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to cancel booking"))
			}
			return
		}

		log.Info("booking cancelled", slog.String("by", caller.ID))

		responseOK(w, r, b)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, b models.Booking) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Booking:  b,
	})
}
