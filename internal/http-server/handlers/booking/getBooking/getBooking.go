package getBooking

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
	Booking models.BookingView `json:"booking"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingGetter
type BookingGetter interface {
	GetByID(ctx context.Context, caller models.CallerIdentity, id string) (models.BookingView, error)
}

func New(log *slog.Logger, getter BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.getBooking.New"

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

		v, err := getter.GetByID(r.Context(), caller, id)
		if err != nil {
			log.Error("failed to get booking", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
			case errors.Is(err, booking.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
			case errors.Is(err, booking.ErrTransient):
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("service temporarily unavailable, please retry"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to get booking"))
			}
			return
		}

		log.Info("booking retrieved successfully")

		responseOK(w, r, v)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, v models.BookingView) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Booking:  v,
	})
}
