package listBookings

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

	"github.com/go-chi/render"
)

type Response struct {
	response.Response
	Bookings []models.BookingView `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingLister
type BookingLister interface {
	FindAll(ctx context.Context, caller models.CallerIdentity, f booking.ListFilter) ([]models.BookingView, error)
}

// New serves the caller's own bookings, or every booking when all is set.
func New(log *slog.Logger, lister BookingLister, all bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.listBookings.New"

		log := log.With(slog.String("op", op), slog.Bool("all", all))

		caller, ok := mwauth.CallerFromContext(r.Context())
		if !ok {
			log.Error("caller identity is missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		bookings, err := lister.FindAll(r.Context(), caller, booking.ListFilter{All: all})
		if err != nil {
			log.Error("failed to list bookings", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
			case errors.Is(err, booking.ErrTransient):
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("service temporarily unavailable, please retry"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to get bookings"))
			}
			return
		}

		if bookings == nil {
			bookings = []models.BookingView{}
		}

		log.Info("bookings retrieved successfully", slog.Int("count", len(bookings)))

		responseOK(w, r, bookings)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, bookings []models.BookingView) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Bookings: bookings,
	})
}
