package roomSchedule

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"roombooker/internal/booking"
	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/models"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const dateLayout = "2006-01-02"

type Response struct {
	response.Response
	Date     string                 `json:"date"`
	Bookings []models.ScheduleEntry `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ScheduleGetter
type ScheduleGetter interface {
	RoomSchedule(ctx context.Context, roomID string, date time.Time) ([]models.ScheduleEntry, error)
}

// New serves the public schedule of a room for ?date=YYYY-MM-DD, read in loc.
func New(log *slog.Logger, getter ScheduleGetter, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.roomSchedule.New"

		log := log.With(slog.String("op", op))

		roomID := chi.URLParam(r, "id")
		if roomID == "" {
			log.Error("room id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("room id is required"))
			return
		}

		log = log.With(slog.String("room_id", roomID))

		dateStr := r.URL.Query().Get("date")
		if dateStr == "" {
			log.Error("date is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("date is required"))
			return
		}

		date, err := time.ParseInLocation(dateLayout, dateStr, loc)
		if err != nil {
			log.Error("invalid date format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date format, expected YYYY-MM-DD"))
			return
		}

		entries, err := getter.RoomSchedule(r.Context(), roomID, date)
		if err != nil {
			log.Error("failed to get room schedule", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("room not found"))
			case errors.Is(err, booking.ErrTransient):
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("service temporarily unavailable, please retry"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to get room schedule"))
			}
			return
		}

		if entries == nil {
			entries = []models.ScheduleEntry{}
		}

		log.Info("room schedule retrieved", slog.Int("count", len(entries)))

		responseOK(w, r, dateStr, entries)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, date string, entries []models.ScheduleEntry) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Date:     date,
		Bookings: entries,
	})
}
