package availableSlots

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"roombooker/internal/booking"
	"roombooker/internal/lib/api/response"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/models"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const dateLayout = "2006-01-02"

type Response struct {
	response.Response
	Date     string        `json:"date"`
	Duration int           `json:"duration"`
	Slots    []models.Slot `json:"slots"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SlotGenerator
type SlotGenerator interface {
	GenerateSlots(ctx context.Context, q booking.SlotQuery) ([]models.Slot, error)
}

// New serves candidate start times for ?date=YYYY-MM-DD&duration=<minutes>.
// show_blocked overrides showBlocked, the configured default.
func New(log *slog.Logger, generator SlotGenerator, loc *time.Location, showBlocked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.availableSlots.New"

		log := log.With(slog.String("op", op))

		roomID := chi.URLParam(r, "id")
		if roomID == "" {
			log.Error("room id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("room id is required"))
			return
		}

		log = log.With(slog.String("room_id", roomID))

		query := r.URL.Query()

		date, err := time.ParseInLocation(dateLayout, query.Get("date"), loc)
		if err != nil {
			log.Error("invalid date", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date format, expected YYYY-MM-DD"))
			return
		}

		durationStr := query.Get("duration")
		if durationStr == "" {
			log.Error("duration is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("duration is required"))
			return
		}

		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			log.Error("invalid duration format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid duration format"))
			return
		}

		includeBlocked := showBlocked
		if v := query.Get("show_blocked"); v != "" {
			includeBlocked, err = strconv.ParseBool(v)
			if err != nil {
				log.Error("invalid show_blocked flag", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid show_blocked flag"))
				return
			}
		}

		slots, err := generator.GenerateSlots(r.Context(), booking.SlotQuery{
			RoomID:          roomID,
			Date:            date,
			DurationMinutes: duration,
			IncludeBlocked:  includeBlocked,
		})
		if err != nil {
			log.Error("failed to generate slots", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrInvalidDuration):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(booking.ErrInvalidDuration.Error()))
			case errors.Is(err, booking.ErrNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("room not found"))
			case errors.Is(err, booking.ErrTransient):
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("service temporarily unavailable, please retry"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to generate slots"))
			}
			return
		}

		if slots == nil {
			slots = []models.Slot{}
		}

		log.Debug("slots generated", slog.Int("count", len(slots)))

		responseOK(w, r, query.Get("date"), duration, slots)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, date string, duration int, slots []models.Slot) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Date:     date,
		Duration: duration,
		Slots:    slots,
	})
}
