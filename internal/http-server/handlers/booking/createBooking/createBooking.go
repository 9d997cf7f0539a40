package createBooking

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
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	RoomID        string    `json:"room_id" validate:"required"`
	Purpose       string    `json:"purpose" validate:"required"`
	AudienceCount int       `json:"audience_count" validate:"gte=0"`
	StartTime     time.Time `json:"start_time" validate:"required"`
	EndTime       time.Time `json:"end_time" validate:"required"`
}

type Response struct {
	response.Response
	Booking              models.Booking `json:"booking"`
	WithinOperatingHours bool           `json:"within_operating_hours"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	Create(ctx context.Context, caller models.CallerIdentity, req booking.CreateRequest) (models.Booking, error)
	WithinOperatingHours(start, end time.Time) bool
}

func New(log *slog.Logger, creator BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log := log.With(
			slog.String("op", op),
		)

		caller, ok := mwauth.CallerFromContext(r.Context())
		if !ok {
			log.Error("caller identity is missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		log = log.With(slog.String("user_id", caller.ID))

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		b, err := creator.Create(r.Context(), caller, booking.CreateRequest{
			RoomID:        req.RoomID,
			Purpose:       req.Purpose,
			AudienceCount: req.AudienceCount,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
		})
		if err != nil {
			log.Error("failed to create booking", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrInvalidRange):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(booking.ErrInvalidRange.Error()))
			case errors.Is(err, booking.ErrNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("room not found"))
			case errors.Is(err, booking.ErrSlotConflict):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error(booking.ErrSlotConflict.Error()))
			case errors.Is(err, booking.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
			case errors.Is(err, booking.ErrTransient):
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("service temporarily unavailable, please retry"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to create booking"))
			}
			return
		}

		log.Info("booking created", slog.String("booking_id", b.ID))

		responseCreated(w, r, b, creator.WithinOperatingHours(b.StartTime, b.EndTime))
	}
}

func responseCreated(w http.ResponseWriter, r *http.Request, b models.Booking, withinHours bool) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, Response{
		Response:             response.OK(),
		Booking:              b,
		WithinOperatingHours: withinHours,
	})
}
