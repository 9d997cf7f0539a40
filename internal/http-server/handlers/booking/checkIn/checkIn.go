package checkIn

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
	"github.com/go-playground/validator/v10"
)

type Request struct {
	QRToken string `json:"qr_token" validate:"required"`
}

type Response struct {
	response.Response
	Data models.CheckinResult `json:"data"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CheckInProcessor
type CheckInProcessor interface {
	CheckIn(ctx context.Context, caller models.CallerIdentity, token string) (models.CheckinResult, error)
}

func New(log *slog.Logger, processor CheckInProcessor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.checkIn.New"

		log := log.With(slog.String("op", op))

		caller, ok := mwauth.CallerFromContext(r.Context())
		if !ok {
			log.Error("caller identity is missing")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		// The token is a bearer credential and stays out of the logs.
		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		res, err := processor.CheckIn(r.Context(), caller, req.QRToken)
		if err != nil {
			log.Error("failed to check in", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrInvalidToken):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("invalid QR code"))
			case errors.Is(err, booking.ErrAlreadyCheckedIn):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("booking has already been checked in"))
			case errors.Is(err, booking.ErrInvalidTransition):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("booking is not approved"))
			case errors.Is(err, booking.ErrTransient):
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("service temporarily unavailable, please retry"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to check in"))
			}
			return
		}

		log.Info("check-in successful", slog.String("booking_id", res.BookingID), slog.String("scanned_by", caller.ID))

		responseOK(w, r, res)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, res models.CheckinResult) {
	render.JSON(w, r, Response{
		Response: response.OK(),
		Data:     res,
	})
}
