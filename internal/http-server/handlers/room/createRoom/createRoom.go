package createRoom

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

type RoomRequest struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=1"`
}

type RoomResponse struct {
	response.Response
	Room models.Room `json:"room"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=RoomRegistrar
type RoomRegistrar interface {
	RegisterRoom(ctx context.Context, caller models.CallerIdentity, req booking.RoomRequest) (models.Room, error)
}

func New(log *slog.Logger, registrar RoomRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.room.createRoom.New"

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

		var req RoomRequest

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

		room, err := registrar.RegisterRoom(r.Context(), caller, booking.RoomRequest{
			Code:     req.Code,
			Name:     req.Name,
			Capacity: req.Capacity,
		})
		if err != nil {
			log.Error("failed to add room", sl.Err(err))

			switch {
			case errors.Is(err, booking.ErrRoomExists):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error(booking.ErrRoomExists.Error()))
			case errors.Is(err, booking.ErrForbidden):
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to add room"))
			}

			return
		}

		log.Info("room added", slog.String("id", room.ID))

		responseCreated(w, r, room)
	}
}

func responseCreated(w http.ResponseWriter, r *http.Request, room models.Room) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, RoomResponse{
		Response: response.OK(),
		Room:     room,
	})
}
