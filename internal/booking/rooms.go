package booking

import (
	"context"
	"fmt"
	"log/slog"
	"roombooker/internal/models"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RoomRequest struct {
	Code     string
	Name     string
	Capacity int
}

// RegisterRoom makes a new room bookable. Room codes are unique.
func (e *Engine) RegisterRoom(ctx context.Context, caller models.CallerIdentity, req RoomRequest) (room models.Room, err error) {
	const op = "booking.RegisterRoom"
	defer e.track(op, time.Now(), &err)

	if !caller.IsAdmin() {
		return models.Room{}, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	now := e.clock.Now()
	room = models.Room{
		ID:        uuid.NewString(),
		Code:      strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:      strings.TrimSpace(req.Name),
		Capacity:  req.Capacity,
		Status:    models.RoomAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = e.store.SaveRoom(ctx, room); err != nil {
		return models.Room{}, classify(op, err)
	}

	e.log.Info("room registered", slog.String("room_id", room.ID), slog.String("code", room.Code))

	return room, nil
}
