package storage

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomExists      = errors.New("room code already exists")
	ErrOverlap         = errors.New("booking overlaps a reserved window")
	ErrCheckinExists   = errors.New("checkin already recorded")
	ErrTokenExists     = errors.New("qr token already issued")
	ErrStaleStatus     = errors.New("booking status changed concurrently")
)
