package models

import "time"

type CheckinRecord struct {
	ID          string    `json:"id"`
	BookingID   string    `json:"booking_id"`
	CheckinTime time.Time `json:"checkin_time"`
	CheckedInBy *string   `json:"checked_in_by,omitempty"`
}

type CheckinResult struct {
	BookingID string    `json:"booking_id"`
	User      string    `json:"user"`
	Room      string    `json:"room"`
	Time      time.Time `json:"time"`
}
