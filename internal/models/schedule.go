package models

import "time"

type ScheduleEntry struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Status    BookingStatus `json:"status"`
	Organizer string        `json:"organizer,omitempty"`
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
