package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCheckedIn BookingStatus = "checked_in"
	StatusCompleted BookingStatus = "completed"
)

// ReservingStatuses hold the room: a booking in any of them blocks overlapping requests.
var ReservingStatuses = []BookingStatus{StatusPending, StatusApproved, StatusCheckedIn}

func (s BookingStatus) Reserves() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCheckedIn:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	switch s {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

func (s BookingStatus) Valid() bool {
	return s.Reserves() || s.Terminal()
}

type Booking struct {
	ID              string        `json:"id"`
	RoomID          string        `json:"room_id"`
	RequesterID     string        `json:"user_id"`
	RequesterName   string        `json:"user_name,omitempty"`
	RequesterEmail  string        `json:"user_email,omitempty"`
	Purpose         string        `json:"purpose"`
	AudienceCount   int           `json:"audience_count"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         time.Time     `json:"end_time"`
	Status          BookingStatus `json:"status"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
	QRToken         *string       `json:"qr_token,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (b Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// StatusUpdate is applied by a compare-and-swap on the current status.
// Nil pointer fields leave the stored value untouched.
type StatusUpdate struct {
	Status          BookingStatus
	RejectionReason *string
	QRToken         *string
	UpdatedAt       time.Time
}

// Apply returns b with u applied.
func (u StatusUpdate) Apply(b Booking) Booking {
	b.Status = u.Status
	b.UpdatedAt = u.UpdatedAt
	if u.RejectionReason != nil {
		reason := *u.RejectionReason
		b.RejectionReason = &reason
	}
	if u.QRToken != nil {
		token := *u.QRToken
		b.QRToken = &token
	}
	return b
}

// BookingView is a booking joined with its room display data.
type BookingView struct {
	Booking
	Room *Room `json:"room,omitempty"`
}

type BookingFilter struct {
	RequesterID string
	RoomID      string
	Statuses    []BookingStatus
	EndedBefore time.Time
}

type BookingEvent struct {
	Type        string        `json:"type"`
	BookingID   string        `json:"booking_id"`
	RoomID      string        `json:"room_id"`
	RequesterID string        `json:"user_id"`
	Status      BookingStatus `json:"status"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	OccurredAt  time.Time     `json:"occurred_at"`
}
