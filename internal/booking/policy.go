package booking

import (
	"fmt"
	"roombooker/internal/config"
	"roombooker/internal/models"
	"time"
)

// Policy holds the operating-hours window and the other knobs the engine does not
// treat as business law.
type Policy struct {
	Location *time.Location
	// OpenAt and CloseAt are offsets from local midnight.
	OpenAt                 time.Duration
	CloseAt                time.Duration
	SlotStep               time.Duration
	ShowBlockedSlots       bool
	ShowOrganizer          bool
	DefaultRejectionReason string
	QRCodeURL              string
	NotifyTimeout          time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		Location:               time.Local,
		OpenAt:                 8 * time.Hour,
		CloseAt:                16 * time.Hour,
		SlotStep:               time.Hour,
		ShowOrganizer:          true,
		DefaultRejectionReason: "No reason provided",
		QRCodeURL:              "https://api.qrserver.com/v1/create-qr-code/?size=150x150&data=%s",
		NotifyTimeout:          10 * time.Second,
	}
}

func NewPolicy(cfg config.Booking) (Policy, error) {
	const op = "booking.NewPolicy"

	p := DefaultPolicy()

	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return Policy{}, fmt.Errorf("%s: %w", op, err)
		}
		p.Location = loc
	}

	if cfg.OpenTime != "" {
		open, err := ParseClock(cfg.OpenTime)
		if err != nil {
			return Policy{}, fmt.Errorf("%s: open time: %w", op, err)
		}
		p.OpenAt = open
	}

	if cfg.CloseTime != "" {
		closeAt, err := ParseClock(cfg.CloseTime)
		if err != nil {
			return Policy{}, fmt.Errorf("%s: close time: %w", op, err)
		}
		p.CloseAt = closeAt
	}

	if p.OpenAt >= p.CloseAt {
		return Policy{}, fmt.Errorf("%s: open time %s is not before close time %s", op, cfg.OpenTime, cfg.CloseTime)
	}

	if cfg.SlotStep > 0 {
		p.SlotStep = cfg.SlotStep
	}
	if cfg.DefaultRejectionReason != "" {
		p.DefaultRejectionReason = cfg.DefaultRejectionReason
	}
	if cfg.QRCodeURL != "" {
		p.QRCodeURL = cfg.QRCodeURL
	}
	if cfg.NotifyTimeout > 0 {
		p.NotifyTimeout = cfg.NotifyTimeout
	}
	p.ShowBlockedSlots = cfg.ShowBlockedSlots
	p.ShowOrganizer = !cfg.HideOrganizer

	return p, nil
}

// ParseClock parses "HH:MM" into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func (p Policy) location() *time.Location {
	if p.Location == nil {
		return time.Local
	}
	return p.Location
}

// Day returns the local calendar day containing date.
func (p Policy) Day(date time.Time) models.Interval {
	y, m, d := date.In(p.location()).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, p.location())
	return models.Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// OperatingWindow returns the operating hours of the local day containing date. Both ends
// are wall-clock times, so a DST shift that day does not move them.
func (p Policy) OperatingWindow(date time.Time) models.Interval {
	day := p.Day(date)
	return models.Interval{Start: p.wallClock(day.Start, p.OpenAt), End: p.wallClock(day.Start, p.CloseAt)}
}

func (p Policy) wallClock(day time.Time, offset time.Duration) time.Time {
	y, m, d := day.Date()
	hour := int(offset / time.Hour)
	minute := int(offset % time.Hour / time.Minute)
	return time.Date(y, m, d, hour, minute, 0, 0, p.location())
}

// WithinOperatingHours reports whether [start, end) lies inside the operating hours of
// start's day. It is advisory: bookings outside the window are still accepted.
func (p Policy) WithinOperatingHours(start, end time.Time) bool {
	window := models.Interval{Start: start, End: end}
	return window.Valid() && p.OperatingWindow(start).Contains(window)
}
