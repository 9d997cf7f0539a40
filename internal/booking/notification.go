package booking

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"
	"roombooker/internal/lib/logger/sl"
	"roombooker/internal/metrics"
	"roombooker/internal/models"
	"time"
)

var notificationTemplates = template.Must(template.New("notifications").Parse(`
{{define "approved"}}<h3>Booking Approved</h3>
<p>Hello {{.Name}},</p>
<p>Your booking request has been approved.</p>
<ul>
  <li><strong>Purpose:</strong> {{.Purpose}}</li>
  <li><strong>Date:</strong> {{.Date}}</li>
  <li><strong>Time:</strong> {{.Time}}</li>
</ul>
<p>Show this QR code to check-in:</p>
<img src="{{.QRCodeURL}}" alt="Check-in QR Code" />
<p><strong>QR Token:</strong> {{.Token}}</p>{{end}}
{{define "rejected"}}<h3>Booking Rejected</h3>
<p>Hello {{.Name}},</p>
<p>Your booking request was rejected.</p>
<p><strong>Reason:</strong> {{.Reason}}</p>
<p>Please try selecting a different time or room.</p>{{end}}
{{define "cancelled"}}<h3>Booking Cancelled</h3>
<p>Hello {{.Name}},</p>
<p>Your booking for {{.Date}}, {{.Time}} has been cancelled.</p>
<ul>
  <li><strong>Purpose:</strong> {{.Purpose}}</li>
</ul>{{end}}
`))

var notificationSubjects = map[models.BookingStatus]string{
	models.StatusApproved:  "Booking Approved - Room Booking",
	models.StatusRejected:  "Booking Rejected - Room Booking",
	models.StatusCancelled: "Booking Cancelled - Room Booking",
}

type notificationData struct {
	Name      string
	Purpose   string
	Date      string
	Time      string
	QRCodeURL string
	Token     string
	Reason    string
}

// composeNotification renders the email for b's current status.
// ok is false when the status carries no notification.
func composeNotification(b models.Booking, p Policy) (subject, html string, ok bool, err error) {
	subject, ok = notificationSubjects[b.Status]
	if !ok {
		return "", "", false, nil
	}

	loc := p.location()
	data := notificationData{
		Name:    b.RequesterName,
		Purpose: b.Purpose,
		Date:    b.StartTime.In(loc).Format("02 Jan 2006"),
		Time:    b.StartTime.In(loc).Format("15:04") + " - " + b.EndTime.In(loc).Format("15:04"),
	}
	if data.Name == "" {
		data.Name = b.RequesterID
	}
	if b.QRToken != nil {
		data.Token = *b.QRToken
		data.QRCodeURL = fmt.Sprintf(p.QRCodeURL, url.QueryEscape(*b.QRToken))
	}
	if b.RejectionReason != nil {
		data.Reason = *b.RejectionReason
	}

	var buf bytes.Buffer
	if err := notificationTemplates.ExecuteTemplate(&buf, string(b.Status), data); err != nil {
		return "", "", false, err
	}

	return subject, buf.String(), true, nil
}

// notify emails the requester about b's new status. It runs after the transition has
// committed and its failure is only logged.
func (e *Engine) notify(b models.Booking) {
	if e.notifier == nil {
		return
	}

	log := e.log.With(slog.String("booking_id", b.ID), slog.String("status", string(b.Status)))

	subject, html, ok, err := composeNotification(b, e.policy)
	if err != nil {
		log.Error("failed to render notification", sl.Err(err))
		return
	}
	if !ok {
		return
	}

	if b.RequesterEmail == "" {
		log.Warn("requester has no email address, notification skipped")
		return
	}

	e.background("mail", b.ID, func(ctx context.Context) error {
		return e.notifier.Send(ctx, b.RequesterEmail, subject, html)
	})
}

func (e *Engine) publish(eventType string, b models.Booking) {
	if e.publisher == nil {
		return
	}

	ev := models.BookingEvent{
		Type:        eventType,
		BookingID:   b.ID,
		RoomID:      b.RoomID,
		RequesterID: b.RequesterID,
		Status:      b.Status,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		OccurredAt:  e.clock.Now(),
	}

	e.background("event", b.ID, func(ctx context.Context) error {
		return e.publisher.Publish(ctx, ev)
	})
}

// background runs a best-effort side effect detached from the request context.
func (e *Engine) background(channel, bookingID string, fn func(ctx context.Context) error) {
	timeout := e.policy.NotifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := fn(ctx)
		metrics.TrackSideEffect(channel, err)

		if err != nil {
			e.log.Error("side effect failed",
				slog.String("channel", channel),
				slog.String("booking_id", bookingID),
				sl.Err(err),
			)
		}
	}()
}
