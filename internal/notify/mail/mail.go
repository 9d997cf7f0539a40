package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"regexp"
	"roombooker/internal/config"
	"strconv"
	"strings"

	"github.com/domodwyer/mailyak/v3"
)

var (
	ErrNoRecipient = errors.New("mail: empty recipient")

	tagPattern = regexp.MustCompile(`<[^>]*>?`)
)

// Sender delivers booking notifications over SMTP. With no SMTP host configured it
// only logs what would have been sent.
type Sender struct {
	cfg config.SMTP
	log *slog.Logger
}

func New(log *slog.Logger, cfg config.SMTP) *Sender {
	return &Sender{
		cfg: cfg,
		log: log.With(slog.String("component", "notify/mail")),
	}
}

func (s *Sender) Enabled() bool {
	return s.cfg.Host != ""
}

func (s *Sender) Send(ctx context.Context, to, subject, html string) error {
	const op = "notify.mail.Send"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	to = sanitizeHeader(to)
	subject = sanitizeHeader(subject)

	if to == "" {
		return fmt.Errorf("%s: %w", op, ErrNoRecipient)
	}

	if !s.Enabled() {
		s.log.Info("smtp not configured, email not sent",
			slog.String("to", to),
			slog.String("subject", subject),
		)
		return nil
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	m := mailyak.New(addr, auth)
	m.To(to)
	m.From(s.cfg.From)
	m.FromName(s.cfg.FromName)
	m.Subject(subject)
	m.HTML().Set(html)
	m.Plain().Set(PlainText(html))

	if err := m.Send(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("email sent", slog.String("to", to), slog.String("subject", subject))

	return nil
}

// PlainText is the text/plain fallback for an HTML body.
func PlainText(html string) string {
	text := tagPattern.ReplaceAllString(html, "")

	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

func sanitizeHeader(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}
