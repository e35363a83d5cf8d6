// Package notify delivers watering reminders and newsletter mail. Delivery is
// best-effort: callers fall back to an in-page notice on any error.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/mail"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"greenbloom/config"
	"greenbloom/models"
)

// ErrUnsupported means the capability to notify is missing: no mail server
// is configured or the visitor gave no address.
var ErrUnsupported = errors.New("notify: notifications unsupported")

const WateringTitle = "🌿 Time to Water!"

// Message is one notification.
type Message struct {
	To      string
	Subject string
	Body    string
	Icon    string
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// WateringMessage builds the reminder for one due plant.
func WateringMessage(to string, e models.GardenEntry) Message {
	return Message{
		To:      to,
		Subject: WateringTitle,
		Body:    fmt.Sprintf("Your %s needs watering today!", e.Name),
		Icon:    e.Image,
	}
}

// WelcomeMessage is sent to new newsletter subscribers.
func WelcomeMessage(to string) Message {
	return Message{
		To:      to,
		Subject: "Welcome to GreenBloom Nursery",
		Body:    "Thanks for subscribing to our newsletter! Seasonal tips and offers are on their way.",
	}
}

// ValidAddress normalises an email address, rejecting anything net/mail
// cannot parse or that carries a display name.
func ValidAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", err
	}
	if addr.Address != s {
		return "", fmt.Errorf("invalid address %q", s)
	}
	return strings.ToLower(addr.Address), nil
}

// Dialer is the part of gomail.Dialer the mailer uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends notifications by SMTP.
type Mailer struct {
	from   string
	dialer Dialer
}

// NewMailer returns a Mailer for cfg. With no SMTP host configured every
// Notify call reports ErrUnsupported.
func NewMailer(cfg config.MailConfig) *Mailer {
	if !cfg.Enabled() {
		return &Mailer{}
	}
	return &Mailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// NewMailerWithDialer is NewMailer with a custom transport.
func NewMailerWithDialer(from string, d Dialer) *Mailer {
	return &Mailer{from: from, dialer: d}
}

// Enabled reports whether a mail transport is configured.
func (m *Mailer) Enabled() bool { return m.dialer != nil }

func (m *Mailer) Notify(ctx context.Context, msg Message) error {
	if m.dialer == nil || strings.TrimSpace(msg.To) == "" {
		return ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	if msg.Icon != "" {
		body, err := htmlBody(msg)
		if err != nil {
			return fmt.Errorf("notify: render: %w", err)
		}
		gm.SetBody("text/html", body)
		gm.AddAlternative("text/plain", msg.Body)
	} else {
		gm.SetBody("text/plain", msg.Body)
	}

	if err := m.dialer.DialAndSend(gm); err != nil {
		zap.S().Warnf("notify: send to %s failed: %v", msg.To, err)
		return fmt.Errorf("notify: send: %w", err)
	}
	zap.S().Debugf("notify: sent %q to %s", msg.Subject, msg.To)
	return nil
}

var iconBody = template.Must(template.New("body").Parse(
	`<p><img src="{{.Icon}}" alt="" width="64"></p><p>{{.Body}}</p>`))

func htmlBody(msg Message) (string, error) {
	var b strings.Builder
	if err := iconBody.Execute(&b, msg); err != nil {
		return "", err
	}
	return b.String(), nil
}

// NotifyDue sends one watering message per due entry and returns how many
// were delivered. It stops at the first failure.
func NotifyDue(ctx context.Context, n Notifier, to string, due []models.GardenEntry) (int, error) {
	sent := 0
	for _, e := range due {
		if err := n.Notify(ctx, WateringMessage(to, e)); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}
