// Package smtp implements the Mailer port over plain SMTP.
package smtp

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/efisher/prjanitor/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Mailer = (*Mailer)(nil)

// Mailer sends plain-text mail through a single SMTP relay. With empty
// credentials it sends unauthenticated, which local relays (MailHog and the
// like) accept.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewMailer creates a Mailer for the given relay.
func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers one message. net/smtp has no context support, so the
// context is only consulted before dialing; an already-canceled run does not
// send mail.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\n\r\n%s", to, m.from, subject, body)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" && m.password != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}

	slog.Debug("mail sent", "to", to, "subject", subject)
	return nil
}
