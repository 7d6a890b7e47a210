package driven

import "context"

// Mailer defines the driven port for outbound mail delivery.
type Mailer interface {
	// Send delivers a plain-text message to a single recipient.
	Send(ctx context.Context, to, subject, body string) error
}
