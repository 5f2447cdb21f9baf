package notify

import (
	"context"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/houzhh15/callscribe/cmd/server/internal/config"
)

// Dispatcher formats call summaries into mail messages and submits them to
// the configured relay. Each Notify call opens, uses and closes one
// authenticated STARTTLS session — no connection pooling across calls.
type Dispatcher struct {
	cfg  config.SMTPConfig
	now  func() time.Time
	send func(ctx context.Context, cfg config.SMTPConfig, msg Message) error
}

// NewDispatcher creates a dispatcher for the given relay settings.
func NewDispatcher(cfg config.SMTPConfig) *Dispatcher {
	return &Dispatcher{cfg: cfg, now: time.Now, send: sendSMTP}
}

// Notify builds the summary message and sends it exactly once. The timestamp
// in the body is captured at send time. Transport or auth failures surface as
// DeliveryError and are not retried.
func (d *Dispatcher) Notify(ctx context.Context, recipient, meetingID, summary string, participants []string, transcript string) error {
	msg, err := BuildSummaryMessage(recipient, meetingID, summary, participants, transcript, d.now())
	if err != nil {
		return err
	}

	if err := d.send(ctx, d.cfg, msg); err != nil {
		return &DeliveryError{Cause: err}
	}
	return nil
}

// sendSMTP performs one scoped relay submission: dial, authenticate over
// STARTTLS, send, close. DialAndSendWithContext releases the connection even
// when sending fails.
func sendSMTP(ctx context.Context, cfg config.SMTPConfig, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(cfg.From); err != nil {
		return err
	}
	if err := m.To(msg.Recipient); err != nil {
		return err
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	return client.DialAndSendWithContext(ctx, m)
}
