package mailx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/travelguru/travelguru/internal/common"
)

// DefaultSendTimeout bounds every delivery attempt so a slow provider cannot
// hang the request that triggered the email.
const DefaultSendTimeout = 10 * time.Second

// SendGridMailer delivers messages through the SendGrid v3 API.
type SendGridMailer struct {
	client   *sendgrid.Client
	fromName string
	fromAddr string
	timeout  time.Duration
}

// NewSendGridMailer builds a mailer with the given API key and sender
// identity. A non-positive timeout falls back to DefaultSendTimeout.
func NewSendGridMailer(apiKey, fromName, fromAddr string, timeout time.Duration) *SendGridMailer {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		fromAddr: fromAddr,
		timeout:  timeout,
	}
}

// Send delivers msg. It fails when neither body is provided, maps a deadline
// hit to common.ErrMailTimeout, and reports non-2xx provider responses as
// delivery errors.
func (m *SendGridMailer) Send(ctx context.Context, msg Message) error {
	if msg.Text == "" && msg.HTML == "" {
		return errors.New("email must have either a text or an html body")
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	from := mail.NewEmail(m.fromName, m.fromAddr)
	to := mail.NewEmail("", msg.To)
	email := mail.NewSingleEmail(from, msg.Subject, to, msg.Text, msg.HTML)

	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return common.ErrMailTimeout
		}
		return fmt.Errorf("error sending email: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("email provider rejected message: status %d", resp.StatusCode)
	}
	return nil
}
