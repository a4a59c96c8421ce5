package email

import (
	"context"
	"fmt"
	"net/url"
	"time"
	c "yeonghwa/internal/core/domain/common"

	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	dialer dialer
	sender string
	now    func() time.Time
}

func NewSMTPSender(host string, port int, username, password, sender string, now func() time.Time) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
		now:    now,
	}
}

func (s *SMTPSender) SendPasswordResetURL(ctx context.Context, to c.Email, resetURL url.URL) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := RenderPasswordReset(resetURL, s.now())
	if err != nil {
		return fmt.Errorf("could not render password reset email: %w", err)
	}
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.sender, SenderName)
	m.SetHeader("To", string(to))
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	m.AddAlternative("text/html", msg.HTML)

	// gomail has no deadline once connected; a stalled server must not
	// outlive the request.
	sent := make(chan error, 1)
	go func() {
		sent <- s.dialer.DialAndSend(m)
	}()
	select {
	case err := <-sent:
		return err
	case <-ctx.Done():
		return fmt.Errorf("password reset email to %s not sent: %w", to, ctx.Err())
	}
}
