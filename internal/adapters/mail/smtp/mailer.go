// Package smtp delivers mail through an SMTP relay.
package smtp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/barakadvert/storefront/internal/email"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Mailer struct {
	from   string
	dialer sender
}

func NewMailer(host string, port int, user, pass, from string) *Mailer {
	if from == "" {
		from = user
	}
	return &Mailer{from: from, dialer: gomail.NewDialer(host, port, user, pass)}
}

// Send dials per message. gomail has no context support, so ctx is only
// checked before dialing.
func (m *Mailer) Send(ctx context.Context, msg email.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return errors.New("smtp: no recipients")
	}
	if err := m.dialer.DialAndSend(m.build(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *Mailer) build(msg email.Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To...)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	if msg.IdempotencyKey != "" {
		gm.SetHeader("X-Entity-Ref-ID", msg.IdempotencyKey)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	for _, a := range msg.Attachments {
		data := a.Data
		settings := []gomail.FileSetting{gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		})}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}))
		}
		gm.Attach(a.Name, settings...)
	}
	return gm
}
