package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/email"
)

// Mailer writes rendered messages as HTML files instead of delivering them.
// Attachments are stored next to the message.
type Mailer struct {
	storage domain.FileStorage
	now     func() time.Time
}

func NewMailer(s domain.FileStorage) *Mailer {
	return &Mailer{storage: s, now: time.Now}
}

func (m *Mailer) Send(ctx context.Context, msg email.Message) error {
	stamp := m.now().UnixMilli()
	prefix := fmt.Sprintf("mail-%d-%s", stamp, slug(msg.Subject))
	head := fmt.Sprintf("<!-- to: %s | reply-to: %s | subject: %s -->\n", strings.Join(msg.To, ", "), msg.ReplyTo, msg.Subject)
	if _, err := m.storage.Save(ctx, prefix+".html", []byte(head+msg.HTML)); err != nil {
		return err
	}
	for _, a := range msg.Attachments {
		if _, err := m.storage.Save(ctx, prefix+"-"+a.Name, a.Data); err != nil {
			return err
		}
	}
	return nil
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
