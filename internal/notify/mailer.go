package notify

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"campuscare/internal/config"
)

// ErrNotConfigured is returned when SMTP credentials are absent; dispatch
// degrades to a logged failure instead of a network call.
var ErrNotConfigured = errors.New("mail credentials not configured")

// Mailer delivers one composed message to one address.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, attachmentPath string) error
}

// SMTPMailer sends over SMTP with mandatory STARTTLS.
type SMTPMailer struct {
	cfg config.Config
	log zerolog.Logger
}

func NewSMTPMailer(cfg config.Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody, attachmentPath string) error {
	if m.cfg.MailUsername == "" || m.cfg.MailPassword == "" {
		return ErrNotConfigured
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.MailFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	// Skip unreadable attachments rather than failing the whole send.
	if attachmentPath != "" {
		if _, err := os.Stat(attachmentPath); err == nil {
			msg.AttachFile(attachmentPath)
		} else {
			m.log.Warn().Str("path", attachmentPath).Msg("attachment unreadable, sending without it")
		}
	}

	client, err := mail.NewClient(m.cfg.MailHost,
		mail.WithPort(m.cfg.MailPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.MailUsername),
		mail.WithPassword(m.cfg.MailPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
