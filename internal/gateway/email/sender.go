package email

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"fulfillment/internal/entities"
	"fulfillment/internal/pkg/config"
	"fulfillment/pkg/logger"
)

// Sender delivers email over plain SMTP. When disabled by configuration it
// logs and drops messages, so environments without an SMTP relay still run.
type Sender struct {
	log     logger.Logger
	enabled bool
	addr    string
	from    string
	auth    smtp.Auth
}

func New(log logger.Logger, cfg *config.Email) *Sender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &Sender{
		log:     log.With(logger.NewField("component", "email-sender")),
		enabled: cfg.Enabled,
		addr:    net.JoinHostPort(cfg.Host, cfg.Port),
		from:    cfg.From,
		auth:    auth,
	}
}

func (s *Sender) Send(ctx context.Context, message entities.EmailMessage) error {
	if !s.enabled {
		s.log.With(
			logger.NewField("to", message.To),
			logger.NewField("subject", message.Subject),
		).Debug("email disabled, dropping message")
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", message.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", message.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(message.Body)

	err := smtp.SendMail(s.addr, s.auth, s.from, []string{message.To}, []byte(b.String()))
	if err != nil {
		return fmt.Errorf("send email to %s: %w", message.To, err)
	}

	return nil
}
