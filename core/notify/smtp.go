package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTP sends reports as plain text e-mails.
type SMTP struct {
	cfg      Config
	sendMail sendMailFunc
	now      func() time.Time
}

// NewSMTP creates an e-mail notifier.
func NewSMTP(cfg Config) *SMTP {
	return &SMTP{cfg: cfg, sendMail: smtp.SendMail, now: time.Now}
}

// Send e-mails the report to every configured recipient.
func (s *SMTP) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	to := s.cfg.Recipients()
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	if err := s.sendMail(addr, auth, s.cfg.From, to, s.message(subject, body, to)); err != nil {
		return fmt.Errorf("failed to send report to %s: %w", addr, err)
	}
	return nil
}

// message builds the RFC 5322 message with CRLF line endings.
func (s *SMTP) message(subject, body string, to []string) []byte {
	var b strings.Builder
	b.WriteString("From: " + s.cfg.From + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + s.now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
