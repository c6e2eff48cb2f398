// Package mailer delivers confirmation codes to users.
//
// Delivery is a collaborator, not a concern of the API: the interface is
// tiny so handlers and tests can swap the transport. The corpus offers no
// mail library, so the SMTP implementation sits on net/smtp directly.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends a confirmation code to a recipient address.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// SMTPMailer sends real mail through a configured SMTP relay.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

func (m *SMTPMailer) SendConfirmationCode(ctx context.Context, email, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + email + "\r\n")
	msg.WriteString("Subject: Your confirmation code\r\n")
	msg.WriteString("\r\n")
	msg.WriteString("Your confirmation code: " + code + "\r\n")

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{email}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail to %s: %w", email, err)
	}
	return nil
}

// LogMailer writes the code to the log instead of sending mail. Used in
// development when no SMTP host is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendConfirmationCode(ctx context.Context, email, code string) error {
	m.Logger.Info("confirmation code issued", "email", email, "code", code)
	return nil
}
