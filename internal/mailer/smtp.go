package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/hanulsoft/board-server/internal/model"
)

var _ model.Mailer = (*SMTP)(nil)

// sendFunc matches smtp.SendMail and exists so tests can run without a
// mail server.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTP mails recovery requests to the operator address.
type SMTP struct {
	host       string
	port       string
	email      string
	password   string
	adminEmail string
	send       sendFunc
}

// NewSMTP creates a new SMTP mailer instance.
func NewSMTP(host, port, email, password, adminEmail string) *SMTP {
	return &SMTP{
		host:       host,
		port:       port,
		email:      email,
		password:   password,
		adminEmail: adminEmail,
		send:       smtp.SendMail,
	}
}

// SendRecoveryRequest delivers one recovery request to the operator.
// The context deadline is honored up front; smtp.SendMail itself does
// not take a context.
func (m *SMTP) SendRecoveryRequest(ctx context.Context, req model.RecoveryRequest) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	msg := buildMessage(m.email, m.adminEmail, req)
	auth := smtp.PlainAuth("", m.email, m.password, m.host)
	addr := net.JoinHostPort(m.host, m.port)

	if err := m.send(addr, auth, m.email, []string{m.adminEmail}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

func buildMessage(from, to string, req model.RecoveryRequest) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", req.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "email: %s\r\n", req.Email)
	fmt.Fprintf(&b, "nickname: %s\r\n", req.Nickname)
	fmt.Fprintf(&b, "title: %s\r\n", req.Title)
	b.WriteString("\r\n")
	b.WriteString(req.Content)
	b.WriteString("\r\n")
	return []byte(b.String())
}
