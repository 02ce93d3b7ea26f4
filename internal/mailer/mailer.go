// Package mailer delivers transactional email (password-reset OTP codes).
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"

	"globetrotter/internal/config"
	"globetrotter/internal/middleware"
)

// Mailer sends transactional mail. Services depend on this interface so
// tests can substitute a recorder.
type Mailer interface {
	SendOTP(ctx context.Context, to, otp string) error
}

// SMTPMailer sends mail over plain SMTP with optional auth.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	timeout  time.Duration
}

// NewSMTPMailer builds a mailer from configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		timeout:  30 * time.Second,
	}
}

// SendOTP delivers the password-reset code. When no SMTP host is configured
// (local development) the code is logged instead of sent.
func (m *SMTPMailer) SendOTP(ctx context.Context, to, otp string) error {
	if m.host == "" {
		middleware.Logger.InfoContext(ctx, "SMTP not configured, logging OTP instead of sending",
			slog.String("to", to),
			slog.String("otp", otp))
		return nil
	}

	msg := m.buildMessage(to, otp)
	addr := net.JoinHostPort(m.host, m.port)

	done := make(chan error, 1)
	go func() {
		var auth smtp.Auth
		if m.username != "" {
			auth = smtp.PlainAuth("", m.username, m.password, m.host)
		}
		done <- smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
	}()

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send OTP mail: %w", err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("timed out sending OTP mail to %s", to)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *SMTPMailer) buildMessage(to, otp string) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: GlobeTrotter <%s>\r\n", m.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString("Subject: Your GlobeTrotter password reset code\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("Your password reset code is: %s\r\n", otp))
	msg.WriteString("It expires shortly. If you did not request a reset, ignore this message.\r\n")
	return msg.String()
}
