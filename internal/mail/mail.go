// Package mail delivers contact-form notifications.
package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends a contact-form submission to the site owner.
type Mailer interface {
	SendContact(name, email, body string) error
}

// SMTPConfig carries the relay settings for SMTPMailer.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string
}

// SMTPMailer relays submissions through an authenticated SMTP server.
// The visitor's address goes in Reply-To so the owner can answer
// directly from their mail client.
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a mailer for the given relay settings.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) SendContact(name, email, body string) error {
	var msg strings.Builder
	msg.WriteString("To: " + m.cfg.To + "\r\n")
	msg.WriteString("From: " + m.cfg.User + "\r\n")
	msg.WriteString("Reply-To: " + email + "\r\n")
	msg.WriteString("Subject: Portfolio contact from " + name + "\r\n")
	msg.WriteString("\r\n")
	msg.WriteString("Name: " + name + "\r\n")
	msg.WriteString("Email: " + email + "\r\n\r\n")
	msg.WriteString(body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.send(addr, auth, m.cfg.User, []string{m.cfg.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}

// LogMailer is the fallback when no SMTP relay is configured. Submissions
// are still persisted by the caller; this just surfaces them in the logs.
type LogMailer struct{}

func (LogMailer) SendContact(name, email, body string) error {
	slog.Info("contact message received (smtp not configured)",
		"name", name,
		"email", email,
		"body_length", len(body),
	)
	return nil
}
