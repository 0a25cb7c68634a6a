package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/focodev/site/backend/internal/config"
)

// MailService sends HTML email through the configured SMTP relay.
type MailService struct {
	cfg config.SMTPConfig
}

func NewMailService(cfg config.SMTPConfig) *MailService {
	return &MailService{cfg: cfg}
}

// IsConfigured reports whether a relay host and sender are set.
func (s *MailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.FromAddress != ""
}

// SendEmail delivers one HTML message to a single recipient.
func (s *MailService) SendEmail(to, subject, htmlBody string) error {
	if !s.IsConfigured() {
		return ErrSMTPNotConfigured
	}

	msg := buildEmail(s.cfg.FromAddress, to, subject, htmlBody)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" && s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	switch s.cfg.Encryption {
	case "ssl":
		conn, err := tls.Dial("tcp", addr, s.tlsConfig())
		if err != nil {
			return fmt.Errorf("SSL connection failed: %w", err)
		}
		client, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		return s.deliver(client, auth, to, msg)
	case "starttls":
		client, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("SMTP connection failed: %w", err)
		}
		if err := client.StartTLS(s.tlsConfig()); err != nil {
			client.Close()
			return fmt.Errorf("STARTTLS failed: %w", err)
		}
		return s.deliver(client, auth, to, msg)
	default:
		return smtp.SendMail(addr, auth, s.cfg.FromAddress, []string{to}, msg)
	}
}

func (s *MailService) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: s.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
}

func (s *MailService) deliver(client *smtp.Client, auth smtp.Auth, to string, msg []byte) error {
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}
	if err := client.Mail(s.cfg.FromAddress); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return client.Quit()
}

var headerOrder = []string{"From", "To", "Subject", "MIME-Version", "Content-Type"}

// buildEmail renders headers in a fixed order. CR and LF are stripped from
// header values so user input cannot inject extra headers.
func buildEmail(from, to, subject, htmlBody string) []byte {
	headers := map[string]string{
		"From":         from,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	var msg bytes.Buffer
	for _, key := range headerOrder {
		msg.WriteString(key + ": " + stripCRLF(headers[key]) + "\r\n")
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return msg.Bytes()
}

func stripCRLF(v string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(v)
}
