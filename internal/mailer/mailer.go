package mailer

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sandeshm/portfolio-backend/config"
)

// Sender delivers rendered emails. Satisfied by EmailSender and by test fakes.
type Sender interface {
	Send(to []string, subject, htmlBody string) error
}

// EmailSender sends mail over SMTP with StartTLS
type EmailSender struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
	FromAddr string
}

func NewEmailSender(cfg *config.Config) *EmailSender {
	return &EmailSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		FromName: cfg.SMTPFromName,
		FromAddr: cfg.SMTPFromEmail,
	}
}

// Send builds the MIME message and delivers it
func (e *EmailSender) Send(to []string, subject, htmlBody string) error {
	if e.Host == "" || e.Username == "" || e.Password == "" {
		log.Println("⚠️ SMTP not configured. Email not sent.")
		return nil
	}

	fromAddr := e.FromAddr
	if fromAddr == "" {
		fromAddr = e.Username
	}
	from := fromAddr
	if e.FromName != "" {
		from = fmt.Sprintf("%s <%s>", e.FromName, fromAddr)
	}

	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(to, ", "),
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n" + htmlBody)

	addr := fmt.Sprintf("%s:%s", e.Host, e.Port)
	return e.sendMailWithTLS(addr, fromAddr, to, []byte(msg.String()))
}

// sendMailWithTLS dials plain, upgrades with StartTLS, then authenticates.
// tls.Dial does not work against submission ports that expect STARTTLS.
func (e *EmailSender) sendMailWithTLS(addr, fromAddr string, to []string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         e.Host,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", e.Username, e.Password, e.Host)
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err = client.Mail(fromAddr); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		log.Printf("⚠️ QUIT command error (non-critical): %v", err)
	}
	return nil
}
