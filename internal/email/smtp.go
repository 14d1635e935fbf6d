package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}

// SMTPSender delivers account emails over plain SMTP or SMTPS.
type SMTPSender struct {
	cfg       SMTPConfig
	auth      smtp.Auth
	templates *template.Template
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	tmpl, err := template.New("emails").Parse(emailTemplates)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPSender{cfg: cfg, auth: auth, templates: tmpl}, nil
}

func (s *SMTPSender) SendActivationEmail(to, token string) error {
	body, err := s.render("activation", map[string]string{"Token": token, "Email": to})
	if err != nil {
		return err
	}
	return s.send(to, "Activate your account", body)
}

func (s *SMTPSender) SendPasswordResetEmail(to, token string) error {
	body, err := s.render("password_reset", map[string]string{"Token": token, "Email": to})
	if err != nil {
		return err
	}
	return s.send(to, "Reset your password", body)
}

func (s *SMTPSender) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (s *SMTPSender) send(to, subject, body string) error {
	var msg strings.Builder
	msg.WriteString("From: " + s.cfg.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if s.cfg.UseTLS {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.cfg.Host})
		if err != nil {
			return fmt.Errorf("failed to dial TLS: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Close()

		if s.auth != nil {
			if err := client.Auth(s.auth); err != nil {
				return fmt.Errorf("SMTP auth failed: %w", err)
			}
		}
		if err := client.Mail(s.cfg.From); err != nil {
			return err
		}
		if err := client.Rcpt(to); err != nil {
			return err
		}
		w, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := w.Write([]byte(msg.String())); err != nil {
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		return client.Quit()
	}

	return smtp.SendMail(addr, s.auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
