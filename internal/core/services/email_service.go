package services

import (
	"log"

	"companyhub/internal/config"

	"gopkg.in/gomail.v2"
)

// EmailService sends transactional mail over SMTP. When no SMTP host is
// configured the service degrades to a logged no-op so development does
// not require a mail server.
type EmailService struct {
	cfg     config.SMTPConfig
	enabled bool
}

// NewEmailService creates a new email service
func NewEmailService(cfg config.SMTPConfig) *EmailService {
	enabled := cfg.Host != ""
	if !enabled {
		log.Println("SMTP not configured, outgoing mail will be logged only")
	}
	return &EmailService{cfg: cfg, enabled: enabled}
}

// Send dispatches a single HTML mail
func (s *EmailService) Send(to, subject, body string) error {
	if !s.enabled {
		log.Printf("Mail (suppressed) to=%s subject=%q", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
