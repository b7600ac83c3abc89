package services

import (
	"fmt"
	"net/smtp"
)

// EmailConfig holds SMTP settings
type EmailConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

type EmailService struct {
	cfg  EmailConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(cfg EmailConfig) *EmailService {
	return &EmailService{cfg: cfg, send: smtp.SendMail}
}

func (s *EmailService) SendEmail(to []string, subject, body string) error {
	if s.cfg.Host == "" || s.cfg.Port == "" || s.cfg.User == "" || s.cfg.Password == "" {
		return fmt.Errorf("SMTP credentials not fully configured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no email recipients")
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	message := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", s.cfg.From, to[0], subject, body))

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)

	if err := s.send(addr, auth, s.cfg.From, to, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
