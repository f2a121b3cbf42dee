package notifications

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/config"
)

// SMTPService delivers verification codes by email.
type SMTPService struct {
	dialer       *gomail.Dialer
	from         string
	validMinutes int
}

// NewSMTPService creates an SMTP-backed email transport.
func NewSMTPService(cfg config.SMTPConfig, validMinutes int) *SMTPService {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.Secure

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &SMTPService{
		dialer:       dialer,
		from:         from,
		validMinutes: validMinutes,
	}
}

// Probe performs an SMTP handshake without sending anything. Used once at
// startup to decide whether the real transport is usable.
func (s *SMTPService) Probe() error {
	conn, err := s.dialer.Dial()
	if err != nil {
		return err
	}
	return conn.Close()
}

func (s *SMTPService) deliver(to, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/plain", fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, s.validMinutes))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
