package notifications

import (
	"log"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/config"
)

// transport delivers one verification code over a single channel.
type transport interface {
	deliver(to, code string) error
}

// Dispatcher implements domain.Notifier. Each channel is resolved once at
// startup to either a real transport or the logging mock; the selection is
// immutable for the process lifetime. Selection involves a connectivity
// probe and may be slower than the first inbound request, so Send gates on
// the readiness channel instead of racing initialization.
type Dispatcher struct {
	ready chan struct{}
	email transport
	sms   transport
}

// NewDispatcher starts transport selection in the background and returns
// immediately; the first Send waits for selection to finish.
func NewDispatcher(smtpCfg config.SMTPConfig, smsCfg config.SMSConfig, production bool, validMinutes int) *Dispatcher {
	d := &Dispatcher{ready: make(chan struct{})}
	go d.selectTransports(smtpCfg, smsCfg, production, validMinutes)
	return d
}

func (d *Dispatcher) selectTransports(smtpCfg config.SMTPConfig, smsCfg config.SMSConfig, production bool, validMinutes int) {
	defer close(d.ready)
	d.email = selectEmailTransport(smtpCfg, validMinutes)
	d.sms = selectSMSTransport(smsCfg, production, validMinutes)
}

func selectEmailTransport(cfg config.SMTPConfig, validMinutes int) transport {
	if !cfg.Enabled || cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		log.Printf("notifications: email channel in mock mode (smtp disabled or incomplete)")
		return mockTransport{channel: "EMAIL"}
	}

	svc := NewSMTPService(cfg, validMinutes)
	if err := svc.Probe(); err != nil {
		log.Printf("notifications: email channel in mock mode (smtp probe failed: %v)", err)
		return mockTransport{channel: "EMAIL"}
	}

	log.Printf("notifications: email channel using smtp host %s", cfg.Host)
	return svc
}

func selectSMSTransport(cfg config.SMSConfig, production bool, validMinutes int) transport {
	// Non-production phone numbers are not real delivery targets.
	if !production {
		log.Printf("notifications: sms channel in mock mode (non-production environment)")
		return mockTransport{channel: "SMS"}
	}
	if !cfg.Enabled || cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		log.Printf("notifications: sms channel in mock mode (provider disabled or incomplete)")
		return mockTransport{channel: "SMS"}
	}

	log.Printf("notifications: sms channel using provider %s", cfg.Provider)
	return NewTwilioService(cfg.AccountSID, cfg.AuthToken, cfg.FromNumber, validMinutes)
}

// Send implements domain.Notifier. Transport errors are converted to false
// so code issuance degrades gracefully instead of leaking provider internals.
func (d *Dispatcher) Send(kind domain.IdentifierKind, recipient, code string) bool {
	<-d.ready

	t := d.email
	if kind == domain.IdentifierPhone {
		t = d.sms
	}

	if err := t.deliver(recipient, code); err != nil {
		log.Printf("notifications: %s delivery to %s failed: %v", kind, recipient, err)
		return false
	}
	return true
}

var _ domain.Notifier = (*Dispatcher)(nil)
