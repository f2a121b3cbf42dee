package notifications

import (
	"errors"
	"testing"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/config"
)

type recordingTransport struct {
	to   string
	code string
	err  error
}

func (r *recordingTransport) deliver(to, code string) error {
	r.to, r.code = to, code
	return r.err
}

// With no transport configuration both channels fall back to the mock and
// delivery still reports success.
func TestDispatcher_MockFallback(t *testing.T) {
	d := NewDispatcher(config.SMTPConfig{}, config.SMSConfig{}, false, 5)

	if !d.Send(domain.IdentifierEmail, "user@example.com", "482193") {
		t.Error("mock email delivery should succeed")
	}
	if !d.Send(domain.IdentifierPhone, "13812345678", "482193") {
		t.Error("mock sms delivery should succeed")
	}
}

// Non-production deployments never contact the real SMS provider, even
// with complete credentials.
func TestDispatcher_NonProductionForcesMockSMS(t *testing.T) {
	smsCfg := config.SMSConfig{
		Provider:   "twilio",
		AccountSID: "AC0000",
		AuthToken:  "token",
		FromNumber: "+15550001111",
		Enabled:    true,
	}

	d := NewDispatcher(config.SMTPConfig{}, smsCfg, false, 5)
	<-d.ready

	if _, ok := d.sms.(mockTransport); !ok {
		t.Errorf("expected mock sms transport in non-production, got %T", d.sms)
	}
}

func TestDispatcher_ChannelRouting(t *testing.T) {
	email := &recordingTransport{}
	sms := &recordingTransport{}
	d := &Dispatcher{ready: make(chan struct{}), email: email, sms: sms}
	close(d.ready)

	if !d.Send(domain.IdentifierEmail, "user@example.com", "111111") {
		t.Fatal("email send should succeed")
	}
	if email.to != "user@example.com" || email.code != "111111" {
		t.Error("email transport should have received the message")
	}
	if sms.to != "" {
		t.Error("sms transport must not be touched for an email identifier")
	}

	if !d.Send(domain.IdentifierPhone, "13812345678", "222222") {
		t.Fatal("sms send should succeed")
	}
	if sms.to != "13812345678" || sms.code != "222222" {
		t.Error("sms transport should have received the message")
	}
}

// Transport errors become a boolean false, never a panic or error return.
func TestDispatcher_TransportErrorBecomesFalse(t *testing.T) {
	failing := &recordingTransport{err: errors.New("connection reset")}
	d := &Dispatcher{ready: make(chan struct{}), email: failing, sms: failing}
	close(d.ready)

	if d.Send(domain.IdentifierEmail, "user@example.com", "482193") {
		t.Error("failed delivery must report false")
	}
}

// Send blocks until startup selection completes rather than racing it.
func TestDispatcher_SendAwaitsReadiness(t *testing.T) {
	d := NewDispatcher(config.SMTPConfig{}, config.SMSConfig{}, false, 5)

	done := make(chan bool)
	go func() { done <- d.Send(domain.IdentifierEmail, "user@example.com", "482193") }()

	if ok := <-done; !ok {
		t.Error("send issued before readiness should still succeed once initialized")
	}
}
