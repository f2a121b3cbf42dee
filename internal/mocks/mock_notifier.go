package mocks

import "github.com/AI-Matrix-Zoo/smart-community-sub000/domain"

// MockNotifier implements domain.Notifier for testing
type MockNotifier struct {
	SendFunc func(kind domain.IdentifierKind, recipient, code string) bool

	Sent []SentNotification
}

// SentNotification records one Send call
type SentNotification struct {
	Kind      domain.IdentifierKind
	Recipient string
	Code      string
}

// NewMockNotifier creates a MockNotifier that always reports success.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Send(kind domain.IdentifierKind, recipient, code string) bool {
	m.Sent = append(m.Sent, SentNotification{Kind: kind, Recipient: recipient, Code: code})
	if m.SendFunc != nil {
		return m.SendFunc(kind, recipient, code)
	}
	return true
}

var _ domain.Notifier = (*MockNotifier)(nil)
