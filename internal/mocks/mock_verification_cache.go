package mocks

import (
	"context"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
)

// MockVerificationCache implements domain.VerificationCache for testing
type MockVerificationCache struct {
	IssueFunc  func(ctx context.Context, identifier string) (string, error)
	VerifyFunc func(ctx context.Context, identifier, code string) bool

	Discarded []string
}

// NewMockVerificationCache creates a MockVerificationCache that issues a
// fixed code and accepts any verification by default.
func NewMockVerificationCache() *MockVerificationCache {
	return &MockVerificationCache{}
}

func (m *MockVerificationCache) Issue(ctx context.Context, identifier string) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, identifier)
	}
	return "482193", nil
}

func (m *MockVerificationCache) Verify(ctx context.Context, identifier, code string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, identifier, code)
	}
	return true
}

func (m *MockVerificationCache) Discard(_ context.Context, identifier string) {
	m.Discarded = append(m.Discarded, identifier)
}

var _ domain.VerificationCache = (*MockVerificationCache)(nil)
