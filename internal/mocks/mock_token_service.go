package mocks

import (
	"time"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateFunc func(user *domain.User) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
	TokenTTL     time.Duration
}

// NewMockTokenService creates a MockTokenService issuing a fixed token.
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{TokenTTL: 7 * 24 * time.Hour}
}

func (m *MockTokenService) Generate(user *domain.User) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(user)
	}
	return "token-" + user.ID, nil
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) TTL() time.Duration { return m.TokenTTL }

var _ domain.TokenService = (*MockTokenService)(nil)
