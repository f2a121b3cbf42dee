package mocks

import (
	"context"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	LoginFunc          func(ctx context.Context, identifier, password string) (*domain.AuthResult, error)
	ChangePasswordFunc func(ctx context.Context, userID, password string) (*domain.User, error)
	ProfileFunc        func(ctx context.Context, userID string) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, password)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID, password string) (*domain.User, error) {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, password)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

var _ domain.AuthService = (*MockAuthService)(nil)
