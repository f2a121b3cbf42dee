package mocks

import (
	"context"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
)

// MockRegistrationService implements domain.RegistrationService for testing
type MockRegistrationService struct {
	RegisterFunc func(ctx context.Context, input domain.RegistrationInput) (*domain.AuthResult, error)

	LastInput domain.RegistrationInput
}

// NewMockRegistrationService creates a new MockRegistrationService
func NewMockRegistrationService() *MockRegistrationService {
	return &MockRegistrationService{}
}

func (m *MockRegistrationService) Register(ctx context.Context, input domain.RegistrationInput) (*domain.AuthResult, error) {
	m.LastInput = input
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &domain.AuthResult{
		User: &domain.User{
			ID:       "01HWABCDEF0123456789ABCDEF",
			Name:     input.Name,
			Email:    input.Email,
			Phone:    input.Phone,
			Role:     domain.RoleUser,
			Building: domain.NormalizeBuilding(input.Building),
			Unit:     domain.NormalizeUnit(input.Unit),
			Room:     domain.NormalizeRoom(input.Room),
		},
		Token:     "mock-token",
		ExpiresIn: 604800,
	}, nil
}

var _ domain.RegistrationService = (*MockRegistrationService)(nil)
