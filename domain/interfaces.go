package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByName(ctx context.Context, name string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	ResidenceTaken(ctx context.Context, building, unit, room string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// VerificationCache stores single-use verification codes keyed by identifier.
// Implementations never surface storage errors to policy code: absence,
// expiry and backend failure all resolve to a miss.
type VerificationCache interface {
	Issue(ctx context.Context, identifier string) (string, error)
	Verify(ctx context.Context, identifier, code string) bool
	Discard(ctx context.Context, identifier string)
}

// Notifier delivers a verification code over the channel matching the
// identifier kind. Delivery failure is reported as false, never an error.
type Notifier interface {
	Send(kind IdentifierKind, recipient, code string) bool
}

// RegistrationService provisions new accounts
type RegistrationService interface {
	Register(ctx context.Context, input RegistrationInput) (*AuthResult, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	ChangePassword(ctx context.Context, userID, password string) (*User, error)
	Profile(ctx context.Context, userID string) (*User, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines session credential operations
type TokenService interface {
	Generate(user *User) (string, error)
	Validate(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// TokenClaims represents the signed session claim set
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Building  string `json:"building"`
	Unit      string `json:"unit"`
	Room      string `json:"room"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
