package domain

import "time"

// Roles assignable to community members.
const (
	RoleUser     = "USER"
	RoleProperty = "PROPERTY"
	RoleAdmin    = "ADMIN"
)

// User represents a registered community member
type User struct {
	ID                string
	Email             string // empty when the user registered by phone only
	Phone             string // real number or a placeholder derived from the user id
	Name              string
	PasswordHash      string `gorm:"column:password"`
	Role              string
	Building          string
	Unit              string
	Room              string
	IdentityImagePath string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasRealPhone reports whether the stored phone is a deliverable number
// rather than the internal placeholder.
func (u *User) HasRealPhone() bool {
	return IsPhone(u.Phone)
}

// RegistrationInput carries the fields submitted on registration.
// Identifier, when set, is disambiguated by ClassifyIdentifier; otherwise
// Email/Phone are used directly.
type RegistrationInput struct {
	Name             string
	Building         string
	Unit             string
	Room             string
	Password         string
	Email            string
	Phone            string
	Identifier       string
	VerificationCode string
	Role             string
	IdentityImage    string
}

// AuthResult represents a successful registration or login outcome
type AuthResult struct {
	User      *User
	Token     string
	ExpiresIn int64
}
