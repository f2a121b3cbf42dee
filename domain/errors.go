package domain

import "errors"

// Validation errors (user-correctable input)
var (
	ErrMissingFields     = errors.New("name, building, unit, room and password are required")
	ErrMissingIdentifier = errors.New("an email address or phone number is required")
	ErrIdentifierInvalid = errors.New("identifier is neither a valid email address nor a valid phone number")
	ErrEmailInvalid      = errors.New("malformed email address")
	ErrPhoneInvalid      = errors.New("malformed phone number")
	ErrPasswordRequired  = errors.New("password is required")
	ErrRoleNotAllowed    = errors.New("role cannot be self-assigned")
)

// Conflict errors (identity already claimed)
var (
	ErrNameTaken         = errors.New("this name is already registered")
	ErrEmailTaken        = errors.New("this email address is already registered")
	ErrPhoneTaken        = errors.New("this phone number is already registered")
	ErrRoomTaken         = errors.New("this room already has a registered resident")
	ErrAlreadyRegistered = errors.New("user already registered")
)

// Verification errors
var (
	ErrCodeInvalid = errors.New("verification code is wrong or has expired")
)

// Credential errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Delivery errors
var (
	ErrDeliveryFailed = errors.New("verification code could not be delivered")
)

// Token errors. Signature, expiry and malformation failures are reported
// uniformly so callers cannot learn which check failed.
var (
	ErrTokenInvalid = errors.New("invalid token")
)
