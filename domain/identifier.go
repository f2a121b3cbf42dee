package domain

import "regexp"

// IdentifierKind classifies a login/verification identifier.
type IdentifierKind int

const (
	IdentifierEmail IdentifierKind = iota
	IdentifierPhone
)

func (k IdentifierKind) String() string {
	if k == IdentifierPhone {
		return "sms"
	}
	return "email"
}

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	// Mainland mobile numbers: 1, a second digit 3-9, nine more digits.
	phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
)

// IsEmail reports whether s has a local@domain.tld shape.
func IsEmail(s string) bool { return emailPattern.MatchString(s) }

// IsPhone reports whether s is a valid mobile number.
func IsPhone(s string) bool { return phonePattern.MatchString(s) }

// ClassifyIdentifier decides whether s is an email address or a phone
// number. The two patterns are disjoint (a phone is all digits, an email
// requires '@'), so at most one can match.
func ClassifyIdentifier(s string) (IdentifierKind, error) {
	switch {
	case IsEmail(s):
		return IdentifierEmail, nil
	case IsPhone(s):
		return IdentifierPhone, nil
	default:
		return 0, ErrIdentifierInvalid
	}
}
