package domain

import "testing"

func TestClassifyIdentifier(t *testing.T) {
	tests := []struct {
		name         string
		identifier   string
		expectedKind IdentifierKind
		expectError  bool
	}{
		{
			name:         "plain email",
			identifier:   "user@example.com",
			expectedKind: IdentifierEmail,
		},
		{
			name:         "email with subdomain and plus tag",
			identifier:   "first.last+tag@mail.example.co",
			expectedKind: IdentifierEmail,
		},
		{
			name:         "mobile number",
			identifier:   "13812345678",
			expectedKind: IdentifierPhone,
		},
		{
			name:         "mobile number with highest second digit",
			identifier:   "19912345678",
			expectedKind: IdentifierPhone,
		},
		{
			name:        "second digit out of range",
			identifier:  "12012345678",
			expectError: true,
		},
		{
			name:        "phone too short",
			identifier:  "1381234567",
			expectError: true,
		},
		{
			name:        "phone too long",
			identifier:  "138123456789",
			expectError: true,
		},
		{
			name:        "email without tld",
			identifier:  "user@example",
			expectError: true,
		},
		{
			name:        "email with spaces",
			identifier:  "us er@example.com",
			expectError: true,
		},
		{
			name:        "empty string",
			identifier:  "",
			expectError: true,
		},
		{
			name:        "random text",
			identifier:  "not-an-identifier",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ClassifyIdentifier(tt.identifier)

			if tt.expectError {
				if err != ErrIdentifierInvalid {
					t.Errorf("expected ErrIdentifierInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tt.expectedKind {
				t.Errorf("expected kind %v, got %v", tt.expectedKind, kind)
			}
		})
	}
}

func TestIdentifierKindString(t *testing.T) {
	if got := IdentifierEmail.String(); got != "email" {
		t.Errorf("expected email, got %s", got)
	}
	if got := IdentifierPhone.String(); got != "sms" {
		t.Errorf("expected sms, got %s", got)
	}
}
