package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
)

// RegistrationServiceImpl implements domain.RegistrationService. It owns
// the ordered provisioning pipeline: validate, verify the code, enforce
// uniqueness, normalize the residence, hash the password, persist, issue
// a token. Uniqueness pre-checks exist for field-specific messages; the
// database unique indexes are the authoritative guard against concurrent
// claims of the same identity.
type RegistrationServiceImpl struct {
	userRepo    domain.UserRepository
	cache       domain.VerificationCache
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	userRepo domain.UserRepository,
	cache domain.VerificationCache,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
) domain.RegistrationService {
	return &RegistrationServiceImpl{
		userRepo:    userRepo,
		cache:       cache,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register implements domain.RegistrationService
func (s *RegistrationServiceImpl) Register(ctx context.Context, input domain.RegistrationInput) (*domain.AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Building = strings.TrimSpace(input.Building)
	input.Unit = strings.TrimSpace(input.Unit)
	input.Room = strings.TrimSpace(input.Room)
	input.Identifier = strings.TrimSpace(input.Identifier)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	// Admin accounts are provisioned out of band.
	if role != domain.RoleUser && role != domain.RoleProperty {
		return nil, domain.ErrRoleNotAllowed
	}

	if input.Name == "" || input.Password == "" {
		return nil, domain.ErrMissingFields
	}
	if role == domain.RoleUser && (input.Building == "" || input.Unit == "" || input.Room == "") {
		return nil, domain.ErrMissingFields
	}

	email, phone, err := s.resolveContact(input)
	if err != nil {
		return nil, err
	}

	if input.VerificationCode != "" {
		key := verificationKey(input.Identifier, email, phone)
		if !s.cache.Verify(ctx, key, input.VerificationCode) {
			return nil, domain.ErrCodeInvalid
		}
	}

	if email != "" && !domain.IsEmail(email) {
		return nil, domain.ErrEmailInvalid
	}
	if phone != "" && !domain.IsPhone(phone) {
		return nil, domain.ErrPhoneInvalid
	}

	building := domain.NormalizeBuilding(input.Building)
	unit := domain.NormalizeUnit(input.Unit)
	room := domain.NormalizeRoom(input.Room)

	// Fail-fast ordered checks: name, email, phone, residence.
	if err := s.checkUnused(ctx, role, email, phone, input.Name, building, unit, room); err != nil {
		return nil, err
	}

	passwordHash, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := ulid.Make().String()
	contactPhone := phone
	if phone == "" {
		// Phone participates in a unique index; users without a real
		// number get a placeholder tied to their id.
		phone = placeholderPhone(id)
	}

	user := &domain.User{
		ID:                id,
		Email:             email,
		Phone:             phone,
		Name:              input.Name,
		PasswordHash:      passwordHash,
		Role:              role,
		Building:          building,
		Unit:              unit,
		Room:              room,
		IdentityImagePath: input.IdentityImage,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Idempotent if the code was already consumed above.
	if email != "" {
		s.cache.Discard(ctx, email)
	}
	if contactPhone != "" {
		s.cache.Discard(ctx, contactPhone)
	}

	token, err := s.tokenSvc.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.tokenSvc.TTL().Seconds()),
	}, nil
}

// resolveContact maps the submitted fields onto (email, phone). A bare
// identifier is disambiguated by classification; at least one contact
// must result.
func (s *RegistrationServiceImpl) resolveContact(input domain.RegistrationInput) (string, string, error) {
	email, phone := input.Email, input.Phone

	if input.Identifier != "" {
		kind, err := domain.ClassifyIdentifier(input.Identifier)
		if err != nil {
			return "", "", err
		}
		if kind == domain.IdentifierEmail {
			email = input.Identifier
		} else {
			phone = input.Identifier
		}
	}

	if email == "" && phone == "" {
		return "", "", domain.ErrMissingIdentifier
	}
	return email, phone, nil
}

func (s *RegistrationServiceImpl) checkUnused(ctx context.Context, role, email, phone, name, building, unit, room string) error {
	if _, err := s.userRepo.FindByName(ctx, name); err != domain.ErrUserNotFound {
		if err == nil {
			return domain.ErrNameTaken
		}
		return fmt.Errorf("failed to check name: %w", err)
	}

	if email != "" {
		if _, err := s.userRepo.FindByEmail(ctx, email); err != domain.ErrUserNotFound {
			if err == nil {
				return domain.ErrEmailTaken
			}
			return fmt.Errorf("failed to check email: %w", err)
		}
	}

	if phone != "" {
		if _, err := s.userRepo.FindByPhone(ctx, phone); err != domain.ErrUserNotFound {
			if err == nil {
				return domain.ErrPhoneTaken
			}
			return fmt.Errorf("failed to check phone: %w", err)
		}
	}

	if role == domain.RoleUser {
		taken, err := s.userRepo.ResidenceTaken(ctx, building, unit, room)
		if err != nil {
			return fmt.Errorf("failed to check residence: %w", err)
		}
		if taken {
			return domain.ErrRoomTaken
		}
	}

	return nil
}

func verificationKey(identifier, email, phone string) string {
	switch {
	case identifier != "":
		return identifier
	case phone != "":
		return phone
	default:
		return email
	}
}

func placeholderPhone(id string) string {
	return "p_" + id
}
