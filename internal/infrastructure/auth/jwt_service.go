package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
)

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
}

// NewJWTService creates a new JWT service with a fixed credential lifetime.
func NewJWTService(secretKey string, issuer string, ttl time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		ttl:       ttl,
	}
}

// generateJTI creates a unique JWT ID
func (j *JWTServiceImpl) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// TTL implements domain.TokenService
func (j *JWTServiceImpl) TTL() time.Duration { return j.ttl }

// Generate implements domain.TokenService. Claims snapshot the user's
// identity and residence at issuance.
func (j *JWTServiceImpl) Generate(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"name":     user.Name,
		"role":     user.Role,
		"building": user.Building,
		"unit":     user.Unit,
		"room":     user.Room,
		"iss":      j.issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(j.ttl).Unix(),
		"jti":      j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Validate implements domain.TokenService. Every failure mode (bad
// signature, expiry, malformation) is reported as ErrTokenInvalid so the
// caller cannot learn which check failed.
func (j *JWTServiceImpl) Validate(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return j.secretKey, nil
	})

	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenInvalid
	}

	tokenClaims := &domain.TokenClaims{
		UserID:    userID,
		Role:      role,
		ExpiresAt: int64(exp),
	}
	if name, ok := claims["name"].(string); ok {
		tokenClaims.Name = name
	}
	if building, ok := claims["building"].(string); ok {
		tokenClaims.Building = building
	}
	if unit, ok := claims["unit"].(string); ok {
		tokenClaims.Unit = unit
	}
	if room, ok := claims["room"].(string); ok {
		tokenClaims.Room = room
	}
	if iat, ok := claims["iat"].(float64); ok {
		tokenClaims.IssuedAt = int64(iat)
	}

	return tokenClaims, nil
}
